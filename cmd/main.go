package main

import (
	"context"
	"net/http"
	"time"

	"github.com/capisen/backoffice/config"
	"github.com/capisen/backoffice/database"
	"github.com/capisen/backoffice/internal/controller"
	"github.com/capisen/backoffice/internal/logger"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/capisen/backoffice/internal/service"
	"github.com/capisen/backoffice/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			storage.NewDiskStore,
			NewGinEngine,
			NewSessionPolicy,
		),

		fx.Provide(
			repository.NewContactRepository,
			repository.NewTemplateRepository,
			repository.NewOffreRepository,
			repository.NewGenerationRepository,
			repository.NewMemberRepository,
			repository.NewFormationRepository,
			repository.NewEnrollmentRepository,
			repository.NewQuizRepository,
		),

		fx.Provide(
			service.NewAnthropicService,
			service.NewMailService,
			service.NewMemberService,
			service.NewContactService,
			service.NewTemplateService,
			service.NewOffreService,
			service.NewFormationService,
			service.NewProgressService,
			service.NewQuizService,
		),

		fx.Provide(controller.NewController),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartSessionWatchdog),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

func NewSessionPolicy(cfg *config.Config) *service.SessionPolicy {
	idle := time.Duration(cfg.Session.IdleMinutes) * time.Minute
	return service.NewSessionPolicy(idle, nil, func() {
		log.Info().Dur("idle", idle).Msg("Session expired after inactivity")
	})
}

// StartSessionWatchdog runs the inactivity poll for the lifetime of the
// application.
func StartSessionWatchdog(lc fx.Lifecycle, policy *service.SessionPolicy) {
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go policy.Watch(30*time.Second, stop)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
	policy *service.SessionPolicy,
) {
	// Every API request counts as session activity.
	router.Use(func(c *gin.Context) {
		policy.Touch()
		c.Next()
	})

	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Capisen back office starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Member{},
		&model.Contact{},
		&model.MailTemplate{},
		&model.Offre{},
		&model.MailGeneration{},
		&model.Formation{},
		&model.Step{},
		&model.StepDocument{},
		&model.Enrollment{},
		&model.StepProgress{},
		&model.StepSubmission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizChoice{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
