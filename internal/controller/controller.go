package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/service"
	"github.com/capisen/backoffice/internal/storage"
)

type Controller struct {
	mailSvc      service.MailService
	memberSvc    service.MemberService
	contactSvc   service.ContactService
	templateSvc  service.TemplateService
	offreSvc     service.OffreService
	formationSvc service.FormationService
	progressSvc  service.ProgressService
	quizSvc      service.QuizService
	store        storage.Store
}

func NewController(
	mailSvc service.MailService,
	memberSvc service.MemberService,
	contactSvc service.ContactService,
	templateSvc service.TemplateService,
	offreSvc service.OffreService,
	formationSvc service.FormationService,
	progressSvc service.ProgressService,
	quizSvc service.QuizService,
	store storage.Store,
) *Controller {
	return &Controller{
		mailSvc:      mailSvc,
		memberSvc:    memberSvc,
		contactSvc:   contactSvc,
		templateSvc:  templateSvc,
		offreSvc:     offreSvc,
		formationSvc: formationSvc,
		progressSvc:  progressSvc,
		quizSvc:      quizSvc,
		store:        store,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		mails := apiV1.Group("/mails")
		mails.POST("/generate", ctrl.GenerateMailHandler)
		mails.POST("/generations", ctrl.SaveGenerationHandler)
		mails.GET("/generations", ctrl.GetGenerationsHandler)
		mails.DELETE("/generations/:id", ctrl.DeleteGenerationHandler)

		members := apiV1.Group("/members")
		members.POST("", ctrl.CreateMemberHandler)
		members.GET("", ctrl.GetAllMembersHandler)
		members.GET("/:id", ctrl.GetMemberHandler)
		members.PUT("/:id", ctrl.UpdateMemberHandler)
		members.DELETE("/:id", ctrl.DeleteMemberHandler)

		contacts := apiV1.Group("/contacts")
		contacts.POST("", ctrl.CreateContactHandler)
		contacts.GET("", ctrl.GetAllContactsHandler)
		contacts.GET("/:id", ctrl.GetContactHandler)
		contacts.PUT("/:id", ctrl.UpdateContactHandler)
		contacts.DELETE("/:id", ctrl.DeleteContactHandler)

		templates := apiV1.Group("/templates")
		templates.POST("", ctrl.CreateTemplateHandler)
		templates.GET("", ctrl.GetAllTemplatesHandler)
		templates.GET("/:id", ctrl.GetTemplateHandler)
		templates.PUT("/:id", ctrl.UpdateTemplateHandler)
		templates.DELETE("/:id", ctrl.DeleteTemplateHandler)

		offres := apiV1.Group("/offres")
		offres.POST("", ctrl.CreateOffreHandler)
		offres.GET("", ctrl.GetAllOffresHandler)
		offres.GET("/:id", ctrl.GetOffreHandler)
		offres.PUT("/:id", ctrl.UpdateOffreHandler)
		offres.DELETE("/:id", ctrl.DeleteOffreHandler)

		formations := apiV1.Group("/formations")
		formations.POST("", ctrl.CreateFormationHandler)
		formations.GET("", ctrl.GetAllFormationsHandler)
		formations.GET("/:id", ctrl.GetFormationHandler)
		formations.PUT("/:id", ctrl.UpdateFormationHandler)
		formations.DELETE("/:id", ctrl.DeleteFormationHandler)

		formations.POST("/:id/enroll", ctrl.EnrollHandler)
		formations.GET("/:id/progress", ctrl.GetProgressHandler)

		formations.PUT("/:id/quiz", ctrl.SaveQuizHandler)
		formations.GET("/:id/quiz", ctrl.GetQuizHandler)
		formations.POST("/:id/quiz/attempts", ctrl.SubmitQuizAttemptHandler)
		formations.GET("/:id/quiz/attempt", ctrl.GetQuizAttemptHandler)

		steps := apiV1.Group("/steps")
		steps.POST("/:id/documents", ctrl.UploadStepDocumentHandler)
		steps.POST("/:id/complete", ctrl.CompleteStepHandler)
		steps.POST("/:id/submissions", ctrl.SubmitStepFileHandler)

		apiV1.GET("/files", ctrl.DownloadFileHandler)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses:
// validation failures are 400, missing rows 404, generation failures
// and everything else 500.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	var validation *service.ValidationError
	var generation *service.GenerationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Message})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFoundMsg})
	case errors.As(err, &generation):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: generation.Message})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// parseMemberQuery reads the required member_id query parameter.
func parseMemberQuery(c *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(c.Query("member_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid member_id format"})
		return 0, false
	}
	return uint(val), true
}
