package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/capisen/backoffice/config"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/storage"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// A pooled second connection would see its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

// newTestStore backs uploads with a temp directory that vanishes with
// the test.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.SigningKey = "test-signing-key"
	cfg.Server.BaseURL = "http://localhost:8080"
	store, err := storage.NewDiskStore(cfg)
	require.NoError(t, err)
	return store
}
