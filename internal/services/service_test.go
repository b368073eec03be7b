package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hiretalent_backend/internal/config"
	"hiretalent_backend/internal/email"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Polling bounds for asserting on async email delivery.
const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Application{},
		&models.Interview{},
		&models.Offer{},
		&models.Message{},
	))
	return db
}

// The global AppConfig backs token signing; parallel tests share one instance.
var testConfigOnce sync.Once

func newTestConfig() *config.Config {
	testConfigOnce.Do(func() {
		cfg := &config.Config{}
		cfg.Server.Env = "development"
		cfg.Server.Timezone = "UTC"
		cfg.JWT.Secret = "test-secret"
		cfg.JWT.TTL = 60
		cfg.JWT.RefreshTTL = 24
		cfg.Offer.DefaultValidityDays = 7
		cfg.Offer.ResponseBaseURL = "http://localhost:8080"
		config.AppConfig = cfg
	})
	return config.AppConfig
}

func newTestContainer(t *testing.T) (*ServiceContainer, *email.NoopProvider, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	provider := email.NewNoopProvider()
	return NewServiceContainer(cfg, provider), provider, db
}

func createUser(t *testing.T, db *gorm.DB, emailAddr string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: "x",
		DisplayName:  "Test " + string(role),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPublishedJob(t *testing.T, db *gorm.DB, owner *models.User) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:       "Backend Engineer",
		Description: "Build the hiring platform",
		Status:      models.JobStatusPublished,
		IsActive:    true,
		CreatedBy:   owner.ID,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func mustApply(t *testing.T, sc *ServiceContainer, db *gorm.DB, candidate *models.User, jobID string) *dto.ApplicationResponse {
	t.Helper()

	app, err := sc.ApplicationService.Apply(db, candidate, jobID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)
	return app
}

// advance walks an application along the lifecycle path to target, one edge
// at a time, as the recruiter.
func advance(t *testing.T, sc *ServiceContainer, db *gorm.DB, recruiter *models.User, applicationID string, path ...models.ApplicationStatus) {
	t.Helper()

	for _, status := range path {
		_, err := sc.ApplicationService.Transition(db, recruiter, applicationID, &dto.TransitionRequest{Status: status})
		require.NoError(t, err)
	}
}

func loadApplication(t *testing.T, db *gorm.DB, id string) *models.Application {
	t.Helper()

	var app models.Application
	require.NoError(t, db.First(&app, "id = ?", id).Error)
	return &app
}

var fullPathToOffer = []models.ApplicationStatus{
	models.ApplicationStatusReviewing,
	models.ApplicationStatusShortlisted,
	models.ApplicationStatusInterviewing,
	models.ApplicationStatusInterviewed,
	models.ApplicationStatusOffer,
}
