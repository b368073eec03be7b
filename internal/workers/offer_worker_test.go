package workers

import (
	"path/filepath"
	"testing"
	"time"

	"hiretalent_backend/internal/config"
	"hiretalent_backend/internal/email"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newWorker(t *testing.T) (*OfferWorker, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.Offer{},
	))

	cfg := &config.Config{}
	cfg.Offer.DefaultValidityDays = 7
	sc := services.NewServiceContainer(cfg, email.NewNoopProvider())
	return NewOfferWorker(db, sc.OfferService, sc.JobService), db
}

func TestSweepExpiresOffersAndPausesJobs(t *testing.T) {
	t.Parallel()
	w, db := newWorker(t)

	recruiter := &models.User{Email: "r@example.com", PasswordHash: "x", DisplayName: "R", Role: models.UserRoleRecruiter, IsActive: true}
	require.NoError(t, db.Create(recruiter).Error)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(72 * time.Hour)

	overdueJob := &models.Job{Title: "Stale", Description: "d", Status: models.JobStatusPublished, IsActive: true, CreatedBy: recruiter.ID, ApplicationDeadline: &past}
	openJob := &models.Job{Title: "Open", Description: "d", Status: models.JobStatusPublished, IsActive: true, CreatedBy: recruiter.ID, ApplicationDeadline: &future}
	require.NoError(t, db.Create(overdueJob).Error)
	require.NoError(t, db.Create(openJob).Error)

	overdueOffer := &models.Offer{
		ApplicationID:   "00000000-0000-0000-0000-000000000001",
		JobID:           overdueJob.ID,
		CandidateID:     recruiter.ID,
		Position:        "Engineer",
		Salary:          1,
		Status:          models.OfferStatusSent,
		OfferValidUntil: past,
		ResponseToken:   "live-token",
	}
	liveOffer := &models.Offer{
		ApplicationID:   "00000000-0000-0000-0000-000000000002",
		JobID:           openJob.ID,
		CandidateID:     recruiter.ID,
		Position:        "Engineer",
		Salary:          1,
		Status:          models.OfferStatusSent,
		OfferValidUntil: future,
		ResponseToken:   "other-token",
	}
	require.NoError(t, db.Create(overdueOffer).Error)
	require.NoError(t, db.Create(liveOffer).Error)

	w.Sweep(time.Now())

	// Fresh dest per lookup: gorm folds a populated primary key into the WHERE.
	var expired models.Offer
	require.NoError(t, db.First(&expired, "id = ?", overdueOffer.ID).Error)
	assert.Equal(t, models.OfferStatusExpired, expired.Status)
	assert.Empty(t, expired.ResponseToken)

	var live models.Offer
	require.NoError(t, db.First(&live, "id = ?", liveOffer.ID).Error)
	assert.Equal(t, models.OfferStatusSent, live.Status)
	assert.Equal(t, "other-token", live.ResponseToken)

	var paused models.Job
	require.NoError(t, db.First(&paused, "id = ?", overdueJob.ID).Error)
	assert.Equal(t, models.JobStatusPaused, paused.Status)

	var stillOpen models.Job
	require.NoError(t, db.First(&stillOpen, "id = ?", openJob.ID).Error)
	assert.Equal(t, models.JobStatusPublished, stillOpen.Status)

	// A second pass is a no-op.
	w.Sweep(time.Now())
	var after models.Offer
	require.NoError(t, db.First(&after, "id = ?", overdueOffer.ID).Error)
	assert.Equal(t, models.OfferStatusExpired, after.Status)
}
