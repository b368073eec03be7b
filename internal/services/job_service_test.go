package services

import (
	"testing"
	"time"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)

	created, err := sc.JobService.Create(db, recruiter, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Build the hiring platform",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDraft, created.Status)
	assert.Equal(t, "full-time", created.JobType)
	assert.Equal(t, "USD", created.SalaryCurrency)

	published, err := sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPublished, published.Status)

	// Skipping paused/closed straight to archived is not an edge.
	_, err = sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusArchived)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)

	_, err = sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusPaused)
	require.NoError(t, err)
	_, err = sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusPublished)
	require.NoError(t, err)
	_, err = sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusClosed)
	require.NoError(t, err)
	archived, err := sc.JobService.UpdateStatus(db, recruiter, created.ID, models.JobStatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusArchived, archived.Status)
}

func TestJobCreateRequiresRecruiter(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)

	_, err := sc.JobService.Create(db, candidate, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Build the hiring platform",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestJobGetVisibility(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)

	draft, err := sc.JobService.Create(db, recruiter, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Build the hiring platform",
	})
	require.NoError(t, err)

	// Drafts are invisible outside the owner.
	_, err = sc.JobService.Get(db, nil, draft.ID)
	require.Error(t, err)
	_, err = sc.JobService.Get(db, candidate, draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	_, err = sc.JobService.Get(db, recruiter, draft.ID)
	require.NoError(t, err)

	_, err = sc.JobService.UpdateStatus(db, recruiter, draft.ID, models.JobStatusPublished)
	require.NoError(t, err)

	// Published jobs are world-readable; anonymous reads bump the counter,
	// owner reads do not.
	resp, err := sc.JobService.Get(db, nil, draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Views)

	resp, err = sc.JobService.Get(db, candidate, draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Views)

	resp, err = sc.JobService.Get(db, recruiter, draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Views)
}

func TestJobDeleteOnlyDrafts(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)

	draft, err := sc.JobService.Create(db, recruiter, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Build the hiring platform",
	})
	require.NoError(t, err)
	require.NoError(t, sc.JobService.Delete(db, recruiter, draft.ID))

	published := createPublishedJob(t, db, recruiter)
	err = sc.JobService.Delete(db, recruiter, published.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestJobSearchOnlyPublished(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)

	createPublishedJob(t, db, recruiter)
	_, err := sc.JobService.Create(db, recruiter, &dto.CreateJobRequest{
		Title:       "Hidden Draft",
		Description: "Not visible yet",
	})
	require.NoError(t, err)

	result, err := sc.JobService.Search(db, &dto.JobSearchRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, models.JobStatusPublished, result.Jobs[0].Status)
}

func TestJobUpdateOnlyOwner(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	other := createUser(t, db, "other@example.com", models.UserRoleRecruiter)
	admin := createUser(t, db, "admin@example.com", models.UserRoleAdmin)
	job := createPublishedJob(t, db, recruiter)

	title := "Retitled"
	_, err := sc.JobService.Update(db, other, job.ID, &dto.UpdateJobRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	resp, err := sc.JobService.Update(db, admin, job.ID, &dto.UpdateJobRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Retitled", resp.Title)
}

func TestPauseExpiredJobs(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)

	expired := createPublishedJob(t, db, recruiter)
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", expired.ID).
		Update("application_deadline", past).Error)

	open := createPublishedJob(t, db, recruiter)

	count, err := sc.JobService.PauseExpired(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Fresh dest per lookup: gorm folds a populated primary key into the WHERE.
	var paused models.Job
	require.NoError(t, db.First(&paused, "id = ?", expired.ID).Error)
	assert.Equal(t, models.JobStatusPaused, paused.Status)

	var untouched models.Job
	require.NoError(t, db.First(&untouched, "id = ?", open.ID).Error)
	assert.Equal(t, models.JobStatusPublished, untouched.Status)
}
