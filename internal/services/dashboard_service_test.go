package services

import (
	"context"
	"testing"
	"time"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funnelByStage(funnel []dto.FunnelStage) map[string]int64 {
	out := make(map[string]int64, len(funnel))
	for _, stage := range funnel {
		out[stage.Stage] = stage.Count
	}
	return out
}

func TestFunnelIsCumulative(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	job := createPublishedJob(t, db, recruiter)

	// One application stays at new, one reaches shortlisted, one is hired.
	staying := createUser(t, db, "staying@example.com", models.UserRoleCandidate)
	mustApply(t, sc, db, staying, job.ID)

	shortlisted := createUser(t, db, "shortlisted@example.com", models.UserRoleCandidate)
	appShortlisted := mustApply(t, sc, db, shortlisted, job.ID)
	advance(t, sc, db, recruiter, appShortlisted.ID,
		models.ApplicationStatusReviewing, models.ApplicationStatusShortlisted)

	hired := createUser(t, db, "hired@example.com", models.UserRoleCandidate)
	appHired := mustApply(t, sc, db, hired, job.ID)
	advance(t, sc, db, recruiter, appHired.ID, fullPathToOffer...)
	advance(t, sc, db, recruiter, appHired.ID, models.ApplicationStatusHired)

	funnel, err := sc.DashboardService.GetFunnel(db, recruiter, "", nil, nil)
	require.NoError(t, err)
	require.Len(t, funnel, 7)

	counts := funnelByStage(funnel)
	assert.EqualValues(t, 3, counts["new"])
	assert.EqualValues(t, 2, counts["reviewing"])
	assert.EqualValues(t, 2, counts["shortlisted"])
	assert.EqualValues(t, 1, counts["interviewing"])
	assert.EqualValues(t, 1, counts["interviewed"])
	assert.EqualValues(t, 1, counts["offer"])
	assert.EqualValues(t, 1, counts["hired"])

	// Stages never grow left to right: each is a subset of the previous one.
	for i := 1; i < len(funnel); i++ {
		assert.LessOrEqual(t, funnel[i].Count, funnel[i-1].Count,
			"%s exceeds %s", funnel[i].Stage, funnel[i-1].Stage)
	}
}

func TestFunnelScopedToOwnJobs(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	mine := createUser(t, db, "mine@example.com", models.UserRoleRecruiter)
	other := createUser(t, db, "other@example.com", models.UserRoleRecruiter)
	myJob := createPublishedJob(t, db, mine)
	otherJob := createPublishedJob(t, db, other)

	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	mustApply(t, sc, db, candidate, myJob.ID)
	mustApply(t, sc, db, candidate, otherJob.ID)

	funnel, err := sc.DashboardService.GetFunnel(db, mine, "", nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, funnelByStage(funnel)["new"])

	// Narrowing to a job someone else owns is a deny, not an empty result.
	_, err = sc.DashboardService.GetFunnel(db, mine, otherJob.ID, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	// Admins see the whole pipeline.
	admin := createUser(t, db, "admin@example.com", models.UserRoleAdmin)
	funnel, err = sc.DashboardService.GetFunnel(db, admin, "", nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, funnelByStage(funnel)["new"])
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	job := createPublishedJob(t, db, recruiter)

	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	app := mustApply(t, sc, db, candidate, job.ID)
	advance(t, sc, db, recruiter, app.ID, fullPathToOffer...)
	advance(t, sc, db, recruiter, app.ID, models.ApplicationStatusHired)

	stats, err := sc.DashboardService.GetStats(context.Background(), db, recruiter)
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.OpenPositions)
	assert.EqualValues(t, 1, stats.NewApplicationsWeek)
	assert.EqualValues(t, 1, stats.HiredThisMonth)
	assert.Zero(t, stats.ScheduledInterviews)
	require.Len(t, stats.RecentApplications, 1)
	assert.Equal(t, app.ID, stats.RecentApplications[0].ID)
	require.Len(t, stats.Funnel, 7)
}

func TestDashboardDeniedForCandidates(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)

	_, err := sc.DashboardService.GetStats(context.Background(), db, candidate)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	_, err = sc.DashboardService.GetFunnel(db, candidate, "", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestOpenPositionsExcludeDeactivatedJobs(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	createPublishedJob(t, db, recruiter)

	// Published but deactivated: no longer accepting candidates.
	dormant := createPublishedJob(t, db, recruiter)
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", dormant.ID).
		Update("is_active", false).Error)

	draft := &models.Job{
		Title:       "Unannounced Role",
		Description: "Not published yet",
		Status:      models.JobStatusDraft,
		IsActive:    true,
		CreatedBy:   recruiter.ID,
	}
	require.NoError(t, db.Create(draft).Error)

	stats, err := sc.DashboardService.GetStats(context.Background(), db, recruiter)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.OpenPositions)
}

func TestScheduledInterviewsFollowPrimaryInterviewer(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	colleague := createUser(t, db, "colleague@example.com", models.UserRoleRecruiter)
	myJob := createPublishedJob(t, db, recruiter)
	colleagueJob := createPublishedJob(t, db, colleague)

	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	myApp := mustApply(t, sc, db, candidate, myJob.ID)
	colleagueApp := mustApply(t, sc, db, candidate, colleagueJob.ID)

	nextWeek := time.Now().AddDate(0, 0, 7)

	// On the recruiter's own job, but the colleague runs it and it is already
	// confirmed: counts for nobody's "scheduled" headline.
	require.NoError(t, db.Create(&models.Interview{
		ApplicationID: myApp.ID,
		JobID:         myJob.ID,
		CandidateID:   candidate.ID,
		InterviewerID: colleague.ID,
		Type:          "video",
		ScheduledDate: nextWeek,
		Status:        models.InterviewStatusConfirmed,
	}).Error)

	// On the colleague's job, but the recruiter is the primary interviewer and
	// it is still at scheduled: counts for the recruiter.
	require.NoError(t, db.Create(&models.Interview{
		ApplicationID: colleagueApp.ID,
		JobID:         colleagueJob.ID,
		CandidateID:   candidate.ID,
		InterviewerID: recruiter.ID,
		Type:          "video",
		ScheduledDate: nextWeek,
		Status:        models.InterviewStatusScheduled,
	}).Error)

	// The recruiter's own past interview no longer counts either.
	require.NoError(t, db.Create(&models.Interview{
		ApplicationID: myApp.ID,
		JobID:         myJob.ID,
		CandidateID:   candidate.ID,
		InterviewerID: recruiter.ID,
		Type:          "video",
		ScheduledDate: time.Now().AddDate(0, 0, -7),
		Status:        models.InterviewStatusScheduled,
	}).Error)

	stats, err := sc.DashboardService.GetStats(context.Background(), db, recruiter)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ScheduledInterviews)

	stats, err = sc.DashboardService.GetStats(context.Background(), db, colleague)
	require.NoError(t, err)
	assert.Zero(t, stats.ScheduledInterviews)
}

func TestFunnelDateRange(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	job := createPublishedJob(t, db, recruiter)

	recent := createUser(t, db, "recent@example.com", models.UserRoleCandidate)
	mustApply(t, sc, db, recent, job.ID)

	early := createUser(t, db, "early@example.com", models.UserRoleCandidate)
	earlyApp := mustApply(t, sc, db, early, job.ID)
	monthAgo := time.Now().AddDate(0, 0, -30)
	require.NoError(t, db.Model(&models.Application{}).Where("id = ?", earlyApp.ID).
		Update("created_at", monthAgo).Error)

	// Unbounded: both applications.
	funnel, err := sc.DashboardService.GetFunnel(db, recruiter, "", nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, funnelByStage(funnel)["new"])

	// Lower bound drops the month-old application.
	weekAgo := time.Now().AddDate(0, 0, -7)
	funnel, err = sc.DashboardService.GetFunnel(db, recruiter, "", &weekAgo, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, funnelByStage(funnel)["new"])

	// Upper bound keeps only the month-old one.
	fortnightAgo := time.Now().AddDate(0, 0, -14)
	funnel, err = sc.DashboardService.GetFunnel(db, recruiter, "", nil, &fortnightAgo)
	require.NoError(t, err)
	assert.EqualValues(t, 1, funnelByStage(funnel)["new"])

	// An inverted range is rejected outright.
	_, err = sc.DashboardService.GetFunnel(db, recruiter, "", &weekAgo, &fortnightAgo)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}
