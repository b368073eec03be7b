package services

import (
	"encoding/json"
	"errors"
	"time"

	"hiretalent_backend/internal/auth"
	"hiretalent_backend/internal/email"
	"hiretalent_backend/internal/logger"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/repositories"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	jobRepo         *repositories.JobRepository
	userRepo        *repositories.UserRepository
	emailProvider   email.Provider
}

func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	jobRepo *repositories.JobRepository,
	userRepo *repositories.UserRepository,
	emailProvider email.Provider,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		emailProvider:   emailProvider,
	}
}

// Application Operations

// Apply submits a candidate's application for a job. The application insert
// and the job's lifetime counter increment run in one transaction; the
// counter uses a SQL-level increment so concurrent applies cannot clobber
// each other.
func (s *ApplicationService) Apply(db *gorm.DB, actor *models.User, jobID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := auth.Authorize(actor, auth.ActionCreateApplication, auth.Target{
		CandidateID: actorID(actor),
	}); err != nil {
		return nil, err
	}
	if actor.Role != models.UserRoleCandidate {
		return nil, apperrors.ErrInvalidUserRole
	}

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if !job.AcceptingApplications(now) {
		if job.MaxApplications != nil && job.ApplicationCount >= int64(*job.MaxApplications) {
			return nil, apperrors.ErrApplicationLimitReached
		}
		return nil, apperrors.ErrJobNotPublished
	}

	if _, err := s.applicationRepo.FindByJobAndCandidate(db, jobID, actor.ID); err == nil {
		return nil, apperrors.ErrDuplicateApplication
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	initialHistory, err := json.Marshal([]models.StatusChange{{
		Status:    models.ApplicationStatusNew,
		ChangedBy: actor.ID,
		ChangedAt: now,
	}})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	app := &models.Application{
		JobID:             jobID,
		CandidateID:       actor.ID,
		CandidateName:     actor.DisplayName,
		CandidateEmail:    actor.Email,
		CandidatePhone:    req.CandidatePhone,
		CandidateLocation: req.CandidateLocation,
		ResumeURL:         req.ResumeURL,
		ResumeFilename:    req.ResumeFilename,
		CoverLetter:       req.CoverLetter,
		Source:            defaultString(req.Source, "direct"),
		Status:            models.ApplicationStatusNew,
		StatusHistory:     datatypes.JSON(initialHistory),
		StagesMask:        models.StageBit(models.ApplicationStatusNew),
	}
	if req.ResumeURL != "" {
		app.ResumeUploadedAt = &now
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.Create(tx, app); err != nil {
			return err
		}
		return s.jobRepo.IncrementApplicationCount(tx, jobID)
	})
	if err != nil {
		// The unique index catches the race the pre-check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("application submitted", "application_id", app.ID, "job_id", jobID, "candidate_id", actor.ID)

	go func() {
		err := s.emailProvider.SendTemplate(actor.Email, "Application received",
			email.TemplateApplicationReceived, email.TemplateData{
				"CandidateName": actor.DisplayName,
				"JobTitle":      job.Title,
			})
		if err != nil {
			logger.WithError(err).Warn("failed to send application confirmation", "application_id", app.ID)
		}
	}()

	app.Job = job
	resp, err := dto.NewApplicationResponse(app)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

// Transition moves an application along the lifecycle graph. The write is
// conditional on the status the caller observed: if another writer changed it
// in between, nothing is written and ConcurrentModification comes back.
func (s *ApplicationService) Transition(db *gorm.DB, actor *models.User, applicationID string, req *dto.TransitionRequest) (*dto.ApplicationResponse, error) {
	app, err := s.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	action := auth.ActionTransitionApplication
	if req.Status == models.ApplicationStatusWithdrawn {
		action = auth.ActionWithdrawApplication
	}
	if err := auth.Authorize(actor, action, auth.Target{
		JobOwnerID:  app.Job.CreatedBy,
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	return s.transition(db, app, req.Status, actor.ID, req.Reason)
}

// Withdraw is the candidate-facing exit: their own application moves to
// withdrawn from any non-terminal status.
func (s *ApplicationService) Withdraw(db *gorm.DB, actor *models.User, applicationID string, reason string) (*dto.ApplicationResponse, error) {
	app, err := s.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionWithdrawApplication, auth.Target{
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	return s.transition(db, app, models.ApplicationStatusWithdrawn, actor.ID, reason)
}

// transition is the shared lifecycle core: graph validation, history append,
// stage bit accumulation, conditional single-statement write. The offer
// service routes its hired/rejected cascades through here so every status
// change obeys the same rules.
func (s *ApplicationService) transition(db *gorm.DB, app *models.Application, to models.ApplicationStatus, changedBy, reason string) (*dto.ApplicationResponse, error) {
	if !to.Valid() {
		return nil, apperrors.NewBadRequestError("unknown application status")
	}
	if !models.CanTransition(app.Status, to) {
		return nil, apperrors.ErrInvalidTransition
	}

	entry := models.StatusChange{
		Status:    to,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
		Reason:    reason,
	}
	history, err := app.AppendHistory(entry)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	mask := app.StagesMask | models.StageBit(to)

	swapped, err := s.applicationRepo.UpdateStatusIf(db, app.ID, app.Status, to, history, mask)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !swapped {
		return nil, apperrors.ErrConcurrentModification
	}

	logger.Info("application transitioned",
		"application_id", app.ID,
		"from", app.Status,
		"to", to,
		"changed_by", changedBy,
	)

	app.Status = to
	app.StatusHistory = history
	app.StagesMask = mask

	s.notifyStatusChange(app, to)

	resp, err := dto.NewApplicationResponse(app)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *ApplicationService) notifyStatusChange(app *models.Application, to models.ApplicationStatus) {
	jobTitle := ""
	if app.Job != nil {
		jobTitle = app.Job.Title
	}
	go func() {
		err := s.emailProvider.SendTemplate(app.CandidateEmail, "Application update",
			email.TemplateStatusChanged, email.TemplateData{
				"CandidateName": app.CandidateName,
				"JobTitle":      jobTitle,
				"Status":        string(to),
			})
		if err != nil {
			logger.WithError(err).Warn("failed to send status change email", "application_id", app.ID)
		}
	}()
}

func (s *ApplicationService) Get(db *gorm.DB, actor *models.User, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionReadApplication, auth.Target{
		JobOwnerID:  app.Job.CreatedBy,
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	resp, err := dto.NewApplicationResponse(app)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *ApplicationService) ListForJob(db *gorm.DB, actor *models.User, jobID string, status models.ApplicationStatus) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := auth.Authorize(actor, auth.ActionReadApplication, auth.Target{
		JobOwnerID: job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if status != "" && !status.Valid() {
		return nil, apperrors.NewBadRequestError("unknown application status")
	}

	apps, err := s.applicationRepo.ListByJob(db, jobID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponses(apps)
}

func (s *ApplicationService) ListMine(db *gorm.DB, actor *models.User) ([]dto.ApplicationResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	apps, err := s.applicationRepo.ListByCandidate(db, actor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponses(apps)
}

// Rate records recruiter scores on an application.
func (s *ApplicationService) Rate(db *gorm.DB, actor *models.User, applicationID string, req *dto.RateApplicationRequest) error {
	app, err := s.findWithJob(db, applicationID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(actor, auth.ActionTransitionApplication, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return err
	}

	ratings := map[string]interface{}{}
	if req.RatingOverall != nil {
		ratings["rating_overall"] = *req.RatingOverall
	}
	if req.RatingTechnical != nil {
		ratings["rating_technical"] = *req.RatingTechnical
	}
	if req.RatingCommunication != nil {
		ratings["rating_communication"] = *req.RatingCommunication
	}
	if req.RatingCultural != nil {
		ratings["rating_cultural"] = *req.RatingCultural
	}
	if len(ratings) == 0 {
		return apperrors.NewBadRequestError("at least one rating dimension is required")
	}

	if err := s.applicationRepo.UpdateRatings(db, applicationID, ratings); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// AddNote appends an internal recruiter note. Notes are never exposed to
// candidates.
func (s *ApplicationService) AddNote(db *gorm.DB, actor *models.User, applicationID string, req *dto.AddNoteRequest) error {
	app, err := s.findWithJob(db, applicationID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(actor, auth.ActionTransitionApplication, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return err
	}

	notes, err := app.Notes()
	if err != nil {
		return apperrors.InternalError(err)
	}
	notes = append(notes, models.RecruiterNote{
		Note:    req.Note,
		AddedBy: actor.ID,
		AddedAt: time.Now(),
	})
	raw, err := json.Marshal(notes)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.applicationRepo.UpdateNotes(db, applicationID, datatypes.JSON(raw)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationService) findWithJob(db *gorm.DB, applicationID string) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if app.Job == nil {
		job, err := s.jobRepo.FindByID(db, app.JobID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		app.Job = job
	}
	return app, nil
}

func buildApplicationResponses(apps []models.Application) ([]dto.ApplicationResponse, error) {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp, err := dto.NewApplicationResponse(&apps[i])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out = append(out, resp)
	}
	return out, nil
}

func actorID(actor *models.User) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
