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

type InterviewService struct {
	interviewRepo   *repositories.InterviewRepository
	applicationRepo *repositories.ApplicationRepository
	appService      *ApplicationService
	emailProvider   email.Provider
}

func NewInterviewService(
	interviewRepo *repositories.InterviewRepository,
	applicationRepo *repositories.ApplicationRepository,
	appService *ApplicationService,
	emailProvider email.Provider,
) *InterviewService {
	return &InterviewService{
		interviewRepo:   interviewRepo,
		applicationRepo: applicationRepo,
		appService:      appService,
		emailProvider:   emailProvider,
	}
}

// Interview Operations

// Schedule books an interview for an application at the shortlisted or
// interviewing stage. Scheduling a shortlisted application advances it to
// interviewing through the lifecycle engine.
func (s *InterviewService) Schedule(db *gorm.DB, actor *models.User, applicationID string, req *dto.ScheduleInterviewRequest) (*dto.InterviewResponse, error) {
	app, err := s.appService.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageInterview, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if app.Status != models.ApplicationStatusShortlisted && app.Status != models.ApplicationStatusInterviewing {
		return nil, apperrors.ErrApplicationNotInterviewable
	}

	if !req.ScheduledDate.After(time.Now()) {
		return nil, apperrors.ErrInterviewInPast
	}

	if app.Status == models.ApplicationStatusShortlisted {
		if _, err := s.appService.transition(db, app, models.ApplicationStatusInterviewing, actor.ID, "interview scheduled"); err != nil {
			return nil, err
		}
	}

	interview := &models.Interview{
		ApplicationID:          applicationID,
		JobID:                  app.JobID,
		CandidateID:            app.CandidateID,
		InterviewerID:          req.InterviewerID,
		AdditionalInterviewers: dto.EncodeStrings(req.AdditionalInterviewers),
		Type:                   req.Type,
		ScheduledDate:          req.ScheduledDate,
		DurationMinutes:        req.DurationMinutes,
		Location:               req.Location,
		MeetingLink:            req.MeetingLink,
		Status:                 models.InterviewStatusScheduled,
	}
	if interview.DurationMinutes == 0 {
		interview.DurationMinutes = 60
	}

	if err := s.interviewRepo.Create(db, interview); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("interview scheduled",
		"interview_id", interview.ID,
		"application_id", applicationID,
		"scheduled_date", req.ScheduledDate,
	)

	go func() {
		err := s.emailProvider.SendTemplate(app.CandidateEmail, "Interview scheduled",
			email.TemplateInterviewScheduled, email.TemplateData{
				"CandidateName": app.CandidateName,
				"JobTitle":      app.Job.Title,
				"ScheduledDate": req.ScheduledDate.Format(time.RFC1123),
				"MeetingLink":   req.MeetingLink,
			})
		if err != nil {
			logger.WithError(err).Warn("failed to send interview email", "interview_id", interview.ID)
		}
	}()

	resp, err := dto.NewInterviewResponse(interview)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *InterviewService) Get(db *gorm.DB, actor *models.User, interviewID string) (*dto.InterviewResponse, error) {
	interview, app, err := s.findWithApplication(db, interviewID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionReadApplication, auth.Target{
		JobOwnerID:  app.Job.CreatedBy,
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	resp, err := dto.NewInterviewResponse(interview)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *InterviewService) UpdateStatus(db *gorm.DB, actor *models.User, interviewID string, newStatus models.InterviewStatus) (*dto.InterviewResponse, error) {
	interview, app, err := s.findWithApplication(db, interviewID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageInterview, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if !newStatus.Valid() {
		return nil, apperrors.NewBadRequestError("unknown interview status")
	}

	if err := s.interviewRepo.UpdateStatus(db, interviewID, newStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}
	interview.Status = newStatus

	resp, err := dto.NewInterviewResponse(interview)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *InterviewService) Reschedule(db *gorm.DB, actor *models.User, interviewID string, req *dto.RescheduleInterviewRequest) (*dto.InterviewResponse, error) {
	interview, app, err := s.findWithApplication(db, interviewID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageInterview, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if !req.NewDate.After(time.Now()) {
		return nil, apperrors.ErrInterviewInPast
	}

	history, err := interview.AppendReschedule(models.Reschedule{
		PreviousDate:  interview.ScheduledDate,
		NewDate:       req.NewDate,
		Reason:        req.Reason,
		RescheduledBy: actor.ID,
		RescheduledAt: time.Now(),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.interviewRepo.UpdateSchedule(db, interviewID, req.NewDate, history); err != nil {
		return nil, apperrors.InternalError(err)
	}
	interview.ScheduledDate = req.NewDate
	interview.RescheduleHistory = history
	interview.Status = models.InterviewStatusRescheduled

	resp, err := dto.NewInterviewResponse(interview)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

// SubmitFeedback records the scores and marks the interview completed. When
// the application is still at interviewing it advances to interviewed.
func (s *InterviewService) SubmitFeedback(db *gorm.DB, actor *models.User, interviewID string, req *dto.InterviewFeedbackRequest) (*dto.InterviewResponse, error) {
	interview, app, err := s.findWithApplication(db, interviewID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageInterview, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	feedback := models.InterviewFeedback{
		TechnicalScore:     req.TechnicalScore,
		CommunicationScore: req.CommunicationScore,
		ProblemSolving:     req.ProblemSolving,
		CulturalFit:        req.CulturalFit,
		Notes:              req.Notes,
		Recommendation:     req.Recommendation,
	}
	raw, err := json.Marshal(&feedback)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.interviewRepo.SaveFeedback(db, interviewID, datatypes.JSON(raw)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	interview.Feedback = datatypes.JSON(raw)
	interview.Status = models.InterviewStatusCompleted

	if app.Status == models.ApplicationStatusInterviewing {
		if _, err := s.appService.transition(db, app, models.ApplicationStatusInterviewed, actor.ID, "interview feedback submitted"); err != nil {
			logger.WithError(err).Warn("failed to advance application after feedback", "application_id", app.ID)
		}
	}

	resp, err := dto.NewInterviewResponse(interview)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *InterviewService) ListForApplication(db *gorm.DB, actor *models.User, applicationID string) ([]dto.InterviewResponse, error) {
	app, err := s.appService.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionReadApplication, auth.Target{
		JobOwnerID:  app.Job.CreatedBy,
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	interviews, err := s.interviewRepo.ListByApplication(db, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildInterviewResponses(interviews)
}

// UpcomingForInterviewer lists the actor's interviews over the next horizon
// days.
func (s *InterviewService) UpcomingForInterviewer(db *gorm.DB, actor *models.User, horizonDays int) ([]dto.InterviewResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	if horizonDays < 1 {
		horizonDays = 7
	}
	now := time.Now()
	interviews, err := s.interviewRepo.ListByInterviewer(db, actor.ID, now, now.AddDate(0, 0, horizonDays))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildInterviewResponses(interviews)
}

func (s *InterviewService) findWithApplication(db *gorm.DB, interviewID string) (*models.Interview, *models.Application, error) {
	interview, err := s.interviewRepo.FindByID(db, interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}
	app, err := s.appService.findWithJob(db, interview.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	return interview, app, nil
}

func buildInterviewResponses(interviews []models.Interview) ([]dto.InterviewResponse, error) {
	out := make([]dto.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		resp, err := dto.NewInterviewResponse(&interviews[i])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out = append(out, resp)
	}
	return out, nil
}
