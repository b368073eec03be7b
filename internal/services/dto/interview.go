package dto

import (
	"time"

	"hiretalent_backend/internal/models"
)

// --- Interview Requests ---

type ScheduleInterviewRequest struct {
	InterviewerID          string    `json:"interviewer_id" validate:"required,uuid"`
	AdditionalInterviewers []string  `json:"additional_interviewers,omitempty" validate:"omitempty,dive,uuid"`
	Type                   string    `json:"type" validate:"required,is-interview-type"`
	ScheduledDate          time.Time `json:"scheduled_date" validate:"required"`
	DurationMinutes        int       `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Location               string    `json:"location,omitempty" validate:"omitempty,max=500"`
	MeetingLink            string    `json:"meeting_link,omitempty" validate:"omitempty,url"`
}

type RescheduleInterviewRequest struct {
	NewDate time.Time `json:"new_date" validate:"required"`
	Reason  string    `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

type InterviewFeedbackRequest struct {
	TechnicalScore     *int   `json:"technical_score,omitempty" validate:"omitempty,min=1,max=5"`
	CommunicationScore *int   `json:"communication_score,omitempty" validate:"omitempty,min=1,max=5"`
	ProblemSolving     *int   `json:"problem_solving_score,omitempty" validate:"omitempty,min=1,max=5"`
	CulturalFit        *int   `json:"cultural_fit_score,omitempty" validate:"omitempty,min=1,max=5"`
	Notes              string `json:"notes,omitempty" validate:"omitempty,max=10000"`
	Recommendation     string `json:"recommendation" validate:"required,is-recommendation"`
}

type UpdateInterviewStatusRequest struct {
	Status models.InterviewStatus `json:"status" validate:"required,is-interview-status"`
}

// --- Interview Responses ---

type InterviewResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	CandidateID   string `json:"candidate_id"`
	InterviewerID string `json:"interviewer_id"`

	Type            string    `json:"type"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location,omitempty"`
	MeetingLink     string    `json:"meeting_link,omitempty"`

	Status   models.InterviewStatus    `json:"status"`
	Feedback *models.InterviewFeedback `json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInterviewResponse(i *models.Interview) (InterviewResponse, error) {
	feedback, err := i.DecodedFeedback()
	if err != nil {
		return InterviewResponse{}, err
	}
	return InterviewResponse{
		ID:              i.ID,
		ApplicationID:   i.ApplicationID,
		JobID:           i.JobID,
		CandidateID:     i.CandidateID,
		InterviewerID:   i.InterviewerID,
		Type:            i.Type,
		ScheduledDate:   i.ScheduledDate,
		DurationMinutes: i.DurationMinutes,
		Location:        i.Location,
		MeetingLink:     i.MeetingLink,
		Status:          i.Status,
		Feedback:        feedback,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}, nil
}
