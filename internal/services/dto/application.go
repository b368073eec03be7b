package dto

import (
	"time"

	"hiretalent_backend/internal/models"
)

// --- Application Requests ---

type CreateApplicationRequest struct {
	CandidatePhone    string `json:"candidate_phone,omitempty" validate:"omitempty,max=30"`
	CandidateLocation string `json:"candidate_location,omitempty" validate:"omitempty,max=200"`
	ResumeURL         string `json:"resume_url,omitempty" validate:"omitempty,url"`
	ResumeFilename    string `json:"resume_filename,omitempty" validate:"omitempty,max=255"`
	CoverLetter       string `json:"cover_letter,omitempty" validate:"omitempty,max=10000"`
	Source            string `json:"source,omitempty" validate:"omitempty,oneof=direct referral linkedin job-board other"`
}

type TransitionRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	Reason string                   `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

type RateApplicationRequest struct {
	RatingOverall       *int `json:"rating_overall,omitempty" validate:"omitempty,min=1,max=5"`
	RatingTechnical     *int `json:"rating_technical,omitempty" validate:"omitempty,min=1,max=5"`
	RatingCommunication *int `json:"rating_communication,omitempty" validate:"omitempty,min=1,max=5"`
	RatingCultural      *int `json:"rating_cultural,omitempty" validate:"omitempty,min=1,max=5"`
}

type AddNoteRequest struct {
	Note string `json:"note" validate:"required,max=5000"`
}

// --- Application Responses ---

type ApplicationResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`

	CandidateName     string `json:"candidate_name"`
	CandidateEmail    string `json:"candidate_email"`
	CandidatePhone    string `json:"candidate_phone,omitempty"`
	CandidateLocation string `json:"candidate_location,omitempty"`

	ResumeURL   string `json:"resume_url,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
	Source      string `json:"source"`

	Status        models.ApplicationStatus `json:"status"`
	StatusHistory []models.StatusChange    `json:"status_history"`

	RatingOverall       *int `json:"rating_overall,omitempty"`
	RatingTechnical     *int `json:"rating_technical,omitempty"`
	RatingCommunication *int `json:"rating_communication,omitempty"`
	RatingCultural      *int `json:"rating_cultural,omitempty"`

	Job *JobResponse `json:"job,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewApplicationResponse(a *models.Application) (ApplicationResponse, error) {
	history, err := a.History()
	if err != nil {
		return ApplicationResponse{}, err
	}
	resp := ApplicationResponse{
		ID:                  a.ID,
		JobID:               a.JobID,
		CandidateID:         a.CandidateID,
		CandidateName:       a.CandidateName,
		CandidateEmail:      a.CandidateEmail,
		CandidatePhone:      a.CandidatePhone,
		CandidateLocation:   a.CandidateLocation,
		ResumeURL:           a.ResumeURL,
		CoverLetter:         a.CoverLetter,
		Source:              a.Source,
		Status:              a.Status,
		StatusHistory:       history,
		RatingOverall:       a.RatingOverall,
		RatingTechnical:     a.RatingTechnical,
		RatingCommunication: a.RatingCommunication,
		RatingCultural:      a.RatingCultural,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if a.Job != nil {
		job := NewJobResponse(a.Job)
		resp.Job = &job
	}
	return resp, nil
}
