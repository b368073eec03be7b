package dto

import (
	"time"

	"hiretalent_backend/internal/models"
)

// --- Job Requests ---

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Description    string   `json:"description" validate:"required,max=10000"`
	JobType        string   `json:"job_type" validate:"omitempty,is-job-type"`
	Location       string   `json:"location" validate:"omitempty,max=200"`
	IsRemote       bool     `json:"is_remote"`
	SalaryMin      float64  `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      float64  `json:"salary_max" validate:"omitempty,min=0,gtefield=SalaryMin"`
	SalaryCurrency string   `json:"salary_currency" validate:"omitempty,is-currency"`
	SalaryPeriod   string   `json:"salary_period" validate:"omitempty,oneof=hourly monthly yearly"`
	Requirements   []string `json:"requirements,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Department     string   `json:"department,omitempty"`

	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplications     *int       `json:"max_applications,omitempty" validate:"omitempty,min=1"`
}

type UpdateJobRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	JobType        *string  `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	Location       *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	IsRemote       *bool    `json:"is_remote,omitempty"`
	SalaryMin      *float64 `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency *string  `json:"salary_currency,omitempty" validate:"omitempty,is-currency"`
	SalaryPeriod   *string  `json:"salary_period,omitempty" validate:"omitempty,oneof=hourly monthly yearly"`
	Requirements   []string `json:"requirements,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Department     *string  `json:"department,omitempty"`

	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplications     *int       `json:"max_applications,omitempty" validate:"omitempty,min=1"`
}

type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required,is-job-status"`
}

type JobSearchRequest struct {
	Query     string `form:"q" validate:"omitempty,max=200"`
	Location  string `form:"location" validate:"omitempty,max=200"`
	JobType   string `form:"job_type" validate:"omitempty,is-job-type"`
	IsRemote  *bool  `form:"is_remote"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at salary_max views application_count"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// --- Job Responses ---

type JobResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	JobType        string  `json:"job_type"`
	Location       string  `json:"location"`
	IsRemote       bool    `json:"is_remote"`
	SalaryMin      float64 `json:"salary_min"`
	SalaryMax      float64 `json:"salary_max"`
	SalaryCurrency string  `json:"salary_currency"`
	SalaryPeriod   string  `json:"salary_period"`
	Department     string  `json:"department,omitempty"`

	Status   models.JobStatus `json:"status"`
	IsActive bool             `json:"is_active"`

	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplications     *int       `json:"max_applications,omitempty"`

	CreatedBy        string `json:"created_by"`
	Views            int64  `json:"views"`
	ApplicationCount int64  `json:"application_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Description:         j.Description,
		JobType:             j.JobType,
		Location:            j.Location,
		IsRemote:            j.IsRemote,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryCurrency:      j.SalaryCurrency,
		SalaryPeriod:        j.SalaryPeriod,
		Department:          j.Department,
		Status:              j.Status,
		IsActive:            j.IsActive,
		ApplicationDeadline: j.ApplicationDeadline,
		MaxApplications:     j.MaxApplications,
		CreatedBy:           j.CreatedBy,
		Views:               j.Views,
		ApplicationCount:    j.ApplicationCount,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
