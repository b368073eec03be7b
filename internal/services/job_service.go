package services

import (
	"errors"
	"time"

	"hiretalent_backend/internal/auth"
	"hiretalent_backend/internal/logger"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/repositories"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// jobStatusTransitions is the job-side state machine: draft jobs get
// published, published jobs get paused or closed, closed jobs get archived.
var jobStatusTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobStatusDraft:     {models.JobStatusPublished},
	models.JobStatusPublished: {models.JobStatusPaused, models.JobStatusClosed},
	models.JobStatusPaused:    {models.JobStatusPublished, models.JobStatusClosed},
	models.JobStatusClosed:    {models.JobStatusArchived},
	models.JobStatusArchived:  {},
}

func canTransitionJob(from, to models.JobStatus) bool {
	for _, next := range jobStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type JobService struct {
	jobRepo *repositories.JobRepository
}

func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// Job Operations

func (s *JobService) Create(db *gorm.DB, actor *models.User, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	if actor.Role != models.UserRoleRecruiter && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job := &models.Job{
		Title:               req.Title,
		Description:         req.Description,
		JobType:             defaultString(req.JobType, "full-time"),
		Location:            req.Location,
		IsRemote:            req.IsRemote,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      defaultString(req.SalaryCurrency, "USD"),
		SalaryPeriod:        defaultString(req.SalaryPeriod, "yearly"),
		Requirements:        dto.EncodeStrings(req.Requirements),
		Skills:              dto.EncodeStrings(req.Skills),
		Keywords:            dto.EncodeStrings(req.Keywords),
		Department:          req.Department,
		Status:              models.JobStatusDraft,
		IsActive:            true,
		ApplicationDeadline: req.ApplicationDeadline,
		MaxApplications:     req.MaxApplications,
		CreatedBy:           actor.ID,
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("job created", "job_id", job.ID, "created_by", actor.ID)
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Get returns a job. Published jobs are world-readable and reads by anyone
// but the owner bump the view counter; non-published jobs are owner/admin
// only.
func (s *JobService) Get(db *gorm.DB, actor *models.User, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := auth.Authorize(actor, auth.ActionReadJob, auth.Target{
		JobOwnerID: job.CreatedBy,
		JobStatus:  job.Status,
	}); err != nil {
		return nil, err
	}

	if actor == nil || actor.ID != job.CreatedBy {
		if err := s.jobRepo.IncrementViews(db, jobID); err != nil {
			logger.WithError(err).Warn("failed to bump job views", "job_id", jobID)
		} else {
			job.Views++
		}
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobService) Update(db *gorm.DB, actor *models.User, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwned(db, actor, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.SalaryPeriod != nil {
		job.SalaryPeriod = *req.SalaryPeriod
	}
	if req.Requirements != nil {
		job.Requirements = dto.EncodeStrings(req.Requirements)
	}
	if req.Skills != nil {
		job.Skills = dto.EncodeStrings(req.Skills)
	}
	if req.Keywords != nil {
		job.Keywords = dto.EncodeStrings(req.Keywords)
	}
	if req.Department != nil {
		job.Department = *req.Department
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.MaxApplications != nil {
		job.MaxApplications = req.MaxApplications
	}

	if job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin {
		return nil, apperrors.NewBadRequestError("salary_max cannot be less than salary_min")
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobService) UpdateStatus(db *gorm.DB, actor *models.User, jobID string, newStatus models.JobStatus) (*dto.JobResponse, error) {
	job, err := s.findOwned(db, actor, jobID)
	if err != nil {
		return nil, err
	}

	if !newStatus.Valid() {
		return nil, apperrors.NewBadRequestError("unknown job status")
	}
	if !canTransitionJob(job.Status, newStatus) {
		return nil, apperrors.ErrInvalidJobStatus
	}

	if err := s.jobRepo.UpdateStatus(db, jobID, newStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.Status = newStatus

	logger.Info("job status changed", "job_id", jobID, "status", newStatus, "changed_by", actor.ID)
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Delete removes a job permanently. Only drafts can be deleted; anything that
// has been visible to candidates gets archived instead.
func (s *JobService) Delete(db *gorm.DB, actor *models.User, jobID string) error {
	job, err := s.findOwned(db, actor, jobID)
	if err != nil {
		return err
	}

	if job.Status != models.JobStatusDraft {
		return apperrors.ErrInvalidOperation("job", "only draft jobs can be deleted, archive instead")
	}

	if err := s.jobRepo.Delete(db, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobService) ListMine(db *gorm.DB, actor *models.User) ([]dto.JobResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	jobs, err := s.jobRepo.ListByOwner(db, actor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobResponse(&jobs[i]))
	}
	return out, nil
}

// Search is the public listing: only published jobs are ever returned.
func (s *JobService) Search(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobListResponse, error) {
	criteria := repositories.JobSearchCriteria{
		Query:     req.Query,
		Location:  req.Location,
		JobType:   req.JobType,
		IsRemote:  req.IsRemote,
		Status:    models.JobStatusPublished,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	jobs, total, err := s.jobRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobResponse(&jobs[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.JobListResponse{
		Jobs:     out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// PauseExpired is called by the background worker.
func (s *JobService) PauseExpired(db *gorm.DB, now time.Time) (int64, error) {
	return s.jobRepo.PauseExpired(db, now)
}

func (s *JobService) findOwned(db *gorm.DB, actor *models.User, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := auth.Authorize(actor, auth.ActionManageJob, auth.Target{
		JobOwnerID: job.CreatedBy,
		JobStatus:  job.Status,
	}); err != nil {
		return nil, err
	}

	return job, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
