package repositories

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobSearchCriteria mirrors the public job search filters.
type JobSearchCriteria struct {
	Query     string
	Location  string
	JobType   string
	IsRemote  *bool
	Status    models.JobStatus
	CreatedBy string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type JobRepository struct{}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(db *gorm.DB, job *models.Job) error {
	return db.Save(job).Error
}

func (r *JobRepository) UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *JobRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Job{}, "id = ?", id).Error
}

func (r *JobRepository) ListByOwner(db *gorm.DB, ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Search(db *gorm.DB, criteria JobSearchCriteria) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Query != "" {
		like := "%" + criteria.Query + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if criteria.Location != "" {
		query = query.Where("location = ?", criteria.Location)
	}
	if criteria.JobType != "" {
		query = query.Where("job_type = ?", criteria.JobType)
	}
	if criteria.IsRemote != nil {
		query = query.Where("is_remote = ?", *criteria.IsRemote)
	}
	if criteria.CreatedBy != "" {
		query = query.Where("created_by = ?", criteria.CreatedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := criteria.SortBy
	switch sortBy {
	case "created_at", "updated_at", "salary_max", "views", "application_count":
	default:
		sortBy = "created_at"
	}
	order := "DESC"
	if criteria.SortOrder == "asc" {
		order = "ASC"
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var jobs []models.Job
	err := query.Order(sortBy + " " + order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

// IncrementViews bumps the view counter in SQL, safe under concurrent reads.
func (r *JobRepository) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// IncrementApplicationCount bumps the denormalized lifetime application
// counter. The increment is a SQL expression, not read-modify-write, so
// concurrent creations cannot lose updates. Callers run it in the same
// transaction as the application insert.
func (r *JobRepository) IncrementApplicationCount(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("application_count", gorm.Expr("application_count + ?", 1)).Error
}

// PauseExpired moves published jobs past their application deadline to
// paused. Used by the background worker.
func (r *JobRepository) PauseExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Job{}).
		Where("status = ? AND application_deadline IS NOT NULL AND application_deadline < ?",
			models.JobStatusPublished, now).
		Update("status", models.JobStatusPaused)
	return result.RowsAffected, result.Error
}
