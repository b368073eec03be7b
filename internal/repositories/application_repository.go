package repositories

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository struct{}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

// Create inserts a new application. The unique index on (job_id, candidate_id)
// is the last line of defense against duplicate submissions racing past the
// pre-check; the duplicate key error is surfaced for the service to translate.
func (r *ApplicationRepository) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func (r *ApplicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndCandidate(db *gorm.DB, jobID, candidateID string) (*models.Application, error) {
	var app models.Application
	err := db.First(&app, "job_id = ? AND candidate_id = ?", jobID, candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByJob(db *gorm.DB, jobID string, status models.ApplicationStatus) ([]models.Application, error) {
	query := db.Where("job_id = ?", jobID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var apps []models.Application
	err := query.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByCandidate(db *gorm.DB, candidateID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListRecent(db *gorm.DB, jobIDs []string, limit int) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	if limit < 1 {
		limit = 10
	}
	var apps []models.Application
	err := db.Preload("Job").
		Where("job_id IN ?", jobIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

// UpdateStatusIf performs the compare-and-swap status transition: the row is
// updated only if its status still equals the one the caller observed. A
// false return with nil error means another writer got there first.
//
// The history append and stage bit accumulation ride the same statement so a
// successful swap and its audit trail are atomic.
func (r *ApplicationRepository) UpdateStatusIf(db *gorm.DB, id string, from, to models.ApplicationStatus, history datatypes.JSON, mask int64) (bool, error) {
	result := db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":         to,
			"status_history": history,
			"stages_mask":    mask,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateRatings writes only the dimensions present in the map; keys are the
// rating column names.
func (r *ApplicationRepository) UpdateRatings(db *gorm.DB, id string, ratings map[string]interface{}) error {
	if len(ratings) == 0 {
		return nil
	}
	return db.Model(&models.Application{}).Where("id = ?", id).
		Updates(ratings).Error
}

func (r *ApplicationRepository) UpdateNotes(db *gorm.DB, id string, notes datatypes.JSON) error {
	return db.Model(&models.Application{}).Where("id = ?", id).
		Update("recruiter_notes", notes).Error
}

func (r *ApplicationRepository) CountByJob(db *gorm.DB, jobID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepository) CountSince(db *gorm.DB, jobIDs []string, since time.Time) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id IN ? AND created_at >= ?", jobIDs, since).
		Count(&count).Error
	return count, err
}
