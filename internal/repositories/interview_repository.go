package repositories

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository struct{}

func NewInterviewRepository() *InterviewRepository {
	return &InterviewRepository{}
}

func (r *InterviewRepository) Create(db *gorm.DB, interview *models.Interview) error {
	return db.Create(interview).Error
}

func (r *InterviewRepository) FindByID(db *gorm.DB, id string) (*models.Interview, error) {
	var interview models.Interview
	err := db.Preload("Application").First(&interview, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepository) ListByApplication(db *gorm.DB, applicationID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := db.Where("application_id = ?", applicationID).
		Order("scheduled_date ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) ListByInterviewer(db *gorm.DB, interviewerID string, from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := db.Where("interviewer_id = ? AND scheduled_date BETWEEN ? AND ?", interviewerID, from, to).
		Order("scheduled_date ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) UpdateStatus(db *gorm.DB, id string, status models.InterviewStatus) error {
	return db.Model(&models.Interview{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *InterviewRepository) UpdateSchedule(db *gorm.DB, id string, newDate time.Time, history datatypes.JSON) error {
	return db.Model(&models.Interview{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_date":     newDate,
			"reschedule_history": history,
			"status":             models.InterviewStatusRescheduled,
		}).Error
}

func (r *InterviewRepository) SaveFeedback(db *gorm.DB, id string, feedback datatypes.JSON) error {
	return db.Model(&models.Interview{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"feedback": feedback,
			"status":   models.InterviewStatusCompleted,
		}).Error
}

// CountScheduled counts the interviewer's own upcoming interviews still at
// scheduled. Unlike the job-scoped dashboard counts, this one follows the
// primary interviewer: confirmed or rescheduled interviews, and interviews
// someone else runs on the actor's jobs, do not count.
func (r *InterviewRepository) CountScheduled(db *gorm.DB, interviewerID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Interview{}).
		Where("interviewer_id = ? AND status = ? AND scheduled_date >= ?",
			interviewerID, models.InterviewStatusScheduled, now).
		Count(&count).Error
	return count, err
}
