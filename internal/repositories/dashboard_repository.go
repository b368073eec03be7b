package repositories

import (
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository holds the aggregate count queries behind the recruiter
// dashboard. All counts are scoped to a set of job IDs so a recruiter only
// ever sees their own pipeline; admins pass the full set.
type DashboardRepository struct{}

func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{}
}

// OwnedJobIDs returns the IDs of every job the user created, archived ones
// included. Lifetime stats keep counting archived jobs' applications.
func (r *DashboardRepository) OwnedJobIDs(db *gorm.DB, ownerID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Job{}).
		Where("created_by = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

// AllJobIDs is the admin scope.
func (r *DashboardRepository) AllJobIDs(db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.Model(&models.Job{}).Pluck("id", &ids).Error
	return ids, err
}

// CountOpenPositions counts published jobs that are still active; a published
// but deactivated job is not an open position.
func (r *DashboardRepository) CountOpenPositions(db *gorm.DB, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Job{}).
		Where("id IN ? AND status = ? AND is_active = ?", jobIDs, models.JobStatusPublished, true).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountApplicationsSince(db *gorm.DB, jobIDs []string, since time.Time) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id IN ? AND created_at >= ?", jobIDs, since).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountHiredSince(db *gorm.DB, jobIDs []string, since time.Time) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id IN ? AND status = ? AND updated_at >= ?", jobIDs, models.ApplicationStatusHired, since).
		Count(&count).Error
	return count, err
}

// FunnelCounts counts applications that have EVER reached each pipeline
// stage, via the accumulated stages mask. An application currently at "hired"
// still counts toward "interviewed": the funnel is cumulative, so each stage's
// count is >= the next stage's. The optional since/until bounds select by
// submission time, not by when a stage was reached.
func (r *DashboardRepository) FunnelCounts(db *gorm.DB, jobIDs []string, stages []models.ApplicationStatus, since, until *time.Time) (map[models.ApplicationStatus]int64, error) {
	counts := make(map[models.ApplicationStatus]int64, len(stages))
	if len(jobIDs) == 0 {
		for _, s := range stages {
			counts[s] = 0
		}
		return counts, nil
	}
	for _, stage := range stages {
		query := db.Model(&models.Application{}).
			Where("job_id IN ? AND stages_mask & ? <> 0", jobIDs, models.StageBit(stage))
		if since != nil {
			query = query.Where("created_at >= ?", *since)
		}
		if until != nil {
			query = query.Where("created_at <= ?", *until)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		counts[stage] = count
	}
	return counts, nil
}
