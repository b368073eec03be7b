package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	JobType     string `gorm:"type:varchar(20);default:'full-time'" json:"job_type"`
	Location    string `json:"location"`
	IsRemote    bool   `gorm:"default:false" json:"is_remote"`

	SalaryMin      float64 `json:"salary_min"`
	SalaryMax      float64 `json:"salary_max"`
	SalaryCurrency string  `gorm:"type:varchar(3);default:'USD'" json:"salary_currency"`
	SalaryPeriod   string  `gorm:"type:varchar(10);default:'yearly'" json:"salary_period"`

	Requirements datatypes.JSON `gorm:"type:jsonb" json:"requirements"`
	Skills       datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Keywords     datatypes.JSON `gorm:"type:jsonb" json:"keywords"`
	Department   string         `json:"department"`

	Status   JobStatus `gorm:"type:varchar(20);default:'draft';index:idx_jobs_status_active" json:"status"`
	IsActive bool      `gorm:"default:true;index:idx_jobs_status_active" json:"is_active"`

	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplications     *int       `json:"max_applications,omitempty"`

	CreatedBy string `gorm:"type:uuid;not null;index" json:"created_by"`

	// Analytics. Views is bumped on public reads; ApplicationCount is the
	// lifetime number of applications received, incremented atomically on
	// application creation and never decremented.
	Views            int64 `gorm:"default:0" json:"views"`
	ApplicationCount int64 `gorm:"default:0" json:"application_count"`

	// Relations
	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// AcceptingApplications reports whether a candidate may apply right now.
func (j *Job) AcceptingApplications(now time.Time) bool {
	if j.Status != JobStatusPublished || !j.IsActive {
		return false
	}
	if j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
		return false
	}
	if j.MaxApplications != nil && j.ApplicationCount >= int64(*j.MaxApplications) {
		return false
	}
	return true
}
