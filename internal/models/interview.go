package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Reschedule is one append-only entry of Interview.RescheduleHistory.
type Reschedule struct {
	PreviousDate  time.Time `json:"previous_date"`
	NewDate       time.Time `json:"new_date"`
	Reason        string    `json:"reason,omitempty"`
	RescheduledBy string    `json:"rescheduled_by"`
	RescheduledAt time.Time `json:"rescheduled_at"`
}

// InterviewFeedback holds the per-dimension 1-5 scores and the overall
// recommendation submitted after an interview.
type InterviewFeedback struct {
	TechnicalScore     *int   `json:"technical_score,omitempty"`
	CommunicationScore *int   `json:"communication_score,omitempty"`
	ProblemSolving     *int   `json:"problem_solving_score,omitempty"`
	CulturalFit        *int   `json:"cultural_fit_score,omitempty"`
	Notes              string `json:"notes,omitempty"`
	Recommendation     string `json:"recommendation,omitempty"`
}

type Interview struct {
	BaseModel
	ApplicationID string `gorm:"type:uuid;not null;index" json:"application_id"`
	JobID         string `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID   string `gorm:"type:uuid;not null" json:"candidate_id"`

	// InterviewerID is the primary interviewer; additional panel members go
	// to AdditionalInterviewers.
	InterviewerID          string         `gorm:"type:uuid;not null;index:idx_interviews_interviewer_date" json:"interviewer_id"`
	AdditionalInterviewers datatypes.JSON `gorm:"type:jsonb" json:"additional_interviewers,omitempty"`

	Type            string    `gorm:"type:varchar(20);not null" json:"type"`
	ScheduledDate   time.Time `gorm:"not null;index:idx_interviews_interviewer_date" json:"scheduled_date"`
	DurationMinutes int       `gorm:"default:60" json:"duration_minutes"`
	Location        string    `json:"location"`
	MeetingLink     string    `json:"meeting_link"`

	Status InterviewStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`

	Feedback          datatypes.JSON `gorm:"type:jsonb" json:"feedback,omitempty"`
	RescheduleHistory datatypes.JSON `gorm:"type:jsonb" json:"reschedule_history,omitempty"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Job         *Job         `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate   *User        `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Interviewer *User        `gorm:"foreignKey:InterviewerID" json:"interviewer,omitempty"`
}

// DecodedFeedback unmarshals the feedback column, nil when none submitted.
func (i *Interview) DecodedFeedback() (*InterviewFeedback, error) {
	if len(i.Feedback) == 0 {
		return nil, nil
	}
	var fb InterviewFeedback
	if err := json.Unmarshal(i.Feedback, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// AppendReschedule returns the reschedule history JSON with one more entry.
func (i *Interview) AppendReschedule(entry Reschedule) (datatypes.JSON, error) {
	var entries []Reschedule
	if len(i.RescheduleHistory) > 0 {
		if err := json.Unmarshal(i.RescheduleHistory, &entries); err != nil {
			return nil, err
		}
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
