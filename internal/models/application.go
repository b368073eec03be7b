package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StatusChange is one append-only entry of Application.StatusHistory.
type StatusChange struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy string            `json:"changed_by"`
	ChangedAt time.Time         `json:"changed_at"`
	Reason    string            `json:"reason,omitempty"`
}

// RecruiterNote is an append-only internal note on an application.
type RecruiterNote struct {
	Note    string    `json:"note"`
	AddedBy string    `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}

type Application struct {
	BaseModel
	JobID       string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_candidate;index" json:"job_id"`
	CandidateID string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_candidate" json:"candidate_id"`

	// Snapshot of the candidate at application time; the User record may
	// change later, the application keeps what was submitted.
	CandidateName     string `gorm:"not null" json:"candidate_name"`
	CandidateEmail    string `gorm:"not null" json:"candidate_email"`
	CandidatePhone    string `json:"candidate_phone"`
	CandidateLocation string `json:"candidate_location"`

	ResumeURL        string     `json:"resume_url"`
	ResumeFilename   string     `json:"resume_filename"`
	ResumeUploadedAt *time.Time `json:"resume_uploaded_at,omitempty"`
	CoverLetter      string     `gorm:"type:text" json:"cover_letter"`
	Source           string     `gorm:"type:varchar(20);default:'direct'" json:"source"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'new';index:idx_applications_status_created" json:"status"`
	// StatusHistory is the append-only JSON list of StatusChange entries.
	// The current Status always equals the last entry's status ("new" when
	// the history is empty).
	StatusHistory datatypes.JSON `gorm:"type:jsonb" json:"status_history"`
	// StagesMask accumulates a StageBit for every status this application
	// has ever held. Funnel queries count bit containment instead of
	// scanning histories.
	StagesMask int64 `gorm:"default:1;index" json:"-"`

	RatingOverall       *int `json:"rating_overall,omitempty"`
	RatingTechnical     *int `json:"rating_technical,omitempty"`
	RatingCommunication *int `json:"rating_communication,omitempty"`
	RatingCultural      *int `json:"rating_cultural,omitempty"`

	RecruiterNotes datatypes.JSON `gorm:"type:jsonb" json:"recruiter_notes,omitempty"`

	// Relations
	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// History decodes StatusHistory. An empty column decodes to nil.
func (a *Application) History() ([]StatusChange, error) {
	if len(a.StatusHistory) == 0 {
		return nil, nil
	}
	var entries []StatusChange
	if err := json.Unmarshal(a.StatusHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendHistory returns the history JSON with one more entry. It does not
// mutate the receiver; the caller persists the result through a conditional
// update.
func (a *Application) AppendHistory(entry StatusChange) (datatypes.JSON, error) {
	entries, err := a.History()
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Notes decodes RecruiterNotes.
func (a *Application) Notes() ([]RecruiterNote, error) {
	if len(a.RecruiterNotes) == 0 {
		return nil, nil
	}
	var notes []RecruiterNote
	if err := json.Unmarshal(a.RecruiterNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
