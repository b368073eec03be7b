package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// MaxNegotiationRounds caps how many times a candidate may counter an offer.
const MaxNegotiationRounds = 5

// NegotiationEntry is one append-only round of Offer.NegotiationHistory.
type NegotiationEntry struct {
	Round             int       `json:"round"`
	CounterOffer      *float64  `json:"counter_offer,omitempty"`
	RequestedChanges  []string  `json:"requested_changes,omitempty"`
	CandidateComments string    `json:"candidate_comments,omitempty"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

type Offer struct {
	BaseModel
	ApplicationID string `gorm:"type:uuid;not null;index" json:"application_id"`
	JobID         string `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID   string `gorm:"type:uuid;not null;index" json:"candidate_id"`

	Position       string     `gorm:"not null" json:"position"`
	Department     string     `json:"department"`
	Salary         float64    `gorm:"not null" json:"salary"`
	Currency       string     `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EmploymentType string     `gorm:"type:varchar(20);default:'full-time'" json:"employment_type"`
	WorkLocation   string     `gorm:"type:varchar(10);default:'on-site'" json:"work_location"`

	Benefits datatypes.JSON `gorm:"type:jsonb" json:"benefits,omitempty"`

	Status          OfferStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	OfferValidUntil time.Time   `gorm:"not null" json:"offer_valid_until"`

	// ResponseToken is the single-use capability credential mailed to the
	// candidate when the offer is sent. Cleared once accept/reject consumes
	// it; negotiation rounds keep it live.
	ResponseToken string `gorm:"index" json:"-"`

	NegotiationRounds  int            `gorm:"default:0" json:"negotiation_rounds"`
	NegotiationHistory datatypes.JSON `gorm:"type:jsonb" json:"negotiation_history,omitempty"`

	SentAt      *time.Time `json:"sent_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Job         *Job         `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate   *User        `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// Expired reports whether the validity window has elapsed.
func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.OfferValidUntil)
}

// AppendNegotiation returns the negotiation history JSON with one more round.
func (o *Offer) AppendNegotiation(entry NegotiationEntry) (datatypes.JSON, error) {
	var entries []NegotiationEntry
	if len(o.NegotiationHistory) > 0 {
		if err := json.Unmarshal(o.NegotiationHistory, &entries); err != nil {
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
