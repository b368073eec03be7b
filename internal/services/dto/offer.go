package dto

import (
	"time"

	"hiretalent_backend/internal/models"
)

// --- Offer Requests ---

type CreateOfferRequest struct {
	Position       string     `json:"position" validate:"required,max=200"`
	Department     string     `json:"department,omitempty" validate:"omitempty,max=200"`
	Salary         float64    `json:"salary" validate:"required,min=0"`
	Currency       string     `json:"currency,omitempty" validate:"omitempty,is-currency"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	WorkLocation   string     `json:"work_location,omitempty" validate:"omitempty,oneof=on-site remote hybrid"`
	Benefits       []string   `json:"benefits,omitempty"`

	// OfferValidUntil defaults to now plus the configured validity window.
	OfferValidUntil *time.Time `json:"offer_valid_until,omitempty"`
}

// RespondToOfferRequest is the candidate-facing response, authenticated by
// the capability token rather than a session.
type RespondToOfferRequest struct {
	Token string `json:"token" validate:"required"`
	// Response is set from the route (accept/reject/negotiate), not the body.
	Response string `json:"-" validate:"omitempty,oneof=accept reject negotiate"`

	// Negotiation fields, only meaningful when Response is "negotiate".
	CounterOffer      *float64 `json:"counter_offer,omitempty" validate:"omitempty,min=0"`
	RequestedChanges  []string `json:"requested_changes,omitempty"`
	CandidateComments string   `json:"candidate_comments,omitempty" validate:"omitempty,max=5000"`

	// Reason accompanies a rejection.
	Reason string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// --- Offer Responses ---

type OfferResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	CandidateID   string `json:"candidate_id"`

	Position       string     `json:"position"`
	Department     string     `json:"department,omitempty"`
	Salary         float64    `json:"salary"`
	Currency       string     `json:"currency"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EmploymentType string     `json:"employment_type"`
	WorkLocation   string     `json:"work_location"`

	Status          models.OfferStatus `json:"status"`
	OfferValidUntil time.Time          `json:"offer_valid_until"`

	NegotiationRounds  int                       `json:"negotiation_rounds"`
	NegotiationHistory []models.NegotiationEntry `json:"negotiation_history,omitempty"`

	SentAt      *time.Time `json:"sent_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewOfferResponse(o *models.Offer) (OfferResponse, error) {
	resp := OfferResponse{
		ID:                o.ID,
		ApplicationID:     o.ApplicationID,
		JobID:             o.JobID,
		CandidateID:       o.CandidateID,
		Position:          o.Position,
		Department:        o.Department,
		Salary:            o.Salary,
		Currency:          o.Currency,
		StartDate:         o.StartDate,
		EmploymentType:    o.EmploymentType,
		WorkLocation:      o.WorkLocation,
		Status:            o.Status,
		OfferValidUntil:   o.OfferValidUntil,
		NegotiationRounds: o.NegotiationRounds,
		SentAt:            o.SentAt,
		RespondedAt:       o.RespondedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if len(o.NegotiationHistory) > 0 {
		var entries []models.NegotiationEntry
		if err := decodeJSON(o.NegotiationHistory, &entries); err != nil {
			return OfferResponse{}, err
		}
		resp.NegotiationHistory = entries
	}
	return resp, nil
}
