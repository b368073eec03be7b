package auth

import (
	"hiretalent_backend/internal/models"
	"hiretalent_backend/pkg/apperrors"
)

// Action names an operation on an entity for authorization purposes.
type Action string

const (
	ActionReadJob               Action = "job:read"
	ActionManageJob             Action = "job:manage"
	ActionReadApplication       Action = "application:read"
	ActionCreateApplication     Action = "application:create"
	ActionTransitionApplication Action = "application:transition"
	ActionWithdrawApplication   Action = "application:withdraw"
	ActionManageInterview       Action = "interview:manage"
	ActionManageOffer           Action = "offer:manage"
	ActionReadMessage           Action = "message:read"
)

// Target describes the entity a decision is made about. Job-owned entities
// (applications, interviews, offers) carry the owning job's creator; entities
// tied to a candidate carry the candidate's user ID.
type Target struct {
	JobOwnerID  string
	JobStatus   models.JobStatus
	CandidateID string
}

// Authorize decides whether actor may perform action on target. It is a pure
// function with no side effects; a nil return means Allow, a Deny comes back
// as ErrAccessDenied, which handlers translate to 403. Offer capability
// tokens are verified separately by the offer service (VerifyOfferToken), not
// here.
//
// Rules are evaluated in order, first match wins:
//  1. admin: allow everything
//  2. published jobs are world-readable, including anonymous actors
//  3. the owner of the job owns every downstream entity
//  4. a candidate may read, create and withdraw their own application
//  5. otherwise: deny
func Authorize(actor *models.User, action Action, target Target) error {
	if action == "" {
		return apperrors.NewBadRequestError("authorization action is required")
	}

	// Rule 2 comes before the actor check: reading a published job needs no
	// identity at all.
	if action == ActionReadJob && target.JobStatus == models.JobStatusPublished {
		return nil
	}

	if actor == nil {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}

	// Rule 1
	if actor.Role == models.UserRoleAdmin {
		return nil
	}

	// Rule 3
	if target.JobOwnerID != "" && actor.ID == target.JobOwnerID {
		return nil
	}

	// Rule 4
	if actor.ID != "" && actor.ID == target.CandidateID {
		switch action {
		case ActionReadApplication, ActionCreateApplication, ActionWithdrawApplication, ActionReadMessage:
			return nil
		}
	}

	return apperrors.ErrAccessDenied
}
