package models

type UserRole string
type JobStatus string
type ApplicationStatus string
type InterviewStatus string
type OfferStatus string
type MessageStatus string

const (
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleCandidate UserRole = "candidate"
	UserRoleAdmin     UserRole = "admin"

	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusPaused    JobStatus = "paused"
	JobStatusClosed    JobStatus = "closed"
	JobStatusArchived  JobStatus = "archived"

	ApplicationStatusNew          ApplicationStatus = "new"
	ApplicationStatusReviewing    ApplicationStatus = "reviewing"
	ApplicationStatusShortlisted  ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusInterviewed  ApplicationStatus = "interviewed"
	ApplicationStatusOffer        ApplicationStatus = "offer"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"

	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusConfirmed   InterviewStatus = "confirmed"
	InterviewStatusInProgress  InterviewStatus = "in-progress"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusNoShow      InterviewStatus = "no-show"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"

	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusSent      OfferStatus = "sent"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
	OfferStatusExpired   OfferStatus = "expired"

	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleRecruiter, UserRoleCandidate, UserRoleAdmin:
		return true
	}
	return false
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusPaused, JobStatusClosed, JobStatusArchived:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusConfirmed, InterviewStatusInProgress,
		InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusNoShow,
		InterviewStatusRescheduled:
		return true
	}
	return false
}

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusDraft, OfferStatusSent, OfferStatusAccepted, OfferStatusRejected,
		OfferStatusWithdrawn, OfferStatusExpired:
		return true
	}
	return false
}

// applicationTransitions is the directed graph of allowed status changes.
// hired, rejected and withdrawn are terminal: they map to an empty set.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusNew:          {ApplicationStatusReviewing, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusReviewing:    {ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusShortlisted:  {ApplicationStatusInterviewing, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewing: {ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewed:  {ApplicationStatusOffer, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusOffer:        {ApplicationStatusHired, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusHired:        {},
	ApplicationStatusRejected:     {},
	ApplicationStatusWithdrawn:    {},
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
// A no-op transition to the current status is not an edge.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func IsTerminal(s ApplicationStatus) bool {
	return len(applicationTransitions[s]) == 0 && s.Valid()
}

// applicationStageBits assigns each status a bit in Application.StagesMask.
// The mask accumulates every status the application has ever held, which is
// what cumulative funnel counts are computed from: an application currently
// "hired" still has the "interviewed" bit set.
var applicationStageBits = map[ApplicationStatus]int64{
	ApplicationStatusNew:          1 << 0,
	ApplicationStatusReviewing:    1 << 1,
	ApplicationStatusShortlisted:  1 << 2,
	ApplicationStatusInterviewing: 1 << 3,
	ApplicationStatusInterviewed:  1 << 4,
	ApplicationStatusOffer:        1 << 5,
	ApplicationStatusHired:        1 << 6,
	ApplicationStatusRejected:     1 << 7,
	ApplicationStatusWithdrawn:    1 << 8,
}

// StageBit returns the StagesMask bit for a status.
func StageBit(s ApplicationStatus) int64 {
	return applicationStageBits[s]
}
