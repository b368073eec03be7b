package apperrors

import (
	"net/http"
)

/*
Factories and predeclared variables for the domain errors of the hiring
lifecycle. Services return these directly; handlers map them to HTTP through
HandleError.
*/

// =========================================================================
// Factory functions (wrap repository-level errors)
// =========================================================================

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-key violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation flags an operation not permitted in the current state.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Authentication & users
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"This account has been deactivated",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrAccessDenied is what the authorization guard returns on Deny. It is a
// decision, not an exceptional condition; handlers translate it to 403.
var ErrAccessDenied = New(
	CodeForbidden,
	"auth",
	"Access denied",
	http.StatusForbidden,
)

// =========================================================================
// Jobs
// =========================================================================

var ErrJobNotPublished = New(
	CodeInvalidStatus,
	"job",
	"Job is not accepting applications",
	http.StatusConflict,
)

var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

var ErrApplicationLimitReached = New(
	CodeLimitExceeded,
	"job",
	"This job is no longer accepting applications",
	http.StatusConflict,
)

// =========================================================================
// Applications (lifecycle engine)
// =========================================================================

var ErrDuplicateApplication = New(
	CodeAlreadyExists,
	"application",
	"You have already applied for this job",
	http.StatusConflict,
)

var ErrInvalidTransition = New(
	CodeInvalidStatus,
	"application",
	"Requested status change is not allowed from the current status",
	http.StatusConflict,
)

// ErrConcurrentModification signals that the optimistic-concurrency
// precondition failed: the record changed between read and write.
var ErrConcurrentModification = New(
	CodeConflict,
	"application",
	"The record was modified concurrently, retry the operation",
	http.StatusConflict,
)

// =========================================================================
// Interviews
// =========================================================================

var ErrInterviewInPast = New(
	CodeValidationFailed,
	"interview",
	"Interview must be scheduled in the future",
	http.StatusBadRequest,
)

var ErrApplicationNotInterviewable = New(
	CodeInvalidStatus,
	"interview",
	"Application is not far enough along to schedule an interview",
	http.StatusConflict,
)

// =========================================================================
// Offers
// =========================================================================

var ErrApplicationNotAtOffer = New(
	CodeInvalidStatus,
	"offer",
	"Application has not reached the offer stage",
	http.StatusConflict,
)

var ErrOfferNotSent = New(
	CodeInvalidStatus,
	"offer",
	"Offer has not been sent to the candidate",
	http.StatusConflict,
)

var ErrOfferExpired = New(
	CodeInvalidStatus,
	"offer",
	"Offer validity period has elapsed",
	http.StatusGone,
)

var ErrNegotiationLimitExceeded = New(
	CodeLimitExceeded,
	"offer",
	"Maximum number of negotiation rounds reached",
	http.StatusUnprocessableEntity,
)

var ErrInvalidOfferToken = New(
	CodeInvalidToken,
	"offer",
	"Invalid or already used offer response token",
	http.StatusUnauthorized,
)
