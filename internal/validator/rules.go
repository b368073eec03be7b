package validator

import (
	"hiretalent_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Custom rules reject any status/enum value outside the declared sets at the
// API boundary, before the services see it.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"is-application-status": isApplicationStatus,
		"is-job-status":         isJobStatus,
		"is-job-type":           isJobType,
		"is-offer-status":       isOfferStatus,
		"is-interview-status":   isInterviewStatus,
		"is-interview-type":     isInterviewType,
		"is-currency":           isCurrency,
		"is-recommendation":     isRecommendation,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isApplicationStatus(fl validator.FieldLevel) bool {
	return models.ApplicationStatus(fl.Field().String()).Valid()
}

func isJobStatus(fl validator.FieldLevel) bool {
	return models.JobStatus(fl.Field().String()).Valid()
}

func isJobType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "full-time", "part-time", "contract", "internship", "freelance":
		return true
	}
	return false
}

func isOfferStatus(fl validator.FieldLevel) bool {
	return models.OfferStatus(fl.Field().String()).Valid()
}

func isInterviewStatus(fl validator.FieldLevel) bool {
	return models.InterviewStatus(fl.Field().String()).Valid()
}

func isInterviewType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "phone-screening", "video-call", "in-person", "technical", "behavioral", "final-round", "panel":
		return true
	}
	return false
}

func isCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "USD", "EUR", "GBP", "INR", "CAD", "AUD":
		return true
	}
	return false
}

func isRecommendation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "strong-hire", "hire", "no-hire", "strong-no-hire":
		return true
	}
	return false
}
