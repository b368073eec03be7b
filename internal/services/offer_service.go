package services

import (
	"errors"
	"fmt"
	"time"

	"hiretalent_backend/internal/auth"
	"hiretalent_backend/internal/config"
	"hiretalent_backend/internal/email"
	"hiretalent_backend/internal/logger"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/repositories"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type OfferService struct {
	offerRepo     *repositories.OfferRepository
	appService    *ApplicationService
	emailProvider email.Provider
	cfg           *config.Config
}

func NewOfferService(
	offerRepo *repositories.OfferRepository,
	appService *ApplicationService,
	emailProvider email.Provider,
	cfg *config.Config,
) *OfferService {
	return &OfferService{
		offerRepo:     offerRepo,
		appService:    appService,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Offer Operations

// Create drafts an offer for an application that has reached the offer stage.
func (s *OfferService) Create(db *gorm.DB, actor *models.User, applicationID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	app, err := s.appService.findWithJob(db, applicationID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageOffer, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if app.Status != models.ApplicationStatusOffer {
		return nil, apperrors.ErrApplicationNotAtOffer
	}

	validUntil := time.Now().AddDate(0, 0, s.cfg.Offer.DefaultValidityDays)
	if req.OfferValidUntil != nil {
		if !req.OfferValidUntil.After(time.Now()) {
			return nil, apperrors.NewBadRequestError("offer_valid_until must be in the future")
		}
		validUntil = *req.OfferValidUntil
	}

	offer := &models.Offer{
		ApplicationID:   applicationID,
		JobID:           app.JobID,
		CandidateID:     app.CandidateID,
		Position:        req.Position,
		Department:      req.Department,
		Salary:          req.Salary,
		Currency:        defaultString(req.Currency, "USD"),
		StartDate:       req.StartDate,
		EmploymentType:  defaultString(req.EmploymentType, "full-time"),
		WorkLocation:    defaultString(req.WorkLocation, "on-site"),
		Benefits:        dto.EncodeStrings(req.Benefits),
		Status:          models.OfferStatusDraft,
		OfferValidUntil: validUntil,
	}

	if err := s.offerRepo.Create(db, offer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("offer drafted", "offer_id", offer.ID, "application_id", applicationID)
	return buildOfferResponse(offer)
}

// Update edits a draft. Sent offers are immutable; negotiation feedback goes
// through Respond.
func (s *OfferService) Update(db *gorm.DB, actor *models.User, offerID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageOffer, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if offer.Status != models.OfferStatusDraft {
		return nil, apperrors.ErrInvalidOperation("offer", "only draft offers can be edited")
	}

	offer.Position = req.Position
	offer.Department = req.Department
	offer.Salary = req.Salary
	offer.Currency = defaultString(req.Currency, offer.Currency)
	offer.StartDate = req.StartDate
	offer.EmploymentType = defaultString(req.EmploymentType, offer.EmploymentType)
	offer.WorkLocation = defaultString(req.WorkLocation, offer.WorkLocation)
	if req.Benefits != nil {
		offer.Benefits = dto.EncodeStrings(req.Benefits)
	}
	if req.OfferValidUntil != nil {
		if !req.OfferValidUntil.After(time.Now()) {
			return nil, apperrors.NewBadRequestError("offer_valid_until must be in the future")
		}
		offer.OfferValidUntil = *req.OfferValidUntil
	}

	if err := s.offerRepo.Update(db, offer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildOfferResponse(offer)
}

// Send moves a draft to sent, mints the single-use response token and emails
// the candidate a response link. The draft-to-sent move is conditional so two
// racing sends produce exactly one token.
func (s *OfferService) Send(db *gorm.DB, actor *models.User, offerID string) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageOffer, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if offer.Status != models.OfferStatusDraft {
		return nil, apperrors.ErrInvalidOperation("offer", "only draft offers can be sent")
	}

	token, err := auth.NewOfferToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	now := time.Now()

	swapped, err := s.offerRepo.UpdateStatusIf(db, offerID, models.OfferStatusDraft, models.OfferStatusSent, map[string]interface{}{
		"response_token": token,
		"sent_at":        now,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !swapped {
		return nil, apperrors.ErrConcurrentModification
	}

	offer.Status = models.OfferStatusSent
	offer.ResponseToken = token
	offer.SentAt = &now

	logger.Info("offer sent", "offer_id", offerID, "application_id", offer.ApplicationID)

	responseURL := fmt.Sprintf("%s/offers/%s?token=%s", s.cfg.Offer.ResponseBaseURL, offerID, token)
	go func() {
		err := s.emailProvider.SendTemplate(app.CandidateEmail, "You have an offer",
			email.TemplateOfferSent, email.TemplateData{
				"CandidateName": app.CandidateName,
				"Position":      offer.Position,
				"Salary":        offer.Salary,
				"Currency":      offer.Currency,
				"ValidUntil":    offer.OfferValidUntil.Format(time.RFC1123),
				"ResponseURL":   responseURL,
			})
		if err != nil {
			logger.WithError(err).Warn("failed to send offer email", "offer_id", offerID)
		}
	}()

	return buildOfferResponse(offer)
}

// Respond handles the candidate's accept, reject or negotiate. The caller is
// unauthenticated: the capability token mailed with the offer is the
// credential, compared in constant time against the stored one.
func (s *OfferService) Respond(db *gorm.DB, offerID string, req *dto.RespondToOfferRequest) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if offer.Status != models.OfferStatusSent {
		return nil, apperrors.ErrOfferNotSent
	}

	if !auth.VerifyOfferToken(offer.ResponseToken, req.Token) {
		return nil, apperrors.ErrInvalidOfferToken
	}

	now := time.Now()
	if offer.Expired(now) {
		// Lazily expire: the sweep worker may not have run yet.
		_, expErr := s.offerRepo.UpdateStatusIf(db, offerID, models.OfferStatusSent, models.OfferStatusExpired, map[string]interface{}{
			"response_token": "",
		})
		if expErr != nil {
			return nil, apperrors.InternalError(expErr)
		}
		return nil, apperrors.ErrOfferExpired
	}

	switch req.Response {
	case "accept":
		return s.accept(db, offer, app, now)
	case "reject":
		return s.reject(db, offer, app, now, req.Reason)
	case "negotiate":
		return s.negotiate(db, offer, now, req)
	default:
		return nil, apperrors.NewBadRequestError("response must be accept, reject or negotiate")
	}
}

func (s *OfferService) accept(db *gorm.DB, offer *models.Offer, app *models.Application, now time.Time) (*dto.OfferResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		swapped, err := s.offerRepo.UpdateStatusIf(tx, offer.ID, models.OfferStatusSent, models.OfferStatusAccepted, map[string]interface{}{
			"response_token": "",
			"responded_at":   now,
		})
		if err != nil {
			return err
		}
		if !swapped {
			return apperrors.ErrConcurrentModification
		}

		// The cascade to hired goes through the lifecycle engine so the
		// transition graph and the conditional write both apply.
		_, err = s.appService.transition(tx, app, models.ApplicationStatusHired, app.CandidateID, "offer accepted")
		return err
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	offer.Status = models.OfferStatusAccepted
	offer.ResponseToken = ""
	offer.RespondedAt = &now

	logger.Info("offer accepted", "offer_id", offer.ID, "application_id", app.ID)
	s.notifyRecruiter(app, offer, "accepted")
	return buildOfferResponse(offer)
}

func (s *OfferService) reject(db *gorm.DB, offer *models.Offer, app *models.Application, now time.Time, reason string) (*dto.OfferResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		swapped, err := s.offerRepo.UpdateStatusIf(tx, offer.ID, models.OfferStatusSent, models.OfferStatusRejected, map[string]interface{}{
			"response_token": "",
			"responded_at":   now,
		})
		if err != nil {
			return err
		}
		if !swapped {
			return apperrors.ErrConcurrentModification
		}

		_, err = s.appService.transition(tx, app, models.ApplicationStatusRejected, app.CandidateID,
			defaultString(reason, "offer rejected by candidate"))
		return err
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	offer.Status = models.OfferStatusRejected
	offer.ResponseToken = ""
	offer.RespondedAt = &now

	logger.Info("offer rejected", "offer_id", offer.ID, "application_id", app.ID)
	s.notifyRecruiter(app, offer, "rejected")
	return buildOfferResponse(offer)
}

func (s *OfferService) negotiate(db *gorm.DB, offer *models.Offer, now time.Time, req *dto.RespondToOfferRequest) (*dto.OfferResponse, error) {
	if offer.NegotiationRounds >= models.MaxNegotiationRounds {
		return nil, apperrors.ErrNegotiationLimitExceeded
	}

	history, err := offer.AppendNegotiation(models.NegotiationEntry{
		Round:             offer.NegotiationRounds + 1,
		CounterOffer:      req.CounterOffer,
		RequestedChanges:  req.RequestedChanges,
		CandidateComments: req.CandidateComments,
		SubmittedAt:       now,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Status stays sent, the token stays live; only accept/reject consumes
	// the capability.
	swapped, err := s.offerRepo.UpdateStatusIf(db, offer.ID, models.OfferStatusSent, models.OfferStatusSent, map[string]interface{}{
		"negotiation_rounds":  offer.NegotiationRounds + 1,
		"negotiation_history": history,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !swapped {
		return nil, apperrors.ErrConcurrentModification
	}

	offer.NegotiationRounds++
	offer.NegotiationHistory = history

	logger.Info("offer negotiation round", "offer_id", offer.ID, "round", offer.NegotiationRounds)
	return buildOfferResponse(offer)
}

// Withdraw retracts a sent or draft offer.
func (s *OfferService) Withdraw(db *gorm.DB, actor *models.User, offerID string) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageOffer, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if offer.Status != models.OfferStatusDraft && offer.Status != models.OfferStatusSent {
		return nil, apperrors.ErrInvalidOperation("offer", "only draft or sent offers can be withdrawn")
	}

	swapped, err := s.offerRepo.UpdateStatusIf(db, offerID, offer.Status, models.OfferStatusWithdrawn, map[string]interface{}{
		"response_token": "",
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !swapped {
		return nil, apperrors.ErrConcurrentModification
	}

	offer.Status = models.OfferStatusWithdrawn
	offer.ResponseToken = ""
	return buildOfferResponse(offer)
}

// ExtendValidity pushes the deadline of a sent offer out.
func (s *OfferService) ExtendValidity(db *gorm.DB, actor *models.User, offerID string, until time.Time) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionManageOffer, auth.Target{
		JobOwnerID: app.Job.CreatedBy,
	}); err != nil {
		return nil, err
	}

	if offer.Status != models.OfferStatusSent {
		return nil, apperrors.ErrOfferNotSent
	}
	if !until.After(offer.OfferValidUntil) {
		return nil, apperrors.NewBadRequestError("new validity must extend the current one")
	}

	swapped, err := s.offerRepo.UpdateStatusIf(db, offerID, models.OfferStatusSent, models.OfferStatusSent, map[string]interface{}{
		"offer_valid_until": until,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !swapped {
		return nil, apperrors.ErrConcurrentModification
	}

	offer.OfferValidUntil = until
	return buildOfferResponse(offer)
}

func (s *OfferService) Get(db *gorm.DB, actor *models.User, offerID string) (*dto.OfferResponse, error) {
	offer, app, err := s.findWithApplication(db, offerID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(actor, auth.ActionReadApplication, auth.Target{
		JobOwnerID:  app.Job.CreatedBy,
		CandidateID: app.CandidateID,
	}); err != nil {
		return nil, err
	}

	return buildOfferResponse(offer)
}

// ExpireOverdue is the worker entry point: sweeps sent offers past validity.
func (s *OfferService) ExpireOverdue(db *gorm.DB, now time.Time) (int, error) {
	expired, err := s.offerRepo.ExpireOverdue(db, now)
	if err != nil {
		return 0, err
	}
	for i := range expired {
		logger.Info("offer expired", "offer_id", expired[i].ID, "application_id", expired[i].ApplicationID)
	}
	return len(expired), nil
}

func (s *OfferService) notifyRecruiter(app *models.Application, offer *models.Offer, response string) {
	if app.Job == nil || app.Job.Creator == nil {
		return
	}
	recruiterEmail := app.Job.Creator.Email
	go func() {
		err := s.emailProvider.SendTemplate(recruiterEmail, "Offer response",
			email.TemplateOfferResponded, email.TemplateData{
				"CandidateName": app.CandidateName,
				"Position":      offer.Position,
				"Response":      response,
			})
		if err != nil {
			logger.WithError(err).Warn("failed to notify recruiter", "offer_id", offer.ID)
		}
	}()
}

func (s *OfferService) findWithApplication(db *gorm.DB, offerID string) (*models.Offer, *models.Application, error) {
	offer, err := s.offerRepo.FindByID(db, offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}
	app, err := s.appService.findWithJob(db, offer.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	return offer, app, nil
}

func buildOfferResponse(offer *models.Offer) (*dto.OfferResponse, error) {
	resp, err := dto.NewOfferResponse(offer)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}
