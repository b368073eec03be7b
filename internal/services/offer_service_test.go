package services

import (
	"testing"
	"time"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupSentOffer walks an application to the offer stage, drafts an offer and
// sends it. Returns the capability token straight from the database, the way
// the candidate receives it by email.
func setupSentOffer(t *testing.T, sc *ServiceContainer, db *gorm.DB) (recruiter, candidate *models.User, appID, offerID, token string) {
	t.Helper()

	recruiter = createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate = createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	job := createPublishedJob(t, db, recruiter)

	app := mustApply(t, sc, db, candidate, job.ID)
	advance(t, sc, db, recruiter, app.ID, fullPathToOffer...)

	offer, err := sc.OfferService.Create(db, recruiter, app.ID, &dto.CreateOfferRequest{
		Position: "Backend Engineer",
		Salary:   90000,
	})
	require.NoError(t, err)
	require.Equal(t, models.OfferStatusDraft, offer.Status)

	sent, err := sc.OfferService.Send(db, recruiter, offer.ID)
	require.NoError(t, err)
	require.Equal(t, models.OfferStatusSent, sent.Status)

	stored := loadOffer(t, db, offer.ID)
	require.NotEmpty(t, stored.ResponseToken)
	return recruiter, candidate, app.ID, offer.ID, stored.ResponseToken
}

func loadOffer(t *testing.T, db *gorm.DB, id string) *models.Offer {
	t.Helper()

	var offer models.Offer
	require.NoError(t, db.First(&offer, "id = ?", id).Error)
	return &offer
}

func TestOfferAcceptCascadesToHired(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, candidate, appID, offerID, token := setupSentOffer(t, sc, db)

	resp, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "accept",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, resp.Status)
	require.NotNil(t, resp.RespondedAt)

	// Accept consumes the token.
	stored := loadOffer(t, db, offerID)
	assert.Equal(t, models.OfferStatusAccepted, stored.Status)
	assert.Empty(t, stored.ResponseToken)

	// The cascade goes through the lifecycle engine, attributed to the
	// candidate.
	app := loadApplication(t, db, appID)
	assert.Equal(t, models.ApplicationStatusHired, app.Status)
	history, err := app.History()
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, models.ApplicationStatusHired, last.Status)
	assert.Equal(t, candidate.ID, last.ChangedBy)

	// The consumed token no longer opens anything.
	_, err = sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrOfferNotSent)
}

func TestOfferRejectCascadesToRejected(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, appID, offerID, token := setupSentOffer(t, sc, db)

	resp, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "reject",
		Reason:   "accepted a competing offer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, resp.Status)

	app := loadApplication(t, db, appID)
	assert.Equal(t, models.ApplicationStatusRejected, app.Status)
	history, err := app.History()
	require.NoError(t, err)
	assert.Equal(t, "accepted a competing offer", history[len(history)-1].Reason)
}

func TestOfferRespondWrongToken(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, appID, offerID, _ := setupSentOffer(t, sc, db)

	_, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    "not-the-token",
		Response: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOfferToken)

	app := loadApplication(t, db, appID)
	assert.Equal(t, models.ApplicationStatusOffer, app.Status)
}

func TestOfferRespondAfterValidityExpires(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, appID, offerID, token := setupSentOffer(t, sc, db)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Offer{}).Where("id = ?", offerID).
		Update("offer_valid_until", past).Error)

	_, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrOfferExpired)

	// The offer is expired on the spot, without waiting for the sweep.
	stored := loadOffer(t, db, offerID)
	assert.Equal(t, models.OfferStatusExpired, stored.Status)
	assert.Empty(t, stored.ResponseToken)

	app := loadApplication(t, db, appID)
	assert.Equal(t, models.ApplicationStatusOffer, app.Status)
}

func TestOfferNegotiationRoundsCapped(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, _, offerID, token := setupSentOffer(t, sc, db)

	counter := 100000.0
	for round := 1; round <= models.MaxNegotiationRounds; round++ {
		resp, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
			Token:        token,
			Response:     "negotiate",
			CounterOffer: &counter,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OfferStatusSent, resp.Status)
		assert.Equal(t, round, resp.NegotiationRounds)
	}

	_, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:        token,
		Response:     "negotiate",
		CounterOffer: &counter,
	})
	assert.ErrorIs(t, err, apperrors.ErrNegotiationLimitExceeded)

	// Negotiation never consumes the token; accepting still works.
	stored := loadOffer(t, db, offerID)
	assert.Equal(t, models.OfferStatusSent, stored.Status)
	assert.Equal(t, token, stored.ResponseToken)
	assert.Equal(t, models.MaxNegotiationRounds, stored.NegotiationRounds)

	resp, err := sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "accept",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, resp.Status)
	require.Len(t, resp.NegotiationHistory, models.MaxNegotiationRounds)
	assert.Equal(t, 1, resp.NegotiationHistory[0].Round)
}

func TestOfferCreateRequiresOfferStage(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	job := createPublishedJob(t, db, recruiter)

	app := mustApply(t, sc, db, candidate, job.ID)

	_, err := sc.OfferService.Create(db, recruiter, app.ID, &dto.CreateOfferRequest{
		Position: "Backend Engineer",
		Salary:   90000,
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotAtOffer)
}

func TestOfferSendOnlyFromDraft(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter, _, _, offerID, _ := setupSentOffer(t, sc, db)

	_, err := sc.OfferService.Send(db, recruiter, offerID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestOfferWithdrawClearsToken(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter, _, _, offerID, token := setupSentOffer(t, sc, db)

	resp, err := sc.OfferService.Withdraw(db, recruiter, offerID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusWithdrawn, resp.Status)

	stored := loadOffer(t, db, offerID)
	assert.Empty(t, stored.ResponseToken)

	_, err = sc.OfferService.Respond(db, offerID, &dto.RespondToOfferRequest{
		Token:    token,
		Response: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrOfferNotSent)
}

func TestOfferExtendValidity(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter, _, _, offerID, _ := setupSentOffer(t, sc, db)

	before := loadOffer(t, db, offerID)

	_, err := sc.OfferService.ExtendValidity(db, recruiter, offerID, before.OfferValidUntil.Add(-time.Hour))
	assert.Error(t, err)

	until := before.OfferValidUntil.Add(72 * time.Hour)
	resp, err := sc.OfferService.ExtendValidity(db, recruiter, offerID, until)
	require.NoError(t, err)
	assert.WithinDuration(t, until, resp.OfferValidUntil, time.Second)
}

func TestOfferOnlyOwnerManages(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, _, offerID, _ := setupSentOffer(t, sc, db)
	other := createUser(t, db, "other@example.com", models.UserRoleRecruiter)

	_, err := sc.OfferService.Withdraw(db, other, offerID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	_, err = sc.OfferService.ExtendValidity(db, other, offerID, time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestExpireOverdueSweep(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	_, _, appID, offerID, _ := setupSentOffer(t, sc, db)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Offer{}).Where("id = ?", offerID).
		Update("offer_valid_until", past).Error)

	count, err := sc.OfferService.ExpireOverdue(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored := loadOffer(t, db, offerID)
	assert.Equal(t, models.OfferStatusExpired, stored.Status)
	assert.Empty(t, stored.ResponseToken)

	// Expiry of the offer does not touch the application.
	app := loadApplication(t, db, appID)
	assert.Equal(t, models.ApplicationStatusOffer, app.Status)

	// A second sweep finds nothing.
	count, err = sc.OfferService.ExpireOverdue(db, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}
