package auth

import (
	"net/http"
	"testing"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id string, role models.UserRole) *models.User {
	u := &models.User{Role: role}
	u.ID = id
	return u
}

func TestAuthorizePublishedJobIsWorldReadable(t *testing.T) {
	t.Parallel()

	target := Target{JobOwnerID: "owner-1", JobStatus: models.JobStatusPublished}

	// No identity needed at all.
	assert.NoError(t, Authorize(nil, ActionReadJob, target))
	assert.NoError(t, Authorize(user("someone", models.UserRoleCandidate), ActionReadJob, target))

	// Unpublished jobs are only visible to their owner (and admins).
	draft := Target{JobOwnerID: "owner-1", JobStatus: models.JobStatusDraft}
	assert.ErrorIs(t, Authorize(user("someone", models.UserRoleCandidate), ActionReadJob, draft), apperrors.ErrAccessDenied)
	assert.NoError(t, Authorize(user("owner-1", models.UserRoleRecruiter), ActionReadJob, draft))
}

func TestAuthorizeAnonymousIsUnauthorized(t *testing.T) {
	t.Parallel()

	err := Authorize(nil, ActionReadApplication, Target{CandidateID: "cand-1"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}

func TestAuthorizeAdminBypassesOwnership(t *testing.T) {
	t.Parallel()

	admin := user("admin-1", models.UserRoleAdmin)
	target := Target{JobOwnerID: "owner-1", CandidateID: "cand-1"}

	for _, action := range []Action{
		ActionReadJob, ActionManageJob, ActionReadApplication,
		ActionTransitionApplication, ActionManageInterview, ActionManageOffer,
	} {
		assert.NoError(t, Authorize(admin, action, target), "action %s", action)
	}
}

func TestAuthorizeJobOwnerOwnsDownstreamEntities(t *testing.T) {
	t.Parallel()

	owner := user("owner-1", models.UserRoleRecruiter)
	other := user("owner-2", models.UserRoleRecruiter)
	target := Target{JobOwnerID: "owner-1", CandidateID: "cand-1"}

	assert.NoError(t, Authorize(owner, ActionTransitionApplication, target))
	assert.NoError(t, Authorize(owner, ActionManageOffer, target))
	assert.ErrorIs(t, Authorize(other, ActionTransitionApplication, target), apperrors.ErrAccessDenied)
	assert.ErrorIs(t, Authorize(other, ActionManageOffer, target), apperrors.ErrAccessDenied)
}

func TestAuthorizeCandidateOwnApplication(t *testing.T) {
	t.Parallel()

	candidate := user("cand-1", models.UserRoleCandidate)
	own := Target{JobOwnerID: "owner-1", CandidateID: "cand-1"}
	someoneElses := Target{JobOwnerID: "owner-1", CandidateID: "cand-2"}

	assert.NoError(t, Authorize(candidate, ActionReadApplication, own))
	assert.NoError(t, Authorize(candidate, ActionCreateApplication, own))
	assert.NoError(t, Authorize(candidate, ActionWithdrawApplication, own))
	assert.NoError(t, Authorize(candidate, ActionReadMessage, own))

	// Owning the application does not grant recruiter powers.
	assert.ErrorIs(t, Authorize(candidate, ActionTransitionApplication, own), apperrors.ErrAccessDenied)
	assert.ErrorIs(t, Authorize(candidate, ActionManageOffer, own), apperrors.ErrAccessDenied)

	assert.ErrorIs(t, Authorize(candidate, ActionReadApplication, someoneElses), apperrors.ErrAccessDenied)
	assert.ErrorIs(t, Authorize(candidate, ActionWithdrawApplication, someoneElses), apperrors.ErrAccessDenied)
}

func TestAuthorizeEmptyActionIsBadRequest(t *testing.T) {
	t.Parallel()

	err := Authorize(user("u", models.UserRoleAdmin), "", Target{})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestOfferTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := NewOfferToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := NewOfferToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.True(t, VerifyOfferToken(token, token))
	assert.False(t, VerifyOfferToken(token, other))

	// A cleared stored token never matches, not even an empty presentation.
	assert.False(t, VerifyOfferToken("", ""))
	assert.False(t, VerifyOfferToken("", token))
	assert.False(t, VerifyOfferToken(token, ""))
}
