package services

import (
	"testing"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)

	registered, err := sc.AuthService.Register(db, &dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Jane",
		Role:        models.UserRoleRecruiter,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, models.UserRoleRecruiter, registered.User.Role)

	loggedIn, err := sc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotNil(t, loggedIn.User.LastLogin)

	_, err = sc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = sc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicatesAndAdmins(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)

	req := &dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Jane",
		Role:        models.UserRoleCandidate,
	}
	_, err := sc.AuthService.Register(db, req)
	require.NoError(t, err)

	_, err = sc.AuthService.Register(db, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = sc.AuthService.Register(db, &dto.RegisterRequest{
		Email:       "boss@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Boss",
		Role:        models.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRefreshRotatesToken(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)

	registered, err := sc.AuthService.Register(db, &dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Jane",
		Role:        models.UserRoleCandidate,
	})
	require.NoError(t, err)

	refreshed, err := sc.AuthService.Refresh(db, &dto.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented token was consumed; replaying it fails.
	_, err = sc.AuthService.Refresh(db, &dto.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)

	registered, err := sc.AuthService.Register(db, &dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Jane",
		Role:        models.UserRoleCandidate,
	})
	require.NoError(t, err)

	require.NoError(t, sc.AuthService.Logout(db, &dto.LogoutRequest{
		RefreshToken: registered.RefreshToken,
	}))

	_, err = sc.AuthService.Refresh(db, &dto.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLoginInactiveAccount(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)

	registered, err := sc.AuthService.Register(db, &dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Sup3rSecret!",
		DisplayName: "Jane",
		Role:        models.UserRoleCandidate,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", registered.User.ID).
		Update("is_active", false).Error)

	_, err = sc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}
