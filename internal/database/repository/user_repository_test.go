package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend-go/internal/database/models"
)

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{
		Email:    "test@example.com",
		Name:     "Test",
		Password: "hashedpassword",
	}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	dup := &models.User{
		Email:    "test@example.com",
		Name:     "Other",
		Password: "hashedpassword",
	}
	assert.ErrorIs(t, repo.Create(dup), ErrDuplicateEmail)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&models.User{
		Email:    "find@example.com",
		Name:     "Test",
		Password: "hashedpassword",
	}))

	found, err := repo.FindByEmail("find@example.com")
	require.NoError(t, err)
	assert.Equal(t, "find@example.com", found.Email)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshTokenRepository_Rotation(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	tokenRepo := NewRefreshTokenRepository(db)

	user := &models.User{Email: "token@example.com", Name: "Test", Password: "x"}
	require.NoError(t, userRepo.Create(user))

	token := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "opaque-token",
		ExpiresAt: timeNowPlusHour(),
	}
	require.NoError(t, tokenRepo.Create(token))

	found, err := tokenRepo.FindByToken("opaque-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, tokenRepo.RevokeToken("opaque-token"))

	_, err = tokenRepo.FindByToken("opaque-token")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
