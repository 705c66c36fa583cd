package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/recipebox/backend-go/internal/database/models"
)

// RefreshTokenRepository defines the interface for refresh token storage
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindByToken(token string) (*models.RefreshToken, error)
	RevokeToken(token string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindByToken returns the stored token only if it is neither revoked nor
// expired.
func (r *refreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := r.db.Where("token = ? AND is_revoked = ?", token, false).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return &stored, nil
}

func (r *refreshTokenRepository) RevokeToken(token string) error {
	result := r.db.Model(&models.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Update("is_revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}
