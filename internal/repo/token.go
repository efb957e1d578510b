package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/models"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token string, userID uint, exp time.Time) error {
	rec := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: exp.Unix(),
		Revoked:   false,
	}
	if err := r.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RevokeRefreshToken marks the token revoked. Revoking a token that does not
// exist or is already revoked is a no-op, which keeps logout idempotent.
func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}

// RefreshTokenValid reports whether the stored token is present, unexpired and
// not revoked.
func (r *GormRepo) RefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var stored models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return false, nil
	}
	return true, nil
}
