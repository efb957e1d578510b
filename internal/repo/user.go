package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/hash"
	"github.com/vpetrakov/webshop/internal/models"
)

// CreateUser inserts u unless a user with the same email already exists.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return fmt.Errorf("db error: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// UserByCredentials resolves the email and verifies the password against the
// stored bcrypt hash. ErrUnknownEmail and ErrBadPassword stay distinct; the
// handlers surface them as distinct messages, matching the original behavior.
func (r *GormRepo) UserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadPassword
	}
	return &user, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
