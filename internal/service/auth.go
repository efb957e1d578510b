package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vpetrakov/webshop/internal/event"
	"github.com/vpetrakov/webshop/internal/hash"
	"github.com/vpetrakov/webshop/internal/logging"
	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
)

var ErrValidation = errors.New("validation error")

type AuthService struct {
	Repo       *repo.GormRepo
	Publisher  event.Publisher
	AdminEmail string
}

// Register creates the user with a bcrypt password hash. The admin flag is
// granted when the email matches the configured admin address; promoting any
// other user needs a manual role change.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         strings.TrimSpace(name),
		IsAdmin:      s.AdminEmail != "" && email == strings.ToLower(s.AdminEmail),
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register rejected", "reason", "duplicate email", "email", email)
		}
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user registered", "userID", user.ID, "is_admin", user.IsAdmin)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.Repo.UserByCredentials(ctx, email, password)
	if err != nil {
		l.Warn("login failed", "email", email, "error", err)
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return user, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, e map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, topic, key, e); err != nil {
		logging.FromContext(ctx).Error("event publish error", "topic", topic, "error", err)
	}
}
