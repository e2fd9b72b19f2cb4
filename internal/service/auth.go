package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"compendi/internal/auth"
	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/forms"
	"compendi/internal/models"
)

// AuthService handles registration and credential checking.
type AuthService struct {
	users  repositories.UserRepository
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates a new user from a validated registration form. Username
// is checked before email and short-circuits it, so a submission colliding
// on both reports only the username. The database's unique indexes back the
// same checks, so a racing registration loses with the identical
// ConflictError.
func (s *AuthService) Register(ctx context.Context, form forms.RegisterForm) (*models.User, error) {
	if _, err := s.users.GetByUsername(ctx, form.Username); err == nil {
		return nil, &domain.ConflictError{Message: "username already in use", Field: "username"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, form.Email); err == nil {
		return nil, &domain.ConflictError{Message: "email already in use", Field: "email"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"id", user.ID,
		"username", user.Username,
	)

	return user, nil
}

// Login checks a credential pair. Every failure mode, unknown username or
// wrong password, collapses into the same ErrUnauthorized so responses
// cannot reveal which field was wrong.
func (s *AuthService) Login(ctx context.Context, form forms.LoginForm) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	s.logger.Info("user logged in", "id", user.ID, "username", user.Username)

	return user, nil
}
