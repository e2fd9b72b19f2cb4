package repositories

import (
	"context"

	"compendi/internal/models"
)

// UserRepository defines data access operations for users.
// Lookups return domain.ErrNotFound for missing rows; they never invent
// existence, so callers do their own existence checking.
type UserRepository interface {
	// Create inserts a new user. Username/email collisions surface as
	// domain.ConflictError with the offending field.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
