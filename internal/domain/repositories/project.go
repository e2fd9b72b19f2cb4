package repositories

import (
	"context"

	"compendi/internal/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by id regardless of owner; ownership is
	// the authorizer's concern
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListByUser lists a user's projects in creation order
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)

	// Update updates a project's name and description
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project; folders, files, sections and images under
	// it go with it
	Delete(ctx context.Context, id string) error
}
