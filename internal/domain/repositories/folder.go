package repositories

import (
	"context"

	"compendi/internal/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by id
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ListChildren lists the immediate child folders of parentID within a
	// project, in creation order. A nil parentID lists root folders.
	ListChildren(ctx context.Context, projectID string, parentID *string) ([]models.Folder, error)

	// Delete removes a folder and its subtree
	Delete(ctx context.Context, id string) error
}
