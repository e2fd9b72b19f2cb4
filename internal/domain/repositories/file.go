package repositories

import (
	"context"

	"compendi/internal/models"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create creates a new file
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by id
	GetByID(ctx context.Context, id string) (*models.File, error)

	// ListByFolder lists a folder's files in creation order
	ListByFolder(ctx context.Context, folderID string) ([]models.File, error)

	// Update updates a file's name and sub name
	Update(ctx context.Context, file *models.File) error

	// Delete removes a file with its sections and images
	Delete(ctx context.Context, id string) error
}

// SectionRepository defines data access operations for sections
type SectionRepository interface {
	// Create creates a new section
	Create(ctx context.Context, section *models.Section) error

	// GetByID retrieves a section by id
	GetByID(ctx context.Context, id string) (*models.Section, error)

	// ListByFile lists a file's sections ordered by position
	ListByFile(ctx context.Context, fileID string) ([]models.Section, error)

	// NextPosition returns the position a newly appended section should take
	NextPosition(ctx context.Context, fileID string) (int, error)

	// Delete removes a section
	Delete(ctx context.Context, id string) error
}

// ImageRepository defines data access operations for image references
type ImageRepository interface {
	// Create records a hosted asset reference
	Create(ctx context.Context, image *models.Image) error

	// GetByID retrieves an image reference by id
	GetByID(ctx context.Context, id string) (*models.Image, error)

	// ListByFile lists a file's image references in creation order
	ListByFile(ctx context.Context, fileID string) ([]models.Image, error)

	// Delete removes an image reference (the hosted asset stays with the host)
	Delete(ctx context.Context, id string) error
}
