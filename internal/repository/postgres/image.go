package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/models"
)

// PostgresImageRepository implements the ImageRepository interface
type PostgresImageRepository struct {
	pool *pgxpool.Pool
}

// NewImageRepository creates a new image repository
func NewImageRepository(config *RepositoryConfig) repositories.ImageRepository {
	return &PostgresImageRepository{pool: config.Pool}
}

// Create records a hosted asset reference
func (r *PostgresImageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (file_id, public_id, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		image.FileID,
		image.PublicID,
		image.URL,
	).Scan(&image.ID, &image.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("image file: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

// GetByID retrieves an image reference by id
func (r *PostgresImageRepository) GetByID(ctx context.Context, id string) (*models.Image, error) {
	query := `
		SELECT id, file_id, public_id, url, created_at
		FROM images
		WHERE id = $1
	`

	var image models.Image
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&image.ID,
		&image.FileID,
		&image.PublicID,
		&image.URL,
		&image.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

// ListByFile lists a file's image references in creation order
func (r *PostgresImageRepository) ListByFile(ctx context.Context, fileID string) ([]models.Image, error) {
	query := `
		SELECT id, file_id, public_id, url, created_at
		FROM images
		WHERE file_id = $1
		ORDER BY created_at, id
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var image models.Image
		err := rows.Scan(
			&image.ID,
			&image.FileID,
			&image.PublicID,
			&image.URL,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	if images == nil {
		images = []models.Image{}
	}

	return images, nil
}

// Delete removes an image reference. The hosted asset itself stays with the
// asset host.
func (r *PostgresImageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM images WHERE id = $1`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
