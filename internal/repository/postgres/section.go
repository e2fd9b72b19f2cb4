package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/models"
)

// PostgresSectionRepository implements the SectionRepository interface
type PostgresSectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(config *RepositoryConfig) repositories.SectionRepository {
	return &PostgresSectionRepository{pool: config.Pool}
}

// Create creates a new section
func (r *PostgresSectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (file_id, position, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		section.FileID,
		section.Position,
		section.Body,
	).Scan(&section.ID, &section.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("section file: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create section: %w", err)
	}

	return nil
}

// GetByID retrieves a section by id
func (r *PostgresSectionRepository) GetByID(ctx context.Context, id string) (*models.Section, error) {
	query := `
		SELECT id, file_id, position, body, created_at
		FROM sections
		WHERE id = $1
	`

	var section models.Section
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.FileID,
		&section.Position,
		&section.Body,
		&section.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get section: %w", err)
	}

	return &section, nil
}

// ListByFile lists a file's sections ordered by position
func (r *PostgresSectionRepository) ListByFile(ctx context.Context, fileID string) ([]models.Section, error) {
	query := `
		SELECT id, file_id, position, body, created_at
		FROM sections
		WHERE file_id = $1
		ORDER BY position, created_at
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var section models.Section
		err := rows.Scan(
			&section.ID,
			&section.FileID,
			&section.Position,
			&section.Body,
			&section.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}

	if sections == nil {
		sections = []models.Section{}
	}

	return sections, nil
}

// NextPosition returns the position a newly appended section should take
func (r *PostgresSectionRepository) NextPosition(ctx context.Context, fileID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(position), 0) + 1
		FROM sections
		WHERE file_id = $1
	`

	var next int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, fileID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next section position: %w", err)
	}

	return next, nil
}

// Delete removes a section
func (r *PostgresSectionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sections WHERE id = $1`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
