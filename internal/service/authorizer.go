package service

import (
	"context"
	"fmt"

	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/models"
)

// OwnerAuthorizer implements ownership checks: a user may act on a resource
// only if they own the project at the top of its chain. Existence is checked
// before ownership, so a missing target is 404 and a foreign-owned one 403.
type OwnerAuthorizer struct {
	projects repositories.ProjectRepository
	folders  repositories.FolderRepository
	files    repositories.FileRepository
}

// NewOwnerAuthorizer creates a new ownership-based authorizer
func NewOwnerAuthorizer(
	projects repositories.ProjectRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
) *OwnerAuthorizer {
	return &OwnerAuthorizer{
		projects: projects,
		folders:  folders,
		files:    files,
	}
}

// ProjectForUser loads a project and verifies userID owns it.
func (a *OwnerAuthorizer) ProjectForUser(ctx context.Context, projectID, userID string) (*models.Project, error) {
	project, err := a.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, fmt.Errorf("access denied to project %s: %w", projectID, domain.ErrForbidden)
	}
	return project, nil
}

// FolderForUser loads a folder plus its owning project and verifies userID
// owns the chain.
func (a *OwnerAuthorizer) FolderForUser(ctx context.Context, folderID, userID string) (*models.Folder, *models.Project, error) {
	folder, err := a.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, nil, err
	}
	project, err := a.ProjectForUser(ctx, folder.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	return folder, project, nil
}

// FileForUser loads a file plus its owning folder and project and verifies
// userID owns the chain.
func (a *OwnerAuthorizer) FileForUser(ctx context.Context, fileID, userID string) (*models.File, *models.Folder, *models.Project, error) {
	file, err := a.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, nil, err
	}
	folder, project, err := a.FolderForUser(ctx, file.FolderID, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return file, folder, project, nil
}
