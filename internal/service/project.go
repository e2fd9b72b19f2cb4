package service

import (
	"context"
	"log/slog"

	"compendi/internal/domain/repositories"
	"compendi/internal/forms"
	"compendi/internal/models"
)

// ProjectService implements project operations for the owning user.
type ProjectService struct {
	projects repositories.ProjectRepository
	folders  repositories.FolderRepository
	authz    *OwnerAuthorizer
	logger   *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projects repositories.ProjectRepository,
	folders repositories.FolderRepository,
	authz *OwnerAuthorizer,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		folders:  folders,
		authz:    authz,
		logger:   logger,
	}
}

// List retrieves all of a user's projects in creation order.
func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Create creates a project owned by userID from a validated form.
func (s *ProjectService) Create(ctx context.Context, userID string, form forms.ProjectForm) (*models.Project, error) {
	project := &models.Project{
		UserID:      userID,
		Name:        form.Name,
		Description: form.Description,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"user_id", userID,
	)

	return project, nil
}

// ProjectView is a project page's data: the project and its root folders.
type ProjectView struct {
	Project     *models.Project
	RootFolders []models.Folder
}

// View loads a project with its root folders, enforcing ownership.
func (s *ProjectService) View(ctx context.Context, projectID, userID string) (*ProjectView, error) {
	project, err := s.authz.ProjectForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	roots, err := s.folders.ListChildren(ctx, project.ID, nil)
	if err != nil {
		return nil, err
	}

	return &ProjectView{Project: project, RootFolders: roots}, nil
}

// Get loads a single project, enforcing ownership.
func (s *ProjectService) Get(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return s.authz.ProjectForUser(ctx, projectID, userID)
}

// Update applies a validated settings form to an owned project.
func (s *ProjectService) Update(ctx context.Context, projectID, userID string, form forms.ProjectForm) (*models.Project, error) {
	project, err := s.authz.ProjectForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	project.Name = form.Name
	project.Description = form.Description

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "user_id", userID)

	return project, nil
}

// Delete removes an owned project; everything under it cascades.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.authz.ProjectForUser(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", projectID, "user_id", userID)

	return nil
}
