package service

import (
	"context"
	"fmt"
	"log/slog"

	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/forms"
	"compendi/internal/models"
)

// FolderService implements folder-tree operations for the owning user.
type FolderService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	authz   *OwnerAuthorizer
	logger  *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	authz *OwnerAuthorizer,
	logger *slog.Logger,
) *FolderService {
	return &FolderService{
		folders: folders,
		files:   files,
		authz:   authz,
		logger:  logger,
	}
}

// FolderView is a folder page's data: the folder, its owning project, and
// its direct children in creation order.
type FolderView struct {
	Folder       *models.Folder
	Project      *models.Project
	ChildFolders []models.Folder
	Files        []models.File
}

// View loads a folder with its children, enforcing ownership.
func (s *FolderService) View(ctx context.Context, folderID, userID string) (*FolderView, error) {
	folder, project, err := s.authz.FolderForUser(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	childFolders, err := s.folders.ListChildren(ctx, folder.ProjectID, &folder.ID)
	if err != nil {
		return nil, err
	}

	files, err := s.files.ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	return &FolderView{
		Folder:       folder,
		Project:      project,
		ChildFolders: childFolders,
		Files:        files,
	}, nil
}

// CreateChild adds either a child folder or a file under an owned folder,
// branching on the form's kind.
func (s *FolderService) CreateChild(ctx context.Context, folderID, userID string, form forms.ChildForm) error {
	parent, _, err := s.authz.FolderForUser(ctx, folderID, userID)
	if err != nil {
		return err
	}

	switch form.Kind {
	case forms.KindFolder:
		folder := &models.Folder{
			ProjectID: parent.ProjectID,
			ParentID:  &parent.ID,
			Name:      form.Name,
		}
		if err := s.folders.Create(ctx, folder); err != nil {
			return err
		}
		s.logger.Info("folder created",
			"id", folder.ID,
			"parent_id", parent.ID,
			"user_id", userID,
		)
	case forms.KindFile:
		file := &models.File{
			FolderID: parent.ID,
			Name:     form.Name,
		}
		if err := s.files.Create(ctx, file); err != nil {
			return err
		}
		s.logger.Info("file created",
			"id", file.ID,
			"folder_id", parent.ID,
			"user_id", userID,
		)
	default:
		return fmt.Errorf("unknown child kind %q: %w", form.Kind, domain.ErrValidation)
	}

	return nil
}

// CreateRoot adds a root folder to an owned project.
func (s *FolderService) CreateRoot(ctx context.Context, projectID, userID, name string) (*models.Folder, error) {
	project, err := s.authz.ProjectForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	folder := &models.Folder{
		ProjectID: project.ID,
		ParentID:  nil,
		Name:      name,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("root folder created",
		"id", folder.ID,
		"project_id", project.ID,
		"user_id", userID,
	)

	return folder, nil
}

// Delete removes an owned folder; its subtree cascades.
func (s *FolderService) Delete(ctx context.Context, folderID, userID string) error {
	if _, _, err := s.authz.FolderForUser(ctx, folderID, userID); err != nil {
		return err
	}

	if err := s.folders.Delete(ctx, folderID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "user_id", userID)

	return nil
}
