package service

import (
	"context"
	"errors"
	"testing"

	"compendi/internal/domain"
	"compendi/internal/models"
)

func authorizerFixture() *OwnerAuthorizer {
	projects := &mockProjectRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.Project, error) {
			if id == "project-1" {
				return &models.Project{ID: "project-1", UserID: "owner"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	folders := &mockFolderRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.Folder, error) {
			if id == "folder-1" {
				return &models.Folder{ID: "folder-1", ProjectID: "project-1"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	files := &mockFileRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.File, error) {
			if id == "file-1" {
				return &models.File{ID: "file-1", FolderID: "folder-1"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	return NewOwnerAuthorizer(projects, folders, files)
}

func TestOwnerAuthorizer_ProjectForUser(t *testing.T) {
	authz := authorizerFixture()

	tests := []struct {
		name      string
		projectID string
		userID    string
		wantErr   error
	}{
		{name: "owner passes", projectID: "project-1", userID: "owner", wantErr: nil},
		{name: "stranger is forbidden", projectID: "project-1", userID: "stranger", wantErr: domain.ErrForbidden},
		{name: "missing project is not found", projectID: "project-9", userID: "owner", wantErr: domain.ErrNotFound},
		// Existence is checked first, so a stranger probing a missing id
		// sees the same 404 as the owner would.
		{name: "stranger probing missing project gets not found", projectID: "project-9", userID: "stranger", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authz.ProjectForUser(context.Background(), tt.projectID, tt.userID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ProjectForUser() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ProjectForUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOwnerAuthorizer_FolderForUser(t *testing.T) {
	authz := authorizerFixture()

	t.Run("owner gets folder and project", func(t *testing.T) {
		folder, project, err := authz.FolderForUser(context.Background(), "folder-1", "owner")
		if err != nil {
			t.Fatalf("FolderForUser() error = %v", err)
		}
		if folder.ID != "folder-1" || project.ID != "project-1" {
			t.Errorf("got folder %q in project %q", folder.ID, project.ID)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, _, err := authz.FolderForUser(context.Background(), "folder-1", "stranger")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("FolderForUser() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("missing folder is not found", func(t *testing.T) {
		_, _, err := authz.FolderForUser(context.Background(), "folder-9", "owner")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FolderForUser() error = %v, want ErrNotFound", err)
		}
	})
}

func TestOwnerAuthorizer_FileForUser(t *testing.T) {
	authz := authorizerFixture()

	t.Run("owner gets the full chain", func(t *testing.T) {
		file, folder, project, err := authz.FileForUser(context.Background(), "file-1", "owner")
		if err != nil {
			t.Fatalf("FileForUser() error = %v", err)
		}
		if file.ID != "file-1" || folder.ID != "folder-1" || project.ID != "project-1" {
			t.Errorf("got file %q, folder %q, project %q", file.ID, folder.ID, project.ID)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, _, _, err := authz.FileForUser(context.Background(), "file-1", "stranger")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("FileForUser() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, _, _, err := authz.FileForUser(context.Background(), "file-9", "owner")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FileForUser() error = %v, want ErrNotFound", err)
		}
	})
}
