package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"compendi/internal/domain"
	"compendi/internal/httputil"
	"compendi/internal/models"
	"compendi/internal/service"
)

const projectID = "11111111-1111-4111-8111-111111111111"

type stubProjectRepo struct {
	projects map[string]*models.Project
}

func (s *stubProjectRepo) Create(ctx context.Context, project *models.Project) error {
	project.ID = "22222222-2222-4222-8222-222222222222"
	s.projects[project.ID] = project
	return nil
}

func (s *stubProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProjectRepo) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProjectRepo) Update(ctx context.Context, project *models.Project) error { return nil }
func (s *stubProjectRepo) Delete(ctx context.Context, id string) error {
	delete(s.projects, id)
	return nil
}

type stubFolderRepo struct{}

func (s *stubFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = "33333333-3333-4333-8333-333333333333"
	return nil
}

func (s *stubFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	return nil, domain.ErrNotFound
}

func (s *stubFolderRepo) ListChildren(ctx context.Context, pid string, parentID *string) ([]models.Folder, error) {
	return []models.Folder{}, nil
}

func (s *stubFolderRepo) Delete(ctx context.Context, id string) error { return nil }

type stubFileRepo struct{}

func (s *stubFileRepo) Create(ctx context.Context, file *models.File) error { return nil }
func (s *stubFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	return nil, domain.ErrNotFound
}
func (s *stubFileRepo) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	return []models.File{}, nil
}
func (s *stubFileRepo) Update(ctx context.Context, file *models.File) error { return nil }
func (s *stubFileRepo) Delete(ctx context.Context, id string) error         { return nil }

func projectHandlerFixture(t *testing.T) *ProjectHandler {
	t.Helper()

	projects := &stubProjectRepo{projects: map[string]*models.Project{
		projectID: {ID: projectID, UserID: "user-1", Name: "Portfolio", Description: "my work"},
	}}
	folders := &stubFolderRepo{}
	files := &stubFileRepo{}

	authz := service.NewOwnerAuthorizer(projects, folders, files)
	projectService := service.NewProjectService(projects, folders, authz, testLogger())
	folderService := service.NewFolderService(folders, files, authz, testLogger())
	return NewProjectHandler(projectService, folderService, testRenderer(t), testLogger())
}

func asUser(r *http.Request, id string) *http.Request {
	return httputil.WithUser(r, &models.User{ID: id, Username: "ada"})
}

func TestProjectHandler_List(t *testing.T) {
	h := projectHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.List(rec, asUser(httptest.NewRequest("GET", "/projects", nil), "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Portfolio") {
		t.Error("project name missing from the list")
	}
}

func TestProjectHandler_Create(t *testing.T) {
	t.Run("valid form redirects back to the list", func(t *testing.T) {
		h := projectHandlerFixture(t)

		req := asUser(postForm("/projects", url.Values{
			"project_name": {"New project"},
		}), "user-1")
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/projects" {
			t.Errorf("Location = %q, want /projects", loc)
		}
	})

	t.Run("empty name re-renders with a field error", func(t *testing.T) {
		h := projectHandlerFixture(t)

		req := asUser(postForm("/projects", url.Values{
			"description": {"no name"},
		}), "user-1")
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "field-error") {
			t.Error("field error missing")
		}
		if !strings.Contains(body, "no name") {
			t.Error("submitted description was not preserved")
		}
	})
}

func TestProjectHandler_Show(t *testing.T) {
	t.Run("owner sees the project page", func(t *testing.T) {
		h := projectHandlerFixture(t)

		req := asUser(httptest.NewRequest("GET", "/projects/"+projectID+"/add-child", nil), "user-1")
		req.SetPathValue("id", projectID)
		rec := httptest.NewRecorder()
		h.Show(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Portfolio") {
			t.Error("project name missing")
		}
	})

	t.Run("foreign project is a 403 page", func(t *testing.T) {
		h := projectHandlerFixture(t)

		req := asUser(httptest.NewRequest("GET", "/projects/"+projectID+"/add-child", nil), "user-2")
		req.SetPathValue("id", projectID)
		rec := httptest.NewRecorder()
		h.Show(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("malformed id is a 404 page", func(t *testing.T) {
		h := projectHandlerFixture(t)

		req := asUser(httptest.NewRequest("GET", "/projects/oops/add-child", nil), "user-1")
		req.SetPathValue("id", "oops")
		rec := httptest.NewRecorder()
		h.Show(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("missing project is a 404 page", func(t *testing.T) {
		h := projectHandlerFixture(t)

		gone := "99999999-9999-4999-8999-999999999999"
		req := asUser(httptest.NewRequest("GET", "/projects/"+gone+"/add-child", nil), "user-1")
		req.SetPathValue("id", gone)
		rec := httptest.NewRecorder()
		h.Show(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	h := projectHandlerFixture(t)

	req := asUser(postForm("/projects/"+projectID+"/delete", url.Values{}), "user-1")
	req.SetPathValue("id", projectID)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/projects" {
		t.Errorf("Location = %q, want /projects", loc)
	}
}
