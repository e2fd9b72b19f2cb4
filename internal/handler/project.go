package handler

import (
	"log/slog"
	"net/http"

	"compendi/internal/forms"
	"compendi/internal/httputil"
	"compendi/internal/models"
	"compendi/internal/service"
	"compendi/internal/view"
)

// ProjectHandler handles the project list, project view and settings pages.
type ProjectHandler struct {
	projects *service.ProjectService
	folders  *service.FolderService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *service.ProjectService, folders *service.FolderService, renderer *view.Renderer, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		folders:  folders,
		renderer: renderer,
		logger:   logger,
	}
}

// ProjectsPage is the project list template's data.
type ProjectsPage struct {
	view.BasePage
	Projects []models.Project
	Form     forms.ProjectForm
	Errors   map[string]string
}

// List renders the user's projects with the creation form.
// GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	projects, err := h.projects.List(r.Context(), user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "projects.html", ProjectsPage{
		BasePage: basePage(w, r, "My Projects"),
		Projects: projects,
	})
}

// Create processes a project creation submission.
// POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseProjectForm(values)

	if err := form.Validate(); err != nil {
		projects, listErr := h.projects.List(r.Context(), user.ID)
		if listErr != nil {
			handleError(h.renderer, h.logger, w, r, listErr)
			return
		}
		h.renderer.Render(w, http.StatusUnprocessableEntity, "projects.html", ProjectsPage{
			BasePage: basePage(w, r, "My Projects"),
			Projects: projects,
			Form:     form,
			Errors:   forms.FieldErrors(err),
		})
		return
	}

	if _, err := h.projects.Create(r.Context(), user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// ProjectViewPage is the project view template's data.
type ProjectViewPage struct {
	view.BasePage
	Project     *models.Project
	RootFolders []models.Folder
	Form        forms.ChildForm
	Errors      map[string]string
}

// Show renders a project with its root folders and the add-folder form.
// GET /projects/{id}/add-child
func (h *ProjectHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	pv, err := h.projects.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "project_view.html", ProjectViewPage{
		BasePage:    basePage(w, r, pv.Project.Name),
		Project:     pv.Project,
		RootFolders: pv.RootFolders,
	})
}

// AddChild processes a root-folder creation submission.
// POST /projects/{id}/add-child
func (h *ProjectHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseChildForm(values)

	if err := form.Validate(); err != nil {
		pv, viewErr := h.projects.View(r.Context(), id, user.ID)
		if viewErr != nil {
			handleError(h.renderer, h.logger, w, r, viewErr)
			return
		}
		h.renderer.Render(w, http.StatusUnprocessableEntity, "project_view.html", ProjectViewPage{
			BasePage:    basePage(w, r, pv.Project.Name),
			Project:     pv.Project,
			RootFolders: pv.RootFolders,
			Form:        form,
			Errors:      forms.FieldErrors(err),
		})
		return
	}

	if _, err := h.folders.CreateRoot(r.Context(), id, user.ID, form.Name); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+id+"/add-child", http.StatusSeeOther)
}

// ProjectSettingsPage is the settings template's data.
type ProjectSettingsPage struct {
	view.BasePage
	Project *models.Project
	Form    forms.ProjectForm
	Errors  map[string]string
}

// ShowSettings renders the settings form prefilled with the stored values.
// GET /projects/{id}/settings
func (h *ProjectHandler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	project, err := h.projects.Get(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "project_settings.html", ProjectSettingsPage{
		BasePage: basePage(w, r, project.Name+" settings"),
		Project:  project,
		Form:     forms.ProjectForm{Name: project.Name, Description: project.Description},
	})
}

// UpdateSettings processes a settings submission.
// POST /projects/{id}/settings
func (h *ProjectHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseProjectForm(values)

	if err := form.Validate(); err != nil {
		project, getErr := h.projects.Get(r.Context(), id, user.ID)
		if getErr != nil {
			handleError(h.renderer, h.logger, w, r, getErr)
			return
		}
		h.renderer.Render(w, http.StatusUnprocessableEntity, "project_settings.html", ProjectSettingsPage{
			BasePage: basePage(w, r, project.Name+" settings"),
			Project:  project,
			Form:     form,
			Errors:   forms.FieldErrors(err),
		})
		return
	}

	if _, err := h.projects.Update(r.Context(), id, user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+id+"/settings", http.StatusSeeOther)
}

// Delete removes a project and everything in it.
// POST /projects/{id}/delete
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	if err := h.projects.Delete(r.Context(), id, user.ID); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}
