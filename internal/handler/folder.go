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

// FolderHandler handles the folder view and child creation.
type FolderHandler struct {
	folders  *service.FolderService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders *service.FolderService, renderer *view.Renderer, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folders:  folders,
		renderer: renderer,
		logger:   logger,
	}
}

// FolderPage is the folder view template's data.
type FolderPage struct {
	view.BasePage
	Folder       *models.Folder
	Project      *models.Project
	ChildFolders []models.Folder
	Files        []models.File
	Form         forms.ChildForm
	Errors       map[string]string
}

func (h *FolderHandler) folderPage(w http.ResponseWriter, r *http.Request, fv *service.FolderView) FolderPage {
	return FolderPage{
		BasePage:     basePage(w, r, fv.Folder.Name),
		Folder:       fv.Folder,
		Project:      fv.Project,
		ChildFolders: fv.ChildFolders,
		Files:        fv.Files,
	}
}

// Show renders a folder with its children and the creation form.
// GET /folder-view/{id}
func (h *FolderHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	fv, err := h.folders.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "folder_view.html", h.folderPage(w, r, fv))
}

// CreateChild processes a child folder/file creation submission.
// POST /folder-view/{id}
func (h *FolderHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
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
		fv, viewErr := h.folders.View(r.Context(), id, user.ID)
		if viewErr != nil {
			handleError(h.renderer, h.logger, w, r, viewErr)
			return
		}
		page := h.folderPage(w, r, fv)
		page.Form = form
		page.Errors = forms.FieldErrors(err)
		h.renderer.Render(w, http.StatusUnprocessableEntity, "folder_view.html", page)
		return
	}

	if err := h.folders.CreateChild(r.Context(), id, user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/folder-view/"+id, http.StatusSeeOther)
}

// Delete removes a folder and its subtree, then returns to the project.
// POST /folder-view/{id}/delete
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	fv, err := h.folders.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	if err := h.folders.Delete(r.Context(), id, user.ID); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/projects/"+fv.Project.ID+"/add-child", http.StatusSeeOther)
}
