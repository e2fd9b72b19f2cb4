package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"compendi/internal/domain"
	"compendi/internal/forms"
	"compendi/internal/httputil"
	"compendi/internal/models"
	"compendi/internal/service"
	"compendi/internal/view"
)

// FileHandler handles the file view and edit pages.
type FileHandler struct {
	files    *service.FileService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService, renderer *view.Renderer, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		files:    files,
		renderer: renderer,
		logger:   logger,
	}
}

// FilePage is the read-only file view template's data.
type FilePage struct {
	view.BasePage
	File     *models.File
	Folder   *models.Folder
	Sections []models.Section
	Images   []models.Image
}

// Show renders a file's sections and images.
// GET /file-view/{id}
func (h *FileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	fv, err := h.files.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "file_view.html", FilePage{
		BasePage: basePage(w, r, fv.File.Name),
		File:     fv.File,
		Folder:   fv.Folder,
		Sections: fv.Sections,
		Images:   fv.Images,
	})
}

// FileEditPage is the edit template's data. Each of the page's three forms
// carries its own error map so a failure in one leaves the others untouched.
type FileEditPage struct {
	view.BasePage
	File          *models.File
	Folder        *models.Folder
	Sections      []models.Section
	Images        []models.Image
	MainForm      forms.FileMainForm
	MainErrors    map[string]string
	SectionForm   forms.FileSectionForm
	SectionErrors map[string]string
	ImageForm     forms.FileImageForm
	ImageErrors   map[string]string
}

func (h *FileHandler) editPage(w http.ResponseWriter, r *http.Request, fv *service.FileView) FileEditPage {
	return FileEditPage{
		BasePage: basePage(w, r, "Edit "+fv.File.Name),
		File:     fv.File,
		Folder:   fv.Folder,
		Sections: fv.Sections,
		Images:   fv.Images,
		MainForm: forms.FileMainForm{Name: fv.File.Name, SubName: fv.File.SubName},
	}
}

// ShowEdit renders the edit page with the metadata form prefilled.
// GET /file-edit/{id}
func (h *FileHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	fv, err := h.files.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "file_edit.html", h.editPage(w, r, fv))
}

// UpdateMain processes the metadata form.
// POST /file-edit/{id}
func (h *FileHandler) UpdateMain(w http.ResponseWriter, r *http.Request) {
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

	form := forms.ParseFileMainForm(values)

	if err := form.Validate(); err != nil {
		fv, viewErr := h.files.View(r.Context(), id, user.ID)
		if viewErr != nil {
			handleError(h.renderer, h.logger, w, r, viewErr)
			return
		}
		page := h.editPage(w, r, fv)
		page.MainForm = form
		page.MainErrors = forms.FieldErrors(err)
		h.renderer.Render(w, http.StatusUnprocessableEntity, "file_edit.html", page)
		return
	}

	if _, err := h.files.UpdateMain(r.Context(), id, user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/file-edit/"+id, http.StatusSeeOther)
}

// AddSection appends a section to the file named in the form.
// POST /file-edit/add-section
func (h *FileHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	values, err := httputil.ParseForm(w, r)
	if err != nil {
		renderError(h.renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
		return
	}

	form := forms.ParseFileSectionForm(values)

	// Without a usable file id there is no edit page to re-render
	if uuid.Validate(form.FileID) != nil {
		handleError(h.renderer, h.logger, w, r, domain.ErrNotFound)
		return
	}

	if err := form.Validate(); err != nil {
		fv, viewErr := h.files.View(r.Context(), form.FileID, user.ID)
		if viewErr != nil {
			handleError(h.renderer, h.logger, w, r, viewErr)
			return
		}
		page := h.editPage(w, r, fv)
		page.SectionForm = form
		page.SectionErrors = forms.FieldErrors(err)
		h.renderer.Render(w, http.StatusUnprocessableEntity, "file_edit.html", page)
		return
	}

	if _, err := h.files.AddSection(r.Context(), user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/file-edit/"+form.FileID, http.StatusSeeOther)
}

// AddSectionPage bounces browsers that land on the POST-only path.
// GET /file-edit/add-section
func (h *FileHandler) AddSectionPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// AddImage attaches an externally hosted image to the file.
// POST /file-edit/{id}/add-image
func (h *FileHandler) AddImage(w http.ResponseWriter, r *http.Request) {
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

	form := forms.ParseFileImageForm(values)

	if err := form.Validate(); err != nil {
		fv, viewErr := h.files.View(r.Context(), id, user.ID)
		if viewErr != nil {
			handleError(h.renderer, h.logger, w, r, viewErr)
			return
		}
		page := h.editPage(w, r, fv)
		page.ImageForm = form
		page.ImageErrors = forms.FieldErrors(err)
		h.renderer.Render(w, http.StatusUnprocessableEntity, "file_edit.html", page)
		return
	}

	if _, err := h.files.AddImage(r.Context(), id, user.ID, form); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/file-edit/"+id, http.StatusSeeOther)
}

// Delete removes a file, then returns to its folder.
// POST /file-edit/{id}/delete
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	fv, err := h.files.View(r.Context(), id, user.ID)
	if err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	if err := h.files.Delete(r.Context(), id, user.ID); err != nil {
		handleError(h.renderer, h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, "/folder-view/"+fv.Folder.ID, http.StatusSeeOther)
}
