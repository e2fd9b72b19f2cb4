package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"compendi/internal/domain"
	"compendi/internal/httputil"
	"compendi/internal/view"
)

// ErrorPage is the data behind the error template.
type ErrorPage struct {
	view.BasePage
	Heading string
	Detail  string
}

// basePage assembles the fields every page shares: the current user and any
// pending flash. Calling it pops the flash, so call it once per response.
func basePage(w http.ResponseWriter, r *http.Request, title string) view.BasePage {
	return view.BasePage{
		Title: title,
		User:  httputil.GetUser(r),
		Flash: view.PopFlash(w, r),
	}
}

// renderError renders the error page with the given status.
func renderError(renderer *view.Renderer, w http.ResponseWriter, r *http.Request, status int, heading, detail string) {
	renderer.Render(w, status, "error.html", ErrorPage{
		BasePage: basePage(w, r, heading),
		Heading:  heading,
		Detail:   detail,
	})
}

// handleError converts domain errors into the right HTML response.
func handleError(renderer *view.Renderer, logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderError(renderer, w, r, http.StatusNotFound,
			"Not found", "The page you asked for does not exist.")
	case errors.Is(err, domain.ErrForbidden):
		renderError(renderer, w, r, http.StatusForbidden,
			"Forbidden", "You do not have access to this item.")
	case errors.Is(err, domain.ErrValidation):
		renderError(renderer, w, r, http.StatusBadRequest,
			"Bad request", "The submitted form could not be processed.")
	default:
		logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
		renderError(renderer, w, r, http.StatusInternalServerError,
			"Something went wrong", "An internal error occurred. Please try again.")
	}
}

// pathID extracts and checks a UUID path parameter. The empty-or-malformed
// case reads as "no such resource" to the user, not as a server fault.
func pathID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if err := uuid.Validate(id); err != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}
