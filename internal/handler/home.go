package handler

import (
	"io"
	"net/http"

	"compendi/internal/view"
)

// HomeHandler serves the public landing page and the health check.
type HomeHandler struct {
	renderer *view.Renderer
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(renderer *view.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// HomePage is the landing template's data.
type HomePage struct {
	view.BasePage
}

// Home renders the landing page.
// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	// The catch-all pattern also matches unknown paths
	if r.URL.Path != "/" {
		renderError(h.renderer, w, r, http.StatusNotFound,
			"Not found", "The page you asked for does not exist.")
		return
	}

	h.renderer.Render(w, http.StatusOK, "home.html", HomePage{
		BasePage: basePage(w, r, "Home"),
	})
}

// Health responds to liveness probes.
// GET /healthz
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
