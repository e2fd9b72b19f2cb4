// Package view renders the HTML pages from templates embedded in the binary.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"compendi/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

// layoutName is the shared page frame every page template plugs into.
const layoutName = "layout.html"

// BasePage carries the data every page needs. Page data structs embed it.
type BasePage struct {
	Title string
	User  *models.User
	Flash *Flash
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every embedded page template against the shared layout.
// Funcs are available to all templates.
func NewRenderer(funcs template.FuncMap, logger *slog.Logger) (*Renderer, error) {
	entries, err := fs.ReadDir(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == layoutName || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New(layoutName).Funcs(funcs).ParseFS(templateFiles,
			"templates/"+layoutName, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page with the given status. Data must be the page's data
// struct (embedding BasePage).
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, layoutName, data); err != nil {
		// Headers are gone at this point; log and give up on the response
		r.logger.Error("render failed", "page", page, "error", err)
	}
}
