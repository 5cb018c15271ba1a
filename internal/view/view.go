// Package view renders the server-side HTML pages. Templates are
// embedded so the binary is self-contained.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the named page templates; each is parsed together with the
// shared layout.
var pages = []string{
	"login", "signup", "home", "create_post", "edit_post",
	"view_post", "edit_comment", "user", "profile", "search_friends",
}

// PageData is the envelope every template receives.
type PageData struct {
	// Username of the viewer, "" when not logged in.
	Username string
	// Flashes queued by the previous request, if any.
	Flashes []string
	// ProfileImage of the viewer, for the navbar.
	ProfileImage *string
	// Data is the page-specific payload.
	Data any
}

// Renderer holds the parsed templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render writes a page. A missing template name is a programming error
// and renders as a 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data PageData) {
	t, ok := r.templates[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		// Headers already sent; nothing useful left to do.
		return
	}
}
