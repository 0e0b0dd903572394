package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// Renderer holds the parsed page templates, keyed by page name.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the given template filesystem. Each *.gohtml file under
// templates/ is one page.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[t.Name()] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. The template executes into a buffer first so
// a template error never leaves a half-written response.
func (rn *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := rn.pages[page+".gohtml"]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		slog.Error("rendering page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
