// Package views renders the single upload page. Each workflow state has its
// own panel template; the layout renders exactly one of them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"alfredoptarigan/product-sheet-extractor/internal/workflow"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var panels = map[workflow.State]string{
	workflow.StateIdle:    "idle.html",
	workflow.StateLoading: "loading.html",
	workflow.StateResults: "results.html",
	workflow.StateError:   "error.html",
}

// Page is the data passed to the layout.
type Page struct {
	Title      string
	Theme      string
	ThemeClass string
	workflow.Snapshot
}

type Renderer struct {
	pages map[workflow.State]*template.Template
}

// NewRenderer parses the layout once and clones it for every panel.
func NewRenderer() (*Renderer, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[workflow.State]*template.Template, len(panels))
	for state, name := range panels {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[state] = t
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	t, ok := r.pages[page.State]
	if !ok {
		return fmt.Errorf("no panel for state %q", page.State)
	}
	return t.ExecuteTemplate(w, "layout", page)
}
