// Package web holds the page templates and the static assets, both compiled
// into the binary.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Fragment names that can be rendered on their own.
const (
	FragmentGallery = "gallery"
)

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("_root").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Page renders the full document.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, "base", data)
}

// Fragment renders a single named block, for htmx swaps.
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	return r.execute(w, name, data)
}

// execute renders into a buffer first so a failing template never leaves
// half a page on the wire.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the embedded assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the directory is embedded above
	}
	return sub
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// safeHTML marks markdown already sanitised at load time.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"anchor":   func(id string) string { return "#" + strings.TrimPrefix(id, "#") },
		"pillClass": func(color string) string {
			if color == "" {
				return "pill"
			}
			return "pill " + color
		},
	}
}
