// ABOUTME: TemplateEngine loads the embedded error page and renders it with Go's html/template.
// ABOUTME: Templates are embedded at compile time via go:embed for zero runtime path issues.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrorData holds the data passed to the error page.
type ErrorData struct {
	Status     int
	StatusText string
	Detail     string
	HomeHref   string
	SchoolName string
}

// TemplateEngine holds the parsed server-side templates.
type TemplateEngine struct {
	errorPage *template.Template
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
func NewTemplateEngine() (*TemplateEngine, error) {
	t, err := template.New("error.html").ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parsing template error.html: %w", err)
	}
	return &TemplateEngine{errorPage: t}, nil
}

// RenderError renders the error page with the given status. The page is
// buffered so a template failure never leaves a half-written response.
func (e *TemplateEngine) RenderError(w http.ResponseWriter, status int, data ErrorData) error {
	var buf bytes.Buffer
	if err := e.RenderErrorTo(&buf, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderErrorTo executes the error page and writes the result to an
// arbitrary io.Writer (useful for testing without HTTP).
func (e *TemplateEngine) RenderErrorTo(w io.Writer, data ErrorData) error {
	return e.errorPage.Execute(w, data)
}
