// ABOUTME: Renders a page Document to HTML5 markup through an embedded html/template.
// ABOUTME: Section bodies are authored as markdown and converted with goldmark; output is byte-stable.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/2389-research/brightpath/site"
	"github.com/2389-research/brightpath/site/export"
	"github.com/yuin/goldmark"
)

//go:embed templates/page.html
var templateFS embed.FS

// Format names an output rendition of the page.
type Format string

const (
	FormatHTML     Format = "html"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a format name the renderer does not support.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat maps a user-supplied name onto a Format. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "html":
		return FormatHTML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType returns the HTTP content type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Renderer emits a Document as markup. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown

	frameworkURL    string
	frameworkForced bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFrameworkURL replaces the styling framework reference declared by the
// document. An empty URL drops the reference and the page renders unstyled.
func WithFrameworkURL(url string) Option {
	return func(r *Renderer) {
		r.frameworkURL = url
		r.frameworkForced = true
	}
}

// New parses the embedded page template and returns a ready-to-use renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{md: goldmark.New()}
	for _, opt := range opts {
		opt(r)
	}

	funcs := template.FuncMap{
		"markdown": r.markdownToHTML,
	}
	t, err := template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	r.tmpl = t
	return r, nil
}

// frameworkView is the template's view of the styling collaborator.
type frameworkView struct {
	URL        string
	Stylesheet bool
}

// pageView is the data handed to the page template.
type pageView struct {
	Lang      string
	Title     string
	Framework *frameworkView
	BodyClass string
	Sections  []site.PageSection
}

// Document applies the renderer's options to doc and returns the document
// that will actually be emitted.
func (r *Renderer) Document(doc site.Document) site.Document {
	if r.frameworkForced {
		doc.Framework.URL = r.frameworkURL
		if doc.Framework.Kind == "" {
			doc.Framework.Kind = "script"
		}
	}
	return doc
}

// Render writes the HTML5 document for doc to w.
func (r *Renderer) Render(w io.Writer, doc site.Document) error {
	doc = r.Document(doc)

	view := pageView{
		Lang:      doc.Lang,
		Title:     doc.Title,
		BodyClass: doc.BodyStyle.Class,
		Sections:  doc.Sections,
	}
	if view.Lang == "" {
		view.Lang = "en"
	}
	if doc.Framework.URL != "" {
		view.Framework = &frameworkView{
			URL:        doc.Framework.URL,
			Stylesheet: doc.Framework.Kind == "stylesheet",
		}
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// Bytes renders doc into a byte slice.
func (r *Renderer) Bytes(doc site.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderFormat renders doc in the requested format. It matches RenderFunc so
// it can sit behind a RenderCache.
func (r *Renderer) RenderFormat(ctx context.Context, doc site.Document, format Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case FormatHTML:
		return r.Bytes(doc)
	case FormatYAML:
		out, err := export.ExportYAML(r.Document(doc))
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case FormatMarkdown:
		return []byte(export.ExportMarkdown(r.Document(doc))), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// markdownToHTML converts a markdown body to HTML using goldmark.
// Raw HTML in the input is not rendered.
func (r *Renderer) markdownToHTML(input string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(strings.TrimRight(buf.String(), "\n")), nil
}
