package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	lightbox "github.com/alnah/go-lightbox"
)

// Sentinel errors for template rendering.
var (
	ErrPageRender  = errors.New("page template rendering failed")
	ErrLaTeXRender = errors.New("latex template rendering failed")
)

// PageData holds the values the HTML page template renders.
type PageData struct {
	Project     string
	Title       string
	Stylesheets []string // hrefs relative to the page
	Scripts     []string // srcs relative to the page
	Nav         htmltemplate.HTML
	Body        htmltemplate.HTML
}

// PageRenderer renders complete HTML pages from an html/template.
type PageRenderer struct {
	tmpl *htmltemplate.Template
}

// NewPageRenderer creates a PageRenderer from template content.
// Returns error if the template cannot be parsed.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := htmltemplate.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the page template. Body and Nav are trusted markup
// produced by the renderers in this package.
func (p *PageRenderer) Render(ctx context.Context, data *PageData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

// LaTeXData holds the values the LaTeX document template renders.
// Templates escape Title and Author with the "latex" function.
type LaTeXData struct {
	Title         string
	Author        string
	PaperSize     string
	PointSize     string
	DocumentClass string
	Body          string
}

// LaTeXDocument renders the LaTeX preamble and body from a text/template.
type LaTeXDocument struct {
	tmpl *template.Template
}

// NewLaTeXDocument creates a LaTeXDocument from template content.
func NewLaTeXDocument(tmplContent string) (*LaTeXDocument, error) {
	tmpl, err := template.New("latex").
		Funcs(template.FuncMap{"latex": lightbox.EscapeLaTeX}).
		Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing latex template: %w", err)
	}
	return &LaTeXDocument{tmpl: tmpl}, nil
}

// Render executes the LaTeX template.
func (d *LaTeXDocument) Render(ctx context.Context, data *LaTeXData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaTeXRender, err)
	}
	return buf.Bytes(), nil
}
