package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// ErrPageRender indicates the HTML page template failed to compile or execute.
var ErrPageRender = errors.New("page template rendering failed")

// TOCEntry is one line of the page's table of contents.
type TOCEntry struct {
	Level int
	ID    string
	Text  string
}

// CSSVar mirrors a theme custom property.
type CSSVar struct {
	Name  string
	Value string
}

// PageMeta is the front matter shown in the page header.
type PageMeta struct {
	Title    string
	Version  string
	Owner    string
	Subtitle string
	Footer   string
}

// PageData holds everything the page template can reference.
type PageData struct {
	Meta      PageMeta
	Reviewed  string // last_reviewed, already formatted
	Brand     string
	Logo      string // Relative to the HTML file; empty = no logo
	Vars      []CSSVar
	Style     string // Base stylesheet
	Highlight string // Code highlighting stylesheet
	TOC       []TOCEntry
	Body      string // Sanitized fragment
}

// PageRenderer executes a compiled pongo2 page template.
type PageRenderer struct {
	tmpl *pongo2.Template
}

// NewPageRenderer compiles the page template.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := pongo2.FromString(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render produces the complete HTML document.
func (r *PageRenderer) Render(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrPageRender)
	}

	vars := make([]CSSVar, len(data.Vars))
	for i, v := range data.Vars {
		vars[i] = CSSVar{Name: v.Name, Value: sanitizeCSS(v.Value)}
	}

	out, err := r.tmpl.Execute(pongo2.Context{
		"meta":      data.Meta,
		"reviewed":  data.Reviewed,
		"brand":     data.Brand,
		"logo":      data.Logo,
		"vars":      vars,
		"style":     sanitizeCSS(data.Style),
		"highlight": sanitizeCSS(data.Highlight),
		"toc":       data.TOC,
		"body":      data.Body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return out, nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
