package server

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page.html"

// page wraps rendered markup in the HTML document shell.
type page struct {
	tpl *pongo2.Template
}

func newPage() (*page, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: template fs: %w", err)
	}
	set := pongo2.NewSet("formkit", pongo2.NewFSLoader(sub))
	tpl, err := set.FromFile(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("server: parse %s: %w", pageTemplate, err)
	}
	return &page{tpl: tpl}, nil
}

// Render writes the document. body is inserted unescaped.
func (p *page) Render(w io.Writer, title, body string) error {
	err := p.tpl.ExecuteWriter(pongo2.Context{
		"title": title,
		"body":  body,
	}, w)
	if err != nil {
		return fmt.Errorf("server: execute %s: %w", pageTemplate, err)
	}
	return nil
}
