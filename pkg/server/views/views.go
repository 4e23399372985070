// Package views renders the HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/modelgate/modelgate/pkg/flash"
	"github.com/modelgate/modelgate/pkg/server/store"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Page carries everything a template can render: the signed-in login, any
// one-shot flash payloads, and the records for the page.
type Page struct {
	Title   string
	Login   string
	Flash   *flash.Message
	Errors  flash.Errors
	Old     map[string]string
	Records []store.Record
	Record  *store.Record
}

// OldOr returns the previously submitted value for a field, or the
// fallback when there is none.
func (p Page) OldOr(field, fallback string) string {
	if v, ok := p.Old[field]; ok {
		return v
	}
	return fallback
}

// View holds the parsed page templates.
type View struct {
	pages map[string]*template.Template
}

var pageNames = []string{"index", "show", "create", "edit", "login"}

// New parses the embedded templates.
func New() (*View, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(
			templateFiles,
			"templates/layout.html.tmpl",
			"templates/"+name+".html.tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &View{pages: pages}, nil
}

// Render writes a page to the response.
func (v *View) Render(w http.ResponseWriter, code int, name string, page Page) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	return tmpl.ExecuteTemplate(w, "layout.html.tmpl", page)
}
