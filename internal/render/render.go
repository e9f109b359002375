// Package render turns aggregated stories into site artifacts: HTML pages
// from embedded templates, the sitemap, the JSON-LD record and syndication
// feeds. Nothing here selects or filters stories.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/model"
)

// Template names.
const (
	PageHome         = "page.html"
	PageArchive      = "archive.html"
	PageArchiveIndex = "archive_index.html"
)

// Display layouts for UpdatedAt.
const (
	HomeTimeLayout    = "January 02, 2006 at 15:04 UTC"
	ArchiveTimeLayout = "January 02, 2006"
)

//go:embed templates
var templateFS embed.FS

var tmplFuncs = template.FuncMap{
	"isoTime": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
}

// Renderer produces a text artifact from a named template and its data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Templates renders the embedded page templates.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses every page together with the shared partials.
func NewTemplates() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageHome, PageArchive, PageArchiveIndex} {
		tmpl, err := template.New(name).Funcs(tmplFuncs).ParseFS(templateFS, "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// Render executes the named page.
func (t *Templates) Render(name string, data any) (string, error) {
	tmpl, ok := t.pages[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// CategoryView is one category section on the home page.
type CategoryView struct {
	ID      string
	Label   string
	Stories []model.Story
}

// HomeData feeds page.html.
type HomeData struct {
	Site       config.SiteConfig
	TopStories []model.Story
	Categories []CategoryView
	UpdatedAt  string
	Year       int
}

// ArchiveData feeds archive.html.
type ArchiveData struct {
	Site      config.SiteConfig
	WeekID    string
	WeekLabel string
	Stories   []model.Story
	UpdatedAt string
	Year      int
}

// WeekLink is one row of the archive index.
type WeekLink struct {
	ID    string
	Label string
	File  string
}

// ArchiveIndexData feeds archive_index.html.
type ArchiveIndexData struct {
	Site  config.SiteConfig
	Weeks []WeekLink
	Year  int
}
