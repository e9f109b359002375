// Package site runs one build: aggregate, select, render and write every
// artifact of the static site.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/techinsights/internal/archive"
	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/feeds"
	"github.com/abelbrown/techinsights/internal/fetch"
	"github.com/abelbrown/techinsights/internal/filter"
	"github.com/abelbrown/techinsights/internal/logging"
	"github.com/abelbrown/techinsights/internal/model"
	"github.com/abelbrown/techinsights/internal/render"
	"github.com/abelbrown/techinsights/internal/selection"
)

// Output file names under the output root.
const (
	FileHome           = "index.html"
	FileSitemap        = "sitemap.xml"
	FileStructuredData = "structured-data.json"
	DirArchive         = "archive"
	FileArchiveIndex   = "index.html"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Artifact is one file written by a build.
type Artifact struct {
	Path  string // relative to the output root
	Bytes int
}

// CategoryCount is the number of stories kept for a category.
type CategoryCount struct {
	ID      string
	Label   string
	Stories int
}

// Report summarizes a build.
type Report struct {
	RunID        string
	Now          time.Time
	OutputDir    string
	Categories   []CategoryCount
	TopStories   int
	Week         string
	WeekStories  int
	ArchiveWeeks []string
	Artifacts    []Artifact
	Sources      []model.SourceStatus // every fetch, in configured order
	Failures     []model.SourceStatus
}

// TotalBytes is the size of everything written.
func (r *Report) TotalBytes() int {
	n := 0
	for _, a := range r.Artifacts {
		n += a.Bytes
	}
	return n
}

// Builder wires the pipeline together for one configuration.
type Builder struct {
	cfg      *config.Config
	fetcher  fetch.Fetcher
	renderer render.Renderer
}

// NewBuilder creates a builder.
func NewBuilder(cfg *config.Config, fetcher fetch.Fetcher, renderer render.Renderer) *Builder {
	return &Builder{cfg: cfg, fetcher: fetcher, renderer: renderer}
}

// Build runs the whole pipeline with now as the single reference time.
// Feed failures are recorded in the report; only cancellation, rendering
// and filesystem errors abort the build.
func (b *Builder) Build(ctx context.Context, now time.Time) (*Report, error) {
	now = now.UTC()
	report := &Report{
		RunID:     uuid.NewString(),
		Now:       now,
		OutputDir: b.cfg.OutputDir,
	}
	log := logging.With("run", report.RunID[:8])
	log.Info("build started", "output", b.cfg.OutputDir, "categories", strings.Join(b.cfg.CategoryIDs(), ","))

	agg := feeds.NewAggregator(b.cfg, b.fetcher, now)
	cats, err := agg.AggregateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	report.Sources = agg.SourceStatuses()
	report.Failures = agg.FailedSources()
	counts := feeds.CategoryStats(cats)
	views := make([]render.CategoryView, len(cats))
	for i, c := range cats {
		views[i] = render.CategoryView{ID: c.ID, Label: c.Label, Stories: c.Stories}
		report.Categories = append(report.Categories, CategoryCount{ID: c.ID, Label: c.Label, Stories: counts[c.ID]})
	}
	all := feeds.Flatten(cats)

	top := selection.TopStories(all, now, selection.Options{
		Count:          b.cfg.Limits.TopStories,
		MaxPerCategory: b.cfg.Limits.TopPerCategory,
		Window:         b.cfg.TopWindow(),
	})
	report.TopStories = len(top)
	log.Info("top stories selected", "count", len(top), "candidates", len(all))
	log.Debug("top stories", "links", filter.Links(top))

	if err := os.MkdirAll(filepath.Join(b.cfg.OutputDir, DirArchive), dirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	home := render.HomeData{
		Site:       b.cfg.Site,
		TopStories: top,
		Categories: views,
		UpdatedAt:  now.Format(render.HomeTimeLayout),
		Year:       now.Year(),
	}
	if err := b.renderPage(report, FileHome, render.PageHome, home); err != nil {
		return nil, err
	}

	week := archive.Aggregate(all, now, archive.Options{
		Window:     b.cfg.ArchiveWindow(),
		MaxStories: b.cfg.Limits.ArchiveStories,
	})
	report.Week = week.ID.String()
	report.WeekStories = len(week.Stories)
	weekPage := render.ArchiveData{
		Site:      b.cfg.Site,
		WeekID:    week.ID.String(),
		WeekLabel: week.ID.Label(),
		Stories:   week.Stories,
		UpdatedAt: now.Format(render.ArchiveTimeLayout),
		Year:      now.Year(),
	}
	if err := b.renderPage(report, filepath.Join(DirArchive, week.ID.File()), render.PageArchive, weekPage); err != nil {
		return nil, err
	}

	// The scan runs after the current week is written so it is always listed.
	entries, err := archive.Index(filepath.Join(b.cfg.OutputDir, DirArchive), b.cfg.Limits.ArchiveDepth)
	if err != nil {
		return nil, err
	}
	report.ArchiveWeeks = archive.IDs(entries)
	links := make([]render.WeekLink, len(entries))
	for i, e := range entries {
		links[i] = render.WeekLink{ID: e.ID, Label: e.Label, File: e.File}
	}
	index := render.ArchiveIndexData{Site: b.cfg.Site, Weeks: links, Year: now.Year()}
	if err := b.renderPage(report, filepath.Join(DirArchive, FileArchiveIndex), render.PageArchiveIndex, index); err != nil {
		return nil, err
	}

	sitemap, err := render.Sitemap(b.cfg.Site.URL, report.ArchiveWeeks, now)
	if err != nil {
		return nil, err
	}
	if err := b.write(report, FileSitemap, sitemap); err != nil {
		return nil, err
	}

	structured, err := render.StructuredData(b.cfg.Site, now)
	if err != nil {
		return nil, err
	}
	if err := b.write(report, FileStructuredData, structured); err != nil {
		return nil, err
	}

	feed := render.Feed(b.cfg.Site, top, now)
	for _, format := range render.FeedFormats {
		out, err := render.EncodeFeed(feed, format)
		if err != nil {
			return nil, err
		}
		if err := b.write(report, format.FileName(), []byte(out)); err != nil {
			return nil, err
		}
	}

	log.Info("build finished",
		"week", report.Week,
		"artifacts", len(report.Artifacts),
		"failed_sources", len(report.Failures),
	)
	return report, nil
}

func (b *Builder) renderPage(report *Report, rel, name string, data any) error {
	out, err := b.renderer.Render(name, data)
	if err != nil {
		return err
	}
	return b.write(report, rel, []byte(out))
}

func (b *Builder) write(report *Report, rel string, data []byte) error {
	path := filepath.Join(b.cfg.OutputDir, rel)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	logging.Debug("wrote artifact", "path", path, "bytes", len(data))
	report.Artifacts = append(report.Artifacts, Artifact{Path: rel, Bytes: len(data)})
	return nil
}
