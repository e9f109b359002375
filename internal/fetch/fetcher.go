// Package fetch retrieves RSS/Atom feeds and normalizes their entries into
// model.Story values.
//
// Fetching is per-source and failure-isolated: FetchSource turns any error
// into an empty result plus a logged warning, so one broken feed never
// aborts a category or a build.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abelbrown/techinsights/internal/httpclient"
	"github.com/abelbrown/techinsights/internal/logging"
	"github.com/abelbrown/techinsights/internal/model"
	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves the stories of one source.
// now is the run timestamp; it is used for missing dates and derived fields.
type Fetcher interface {
	Fetch(ctx context.Context, src model.Source, now time.Time) ([]model.Story, error)
}

// Options controls story normalization.
type Options struct {
	DescriptionLength int           // rune budget for descriptions
	Freshness         time.Duration // stories younger than this are flagged new
}

// DefaultOptions returns the standard normalization settings.
func DefaultOptions() Options {
	return Options{DescriptionLength: 200, Freshness: 6 * time.Hour}
}

// RSSFetcher retrieves feeds over HTTP and parses them with gofeed.
type RSSFetcher struct {
	client *httpclient.Client
	opts   Options
}

// NewRSSFetcher creates an RSSFetcher using client for requests.
// Zero fields of opts take their DefaultOptions value.
func NewRSSFetcher(client *httpclient.Client, opts Options) *RSSFetcher {
	def := DefaultOptions()
	if opts.DescriptionLength <= 0 {
		opts.DescriptionLength = def.DescriptionLength
	}
	if opts.Freshness <= 0 {
		opts.Freshness = def.Freshness
	}
	return &RSSFetcher{client: client, opts: opts}
}

// Fetch retrieves and normalizes the entries of src.
// Does NOT deduplicate - that is the category aggregator's job.
func (f *RSSFetcher) Fetch(ctx context.Context, src model.Source, now time.Time) ([]model.Story, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	resp, err := f.client.Get(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	stories := make([]model.Story, 0, len(feed.Items))
	for _, item := range feed.Items {
		if story, ok := Normalize(item, src, now, f.opts); ok {
			stories = append(stories, story)
		}
	}
	return stories, nil
}

// Normalize converts a gofeed.Item into a Story.
// Returns false for entries without a link.
func Normalize(item *gofeed.Item, src model.Source, now time.Time, opts Options) (model.Story, bool) {
	if item == nil {
		return model.Story{}, false
	}

	link := strings.TrimSpace(item.Link)
	if link == "" && len(item.Links) > 0 {
		link = strings.TrimSpace(item.Links[0])
	}
	if link == "" {
		return model.Story{}, false
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = model.DefaultTitle
	}

	// Prefer Description, fall back to full content
	desc := item.Description
	if strings.TrimSpace(desc) == "" {
		desc = item.Content
	}
	desc = Truncate(StripHTML(desc), opts.DescriptionLength)

	story := model.Story{
		Title:       title,
		Link:        link,
		Description: desc,
		Source:      src.Name,
		Published:   publishedAt(item, now),
	}
	return story.Decorate(now, opts.Freshness), true
}

// publishedAt resolves the entry timestamp: published, then updated,
// then the run time. Always UTC.
func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	default:
		return now.UTC()
	}
}

// FetchSource runs f for src and never fails: errors are logged and
// reported in the returned status, with an empty story slice.
func FetchSource(ctx context.Context, f Fetcher, src model.Source, now time.Time) ([]model.Story, model.SourceStatus) {
	status := model.SourceStatus{Name: src.Name}

	stories, err := f.Fetch(ctx, src, now)
	if err != nil {
		logging.Warn("feed fetch failed", "source", src.Name, "url", src.URL, "err", err)
		status.LastError = err.Error()
		return []model.Story{}, status
	}

	logging.Debug("feed fetched", "source", src.Name, "stories", len(stories))
	status.StoryCount = len(stories)
	return stories, status
}
