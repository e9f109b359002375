// Package feeds aggregates the configured sources of each category into a
// deduplicated, newest-first story list.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/fetch"
	"github.com/abelbrown/techinsights/internal/filter"
	"github.com/abelbrown/techinsights/internal/logging"
	"github.com/abelbrown/techinsights/internal/model"
)

// ErrUnknownCategory is returned for a category id missing from the config.
var ErrUnknownCategory = errors.New("unknown category")

// CategoryStories is the aggregated output of one category.
type CategoryStories struct {
	ID      string
	Label   string
	Stories []model.Story
}

// Aggregator fetches every source of a category and merges the results.
// Not safe for concurrent use; one Aggregator serves one run.
type Aggregator struct {
	cfg      *config.Config
	fetcher  fetch.Fetcher
	now      time.Time
	statuses []model.SourceStatus
}

// NewAggregator creates an aggregator for a run starting at now.
func NewAggregator(cfg *config.Config, fetcher fetch.Fetcher, now time.Time) *Aggregator {
	return &Aggregator{cfg: cfg, fetcher: fetcher, now: now}
}

// AggregateCategory fetches the sources of category id in configured order,
// drops stories whose link was already seen in this category (first source
// wins), sorts newest first and truncates to the per-category limit.
// The returned stories carry the category id and label.
func (a *Aggregator) AggregateCategory(ctx context.Context, id string) ([]model.Story, error) {
	cat, ok := a.cfg.Category(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}

	log := logging.WithPrefix(cat.ID)

	var all []model.Story
	for _, src := range cat.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("fetching", "source", src.Name)

		stories, status := fetch.FetchSource(ctx, a.fetcher, src, a.now)
		status.Category = cat.ID
		a.statuses = append(a.statuses, status)
		all = append(all, stories...)
	}

	merged := filter.Dedup(all)
	merged = filter.Limit(filter.SortNewest(merged), a.cfg.Limits.StoriesPerCategory)
	for i := range merged {
		merged[i] = merged[i].WithCategory(cat.ID, cat.Label)
	}

	log.Info("category aggregated", "fetched", len(all), "kept", len(merged))
	return merged, nil
}

// AggregateAll aggregates every configured category in configured order.
// Only context cancellation aborts it; feed failures yield empty categories.
func (a *Aggregator) AggregateAll(ctx context.Context) ([]CategoryStories, error) {
	result := make([]CategoryStories, 0, len(a.cfg.Categories))
	for _, cat := range a.cfg.Categories {
		stories, err := a.AggregateCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryStories{ID: cat.ID, Label: cat.Label, Stories: stories})
	}
	return result, nil
}

// SourceStatuses returns the outcome of every fetch made so far.
func (a *Aggregator) SourceStatuses() []model.SourceStatus {
	out := make([]model.SourceStatus, len(a.statuses))
	copy(out, a.statuses)
	return out
}

// FailedSources returns the statuses of fetches that errored.
func (a *Aggregator) FailedSources() []model.SourceStatus {
	var failed []model.SourceStatus
	for _, s := range a.statuses {
		if s.LastError != "" {
			failed = append(failed, s)
		}
	}
	return failed
}

// Flatten concatenates category stories in category order.
func Flatten(cats []CategoryStories) []model.Story {
	var all []model.Story
	for _, c := range cats {
		all = append(all, c.Stories...)
	}
	return all
}

// CategoryStats returns story counts by category id.
func CategoryStats(cats []CategoryStories) map[string]int {
	stats := make(map[string]int, len(cats))
	for _, c := range cats {
		stats[c.ID] = len(c.Stories)
	}
	return stats
}
