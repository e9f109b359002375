package selection

import (
	"time"

	"github.com/abelbrown/techinsights/internal/filter"
	"github.com/abelbrown/techinsights/internal/model"
)

// Options controls top-story selection.
type Options struct {
	Count          int           // stories in the final list
	MaxPerCategory int           // diversity cap; <= 0 means the default 3
	Window         time.Duration // recency window; <= 0 means 24h
}

// DefaultOptions returns 10 stories, at most 3 per category, from the last day.
func DefaultOptions() Options {
	return Options{Count: 10, MaxPerCategory: 3, Window: 24 * time.Hour}
}

// TopStories picks a diversified highlight list from all category stories.
//
// Candidates are walked newest first. A candidate is accepted when its link
// has not been accepted yet, it is younger than the window, and its category
// is below the cap. Rejected candidates are dropped for good, even if slots
// remain at the end. The walk stops once Count stories are accepted.
func TopStories(stories []model.Story, now time.Time, opts Options) []model.Story {
	if opts.MaxPerCategory <= 0 {
		opts.MaxPerCategory = DefaultOptions().MaxPerCategory
	}
	if opts.Window <= 0 {
		opts.Window = DefaultOptions().Window
	}
	if opts.Count <= 0 || len(stories) == 0 {
		return []model.Story{}
	}

	// Recency does not depend on earlier picks.
	candidates := Apply(filter.SortNewest(stories), Within(opts.Window), now)
	seen := make(map[string]bool)
	perCategory := make(map[string]int)
	top := make([]model.Story, 0, opts.Count)

	for _, s := range candidates {
		if seen[s.Link] {
			continue
		}
		if perCategory[s.Category] >= opts.MaxPerCategory {
			continue
		}

		seen[s.Link] = true
		perCategory[s.Category]++
		top = append(top, s)
		if len(top) >= opts.Count {
			break
		}
	}

	return filter.SortNewest(top)
}
