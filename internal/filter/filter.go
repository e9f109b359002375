// Package filter provides pure filter functions for stories.
// All functions are simple: []Story in, []Story out. No side effects, and
// the input slice is never modified.
package filter

import (
	"sort"
	"time"

	"github.com/abelbrown/techinsights/internal/model"
)

// ByAge removes stories whose age relative to now is maxAge or more.
func ByAge(stories []model.Story, maxAge time.Duration, now time.Time) []model.Story {
	if len(stories) == 0 {
		return []model.Story{}
	}

	result := make([]model.Story, 0, len(stories))
	for _, s := range stories {
		if s.Age(now) < maxAge {
			result = append(result, s)
		}
	}
	return result
}

// Dedup removes stories with duplicate links. First occurrence wins.
func Dedup(stories []model.Story) []model.Story {
	if len(stories) == 0 {
		return []model.Story{}
	}

	seen := make(map[string]bool, len(stories))
	result := make([]model.Story, 0, len(stories))
	for _, s := range stories {
		if seen[s.Link] {
			continue
		}
		seen[s.Link] = true
		result = append(result, s)
	}
	return result
}

// SortNewest returns a copy sorted by Published DESC.
// The sort is stable so equal timestamps keep their input order.
func SortNewest(stories []model.Story) []model.Story {
	result := make([]model.Story, len(stories))
	copy(result, stories)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Published.After(result[j].Published)
	})
	return result
}

// Limit returns at most n stories from the front of the slice.
func Limit(stories []model.Story, n int) []model.Story {
	if n < 0 {
		n = 0
	}
	if n > len(stories) {
		n = len(stories)
	}
	result := make([]model.Story, n)
	copy(result, stories[:n])
	return result
}

// Links returns the links of stories in order.
func Links(stories []model.Story) []string {
	links := make([]string, len(stories))
	for i, s := range stories {
		links[i] = s.Link
	}
	return links
}
