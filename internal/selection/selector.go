// Package selection narrows story lists with predicates and builds the
// top-story list on them.
package selection

import (
	"time"

	"github.com/abelbrown/techinsights/internal/model"
)

// Selector narrows a story list to matching stories.
// now is passed explicitly so every decision in a run uses the same instant.
type Selector interface {
	Match(s *model.Story, now time.Time) bool
}

// TimeSelector filters stories by age.
type TimeSelector struct {
	maxAge time.Duration // stories this old or older are excluded
}

// Within matches stories strictly younger than maxAge.
func Within(maxAge time.Duration) TimeSelector {
	return TimeSelector{maxAge: maxAge}
}

func (s TimeSelector) Match(story *model.Story, now time.Time) bool {
	return story.Age(now) < s.maxAge
}

// Apply filters stories through a selector, returning only matches.
// If selector is nil, returns a copy of all stories.
func Apply(stories []model.Story, selector Selector, now time.Time) []model.Story {
	result := make([]model.Story, 0, len(stories))
	for i := range stories {
		if selector == nil || selector.Match(&stories[i], now) {
			result = append(result, stories[i])
		}
	}
	return result
}
