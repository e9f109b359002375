// Package model provides the data types that flow through a build.
//
// A Story is constructed once per fetch, gets its category assigned by the
// category aggregator and is treated as immutable after that. Stories are
// passed by value; nothing here is persisted.
package model

import (
	"fmt"
	"time"
)

// DefaultTitle is used when a feed entry has no title.
const DefaultTitle = "Untitled"

// DateLayout is the display format for story dates.
const DateLayout = "Jan 02, 2006"

// Story is one normalized article derived from a feed entry.
type Story struct {
	Title         string
	Link          string // dedup key
	Description   string
	Source        string // human-readable feed name
	Published     time.Time
	Category      string
	CategoryLabel string

	// Derived display fields, relative to the run timestamp.
	HoursOld   float64
	TimeAgo    string
	IsNew      bool
	DateString string
}

// Age returns how long before now the story was published.
func (s Story) Age(now time.Time) time.Duration {
	return now.Sub(s.Published)
}

// Decorate computes the derived display fields relative to now.
// freshness is the age below which a story is flagged as new.
func (s Story) Decorate(now time.Time, freshness time.Duration) Story {
	age := s.Age(now)
	s.HoursOld = age.Hours()
	s.TimeAgo = TimeAgo(s.Published, now)
	s.IsNew = age < freshness
	s.DateString = s.Published.Format(DateLayout)
	return s
}

// WithCategory returns a copy of s assigned to the given category.
func (s Story) WithCategory(id, label string) Story {
	s.Category = id
	s.CategoryLabel = label
	return s
}

// TimeAgo renders a relative "time ago" label for t as seen from now.
// Anything older than a week falls back to an absolute date.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "min")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	default:
		return t.Format(DateLayout)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
