// Package archive builds the rolling weekly story snapshot and the index of
// previously written week pages.
//
// Week pages are named week-<ISO year>-<ISO week>.html. The names in the
// archive directory are the only record of which weeks exist; there is no
// separate index file to keep in sync.
package archive

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/abelbrown/techinsights/internal/filter"
	"github.com/abelbrown/techinsights/internal/model"
)

// FileExt is the extension of week pages.
const FileExt = ".html"

// Week numbers are always two digits so ids sort chronologically as strings.
var weekIDPattern = regexp.MustCompile(`^week-(\d{4})-(\d{2})$`)

// WeekID identifies an ISO calendar week.
type WeekID struct {
	Year int
	Week int
}

// WeekOf returns the ISO week containing now.
func WeekOf(now time.Time) WeekID {
	year, week := now.UTC().ISOWeek()
	return WeekID{Year: year, Week: week}
}

// ParseWeekID parses "week-2024-07" back into a WeekID.
func ParseWeekID(name string) (WeekID, error) {
	m := weekIDPattern.FindStringSubmatch(name)
	if m == nil {
		return WeekID{}, fmt.Errorf("invalid week id %q", name)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return WeekID{}, fmt.Errorf("invalid week number in %q", name)
	}
	return WeekID{Year: year, Week: week}, nil
}

// String returns the id, e.g. "week-2024-07".
func (w WeekID) String() string {
	return fmt.Sprintf("week-%d-%02d", w.Year, w.Week)
}

// Label returns the display label, e.g. "Week 7, 2024".
func (w WeekID) Label() string {
	return fmt.Sprintf("Week %d, %d", w.Week, w.Year)
}

// File returns the page file name.
func (w WeekID) File() string {
	return w.String() + FileExt
}

// Options controls the weekly snapshot.
type Options struct {
	Window     time.Duration // stories this old or older are left out
	MaxStories int
}

// DefaultOptions returns a 168h window capped at 50 stories.
func DefaultOptions() Options {
	return Options{Window: 7 * 24 * time.Hour, MaxStories: 50}
}

// Week is the snapshot written to one archive page.
type Week struct {
	ID      WeekID
	Stories []model.Story
}

// Aggregate builds the snapshot for the week containing now from every
// story of the run: stories younger than the window, newest first, one per
// link, at most MaxStories.
func Aggregate(stories []model.Story, now time.Time, opts Options) Week {
	if opts.Window <= 0 {
		opts.Window = DefaultOptions().Window
	}
	if opts.MaxStories <= 0 {
		opts.MaxStories = DefaultOptions().MaxStories
	}

	recent := filter.ByAge(stories, opts.Window, now)
	unique := filter.Dedup(filter.SortNewest(recent))
	return Week{
		ID:      WeekOf(now),
		Stories: filter.Limit(unique, opts.MaxStories),
	}
}
