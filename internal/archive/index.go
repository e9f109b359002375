package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultDepth is how many weeks the index lists.
const DefaultDepth = 12

// Entry is one week in the archive index.
type Entry struct {
	ID    string
	Label string
	File  string
}

// Index lists the week pages in dir, newest first, at most depth of them.
//
// Names are compared as strings, which orders zero-padded week ids
// chronologically. The cap applies before parsing, so a stray file matching
// week-*.html but not a valid id takes a slot and is then skipped.
// The label keeps the week number as written in the file name.
// A missing directory is an empty archive.
func Index(dir string, depth int) ([]Entry, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "week-") || !strings.HasSuffix(name, FileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, FileExt))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if len(names) > depth {
		names = names[:depth]
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if _, err := ParseWeekID(name); err != nil {
			continue
		}
		parts := strings.Split(strings.TrimPrefix(name, "week-"), "-")
		entries = append(entries, Entry{
			ID:    name,
			Label: fmt.Sprintf("Week %s, %s", parts[1], parts[0]),
			File:  name + FileExt,
		})
	}
	return entries, nil
}

// IDs returns the ids of entries in order.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
