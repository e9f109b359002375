package render

import (
	"fmt"
	"time"

	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/model"
	"github.com/gorilla/feeds"
)

// FeedFormat is a syndication format written next to index.html.
type FeedFormat int

const (
	FeedRSS FeedFormat = iota
	FeedAtom
	FeedJSON
)

// FeedFormats lists every format in write order.
var FeedFormats = []FeedFormat{FeedRSS, FeedAtom, FeedJSON}

// FileName returns the output file for the format.
func (f FeedFormat) FileName() string {
	switch f {
	case FeedAtom:
		return "atom.xml"
	case FeedJSON:
		return "feed.json"
	default:
		return "feed.xml"
	}
}

// Feed builds the syndication feed of the given stories.
func Feed(site config.SiteConfig, stories []model.Story, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       site.Name,
		Link:        &feeds.Link{Href: site.URL + "/"},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Name},
		Created:     now,
		Updated:     now,
	}

	for _, s := range stories {
		item := &feeds.Item{
			Title:       s.Title,
			Link:        &feeds.Link{Href: s.Link},
			Description: s.Description,
			Author:      &feeds.Author{Name: s.Source},
			Created:     s.Published,
			Id:          s.Link,
		}
		feed.Items = append(feed.Items, item)
	}
	return feed
}

// EncodeFeed serializes feed in the given format.
func EncodeFeed(feed *feeds.Feed, format FeedFormat) (string, error) {
	var (
		out string
		err error
	)
	switch format {
	case FeedAtom:
		out, err = feed.ToAtom()
	case FeedJSON:
		out, err = feed.ToJSON()
	default:
		out, err = feed.ToRss()
	}
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", format.FileName(), err)
	}
	return out, nil
}
