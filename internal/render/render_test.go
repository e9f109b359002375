package render

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/model"
)

var now = time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)

var site = config.SiteConfig{
	Name:        "Tech Insights",
	Description: "Daily curated news",
	URL:         "https://example.github.io/techInsights",
}

func newTemplates(t *testing.T) *Templates {
	t.Helper()
	tmpl, err := NewTemplates()
	if err != nil {
		t.Fatalf("NewTemplates: %v", err)
	}
	return tmpl
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func sampleStory(link, title string, isNew bool) model.Story {
	return model.Story{
		Title:         title,
		Link:          link,
		Description:   "About " + title,
		Source:        "Example",
		Published:     now.Add(-time.Hour),
		Category:      "ai",
		CategoryLabel: "AI",
		TimeAgo:       "1 hour ago",
		IsNew:         isNew,
		DateString:    "Jun 01, 2024",
	}
}

func TestRenderHome(t *testing.T) {
	tmpl := newTemplates(t)

	data := HomeData{
		Site:       site,
		TopStories: []model.Story{sampleStory("https://a.example/1", "First <b>story</b>", true)},
		Categories: []CategoryView{
			{ID: "ai", Label: "AI", Stories: []model.Story{
				sampleStory("https://a.example/1", "First", true),
				sampleStory("https://a.example/2", "Second", false),
			}},
			{ID: "security", Label: "Security"},
		},
		UpdatedAt: now.Format(HomeTimeLayout),
		Year:      2024,
	}

	out, err := tmpl.Render(PageHome, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, out)

	if n := doc.Find("#top-stories .story").Length(); n != 1 {
		t.Errorf("expected 1 top story, got %d", n)
	}
	if got := doc.Find("#top-stories h3 a").First().Text(); got != "First <b>story</b>" {
		t.Errorf("title should be escaped text, got %q", got)
	}
	if n := doc.Find("#ai .story").Length(); n != 2 {
		t.Errorf("expected 2 ai stories, got %d", n)
	}
	if n := doc.Find("#ai .badge").Length(); n != 1 {
		t.Errorf("expected 1 NEW badge, got %d", n)
	}
	if got := doc.Find("#security .empty").Length(); got != 1 {
		t.Error("empty category should show placeholder")
	}
	if !strings.Contains(out, "June 01, 2024 at 12:30 UTC") {
		t.Error("missing updated timestamp")
	}
	if href, _ := doc.Find("#ai .story a").First().Attr("href"); href != "https://a.example/1" {
		t.Errorf("unexpected href %q", href)
	}
	if dt, _ := doc.Find("#ai time").First().Attr("datetime"); dt != "2024-06-01T11:30:45Z" {
		t.Errorf("unexpected datetime %q", dt)
	}
}

func TestRenderArchive(t *testing.T) {
	tmpl := newTemplates(t)

	out, err := tmpl.Render(PageArchive, ArchiveData{
		Site:      site,
		WeekID:    "week-2024-22",
		WeekLabel: "Week 22, 2024",
		Stories:   []model.Story{sampleStory("https://a.example/1", "One", false)},
		UpdatedAt: now.Format(ArchiveTimeLayout),
		Year:      2024,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, out)

	if got := doc.Find("h1").Text(); got != "Week 22, 2024" {
		t.Errorf("unexpected heading %q", got)
	}
	if doc.Find("#week-2024-22").Length() != 1 {
		t.Error("missing week id")
	}
	if n := doc.Find(".story").Length(); n != 1 {
		t.Errorf("expected 1 story, got %d", n)
	}
}

func TestRenderArchiveIndex(t *testing.T) {
	tmpl := newTemplates(t)

	out, err := tmpl.Render(PageArchiveIndex, ArchiveIndexData{
		Site: site,
		Weeks: []WeekLink{
			{ID: "week-2024-22", Label: "Week 22, 2024", File: "week-2024-22.html"},
			{ID: "week-2024-21", Label: "Week 21, 2024", File: "week-2024-21.html"},
		},
		Year: 2024,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, out)

	links := doc.Find(".weeks a")
	if links.Length() != 2 {
		t.Fatalf("expected 2 weeks, got %d", links.Length())
	}
	if href, _ := links.First().Attr("href"); href != "week-2024-22.html" {
		t.Errorf("unexpected href %q", href)
	}

	out, err = tmpl.Render(PageArchiveIndex, ArchiveIndexData{Site: site, Year: 2024})
	if err != nil {
		t.Fatalf("Render empty: %v", err)
	}
	if parse(t, out).Find(".weeks .empty").Length() != 1 {
		t.Error("empty archive should show placeholder")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := newTemplates(t).Render("nope.html", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap(site.URL, []string{"week-2024-22", "week-2024-21"}, now)
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	if !strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing xml header")
	}

	var set urlset
	if err := xml.Unmarshal(out, &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if set.Xmlns != sitemapNS {
		t.Errorf("unexpected namespace %q", set.Xmlns)
	}

	want := []sitemapURL{
		{site.URL + "/", "2024-06-01", "daily", "1.0"},
		{site.URL + "/archive/", "2024-06-01", "weekly", "0.8"},
		{site.URL + "/archive/week-2024-22.html", "2024-06-01", "monthly", "0.6"},
		{site.URL + "/archive/week-2024-21.html", "2024-06-01", "monthly", "0.6"},
	}
	if len(set.URLs) != len(want) {
		t.Fatalf("expected %d urls, got %d", len(want), len(set.URLs))
	}
	for i := range want {
		if set.URLs[i] != want[i] {
			t.Errorf("url %d = %+v, want %+v", i, set.URLs[i], want[i])
		}
	}
}

func TestSitemapCapsWeeks(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = "week-2024-01"
	}
	out, err := Sitemap(site.URL, ids, now)
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	var set urlset
	if err := xml.Unmarshal(out, &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(set.URLs) != 2+MaxSitemapWeeks {
		t.Errorf("expected %d urls, got %d", 2+MaxSitemapWeeks, len(set.URLs))
	}
}

func TestStructuredData(t *testing.T) {
	out, err := StructuredData(site, now)
	if err != nil {
		t.Fatalf("StructuredData: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["@type"] != "WebSite" || doc["@context"] != "https://schema.org" {
		t.Errorf("unexpected type %v", doc["@type"])
	}
	if doc["dateModified"] != "2024-06-01T12:30:45Z" {
		t.Errorf("unexpected dateModified %v", doc["dateModified"])
	}
	action := doc["potentialAction"].(map[string]any)
	if action["target"] != site.URL+"/?q={search_term_string}" {
		t.Errorf("unexpected target %v", action["target"])
	}
	if action["query-input"] != "required name=search_term_string" {
		t.Errorf("unexpected query-input %v", action["query-input"])
	}
	publisher := doc["publisher"].(map[string]any)
	if publisher["@type"] != "Organization" || publisher["url"] != site.URL {
		t.Errorf("unexpected publisher %v", publisher)
	}
	if !strings.Contains(string(out), "\n  \"name\"") {
		t.Error("expected two-space indentation")
	}
}

func TestStructuredDataOnlyTimestampChanges(t *testing.T) {
	a, _ := StructuredData(site, now)
	b, _ := StructuredData(site, now.Add(48*time.Hour))

	la := strings.Split(string(a), "\n")
	lb := strings.Split(string(b), "\n")
	if len(la) != len(lb) {
		t.Fatal("shape changed between runs")
	}
	diff := 0
	for i := range la {
		if la[i] != lb[i] {
			diff++
			if !strings.Contains(la[i], "dateModified") {
				t.Errorf("unexpected change in line %q", la[i])
			}
		}
	}
	if diff != 1 {
		t.Errorf("expected 1 changed line, got %d", diff)
	}
}

func TestFeedFormats(t *testing.T) {
	stories := []model.Story{
		sampleStory("https://a.example/1", "One", true),
		sampleStory("https://a.example/2", "Two", false),
	}
	feed := Feed(site, stories, now)

	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}

	tests := []struct {
		format FeedFormat
		file   string
		marker string
	}{
		{FeedRSS, "feed.xml", "<rss"},
		{FeedAtom, "atom.xml", "<feed"},
		{FeedJSON, "feed.json", `"version"`},
	}
	for _, tt := range tests {
		if got := tt.format.FileName(); got != tt.file {
			t.Errorf("FileName = %q, want %q", got, tt.file)
		}
		out, err := EncodeFeed(feed, tt.format)
		if err != nil {
			t.Fatalf("EncodeFeed(%s): %v", tt.file, err)
		}
		if !strings.Contains(out, tt.marker) {
			t.Errorf("%s missing %s", tt.file, tt.marker)
		}
		if !strings.Contains(out, "https://a.example/2") {
			t.Errorf("%s missing story link", tt.file)
		}
	}
}
