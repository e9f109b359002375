package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxSitemapWeeks caps the archive pages listed in the sitemap.
const MaxSitemapWeeks = 12

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the home page, the archive index and the given week pages
// (newest first, at most MaxSitemapWeeks). Every entry carries the run date.
func Sitemap(siteURL string, weekIDs []string, now time.Time) ([]byte, error) {
	lastMod := now.UTC().Format(time.DateOnly)

	set := urlset{
		Xmlns: sitemapNS,
		URLs: []sitemapURL{
			{Loc: siteURL + "/", LastMod: lastMod, ChangeFreq: "daily", Priority: "1.0"},
			{Loc: siteURL + "/archive/", LastMod: lastMod, ChangeFreq: "weekly", Priority: "0.8"},
		},
	}
	if len(weekIDs) > MaxSitemapWeeks {
		weekIDs = weekIDs[:MaxSitemapWeeks]
	}
	for _, id := range weekIDs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/archive/%s.html", siteURL, id),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
