package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abelbrown/techinsights/internal/config"
)

// StructuredDataLayout is the dateModified format.
const StructuredDataLayout = "2006-01-02T15:04:05Z"

type webSite struct {
	Context         string       `json:"@context"`
	Type            string       `json:"@type"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	URL             string       `json:"url"`
	PotentialAction searchAction `json:"potentialAction"`
	Publisher       organization `json:"publisher"`
	DateModified    string       `json:"dateModified"`
}

type searchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StructuredData returns the schema.org WebSite record for the site.
// Only dateModified changes between runs.
func StructuredData(site config.SiteConfig, now time.Time) ([]byte, error) {
	doc := webSite{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.Name,
		Description: site.Description,
		URL:         site.URL,
		PotentialAction: searchAction{
			Type:       "SearchAction",
			Target:     site.URL + "/?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
		Publisher: organization{
			Type: "Organization",
			Name: site.Name,
			URL:  site.URL,
		},
		DateModified: now.UTC().Format(StructuredDataLayout),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode structured data: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
