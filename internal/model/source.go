package model

// Source represents a feed source configuration.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Category is a topical bucket with an ordered list of sources.
// Source order establishes dedup priority within the category.
type Category struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Sources []Source `yaml:"sources"`
}

// SourceStatus tracks how a source behaved during a single run.
type SourceStatus struct {
	Name       string
	Category   string
	StoryCount int
	LastError  string
}
