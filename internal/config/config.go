// Package config holds the immutable configuration record for a build.
//
// Defaults live in code (DefaultConfig). A YAML file may override any part
// of them, and a handful of environment variables (optionally loaded from a
// .env file) override the site URL, output directory and log level.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abelbrown/techinsights/internal/model"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvSiteURL   = "TECHINSIGHTS_SITE_URL"
	EnvOutputDir = "TECHINSIGHTS_OUTPUT_DIR"
	EnvLogLevel  = "TECHINSIGHTS_LOG_LEVEL"
)

// Config is the build configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	OutputDir  string           `yaml:"output_dir"`
	LogLevel   string           `yaml:"log_level"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Limits     Limits           `yaml:"limits"`
	Categories []model.Category `yaml:"categories"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"` // no trailing slash
}

// FetchConfig controls feed retrieval.
type FetchConfig struct {
	Timeout      string `yaml:"timeout"`
	UserAgent    string `yaml:"user_agent"`
	HostInterval string `yaml:"host_interval"` // minimum spacing between requests to one host
	Burst        int    `yaml:"burst"`
}

// Limits are the numeric knobs of the selection pipeline.
type Limits struct {
	StoriesPerCategory int    `yaml:"stories_per_category"`
	DescriptionLength  int    `yaml:"description_length"`
	TopStories         int    `yaml:"top_stories"`
	TopPerCategory     int    `yaml:"top_per_category"`
	Freshness          string `yaml:"freshness"`
	TopWindow          string `yaml:"top_window"`
	ArchiveWindow      string `yaml:"archive_window"`
	ArchiveStories     int    `yaml:"archive_stories"`
	ArchiveDepth       int    `yaml:"archive_depth"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:        "Tech Insights",
			Description: "Daily curated news on AI, developer tools, and the tech industry",
			URL:         "https://aamar-shahzad.github.io/techInsights",
		},
		OutputDir: "docs",
		LogLevel:  "info",
		Fetch: FetchConfig{
			Timeout:      "30s",
			UserAgent:    "TechInsights/1.0 (+https://aamar-shahzad.github.io/techInsights)",
			HostInterval: "1s",
			Burst:        1,
		},
		Limits: Limits{
			StoriesPerCategory: 10,
			DescriptionLength:  200,
			TopStories:         10,
			TopPerCategory:     3,
			Freshness:          "6h",
			TopWindow:          "24h",
			ArchiveWindow:      "7d",
			ArchiveStories:     50,
			ArchiveDepth:       12,
		},
		Categories: DefaultCategories(),
	}
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "techinsights", "config.yaml")
}

// Load reads the YAML file at path on top of the defaults.
// An empty path means DefaultConfigPath; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads envFile (if present) into the process environment and
// applies the TECHINSIGHTS_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvSiteURL)); v != "" {
		c.Site.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	return nil
}

// Category returns the configured category with the given id.
func (c *Config) Category(id string) (model.Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

// CategoryIDs returns category ids in configured order.
func (c *Config) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

// FetchTimeout returns the per-request timeout, defaulting to 30s.
func (c *Config) FetchTimeout() time.Duration {
	return parseDuration(c.Fetch.Timeout, 30*time.Second)
}

// HostInterval returns the minimum spacing between requests to one host.
func (c *Config) HostInterval() time.Duration {
	return parseDuration(c.Fetch.HostInterval, time.Second)
}

// FreshnessWindow returns the age below which a story is flagged as new.
func (c *Config) FreshnessWindow() time.Duration {
	return parseDuration(c.Limits.Freshness, 6*time.Hour)
}

// TopWindow returns the recency window for top stories.
func (c *Config) TopWindow() time.Duration {
	return parseDuration(c.Limits.TopWindow, 24*time.Hour)
}

// ArchiveWindow returns the trailing window covered by a weekly archive.
func (c *Config) ArchiveWindow() time.Duration {
	return parseDuration(c.Limits.ArchiveWindow, 7*24*time.Hour)
}

// parseDuration returns the configured duration, or fallback when s is
// empty. Validate rejects values that do not parse, so the fallback for a
// bad value only applies to configs that skipped validation.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	d, err := parseDurationValue(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// parseDurationValue accepts Go durations plus an "Nd" day suffix.
func parseDurationValue(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// Validate checks categories, sources and limits.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("config: at least one category is required")
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %d: id is required", i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("category %q: duplicate id", cat.ID)
		}
		seen[cat.ID] = true
		if cat.Label == "" {
			return fmt.Errorf("category %q: label is required", cat.ID)
		}
		if len(cat.Sources) == 0 {
			return fmt.Errorf("category %q: at least one source is required", cat.ID)
		}
		for _, s := range cat.Sources {
			if s.Name == "" {
				return fmt.Errorf("category %q: source name is required", cat.ID)
			}
			u, err := url.Parse(s.URL)
			if err != nil {
				return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
			}
		}
	}

	l := c.Limits
	for name, v := range map[string]int{
		"stories_per_category": l.StoriesPerCategory,
		"description_length":   l.DescriptionLength,
		"top_stories":          l.TopStories,
		"top_per_category":     l.TopPerCategory,
		"archive_stories":      l.ArchiveStories,
		"archive_depth":        l.ArchiveDepth,
	} {
		if v <= 0 {
			return fmt.Errorf("limits.%s must be positive, got %d", name, v)
		}
	}

	for _, f := range []struct{ name, value string }{
		{"fetch.timeout", c.Fetch.Timeout},
		{"fetch.host_interval", c.Fetch.HostInterval},
		{"limits.freshness", l.Freshness},
		{"limits.top_window", l.TopWindow},
		{"limits.archive_window", l.ArchiveWindow},
	} {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		d, err := parseDurationValue(f.value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %q", f.name, f.value)
		}
	}
	return nil
}

// Marshal returns the configuration as YAML that Load accepts.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
