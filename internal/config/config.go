// Package config loads the paperscout configuration.
// Configuration is a TOML file; a missing file yields the defaults. The
// loaded Config is an immutable value handed to constructors, never
// ambient shared state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file consulted when --config is not given.
const DefaultPath = "paperscout.toml"

// Config holds every tunable of the pipeline.
type Config struct {
	// BaseURL is the papers listing site.
	BaseURL string `toml:"base_url"`

	// PapersDir is the root output directory; one subdirectory per month.
	PapersDir string `toml:"papers_dir"`

	// IndexFile is the aggregate index document path.
	IndexFile string `toml:"index_file"`

	// TrackerFile is the JSON ledger path.
	TrackerFile string `toml:"tracker_file"`

	// UserAgent is sent on every outbound HTTP request.
	UserAgent string `toml:"user_agent"`

	// PageTimeoutSec bounds listing and detail page fetches.
	PageTimeoutSec int `toml:"page_timeout_sec"`

	// DownloadTimeoutSec bounds a single PDF download.
	DownloadTimeoutSec int `toml:"download_timeout_sec"`

	// DelaySec is the politeness spacing between papers.
	DelaySec int `toml:"delay_sec"`

	// Models are the model candidates tried in order by the AI analyser.
	Models []string `toml:"models"`

	// FallbackKeywords drive the keyword relevance scoring when no model
	// credential is configured. The same list applies to every category.
	FallbackKeywords []string `toml:"fallback_keywords"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:            "https://huggingface.co/papers",
		PapersDir:          "papers",
		IndexFile:          "papers_index.md",
		TrackerFile:        "papers_tracker.json",
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		PageTimeoutSec:     30,
		DownloadTimeoutSec: 60,
		DelaySec:           2,
		Models: []string{
			"claude-3-5-sonnet-latest",
			"claude-3-5-haiku-latest",
		},
		FallbackKeywords: []string{
			"sales", "marketing", "customer", "support", "automation", "analytics",
		},
	}
}

// Load reads the config file at path, layering it over the defaults.
// A missing file at the default path is fine; a missing file at an
// explicitly requested path is an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// PageTimeout returns the page fetch timeout as a duration.
func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSec) * time.Second
}

// DownloadTimeout returns the download timeout as a duration.
func (c Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSec) * time.Second
}

// Delay returns the inter-paper politeness spacing as a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelaySec) * time.Second
}
