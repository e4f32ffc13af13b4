package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Filters are the vote/interest filters the news page accepts.
var Filters = []string{"all", "rising", "hot", "bullish", "bearish", "important", "saved", "lol"}

type Config struct {
	BaseURL string `yaml:"base_url"`
	RSSURL  string `yaml:"rss_url"`

	Filter string `yaml:"filter"`
	Topic  string `yaml:"topic,omitempty"`
	Limit  int    `yaml:"limit"`

	SavePath string `yaml:"save_path,omitempty"`
	Headless bool   `yaml:"headless"`

	FieldRetries int    `yaml:"field_retries"`
	RetryBackoff string `yaml:"retry_backoff"`

	RevealWait       string `yaml:"reveal_wait"`
	MaxStalls        int    `yaml:"max_stalls"`
	PageReadyTimeout string `yaml:"page_ready_timeout"`
}

func (c *Config) RetryBackoffDuration() time.Duration {
	return parseDuration(c.RetryBackoff, time.Second)
}

func (c *Config) RevealWaitDuration() time.Duration {
	return parseDuration(c.RevealWait, 2*time.Second)
}

func (c *Config) PageReadyDuration() time.Duration {
	return parseDuration(c.PageReadyTimeout, 30*time.Second)
}

// ResolvedSavePath returns the snapshot directory, defaulting under the
// xdg data home.
func (c *Config) ResolvedSavePath() string {
	if c.SavePath != "" {
		return c.SavePath
	}
	return filepath.Join(xdg.DataHome, "panicfeed", "news_data")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "panicfeed", "config.yaml")
}

// DefaultDBPath is where the export subcommand writes unless told
// otherwise.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "panicfeed", "panicfeed.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func Validate(cfg *Config) error {
	if cfg.Filter != "" && !ValidFilter(cfg.Filter) {
		return fmt.Errorf("unknown filter %q (valid: %v)", cfg.Filter, Filters)
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}
	for _, raw := range []string{cfg.BaseURL, cfg.RSSURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid url %q: %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("url scheme must be http or https, got %q", raw)
		}
	}
	return nil
}

// ValidFilter reports whether name is a known filter value.
func ValidFilter(name string) bool {
	for _, f := range Filters {
		if f == name {
			return true
		}
	}
	return false
}
