// Package config loads runtime settings for the rmosdesk CLI.
//
// Sources are applied in order: built-in defaults, then an optional JSON file
// (-c/-config), then command-line flags. Later sources take precedence.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the rmosdesk CLI.
//
// Fields:
//   - APIBaseURL: base URL of the reservation API host.
//   - AuthBaseURL: base URL of the token-issuing service.
//   - SessionFile: where the bearer token is persisted between runs.
//   - RequestTimeout: per-request deadline for API calls.
//   - NotificationTTL: how long a toast message stays visible.
//   - Verbose: enables debug logging.
type Config struct {
	APIBaseURL      string
	AuthBaseURL     string
	SessionFile     string
	RequestTimeout  time.Duration
	NotificationTTL time.Duration
	Verbose         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://frontapi.rmosweb.com"
	c.AuthBaseURL = "https://service.rmosweb.com"
	c.SessionFile = defaultSessionFile()
	c.RequestTimeout = 30 * time.Second
	c.NotificationTTL = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".rmosdesk-session.json"
	}
	return filepath.Join(dir, "rmosdesk", "session.json")
}
