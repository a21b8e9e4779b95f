// Package config loads runtime settings for the cache subsystem, layered
// the same way across entrypoints: built-in defaults, then a JSON file
// (if one is named via -c/-config), then command-line flags. Later sources
// take precedence over earlier ones.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the ClauseGuard cache subsystem.
//
// Fields:
//   - CacheDir: directory for the device-local key-value store.
//   - InMemory: run the store without disk persistence (testing/dev).
//   - MaxChatListEntries / MaxChatMessages: mirror-cache bounds.
//   - BackendURL / BackendAPIKey: managed-backend endpoint used by
//     guest-analysis migration; empty disables remote operations.
type Config struct {
	CacheDir           string
	InMemory           bool
	MaxChatListEntries int
	MaxChatMessages    int
	BackendURL         string
	BackendAPIKey      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CacheDir = defaultCacheDir()
	c.MaxChatListEntries = 50
	c.MaxChatMessages = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "clauseguard-cache"
	}
	return filepath.Join(base, "clauseguard")
}
