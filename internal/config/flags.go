package config

import (
	"flag"
	"os"

	"github.com/clauseguard/clauseguard/internal/flagx"
)

// parseFlags overlays cfg with values from command-line flags. Only the
// flags owned by this package are parsed; unrelated arguments (such as the
// cachectl subcommand) pass through untouched.
func parseFlags(cfg *Config) {
	allowed := []string{"-d", "-cache-dir", "-mem", "-backend-url", "-backend-key"}
	args := flagx.FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	dir := fs.String("cache-dir", cfg.CacheDir, "Directory for the local cache store")
	dirShort := fs.String("d", "", "Directory for the local cache store (short)")
	mem := fs.Bool("mem", cfg.InMemory, "Run the cache store in memory only")
	backendURL := fs.String("backend-url", cfg.BackendURL, "Managed backend URL")
	backendKey := fs.String("backend-key", cfg.BackendAPIKey, "Managed backend API key")

	_ = fs.Parse(args)

	if *dirShort != "" {
		cfg.CacheDir = *dirShort
	} else {
		cfg.CacheDir = *dir
	}
	cfg.InMemory = *mem
	cfg.BackendURL = *backendURL
	cfg.BackendAPIKey = *backendKey
}
