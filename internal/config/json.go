package config

import (
	"encoding/json"
	"os"

	"github.com/clauseguard/clauseguard/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so the file only overlays
// keys it actually sets.
type jsonConfig struct {
	CacheDir           *string `json:"cache_dir"`
	InMemory           *bool   `json:"in_memory"`
	MaxChatListEntries *int    `json:"max_chat_list_entries"`
	MaxChatMessages    *int    `json:"max_chat_messages"`
	BackendURL         *string `json:"backend_url"`
	BackendAPIKey      *string `json:"backend_api_key"`
}

// parseJSON overlays cfg with values loaded from the JSON file named via
// the -c/-config flags. No flag, no file, no overlay. Panics on a file
// that exists but cannot be read or parsed; a broken explicit config is a
// startup error, not something to limp past.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.CacheDir != nil {
		cfg.CacheDir = *jc.CacheDir
	}
	if jc.InMemory != nil {
		cfg.InMemory = *jc.InMemory
	}
	if jc.MaxChatListEntries != nil {
		cfg.MaxChatListEntries = *jc.MaxChatListEntries
	}
	if jc.MaxChatMessages != nil {
		cfg.MaxChatMessages = *jc.MaxChatMessages
	}
	if jc.BackendURL != nil {
		cfg.BackendURL = *jc.BackendURL
	}
	if jc.BackendAPIKey != nil {
		cfg.BackendAPIKey = *jc.BackendAPIKey
	}
}
