// Package config parses server options from LSP initializationOptions.
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config is the server configuration. TTL values of zero or less mean
// loaded schemas are never retained; a capacity of zero disables the schema
// cache. CacheDir is accepted for forward compatibility with disk-persistent
// caching but currently unused.
type Config struct {
	SchemaTTLSecs       int64  `json:"schema_ttl_secs"`
	SchemaCacheCapacity int    `json:"schema_cache_capacity"`
	CacheDir            string `json:"cache_dir"`
}

var defaultConfig = Config{
	SchemaTTLSecs:       28800, // 8 hours
	SchemaCacheCapacity: 128,
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// Load overlays the raw initializationOptions value onto the defaults.
// Unknown keys are ignored; a nil value yields the defaults.
func Load(v any) (Config, error) {
	cfg := defaultConfig
	if v == nil {
		return cfg, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal options: %w", err)
	}

	// only fields present in the source will overwrite.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}

	return cfg, nil
}

// SchemaTTL returns the schema time-to-live as a duration.
func (c Config) SchemaTTL() time.Duration {
	return time.Duration(c.SchemaTTLSecs) * time.Second
}
