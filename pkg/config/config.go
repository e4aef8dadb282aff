// Package config holds the nstreectl CLI's own configuration knobs.
//
// The engine itself is in-memory and non-persistent, so there is no
// data/config/cache directory here — only the handful of settings
// the CLI driver needs to boot a logger and pick an engine variant.
package config

import "os"

const (
	// AppName is the application name. The environment variables read
	// by New use the separate prefix NSTREE_.
	AppName = "nstreectl"
)

// Config holds nstreectl's runtime configuration.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFormat is "text" or "json".
	LogFormat string

	// Variant selects the tree variant the driver operates: "dt" or "ft".
	Variant string
}

// New creates a new Config with values from environment or defaults.
func New() *Config {
	return &Config{
		LogLevel:  envOrDefault("NSTREE_LOG_LEVEL", "info"),
		LogFormat: envOrDefault("NSTREE_LOG_FORMAT", "text"),
		Variant:   envOrDefault("NSTREE_VARIANT", "ft"),
	}
}

// envOrDefault returns the environment variable value or the default.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
