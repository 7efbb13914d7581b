// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects log output: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxSessions bounds live sessions; the least recently used is evicted.
	MaxSessions int `koanf:"max_sessions"`

	// SessionIdleTTLMS expires sessions untouched for this long. 0 disables expiry.
	SessionIdleTTLMS int `koanf:"session_idle_ttl_ms"`

	// SweepIntervalMS sets how often idle sessions are swept.
	SweepIntervalMS int `koanf:"sweep_interval_ms"`

	// DedupeSize bounds the remembered message ids.
	DedupeSize int `koanf:"dedupe_size"`

	// AllowedOrigins lists CORS origins for the JSON API.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxSessions:      10_000,
		SessionIdleTTLMS: 2 * 60 * 60 * 1000,
		SweepIntervalMS:  60 * 1000,
		DedupeSize:       100_000,
		AllowedOrigins:   []string{"*"},
	}
}
