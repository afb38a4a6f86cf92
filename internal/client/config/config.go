package config

import "time"

// Config holds runtime settings for the prepa CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API; endpoint paths are resolved against it.
//   - RequestTimeout: upper bound of one API call, token refresh included.
//   - DatabasePath: SQLite file holding the persisted session.
//   - RequestsPerSecond: outbound rate limit; 0 disables it.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	DatabasePath      string
	RequestsPerSecond float64
	LogLevel          string
	LogBackend        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "session.db"
	c.RequestsPerSecond = 0
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
