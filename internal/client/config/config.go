package config

import "time"

// Config holds runtime settings for the console.
//
// Fields:
//   - ServerURL: base URL of the REST backend.
//   - RequestTimeout: upper bound for one backend call.
//   - SessionBackend: where the session lives: "sqlite", "redis" or "memory".
//   - SessionDSN: SQLite database file for the sqlite backend.
//   - RedisAddr: host:port of Redis for the redis backend.
//   - SessionCheckInterval: how often the session watcher looks at expiry.
//   - ExpiryWarnMinutes: the watcher warns when fewer minutes remain.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	ServerURL            string
	RequestTimeout       time.Duration
	SessionBackend       string
	SessionDSN           string
	RedisAddr            string
	SessionCheckInterval time.Duration
	ExpiryWarnMinutes    int
	LogLevel             string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionBackend = "sqlite"
	c.SessionDSN = "data/session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.SessionCheckInterval = 30 * time.Second
	c.ExpiryWarnMinutes = 5
	c.LogLevel = "info"
	c.LogFormat = "text"
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
