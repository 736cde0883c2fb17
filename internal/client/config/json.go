package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/flagx"
	"github.com/dmitrijs2005/gophconsole/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are timex.Duration, so "10s" and integer nanoseconds both work.
type JsonConfig struct {
	ServerURL            string         `json:"server_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	SessionBackend       string         `json:"session_backend"`
	SessionDSN           string         `json:"session_dsn"`
	RedisAddr            string         `json:"redis_addr"`
	SessionCheckInterval timex.Duration `json:"session_check_interval"`
	ExpiryWarnMinutes    int            `json:"expiry_warn_minutes"`
	LogLevel             string         `json:"log_level"`
	LogFormat            string         `json:"log_format"`
}

// parseJson overlays Config with the JSON file named by -c/-config. Keys
// missing from the file keep their current value. Read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.SessionBackend, jc.SessionBackend)
	setString(&cfg.SessionDSN, jc.SessionDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout.Duration)
	setDuration(&cfg.SessionCheckInterval, jc.SessionCheckInterval.Duration)
	if jc.ExpiryWarnMinutes > 0 {
		cfg.ExpiryWarnMinutes = jc.ExpiryWarnMinutes
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
