// Package config loads runtime configuration for the console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-s string   session backend: sqlite, redis or memory
//	-d string   SQLite session database file
//	-r string   Redis address
//	-i int      session check interval (seconds)
//	-w int      expiry warning threshold (minutes)
//	-l string   log level
//	-f string   log format: text, json or zap
//
// # JSON schema
//
// Intervals are timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "session_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "session_check_interval": "30s",
//	  "expiry_warn_minutes": 5,
//	  "log_level": "debug",
//	  "log_format": "zap"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
