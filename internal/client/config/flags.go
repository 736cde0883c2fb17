package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-s string   session backend: sqlite, redis or memory
//	-d string   SQLite session database file
//	-r string   Redis address
//	-i int      session check interval (seconds)
//	-w int      warn when the session expires within this many minutes
//	-l string   log level
//	-f string   log format: text, json or zap
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-r", "-i", "-w", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session backend (sqlite|redis|memory)")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "SQLite session database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	checkInterval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")
	fs.IntVar(&cfg.ExpiryWarnMinutes, "w", cfg.ExpiryWarnMinutes, "expiry warning threshold (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text|json|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.SessionCheckInterval = time.Duration(*checkInterval) * time.Second
}
