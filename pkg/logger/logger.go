// Package logger provides the process-wide structured logger backed by
// zerolog. Init configures it once at startup; components pull tagged child
// loggers through With.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	instance = zerolog.New(os.Stdout).With().Timestamp().Logger()
	once     sync.Once
)

// Init configures the process logger. Level is one of trace, debug, info,
// warn, error (info when empty or unrecognised); pretty switches from JSON
// to human-friendly console output for local development. Only the first
// call has any effect.
func Init(level string, pretty bool) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		logger := zerolog.New(os.Stdout)
		if pretty {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		}

		instance = logger.Level(lvl).With().Timestamp().Caller().Logger()
	})
	return instance
}

// Get returns the process logger.
func Get() zerolog.Logger {
	return instance
}

// With returns the process logger tagged with a component name, so each
// service and repository can be told apart in the output.
func With(component string) zerolog.Logger {
	return instance.With().Str("component", component).Logger()
}
