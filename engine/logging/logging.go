// Package logging builds the zerolog loggers shared by the viewer's components.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Format selects the log line encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn or error (default: info)
	Format Format // console or json (default: console)
	Output io.Writer
}

// DefaultConfig returns console output at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates the application logger. Components derive from it with Component.
// The logger itself passes every level. cfg.Level becomes the process-wide threshold,
// which SetLevel can later raise or lower.
func New(cfg Config) zerolog.Logger {
	SetLevel(cfg.Level)
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).
		Level(zerolog.TraceLevel).
		With().
		Timestamp().
		Str("app", "oxy-view").
		Logger()
}

// Component returns a child logger tagged with the component field.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// SetLevel changes the process-wide minimum level. Safe to call while loggers are in use.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}
