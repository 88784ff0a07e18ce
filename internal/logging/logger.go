// Package logging builds the slog loggers shared by the CLI, the HTTP server
// and the generators.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text logger writing to stderr so stdout stays free for
// rendered markup. The "error" key is normalised to "err".
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", raw)
	}
}

// EnvLevel names the environment variable LevelFromEnv reads.
const EnvLevel = "COMPOSITOR_LOG_LEVEL"

// LevelFromEnv parses $COMPOSITOR_LOG_LEVEL, falling back to info when it is
// unset or unknown.
func LevelFromEnv() slog.Level {
	level, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
