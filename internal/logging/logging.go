// Package logging builds the slog loggers used by the cutscene tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelOff filters out every record.
const LevelOff = slog.Level(100)

// NewLogger returns a logger writing to stderr, keeping stdout for
// command output. format is "text" or "json".
func NewLogger(level slog.Level, format string) *slog.Logger {
	return NewLoggerWithWriter(level, format, os.Stderr)
}

// NewLoggerWithWriter is NewLogger with a custom destination.
func NewLoggerWithWriter(level slog.Level, format string, w io.Writer) *slog.Logger {
	if level >= LevelOff {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a config or flag value to a level.
// Unknown values are Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off", "none":
		return LevelOff
	default:
		return slog.LevelInfo
	}
}
