// Package logging builds the process logger. The TUI owns the terminal, so
// records go to a file under the config dir.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const FileName = "planner.log"

type Options struct {
	// Level is debug, info, warn or error. Empty falls back to
	// PLANNER_LOG_LEVEL, then info.
	Level string
	// Format is text or json. Empty falls back to PLANNER_LOG_FORMAT.
	Format string
	// Dir holds planner.log. Empty discards all records.
	Dir string
}

// ParseLevel maps a level name to a slog level; unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger and a close func for its sink. A sink that cannot be
// opened degrades to a discarding logger.
func New(o Options) (*slog.Logger, func() error) {
	level := o.Level
	if level == "" {
		level = os.Getenv("PLANNER_LOG_LEVEL")
	}
	format := o.Format
	if format == "" {
		format = os.Getenv("PLANNER_LOG_FORMAT")
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(o.Dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				w = f
				closeFn = f.Close
			}
		}
	}
	return NewWriter(w, level, format), closeFn
}

// NewWriter builds a logger on w.
func NewWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
