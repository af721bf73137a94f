// Package logging builds the application logger.
//
// The terminal belongs to the renderer, so logs never go to stdout or stderr.
// They are written to a file when one is configured and discarded otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New creates a text logger writing to w.
// It standardizes the "error" key to "err".
func New(w io.Writer, level slog.Level) *slog.Logger {
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

// Open returns a logger appending to path, or a no-op logger when path is
// empty. The returned close function is never nil.
func Open(path string, debug bool) (*slog.Logger, func() error, error) {
	if path == "" {
		return NewNop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return New(f, level), f.Close, nil
}
