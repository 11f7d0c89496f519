// Package logging sets up the process logger. The terminal belongs to the
// TUI, so records go to a file in the data directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileName is the log file created in the data directory.
const FileName = "voteflow.log"

var logger = slog.New(slog.DiscardHandler)

// Logger returns the process logger. It discards everything until Init or
// Use is called.
func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// Use replaces the process logger.
func Use(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// New returns a text logger writing to w, tagged with a fresh session id.
func New(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("session", uuid.NewString())
}

// Init opens the log file in dir and installs a logger writing to it. The
// returned closer flushes and closes the file.
func Init(dir string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	Use(New(f, level))
	return f, nil
}
