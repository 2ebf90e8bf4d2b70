// Package logging provides the debug logger. Output goes to the file named
// by MCAT_LOG_FILE; without it every record is discarded.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// EnvVar names the log file variable.
const EnvVar = "MCAT_LOG_FILE"

// New returns the process logger and a close function for its file.
func New() (*slog.Logger, func() error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Discard(), func() error { return nil }
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), func() error { return nil }
	}
	return NewWriter(f, slog.LevelDebug), f.Close
}

// NewWriter returns a text logger writing to w at the given level.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
