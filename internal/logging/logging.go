// Package logging builds the slog loggers the dashboard uses. Logs go to a
// file or nowhere, never to the terminal the renderer owns.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Nop returns a logger that discards everything. Used when no log file is
// configured and in tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ToFile returns a JSON logger appending to path and a close func for the
// underlying file.
func ToFile(path string) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), f.Close, nil
}
