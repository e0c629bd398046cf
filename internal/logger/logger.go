// Package logger constructs the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

// New returns a logger for the given environment: JSON output at info level
// in prod, human-readable text at debug level otherwise.
func New(env string) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
