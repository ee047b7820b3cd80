// Package logging builds the slog logger contact-sync uses everywhere.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured logger for the given environment.
// Production emits JSON at info level for log shippers; anything else
// is treated as development and gets human-readable text at debug
// level, which keeps sync-pass tracing visible while iterating against
// a local vault.
func NewLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
