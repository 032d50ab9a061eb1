// Package logging provides structured logging for the bot.
//
// The default format is a compact bracketed line:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/doorasi/closingbot/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config. Format "json"
// selects the standard JSON handler; anything else gets the bracket handler.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = NewBracketHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewSystemLogger creates a logger scoped to one subsystem, e.g. "intake",
// "report" or "telegram".
func NewSystemLogger(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}
