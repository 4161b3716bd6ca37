package slogx

import (
	"log/slog"
	"os"
	"strings"
)

// Config identifies the service on every log record and selects the handler.
type Config struct {
	Service string
	Version string
	Env     string // "dev" also enables source locations
	Level   string // "debug", "info", "warn" or "error"; unknown means info
	Format  string // "text" for local runs; anything else means JSON
}

// New builds the service logger with the identity fields stamped on every
// record, and installs it as the process default so library code that logs
// through slog lands in the same stream.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     parseLevel(cfg.Level),
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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
