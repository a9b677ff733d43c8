package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for the loaded configuration.
// Production uses the JSON handler; otherwise the text handler.
// LogLevel may be debug, info, warn or error; anything else means info.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(w, opts)).With("env", cfg.Environment)
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
