package main

import (
	"log/slog"
	"os"
	"strings"
)

// configureLogging sets the default slog logger to a text handler on
// stderr, at the level named by --log-level. Structured logs never touch
// stdout or the output artifacts, so they can't affect a run's
// determinism.
func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
