package nsctl

import (
	"log/slog"
	"os"

	"github.com/anishesg/nstree/pkg/config"
	"github.com/google/uuid"
)

// NewLogger builds the root logger for an nstreectl invocation, picking
// a JSON or text handler off cfg.LogFormat and tagging every line with
// a fresh run_id so a batch of "run" output can be correlated back to
// one process.
func NewLogger(cfg *config.Config) *slog.Logger {
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}
