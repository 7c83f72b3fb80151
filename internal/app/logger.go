package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/config"
)

// NewLogger builds the process logger for the named binary and installs it
// as the slog default. Output goes to stderr.
func NewLogger(cfg config.LogConfig, name string) *slog.Logger {
	logger := newLogger(os.Stderr, cfg, name)
	slog.SetDefault(logger)
	return logger
}

// newLogger picks the handler from cfg.Format: "json" for production, any
// other value gives text with source locations. Every record carries the
// binary name and version so front and devapi logs can share a sink.
func newLogger(w io.Writer, cfg config.LogConfig, name string) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("app", name),
		slog.String("version", Version),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
