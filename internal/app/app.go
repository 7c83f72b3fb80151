package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/kairon-web/internal/config"
)

// Run is the application entry point. It loads configuration, opens the
// storage backend, assembles the server and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, "kairon-web")

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("api_base_url", cfg.API.BaseURL),
	)

	storage, err := OpenStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	srv, err := NewServer(cfg, storage, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           srv.Handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return Serve(ctx, httpServer, cfg.Server.ShutdownTimeout, logger)
}
