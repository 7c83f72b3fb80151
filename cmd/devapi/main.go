// Command devapi serves a local stand-in for the external auth API
// (register, login, me) so the front server can run without it.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/kairon-web/internal/app"
	"github.com/heartmarshall/kairon-web/internal/auth"
	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/devapi"
	"github.com/heartmarshall/kairon-web/internal/transport/middleware"
)

const (
	basePath        = "/v1"
	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, logCfg, err := config.LoadDevAPI()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(logCfg, "devapi")

	jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	svc := devapi.NewService(logger, jwt, bcrypt.DefaultCost)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
	)(devapi.NewHandler(svc, logger).Routes(basePath))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, srv, shutdownTimeout, logger); err != nil {
		logger.Error("devapi stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
