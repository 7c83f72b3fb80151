package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/apiclient"
	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/i18n"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
	"github.com/heartmarshall/kairon-web/internal/service/habit"
	"github.com/heartmarshall/kairon-web/internal/service/roadmap"
	"github.com/heartmarshall/kairon-web/internal/session"
	"github.com/heartmarshall/kairon-web/internal/transport/middleware"
	"github.com/heartmarshall/kairon-web/internal/transport/rest"
	"github.com/heartmarshall/kairon-web/internal/transport/web"
)

// Server is the assembled front server: services, handlers and the
// middleware chain around one mux.
type Server struct {
	Handler http.Handler
	Queue   *notify.Queue

	limiter *middleware.RateLimiter
}

// Close stops the background goroutines owned by the server.
func (s *Server) Close() {
	s.Queue.Stop()
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// NewServer wires services and routes on top of storage. Extra apiclient
// options are passed to the auth API client.
func NewServer(cfg *config.Config, storage *Storage, logger *slog.Logger, opts ...apiclient.Option) (*Server, error) {
	catalog, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	queue := notify.NewQueue(cfg.Notify.QueueSize, 0, logger)
	sessionOpts := session.OptionsFrom(cfg.Session)

	// Services.
	client := apiclient.New(cfg.API, queue, catalog, logger, opts...)
	authService := auth.NewService(logger, apiclient.NewAuthAPI(client))
	habitService := habit.NewService(logger, storage.Store, catalog)
	roadmapService := roadmap.NewService(logger, storage.Store)

	// Handlers.
	pages, err := web.NewHandler(logger, catalog, sessionOpts, authService, habitService, roadmapService, queue)
	if err != nil {
		queue.Stop()
		return nil, err
	}
	authHandler := rest.NewAuthHandler(authService, catalog, queue, sessionOpts, logger)
	notificationHandler := rest.NewNotificationHandler(queue)
	habitHandler := rest.NewHabitHandler(habitService, catalog, logger)
	roadmapHandler := rest.NewRoadmapHandler(roadmapService, catalog, logger)

	components := map[string]rest.Pinger{}
	if storage.Pinger != nil {
		components["storage"] = storage.Pinger
	}
	healthHandler := rest.NewHealthHandler(BuildVersion(), components)

	srv := &Server{Queue: queue}

	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, logger)
		authLimit := srv.limiter.Limit("auth", cfg.RateLimit.AuthPerMinute)
		limit = func(h http.HandlerFunc) http.Handler { return authLimit(h) }
	}

	mux := http.NewServeMux()

	// Health checks.
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Pages.
	mux.HandleFunc("GET /{locale}", pages.Home)
	mux.HandleFunc("GET /{locale}/{$}", pages.Home)
	mux.HandleFunc("GET /{locale}/login", pages.LoginPage)
	mux.Handle("POST /{locale}/login", limit(pages.Login))
	mux.HandleFunc("GET /{locale}/register", pages.RegisterPage)
	mux.Handle("POST /{locale}/register", limit(pages.Register))
	mux.HandleFunc("GET /{locale}/dashboard", pages.Dashboard)
	mux.HandleFunc("POST /{locale}/logout", pages.Logout)
	mux.HandleFunc("GET /{locale}/settings", pages.Settings)
	mux.HandleFunc("GET /{locale}/test/habit-tracker", pages.HabitTracker)
	mux.HandleFunc("GET /{locale}/test/learning-time", pages.LearningTime)

	// JSON auth and notifications.
	mux.Handle("POST /api/auth/login", limit(authHandler.Login))
	mux.Handle("POST /api/auth/register", limit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)
	mux.HandleFunc("GET /api/notifications", notificationHandler.Drain)

	// Habit tracker.
	mux.HandleFunc("GET /test/habit-tracker/routines", habitHandler.ListRoutines)
	mux.HandleFunc("POST /test/habit-tracker/routines", habitHandler.CreateRoutine)
	mux.HandleFunc("PUT /test/habit-tracker/routines/{id}", habitHandler.UpdateRoutine)
	mux.HandleFunc("DELETE /test/habit-tracker/routines/{id}", habitHandler.DeleteRoutine)
	mux.HandleFunc("POST /test/habit-tracker/routines/{id}/active", habitHandler.ToggleActive)
	mux.HandleFunc("GET /test/habit-tracker/checks", habitHandler.Checks)
	mux.HandleFunc("POST /test/habit-tracker/checks/{id}", habitHandler.ToggleCompletion)
	mux.HandleFunc("GET /test/habit-tracker/today", habitHandler.Today)
	mux.HandleFunc("GET /test/habit-tracker/week", habitHandler.Week)

	// Learning roadmap.
	mux.HandleFunc("GET /test/learning-time", roadmapHandler.Get)
	mux.HandleFunc("DELETE /test/learning-time", roadmapHandler.Reset)
	mux.HandleFunc("PUT /test/learning-time/start-date", roadmapHandler.SetStartDate)
	mux.HandleFunc("POST /test/learning-time/import", roadmapHandler.Import)
	mux.HandleFunc("POST /test/learning-time/days/{day}/toggle", roadmapHandler.ToggleDay)
	mux.HandleFunc("GET /test/learning-time/calendar", roadmapHandler.Calendar)

	healthPaths := middleware.PathIn("/live", "/ready", "/health")

	srv.Handler = middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Unless(healthPaths, middleware.Session(sessionOpts, cfg.Session.ClientCookie)),
		middleware.When(middleware.GuardMatch, middleware.RouteGuard(cfg.Session.AccessCookie)),
		middleware.LocaleRouter(cfg.Session.LocaleCookie, domain.Locale(cfg.Locale.Default)),
	)(mux)

	return srv, nil
}
