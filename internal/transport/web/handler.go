// Package web serves the server-rendered, locale-prefixed pages.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
	"github.com/heartmarshall/kairon-web/internal/service/habit"
	"github.com/heartmarshall/kairon-web/internal/session"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// maxFormSize caps urlencoded form bodies.
const maxFormSize = 64 << 10

type translator interface {
	apierr.Translator
	T(locale domain.Locale, key string) string
	Format(locale domain.Locale, key string, pairs ...string) string
	FieldErrors(locale domain.Locale, err error) map[string]string
}

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.Result, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.Result, error)
	Me(ctx context.Context) (*domain.User, error)
}

type habitService interface {
	CurrentDate() time.Time
	Today(ctx context.Context, date time.Time) (*habit.DayPlan, error)
	Motivation(ctx context.Context, locale domain.Locale, date time.Time) (*habit.Motivation, error)
}

type roadmapService interface {
	Get(ctx context.Context) (*domain.Roadmap, error)
	LessonForDate(ctx context.Context, date time.Time) (*domain.RoadmapDay, error)
}

// toastQueue is the per-client notification queue drained into each page.
type toastQueue interface {
	notify.Notifier
	Drain(clientID string) []notify.Notification
}

// Handler renders the pages. Route protection is done by the guard
// middleware; handlers assume the session matches the page.
type Handler struct {
	auth     authService
	habits   habitService
	roadmaps roadmapService
	queue    toastQueue
	toast    *notify.Toaster
	tr       translator
	opts     session.Options
	pages    *renderer
	log      *slog.Logger
}

// NewHandler creates a Handler and parses the page templates.
func NewHandler(
	logger *slog.Logger,
	tr translator,
	opts session.Options,
	authSvc authService,
	habitSvc habitService,
	roadmapSvc roadmapService,
	queue toastQueue,
) (*Handler, error) {
	pages, err := newRenderer(tr)
	if err != nil {
		return nil, err
	}
	return &Handler{
		auth:     authSvc,
		habits:   habitSvc,
		roadmaps: roadmapSvc,
		queue:    queue,
		toast:    notify.NewToaster(queue, tr),
		tr:       tr,
		opts:     opts,
		pages:    pages,
		log:      logger.With("handler", "web"),
	}, nil
}

// newView builds the common page data and drains pending toasts. It reports
// false after writing a 404 when the path carries no supported locale.
func (h *Handler) newView(w http.ResponseWriter, r *http.Request, title string) (*view, bool) {
	if _, ok := domain.ParseLocale(r.PathValue("locale")); !ok {
		http.NotFound(w, r)
		return nil, false
	}

	ctx := r.Context()
	v := &view{
		Locale:        ctxutil.LocaleFromCtx(ctx),
		Path:          r.URL.Path,
		Title:         title,
		Authenticated: session.FromRequest(w, r, h.opts).HasToken(),
	}
	return v, true
}

// render drains the client's toasts at the last moment so notifications
// produced while handling the request show up on this page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, v *view) {
	if clientID, ok := ctxutil.ClientIDFromCtx(r.Context()); ok {
		v.Toasts = h.queue.Drain(clientID)
	}
	if err := h.pages.render(w, status, page, v); err != nil {
		h.log.ErrorContext(r.Context(), "render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, h.tr.T(v.Locale, "errors.500"), http.StatusInternalServerError)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, locale domain.Locale, path string) {
	http.Redirect(w, r, "/"+locale.String()+path, http.StatusSeeOther)
}

// failureStatus maps a service error to the status of the re-rendered page.
func failureStatus(err error) int {
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	if status, ok := apierr.StatusOf(err); ok && status >= 400 && status <= 599 {
		return status
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

// parseForm reads a size-limited urlencoded body.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	return r.ParseForm()
}
