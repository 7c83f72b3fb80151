package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/internal/routeguard"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
	"github.com/heartmarshall/kairon-web/internal/session"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.Result, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.Result, error)
	Me(ctx context.Context) (*domain.User, error)
}

// AuthHandler serves the JSON auth endpoints. Tokens never appear in
// responses; they are written to the session cookies.
type AuthHandler struct {
	svc   authService
	tr    translator
	toast *notify.Toaster
	opts  session.Options
	log   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, tr translator, notifier notify.Notifier, opts session.Options, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:   svc,
		tr:    tr,
		toast: notify.NewToaster(notifier, tr),
		opts:  opts,
		log:   logger.With("handler", "auth"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

type authResponse struct {
	Redirect string       `json:"redirect"`
	User     *domain.User `json:"user,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, r, h.tr)
		return
	}

	ctx := r.Context()
	result, err := h.svc.Login(ctx, auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	session.FromRequest(w, r, h.opts).SetTokens(result.AccessToken, result.RefreshToken)

	locale := ctxutil.LocaleFromCtx(ctx)
	msg := h.tr.T(locale, "auth.loginSuccess")
	h.toast.Success(ctx, msg)
	writeData(w, http.StatusOK, msg, authResponse{Redirect: dashboardPath(locale)})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, r, h.tr)
		return
	}

	ctx := r.Context()
	result, err := h.svc.Register(ctx, auth.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
	})
	if err != nil {
		handleError(w, r, h.log, h.tr, err)
		return
	}

	session.FromRequest(w, r, h.opts).SetTokens(result.AccessToken, result.RefreshToken)

	locale := ctxutil.LocaleFromCtx(ctx)
	msg := h.tr.T(locale, "auth.registerSuccess")
	h.toast.Success(ctx, msg)
	writeData(w, http.StatusCreated, msg, authResponse{Redirect: dashboardPath(locale), User: result.User})
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.FromRequest(w, r, h.opts).ClearAuth()

	locale := ctxutil.LocaleFromCtx(r.Context())
	msg := h.tr.T(locale, "auth.logoutSuccess")
	h.toast.Info(r.Context(), msg)
	writeData(w, http.StatusOK, msg, authResponse{Redirect: "/" + locale.String() + routeguard.LoginPath})
}

// Me handles GET /api/auth/me. A token rejected by the auth API clears the
// session cookies.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			session.FromRequest(w, r, h.opts).ClearAuth()
		}
		handleError(w, r, h.log, h.tr, err)
		return
	}
	writeData(w, http.StatusOK, "ok", user)
}

func dashboardPath(locale domain.Locale) string {
	return "/" + locale.String() + routeguard.DashboardPath
}
