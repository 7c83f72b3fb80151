package devapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

const maxBodySize = 1 << 16

// Handler exposes Service over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.With("handler", "devapi")}
}

// Routes mounts the auth endpoints under basePath (for example "/v1").
func (h *Handler) Routes(basePath string) http.Handler {
	basePath = strings.TrimRight(basePath, "/")

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+basePath+"/auth/register", h.register)
	mux.HandleFunc("POST "+basePath+"/auth/login", h.login)
	mux.HandleFunc("POST "+basePath+"/auth/refresh", h.refresh)
	mux.HandleFunc("GET "+basePath+"/auth/me", h.me)
	return mux
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// errorBody mirrors the auth API: message is a string, or an array when
// several validation messages apply.
type errorBody struct {
	StatusCode int  `json:"statusCode"`
	Message    any  `json:"message"`
	ErrorCode  *int `json:"errorCode,omitempty"`
}

type registerResponse struct {
	Tokens
	User *domain.User `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if !h.decode(w, r, &in) {
		return
	}
	tokens, user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		StatusCode: http.StatusCreated,
		Message:    "Registered successfully",
		Data:       registerResponse{Tokens: *tokens, User: user},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if !h.decode(w, r, &in) {
		return
	}
	tokens, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{StatusCode: http.StatusOK, Message: "Logged in successfully", Data: tokens})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if !h.decode(w, r, &in) {
		return
	}
	tokens, err := h.svc.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{StatusCode: http.StatusOK, Message: "Token refreshed", Data: tokens})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	token, ok := bearer(r)
	if !ok {
		h.fail(w, r, domain.ErrUnauthorized)
		return
	}
	user, err := h.svc.Me(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{StatusCode: http.StatusOK, Message: "OK", Data: user})
}

func bearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{StatusCode: http.StatusBadRequest, Message: "Invalid JSON body"})
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		body := errorBody{StatusCode: http.StatusBadRequest, Message: reqErr.messages[0]}
		if len(reqErr.messages) > 1 {
			body.Message = reqErr.messages
		}
		if reqErr.code > 0 {
			code := reqErr.code
			body.ErrorCode = &code
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"})
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody{StatusCode: http.StatusInternalServerError, Message: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
