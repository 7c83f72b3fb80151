package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// translator resolves message keys for the request locale.
type translator interface {
	apierr.Translator
	T(locale domain.Locale, key string) string
	FieldMessage(locale domain.Locale, fe domain.FieldError) string
}

// envelope is the success body, shaped like the auth API's.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// errorBody is the error body. errorCode is only present for errors relayed
// from the auth API.
type errorBody struct {
	StatusCode int          `json:"statusCode"`
	ErrorCode  *int         `json:"errorCode,omitempty"`
	Message    string       `json:"message"`
	Errors     []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Key     string `json:"key"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{StatusCode: status, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{StatusCode: status, Message: message})
}

// decodeJSON reads a JSON body into dst. An empty body is an error.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// badRequest answers a body that could not be decoded.
func badRequest(w http.ResponseWriter, r *http.Request, tr translator) {
	writeError(w, http.StatusBadRequest, tr.T(ctxutil.LocaleFromCtx(r.Context()), "errors.400.GENERAL"))
}

// handleError maps service errors to responses:
// validation 400 with the field list, unauthorized 401, not found 404,
// normalized API errors keep their status (502 when there is none).
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, tr translator, err error) {
	ctx := r.Context()
	locale := ctxutil.LocaleFromCtx(ctx)

	var (
		ve     *domain.ValidationError
		apiErr *apierr.Error
	)
	switch {
	case errors.As(err, &ve):
		body := errorBody{
			StatusCode: http.StatusBadRequest,
			Message:    tr.T(locale, "errors.400.GENERAL"),
			Errors:     make([]fieldError, 0, len(ve.Errors)),
		}
		for _, fe := range ve.Errors {
			body.Errors = append(body.Errors, fieldError{
				Field:   fe.Field,
				Message: tr.FieldMessage(locale, fe),
				Key:     fe.Message,
			})
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, tr.T(locale, "errors.401"))
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorBody{
			StatusCode: status,
			ErrorCode:  apiErr.ErrorCode,
			Message:    apierr.Resolve(tr, locale, apiErr),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, tr.T(locale, "errors.404"))
	case errors.Is(err, context.Canceled):
		log.DebugContext(ctx, "request cancelled", slog.String("error", err.Error()))
	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, tr.T(locale, "errors.500"))
	}
}
