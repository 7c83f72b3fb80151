package ctxutil

import (
	"context"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	accessTokenKey ctxKey = "access_token"
	localeKey      ctxKey = "locale"
	clientIDKey    ctxKey = "client_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithAccessToken stores the session access token in the context.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromCtx extracts the access token.
// Returns "" and false if the value is missing or empty.
func AccessTokenFromCtx(ctx context.Context) (string, bool) {
	token, _ := ctx.Value(accessTokenKey).(string)
	return token, token != ""
}

// WithLocale stores the active locale in the context.
func WithLocale(ctx context.Context, l domain.Locale) context.Context {
	return context.WithValue(ctx, localeKey, l)
}

// LocaleFromCtx returns the active locale, or domain.DefaultLocale if absent.
func LocaleFromCtx(ctx context.Context) domain.Locale {
	l, ok := ctx.Value(localeKey).(domain.Locale)
	if !ok || !l.IsValid() {
		return domain.DefaultLocale
	}
	return l
}

// WithClientID stores the anonymous browser client ID in the context.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey, id)
}

// ClientIDFromCtx extracts the client ID. Returns "" and false if absent.
func ClientIDFromCtx(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(clientIDKey).(string)
	return id, id != ""
}
