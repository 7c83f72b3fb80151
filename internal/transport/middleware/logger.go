package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration and the request identifiers (request_id, client_id).
// Identifiers set by inner middleware are read back through the shared
// statusWriter.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			requestID := ctxutil.RequestIDFromCtx(r.Context())

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", duration),
				slog.String("request_id", requestID),
			}
			if sw.clientID != "" {
				attrs = append(attrs, slog.String("client_id", sw.clientID))
			}
			if sw.locale != "" {
				attrs = append(attrs, slog.String("locale", sw.locale))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code
// and the identifiers resolved further down the chain.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool

	clientID string
	locale   string
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// annotate records request identifiers on the nearest statusWriter, if any.
func annotate(w http.ResponseWriter, clientID, locale string) {
	for {
		switch sw := w.(type) {
		case *statusWriter:
			if clientID != "" {
				sw.clientID = clientID
			}
			if locale != "" {
				sw.locale = locale
			}
			return
		case interface{ Unwrap() http.ResponseWriter }:
			w = sw.Unwrap()
		default:
			return
		}
	}
}
