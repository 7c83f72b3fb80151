package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// Recovery turns a handler panic into a 500. JSON paths get the error
// envelope, pages a plain-text body.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("stack", string(debug.Stack())),
				}
				if client, ok := ctxutil.ClientIDFromCtx(r.Context()); ok {
					attrs = append(attrs, slog.String("client_id", client))
				}
				logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				writeError(w, r, http.StatusInternalServerError, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
