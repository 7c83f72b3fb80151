package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/session"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// clientCookieDays is the lifetime of the anonymous client cookie.
const clientCookieDays = 365

// Session binds a cookie Jar to the request and exposes the access token and
// the anonymous client id through the context. A missing or malformed client
// cookie is replaced by a fresh uuid.
func Session(opts session.Options, clientCookie string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := session.NewJar(w, r, opts)
			ctx := session.WithJar(r.Context(), jar)

			if token, ok := jar.AccessToken(); ok {
				ctx = ctxutil.WithAccessToken(ctx, token)
			}

			id, ok := jar.Get(clientCookie)
			if _, err := uuid.Parse(id); !ok || err != nil {
				id = uuid.NewString()
				jar.Set(clientCookie, id, clientCookieDays)
			}
			ctx = ctxutil.WithClientID(ctx, id)
			annotate(w, id, "")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
