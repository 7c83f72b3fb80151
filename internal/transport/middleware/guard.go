package middleware

import (
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/routeguard"
)

// GuardMatch selects the requests subject to RouteGuard: the root and every
// locale-prefixed page.
func GuardMatch(r *http.Request) bool {
	return routeguard.Matches(r.URL.Path)
}

// RouteGuard redirects by session-cookie presence using routeguard.Decide.
// Redirects are 307 and keep the query string. The Location is written as
// computed, without path cleaning.
func RouteGuard(cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			hasToken := err == nil && c.Value != ""

			d := routeguard.Decide(r.URL.Path, hasToken)
			if d.Action == routeguard.Pass {
				next.ServeHTTP(w, r)
				return
			}

			loc := d.Location
			if r.URL.RawQuery != "" {
				loc += "?" + r.URL.RawQuery
			}
			w.Header().Set("Location", loc)
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusTemporaryRedirect)
		})
	}
}
