package middleware

import (
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/i18n"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// localeCookieMaxAge keeps the chosen locale for a year.
const localeCookieMaxAge = 365 * 24 * 60 * 60

// LocaleRouter resolves the active locale of every request.
//
// A locale-prefixed path uses its prefix and remembers it in cookieName.
// The bare root is redirected (307) to the negotiated locale. Any other
// unprefixed path keeps its URL and gets the negotiated locale in ctx.
// Negotiation order: cookie, Accept-Language, fallback.
func LocaleRouter(cookieName string, fallback domain.Locale) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale, _ := domain.SplitLocalePath(r.URL.Path)

			if locale == "" {
				var preferred string
				if c, err := r.Cookie(cookieName); err == nil {
					preferred = c.Value
				}
				locale = i18n.NegotiateOr(preferred, r.Header.Get("Accept-Language"), fallback)

				if r.URL.Path == "/" {
					loc := "/" + locale.String()
					if r.URL.RawQuery != "" {
						loc += "?" + r.URL.RawQuery
					}
					w.Header().Set("Location", loc)
					w.Header().Set("Vary", "Accept-Language, Cookie")
					w.WriteHeader(http.StatusTemporaryRedirect)
					return
				}
			} else if c, err := r.Cookie(cookieName); err != nil || c.Value != locale.String() {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    locale.String(),
					Path:     "/",
					MaxAge:   localeCookieMaxAge,
					SameSite: http.SameSiteLaxMode,
				})
			}

			annotate(w, "", locale.String())
			next.ServeHTTP(w, r.WithContext(ctxutil.WithLocale(r.Context(), locale)))
		})
	}
}
