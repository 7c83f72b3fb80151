// Package session reads and writes the browser cookies that carry the
// session tokens and the anonymous client id.
package session

import (
	"net/http"
	"time"

	"github.com/heartmarshall/kairon-web/internal/config"
)

// Options are the cookie names and attributes used by a Jar.
type Options struct {
	AccessCookie  string
	RefreshCookie string
	MaxAgeDays    int
	Secure        bool
	SameSite      http.SameSite
	Path          string
}

// OptionsFrom converts the session config section.
func OptionsFrom(cfg config.SessionConfig) Options {
	return Options{
		AccessCookie:  cfg.AccessCookie,
		RefreshCookie: cfg.RefreshCookie,
		MaxAgeDays:    cfg.MaxAgeDays,
		Secure:        cfg.Secure,
		SameSite:      cfg.SameSiteMode(),
		Path:          cfg.Path,
	}
}

// DefaultOptions match the production cookie policy: access_token and
// refresh_token, 7 days, Secure, SameSite=Strict, Path=/.
func DefaultOptions() Options {
	return Options{
		AccessCookie:  "access_token",
		RefreshCookie: "refresh_token",
		MaxAgeDays:    7,
		Secure:        true,
		SameSite:      http.SameSiteStrictMode,
		Path:          "/",
	}
}

// Jar is the cookie store of a single request. Writes go to the response and
// are visible to later reads through the same Jar.
type Jar struct {
	w    http.ResponseWriter
	r    *http.Request
	opts Options
	now  func() time.Time

	// overlay records writes made during this request; nil means removed.
	overlay map[string]*string
}

// NewJar binds a Jar to one request/response pair.
func NewJar(w http.ResponseWriter, r *http.Request, opts Options) *Jar {
	return &Jar{w: w, r: r, opts: opts, now: time.Now, overlay: make(map[string]*string)}
}

// Set writes a cookie that expires after days; days <= 0 uses the configured default.
func (j *Jar) Set(name, value string, days int) {
	if days <= 0 {
		days = j.opts.MaxAgeDays
	}
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     j.path(),
		Expires:  j.now().AddDate(0, 0, days),
		MaxAge:   days * 24 * 60 * 60,
		Secure:   j.opts.Secure,
		HttpOnly: true,
		SameSite: j.opts.SameSite,
	})
	v := value
	j.overlay[name] = &v
}

// Get returns the cookie value, honoring writes made through this Jar.
func (j *Jar) Get(name string) (string, bool) {
	if v, ok := j.overlay[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := j.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Remove expires the cookie on the configured path.
func (j *Jar) Remove(name string) {
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     j.path(),
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   j.opts.Secure,
		HttpOnly: true,
		SameSite: j.opts.SameSite,
	})
	j.overlay[name] = nil
}

// AccessToken returns the session token if present.
func (j *Jar) AccessToken() (string, bool) {
	return j.Get(j.opts.AccessCookie)
}

// HasToken reports whether a session token is present. The token is not validated.
func (j *Jar) HasToken() bool {
	_, ok := j.AccessToken()
	return ok
}

// SetTokens stores the access token and, when non-empty, the refresh token.
func (j *Jar) SetTokens(access, refresh string) {
	j.Set(j.opts.AccessCookie, access, 0)
	if refresh != "" {
		j.Set(j.opts.RefreshCookie, refresh, 0)
	}
}

// ClearAuth removes both token cookies.
func (j *Jar) ClearAuth() {
	j.Remove(j.opts.AccessCookie)
	j.Remove(j.opts.RefreshCookie)
}

func (j *Jar) path() string {
	if j.opts.Path == "" {
		return "/"
	}
	return j.opts.Path
}
