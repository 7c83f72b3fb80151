// Package routeguard decides whether a page request may proceed based on the
// presence of a session token. It never inspects the token itself.
package routeguard

import (
	"strings"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Action is the outcome of a guard decision.
type Action int

const (
	// Pass hands the request to the locale router.
	Pass Action = iota
	// RedirectLogin sends an anonymous visitor to the login page.
	RedirectLogin
	// RedirectDashboard sends an authenticated visitor away from auth pages.
	RedirectDashboard
)

func (a Action) String() string {
	switch a {
	case RedirectLogin:
		return "redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	default:
		return "pass"
	}
}

// Page paths without the locale prefix.
const (
	HomePath      = "/"
	LoginPath     = "/login"
	RegisterPath  = "/register"
	DashboardPath = "/dashboard"
	TestPath      = "/test"
)

// Decision is the guard outcome for one path.
type Decision struct {
	Action Action
	// Location is the redirect target; empty for Pass.
	Location string
	// Locale is the recognized prefix, empty when the path had none.
	Locale domain.Locale
	// Path is the prefix-less path with any trailing slash removed.
	Path string
}

// Decide applies the guard rules to path.
//
// An unrecognized locale yields locations with an empty locale segment
// ("//login"). Callers that only route matched paths (see Matches) never
// observe this for real requests.
func Decide(path string, hasToken bool) Decision {
	locale, rest := domain.SplitLocalePath(path)
	if len(rest) > 1 {
		rest = strings.TrimSuffix(rest, "/")
	}

	d := Decision{Action: Pass, Locale: locale, Path: rest}

	switch {
	case hasToken && IsAuthPage(rest):
		d.Action = RedirectDashboard
		d.Location = "/" + string(locale) + DashboardPath
	case !hasToken && !IsPublic(rest):
		d.Action = RedirectLogin
		d.Location = "/" + string(locale) + LoginPath
	}

	return d
}

// IsPublic reports whether a prefix-less path is reachable without a token.
func IsPublic(path string) bool {
	switch path {
	case HomePath, LoginPath, RegisterPath, TestPath:
		return true
	}
	return strings.HasPrefix(path, TestPath+"/")
}

// IsAuthPage reports whether a prefix-less path is the login or register page.
func IsAuthPage(path string) bool {
	return path == LoginPath || path == RegisterPath
}

// Matches reports whether a request path is subject to the guard: the root
// and every path under a supported locale prefix.
func Matches(path string) bool {
	if path == "/" {
		return true
	}
	l, _ := domain.SplitLocalePath(path)
	return l != ""
}
