package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsJSONPath reports whether a path is served by JSON handlers rather than pages.
func IsJSONPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/test" || strings.HasPrefix(path, "/test/")
}

// writeError answers in the auth API error envelope on JSON paths and as
// plain text elsewhere.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if !IsJSONPath(r.URL.Path) {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}{status, msg})
}
