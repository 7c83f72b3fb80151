//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	pgkv "github.com/heartmarshall/kairon-web/internal/adapter/postgres/kv"
	"github.com/heartmarshall/kairon-web/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/kairon-web/internal/app"
	authpkg "github.com/heartmarshall/kairon-web/internal/auth"
	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/devapi"
	"github.com/heartmarshall/kairon-web/internal/transport/middleware"
)

// ---------------------------------------------------------------------------
// testServer wraps the front server and the auth API stand-in behind it.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	APIURL string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer starts the dev auth API and the front server backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	// 1. Auth API stand-in.
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	devSvc := devapi.NewService(logger, jwtMgr, bcrypt.MinCost)
	apiSrv := httptest.NewServer(middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)(devapi.NewHandler(devSvc, logger).Routes("/v1")))
	t.Cleanup(apiSrv.Close)

	// 2. Storage.
	pool := testhelper.SetupTestDB(t)
	storage := &app.Storage{Store: pgkv.New(pool), Pinger: pool}

	// 3. Front server.
	cfg := &config.Config{
		API: config.APIConfig{BaseURL: apiSrv.URL, BasePath: "/v1", Timeout: 5 * time.Second},
		Session: config.SessionConfig{
			AccessCookie:  "access_token",
			RefreshCookie: "refresh_token",
			ClientCookie:  "kairon_client",
			LocaleCookie:  "NEXT_LOCALE",
			MaxAgeDays:    7,
			Secure:        false,
			SameSite:      "strict",
			Path:          "/",
		},
		Locale:  config.LocaleConfig{Default: "vi"},
		Storage: config.StorageConfig{Driver: config.StoragePostgres},
		Notify:  config.NotifyConfig{QueueSize: 20},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Content-Type,Accept-Language",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, AuthPerMinute: 100, CleanupInterval: time.Minute},
	}

	srv, err := app.NewServer(cfg, storage, logger)
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	front := httptest.NewServer(srv.Handler)
	t.Cleanup(front.Close)

	return &testServer{
		URL:    front.URL,
		APIURL: apiSrv.URL,
		Client: newBrowser(t),
	}
}

// newBrowser returns a client with its own cookie jar that does not follow
// redirects, so tests can assert on them.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// get sends a GET request and returns the response with the body read.
func (ts *testServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	return ts.do(t, req)
}

// postForm submits an HTML form.
func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(t, req)
}

// jsonRequest sends body marshalled as JSON (nil sends no body) and decodes
// the JSON response. An empty response body decodes to nil.
func (ts *testServer) jsonRequest(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, text := ts.do(t, req)
	if text == "" {
		return resp.StatusCode, nil
	}

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out), "response body should be valid JSON: %s", text)
	return resp.StatusCode, out
}

func (ts *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

// cookie returns the value the browser holds for name.
func (ts *testServer) cookie(t *testing.T, name string) (string, bool) {
	t.Helper()

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	for _, c := range ts.Client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// data returns the envelope's data object.
func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object in %v", body)
	return d
}

// uniqueEmail returns an email address unused by earlier tests.
func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8] + "@example.com"
}

// registerForm returns a valid registration form for email.
func registerForm(email string) url.Values {
	return url.Values{
		"name":            {"Alice"},
		"email":           {email},
		"phone":           {"0901234567"},
		"password":        {"Secret123"},
		"confirmPassword": {"Secret123"},
	}
}

// registerUser signs up through the page form and leaves the browser
// signed in.
func registerUser(t *testing.T, ts *testServer) string {
	t.Helper()

	email := uniqueEmail("user")
	resp, body := ts.postForm(t, "/en/register", registerForm(email))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, body)
	return email
}
