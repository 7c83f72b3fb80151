package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T) (*RateLimiter, *fakeClock) {
	t.Helper()

	rl := NewRateLimiter(time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(rl.Stop)

	clock := &fakeClock{t: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
	rl.now = clock.now
	return rl, clock
}

func loginFrom(h http.Handler, path, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl, _ := newTestLimiter(t)
	h := rl.Limit("auth", 5)(okHandler)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, loginFrom(h, "/api/auth/login", "10.0.0.1:5000").Code, "request %d", i)
	}

	rec := loginFrom(h, "/api/auth/login", "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"statusCode":429,"message":"Too many requests"}`, rec.Body.String())
}

func TestRateLimiter_PageRejectionIsPlainText(t *testing.T) {
	rl, _ := newTestLimiter(t)
	h := rl.Limit("auth", 1)(okHandler)

	loginFrom(h, "/vi/login", "10.0.0.1:5000")
	rec := loginFrom(h, "/vi/login", "10.0.0.1:5000")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestRateLimiter_Refills(t *testing.T) {
	rl, clock := newTestLimiter(t)
	h := rl.Limit("auth", 2)(okHandler)

	loginFrom(h, "/api/auth/login", "10.0.0.1:5000")
	loginFrom(h, "/api/auth/login", "10.0.0.1:5000")
	require.Equal(t, http.StatusTooManyRequests, loginFrom(h, "/api/auth/login", "10.0.0.1:5000").Code)

	clock.advance(30 * time.Second)

	assert.Equal(t, http.StatusOK, loginFrom(h, "/api/auth/login", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(h, "/api/auth/login", "10.0.0.1:5000").Code)
}

func TestRateLimiter_PortIgnoredHostsSeparate(t *testing.T) {
	rl, _ := newTestLimiter(t)
	h := rl.Limit("auth", 1)(okHandler)

	require.Equal(t, http.StatusOK, loginFrom(h, "/api/auth/login", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(h, "/api/auth/login", "10.0.0.1:6000").Code)
	assert.Equal(t, http.StatusOK, loginFrom(h, "/api/auth/login", "10.0.0.2:5000").Code)
}

func TestRateLimiter_ScopesAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t)
	auth := rl.Limit("auth", 1)(okHandler)
	other := rl.Limit("import", 1)(okHandler)

	require.Equal(t, http.StatusOK, loginFrom(auth, "/api/auth/login", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, loginFrom(other, "/test/learning-time/import", "10.0.0.1:5000").Code)

	// Pages and API in one scope share the budget.
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(auth, "/en/login", "10.0.0.1:5000").Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, clock := newTestLimiter(t)
	h := rl.Limit("auth", 1)(okHandler)

	loginFrom(h, "/api/auth/login", "10.0.0.1:5000")
	clock.advance(bucketIdleTTL + time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	assert.Empty(t, rl.buckets)
	rl.mu.Unlock()
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
