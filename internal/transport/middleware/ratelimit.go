package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket survives cleanup.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter is a token-bucket limiter keyed by scope and client host.
// Scopes let the login page and the JSON login share one budget while
// other limited routes keep their own.
type RateLimiter struct {
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop chan struct{}
	once sync.Once
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter starts a limiter with a background sweep of idle buckets.
// Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		logger:  logger.With("middleware", "ratelimit"),
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep(cleanupInterval)
	return rl
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows perMinute requests per host within scope, refilled evenly.
// Rejected requests get 429 with Retry-After in whole seconds.
func (rl *RateLimiter) Limit(scope string, perMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := clientHost(r)

			wait, ok := rl.take(scope+"|"+host, perMinute)
			if !ok {
				rl.logger.WarnContext(r.Context(), "rate limited",
					slog.String("scope", scope),
					slog.String("host", host),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token and otherwise reports how long until one is back.
func (rl *RateLimiter) take(key string, perMinute int) (time.Duration, bool) {
	capacity := float64(perMinute)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, seen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(capacity, b.tokens+now.Sub(b.seen).Seconds()*capacity/60)
	b.seen = now

	if b.tokens < 1 {
		return time.Duration((1 - b.tokens) * 60 / capacity * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.seen) > bucketIdleTTL {
			delete(rl.buckets, key)
		}
	}
}

// clientHost drops the port so parallel connections from one host share
// a bucket.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
