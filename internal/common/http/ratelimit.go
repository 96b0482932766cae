package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	"github.com/AlibekovAA/profile-cards/internal/common/httpmetrics"
	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	trusted  bool
	exempt   map[string]struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter keeps one token bucket per client IP. Paths in exempt
// (health, metrics) are never limited. trustProxy selects how the client IP
// is derived, see GetClientIP.
func NewRateLimiter(requestsPerSecond float64, burst int, trustProxy bool, exempt ...string) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		trusted:  trustProxy,
		exempt:   make(map[string]struct{}, len(exempt)),
		stop:     make(chan struct{}),
	}
	for _, p := range exempt {
		rl.exempt[p] = struct{}{}
	}

	go rl.cleanupLimiters(constants.RateLimitCleanupInterval)

	return rl
}

func (rl *RateLimiter) cleanupLimiters(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := rl.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.Allow(GetClientIP(r, rl.trusted)) {
			metrics.RateLimitBlocked.WithLabelValues(httpmetrics.NormalizePath(r.URL.Path)).Inc()
			w.Header().Set("Retry-After", "1")
			WriteErrorEnvelope(w, commonerrors.ErrRateLimited.HTTPStatus(), CodeRateLimited, commonerrors.ErrRateLimited.Message(), nil, TraceIDFromContext(r.Context()))
			return
		}

		next.ServeHTTP(w, r)
	})
}
