package api

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// rateLimiter throttles per tenant so one noisy client cannot starve the
// solver for everyone else.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	return &rateLimiter{limiters: map[string]*rate.Limiter{}, limit: rate.Limit(perSecond), burst: burst}
}

func (rl *rateLimiter) allow(tenant string) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[tenant]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[tenant] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

// RateLimit wraps a handler with the per-tenant limiter.
func (s *Server) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	rl := newRateLimiter(s.Cfg.RateLimit.PerSecond, s.Cfg.RateLimit.Burst)
	return func(w http.ResponseWriter, r *http.Request) {
		_, tenant := s.withTenant(r)
		if !rl.allow(tenant) {
			writeProblem(w, http.StatusTooManyRequests, "Rate limit exceeded", "retry later", r.URL.Path)
			return
		}
		next(w, r)
	}
}
