// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// CodeRateLimited is the ErrorResponse code for throttled requests
const CodeRateLimited = "rate_limited"

// idle limiters are dropped after this long
const limiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key (caller identity or client IP)
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow reports whether key may proceed now and consumes a token if so
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Tracked returns how many keys currently hold a bucket
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// WithRateLimit rejects requests over the limit with 429. keyFunc picks the
// bucket; an empty key falls back to the client IP.
func WithRateLimit(rl *RateLimiter, keyFunc func(*http.Request) string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := ""
		if keyFunc != nil {
			key = keyFunc(r)
		}
		if key == "" {
			key = "ip:" + GetClientIP(r)
		}

		if !rl.Allow(key) {
			slog.Warn("rate limited", "key", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			CodedErrorResponse(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests, slow down")
			return
		}

		next(w, r)
	}
}
