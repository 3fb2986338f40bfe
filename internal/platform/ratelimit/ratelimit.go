// Package ratelimit throttles requests per client IP with a sliding window.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"citizengate/pkg/requestcontext"
)

// Result reports one rate limit decision.
type Result struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// slidingWindow keeps the timestamps inside the current window. The sliding
// window avoids the burst-at-the-boundary problem of fixed counters.
type slidingWindow struct {
	timestamps []time.Time
}

func (w *slidingWindow) cleanup(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	kept := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.timestamps = kept
}

// Limiter is an in-memory per-key sliding window limiter. Counters are per
// process; a multi-instance deployment throttles per instance.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*slidingWindow
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*slidingWindow),
	}
}

// Allow records one request against key and reports whether it fits the
// window.
func (l *Limiter) Allow(key string) Result {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.buckets[key]
	if !ok {
		w = &slidingWindow{}
		l.buckets[key] = w
	}
	w.cleanup(now, l.window)

	if len(w.timestamps)+1 > l.limit {
		return Result{
			Allowed: false,
			Limit:   l.limit,
			ResetAt: w.timestamps[0].Add(l.window),
		}
	}

	w.timestamps = append(w.timestamps, now)
	return Result{
		Allowed:   true,
		Remaining: l.limit - len(w.timestamps),
		Limit:     l.limit,
		ResetAt:   w.timestamps[0].Add(l.window),
	}
}

// Reset clears the counter for a key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Middleware enforces the limit per client IP. A nil limiter disables
// throttling entirely.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil {
				next.ServeHTTP(w, r)
				return
			}

			result := l.Allow(requestcontext.ClientIP(r.Context()))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(time.Until(result.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
