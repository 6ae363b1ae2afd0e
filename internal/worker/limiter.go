package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-capability rate limiting so concurrent
// evaluations do not hammer a hosted classifier or embedding API.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter with the default per-capability rate.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the capability's rate limit clears or ctx is done.
func (l *Limiter) Wait(ctx context.Context, capability string) error {
	return l.getLimiter(capability).Wait(ctx)
}

// Allow reports whether a call is allowed right now without waiting.
func (l *Limiter) Allow(capability string) bool {
	return l.getLimiter(capability).Allow()
}

// SetRate sets a custom rate limit for a specific capability.
func (l *Limiter) SetRate(capability string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[capability] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) getLimiter(capability string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[capability]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[capability]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[capability] = limiter

	return limiter
}
