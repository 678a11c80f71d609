package generate

import (
	"context"
	"sync"

	"github.com/fwojciec/brochure"
	"golang.org/x/time/rate"
)

var _ brochure.ProviderLimiter = (*ProviderLimiter)(nil)

// ProviderLimiter provides per-provider rate limiting using token buckets.
// Concurrent generations share one limiter per provider, so together they
// respect the provider's published request limits instead of stalling or
// tripping 429s.
type ProviderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewProviderLimiter creates a new ProviderLimiter with the specified
// requests per second limit. Each provider gets its own limiter with a
// burst of 1 (no bursting allowed).
func NewProviderLimiter(rps float64) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the provider.
// Returns an error if the context is canceled before the wait completes.
func (l *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[provider]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[provider] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
