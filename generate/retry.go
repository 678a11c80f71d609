package generate

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/brochure"
)

// Default retry settings for network-facing steps.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 8 * time.Second
)

// RetryConfig controls the retry policy applied to each network-facing
// step (landing fetch, link fetches, model invocation).
type RetryConfig struct {
	// MaxAttempts is the total number of tries per step, including the
	// first one. Zero or negative means brochure.DefaultMaxRetries.
	MaxAttempts int

	// InitialInterval and MaxInterval bound the exponential backoff.
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns the shipped retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     brochure.DefaultMaxRetries,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

// Retry runs op with exponential backoff on transient failures. It returns
// the number of transient failures observed (the run's retry count) and the
// final error, nil on success.
//
// Non-transient errors (auth, 4xx other than rate limit, parse failures)
// return immediately without retry. When a rate-limit error carries a
// Retry-After hint longer than the computed backoff delay, the hint wins.
func Retry(ctx context.Context, cfg RetryConfig, op func() error) (retries int, err error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = brochure.DefaultMaxRetries
	}

	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	} else {
		b.InitialInterval = DefaultInitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	} else {
		b.MaxInterval = DefaultMaxInterval
	}
	b.Reset()

	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil {
			return retries, nil
		}
		if !brochure.Transient(err) {
			return retries, err
		}

		retries++
		if attempt >= maxAttempts {
			return retries, err
		}

		delay := b.NextBackOff()
		if delay == backoff.Stop {
			return retries, err
		}
		if hint := brochure.ErrorRetryAfter(err); hint > delay {
			delay = hint
		}

		select {
		case <-ctx.Done():
			return retries, ctx.Err()
		case <-time.After(delay):
		}
	}
}
