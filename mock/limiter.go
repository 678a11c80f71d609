package mock

import (
	"context"

	"github.com/fwojciec/brochure"
)

var _ brochure.ProviderLimiter = (*ProviderLimiter)(nil)

// ProviderLimiter is a mock implementation of brochure.ProviderLimiter.
type ProviderLimiter struct {
	WaitFn func(ctx context.Context, provider string) error
}

func (l *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, provider)
}
