package mock

import (
	"context"

	"github.com/fwojciec/brochure"
)

var _ brochure.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of brochure.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(ctx context.Context, result *brochure.GenerationResult) error
}

func (w *ResultWriter) WriteResult(ctx context.Context, result *brochure.GenerationResult) error {
	return w.WriteResultFn(ctx, result)
}
