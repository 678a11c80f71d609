package mock

import (
	"context"

	"github.com/fwojciec/brochure"
)

var _ brochure.Provider = (*Provider)(nil)

// Provider is a mock implementation of brochure.Provider.
type Provider struct {
	CompleteFn     func(ctx context.Context, prompt *brochure.Prompt, model string) (string, error)
	StreamFn       func(ctx context.Context, prompt *brochure.Prompt, model string) (brochure.ChunkStream, error)
	NameFn         func() string
	DefaultModelFn func() string
}

func (p *Provider) Complete(ctx context.Context, prompt *brochure.Prompt, model string) (string, error) {
	return p.CompleteFn(ctx, prompt, model)
}

func (p *Provider) Stream(ctx context.Context, prompt *brochure.Prompt, model string) (brochure.ChunkStream, error) {
	return p.StreamFn(ctx, prompt, model)
}

func (p *Provider) Name() string {
	if p.NameFn == nil {
		return "mock"
	}
	return p.NameFn()
}

func (p *Provider) DefaultModel() string {
	if p.DefaultModelFn == nil {
		return "mock-model"
	}
	return p.DefaultModelFn()
}

var _ brochure.ChunkStream = (*ChunkStream)(nil)

// ChunkStream is a mock implementation of brochure.ChunkStream.
type ChunkStream struct {
	RecvFn  func() (string, error)
	CloseFn func() error
}

func (s *ChunkStream) Recv() (string, error) {
	return s.RecvFn()
}

func (s *ChunkStream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
