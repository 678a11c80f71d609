package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brochure"
)

// Ensure LoggingProvider implements brochure.Provider.
var _ brochure.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider with structured logging of each call.
type LoggingProvider struct {
	next   brochure.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next brochure.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Complete delegates to the wrapped provider, logging model, output size
// and duration.
func (p *LoggingProvider) Complete(ctx context.Context, prompt *brochure.Prompt, model string) (string, error) {
	begin := time.Now()
	content, err := p.next.Complete(ctx, prompt, model)
	if err != nil {
		p.logger.Error("complete",
			"provider", p.next.Name(),
			"model", model,
			"duration", time.Since(begin),
			"code", brochure.ErrorCode(err),
			"err", brochure.ErrorMessage(err),
		)
		return "", err
	}
	p.logger.Info("complete",
		"provider", p.next.Name(),
		"model", model,
		"chars", len(content),
		"duration", time.Since(begin),
	)
	return content, nil
}

// Stream delegates to the wrapped provider. Only stream establishment is
// logged; per-chunk logging would swamp the output.
func (p *LoggingProvider) Stream(ctx context.Context, prompt *brochure.Prompt, model string) (brochure.ChunkStream, error) {
	begin := time.Now()
	stream, err := p.next.Stream(ctx, prompt, model)
	if err != nil {
		p.logger.Error("stream",
			"provider", p.next.Name(),
			"model", model,
			"duration", time.Since(begin),
			"code", brochure.ErrorCode(err),
			"err", brochure.ErrorMessage(err),
		)
		return nil, err
	}
	p.logger.Info("stream",
		"provider", p.next.Name(),
		"model", model,
		"duration", time.Since(begin),
	)
	return stream, nil
}

// Name delegates to the wrapped provider.
func (p *LoggingProvider) Name() string {
	return p.next.Name()
}

// DefaultModel delegates to the wrapped provider.
func (p *LoggingProvider) DefaultModel() string {
	return p.next.DefaultModel()
}
