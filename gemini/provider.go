// Package gemini implements brochure.Provider using Google Gemini via the
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"io"
	"iter"
	"net/http"
	"sync"

	"github.com/fwojciec/brochure"
	"google.golang.org/genai"
)

// DefaultModel is used when options leave the model empty.
const DefaultModel = "gemini-2.5-flash"

// temperature keeps brochure output focused without making it sterile.
const temperature = float32(0.7)

// Ensure Provider implements brochure.Provider at compile time.
var _ brochure.Provider = (*Provider)(nil)

// Provider invokes Gemini models.
type Provider struct {
	client       *genai.Client
	defaultModel string
}

// NewProvider creates a Gemini provider over an existing genai client.
func NewProvider(client *genai.Client, defaultModel string) *Provider {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &Provider{client: client, defaultModel: defaultModel}
}

// Name returns the provider's registry identifier.
func (p *Provider) Name() string { return "gemini" }

// DefaultModel returns the model used when options leave it empty.
func (p *Provider) DefaultModel() string { return p.defaultModel }

// buildConfig returns the GenerateContentConfig carrying the system prompt.
func buildConfig(prompt *brochure.Prompt) *genai.GenerateContentConfig {
	temp := temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		},
		Temperature: &temp,
	}
}

// buildContents flattens the prompt into the content list: few-shot pairs
// as alternating user/model turns, then the real user prompt.
func buildContents(prompt *brochure.Prompt) []*genai.Content {
	contents := make([]*genai.Content, 0, 1+2*len(prompt.FewShot))
	for _, ex := range prompt.FewShot {
		contents = append(contents,
			&genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: ex.Input}}},
			&genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: ex.Output}}},
		)
	}
	return append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt.User}},
	})
}

// Complete sends the prompt and returns the full response text.
func (p *Provider) Complete(ctx context.Context, prompt *brochure.Prompt, model string) (string, error) {
	if model == "" {
		model = p.defaultModel
	}

	result, err := p.client.Models.GenerateContent(ctx, model, buildContents(prompt), buildConfig(prompt))
	if err != nil {
		return "", mapError(err)
	}
	if result == nil {
		return "", &brochure.Error{
			Code:     brochure.ERESPONSE,
			Message:  "gemini returned nil result",
			Provider: "gemini",
		}
	}
	return result.Text(), nil
}

// Stream sends the prompt and returns a lazy sequence of text chunks.
func (p *Provider) Stream(ctx context.Context, prompt *brochure.Prompt, model string) (brochure.ChunkStream, error) {
	if model == "" {
		model = p.defaultModel
	}

	streamCtx, cancel := context.WithCancel(ctx)
	seq := p.client.Models.GenerateContentStream(streamCtx, model, buildContents(prompt), buildConfig(prompt))
	next, stop := iter.Pull2(seq)

	return &stream{next: next, stop: stop, cancel: cancel}, nil
}

// stream adapts the genai response sequence to brochure.ChunkStream.
//
// iter.Pull2 forbids concurrent calls to next and stop, so Close only
// cancels the stream context to unblock an in-flight Recv; stop is invoked
// from the Recv side once the sequence terminates.
type stream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
	done   bool

	stopOnce sync.Once

	mu     sync.Mutex
	closed bool
}

// Ensure stream implements brochure.ChunkStream at compile time.
var _ brochure.ChunkStream = (*stream)(nil)

func (s *stream) finish() {
	s.stopOnce.Do(s.stop)
}

// Recv returns the next non-empty text chunk, io.EOF when the sequence
// ends, or a taxonomy error if generation fails mid-stream.
func (s *stream) Recv() (string, error) {
	s.mu.Lock()
	if s.closed || s.done {
		s.mu.Unlock()
		s.finish()
		return "", io.EOF
	}
	s.mu.Unlock()

	for {
		resp, err, ok := s.next()
		if !ok {
			s.done = true
			s.finish()
			return "", io.EOF
		}
		if err != nil {
			s.done = true
			s.finish()
			return "", mapError(err)
		}
		if resp == nil {
			continue
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
	}
}

// Close cancels the stream context, which unblocks any in-flight Recv.
func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	return nil
}

// mapError translates genai SDK errors onto the shared error taxonomy.
func mapError(err error) *brochure.Error {
	e := &brochure.Error{
		Code:     brochure.ERESPONSE,
		Message:  err.Error(),
		Provider: "gemini",
	}

	if errors.Is(err, context.DeadlineExceeded) {
		e.Code = brochure.ETIMEOUT
		return e
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		e.StatusCode = apiErr.Code
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			e.Code = brochure.EAUTH
		case apiErr.Code == http.StatusTooManyRequests:
			e.Code = brochure.ERATELIMIT
		case apiErr.Code >= 500:
			e.Code = brochure.EHTTPSTATUS
		}
	}
	return e
}
