// Package anthropic implements brochure.Provider against the Anthropic
// messages API. Like the openai package it speaks the wire protocol
// directly: JSON over HTTP, SSE for streaming.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/brochure"
)

// DefaultBaseURL is the Anthropic API endpoint.
const DefaultBaseURL = "https://api.anthropic.com/v1"

// DefaultModel is used when options leave the model empty.
const DefaultModel = "claude-3-5-haiku-latest"

// apiVersion is the required anthropic-version header value.
const apiVersion = "2023-06-01"

// maxTokens bounds the response length for brochure generation.
const maxTokens = 4096

// Ensure Provider implements brochure.Provider at compile time.
var _ brochure.Provider = (*Provider)(nil)

// Provider invokes Anthropic Claude models.
type Provider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		p.baseURL = url
	}
}

// WithDefaultModel overrides the default model id.
func WithDefaultModel(model string) Option {
	return func(p *Provider) {
		p.defaultModel = model
	}
}

// WithHTTPClient overrides the HTTP client, e.g. to set a timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// NewProvider creates an Anthropic provider with the given API key.
func NewProvider(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:       apiKey,
		baseURL:      DefaultBaseURL,
		defaultModel: DefaultModel,
		client:       http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider's registry identifier.
func (p *Provider) Name() string { return "claude" }

// DefaultModel returns the model used when options leave it empty.
func (p *Provider) DefaultModel() string { return p.defaultModel }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
	Stream    bool      `json:"stream,omitempty"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// messages flattens a prompt into the message list. Anthropic takes the
// system prompt as a top-level field, so only few-shot pairs and the real
// user prompt appear here.
func messages(prompt *brochure.Prompt) []message {
	msgs := make([]message, 0, 1+2*len(prompt.FewShot))
	for _, ex := range prompt.FewShot {
		msgs = append(msgs,
			message{Role: "user", Content: ex.Input},
			message{Role: "assistant", Content: ex.Output},
		)
	}
	return append(msgs, message{Role: "user", Content: prompt.User})
}

// Complete sends the prompt and returns the full response text.
func (p *Provider) Complete(ctx context.Context, prompt *brochure.Prompt, model string) (string, error) {
	if model == "" {
		model = p.defaultModel
	}

	resp, err := p.send(ctx, messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    prompt.System,
		Messages:  messages(prompt),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", p.responseError("failed to decode messages response: %v", err)
	}
	if len(parsed.Content) == 0 {
		return "", p.responseError("messages response contained no content blocks")
	}
	return parsed.Content[0].Text, nil
}

// Stream sends the prompt and returns a lazy sequence of text chunks.
func (p *Provider) Stream(ctx context.Context, prompt *brochure.Prompt, model string) (brochure.ChunkStream, error) {
	if model == "" {
		model = p.defaultModel
	}

	resp, err := p.send(ctx, messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    prompt.System,
		Messages:  messages(prompt),
		Stream:    true,
	})
	if err != nil {
		return nil, err
	}
	return newStream(resp.Body), nil
}

// send posts the request and maps failures onto the shared error taxonomy.
// The caller owns resp.Body on success.
func (p *Provider) send(ctx context.Context, payload messagesRequest) (*http.Response, error) {
	if p.apiKey == "" {
		return nil, &brochure.Error{
			Code:     brochure.EAUTH,
			Message:  "Anthropic API key required",
			Provider: p.Name(),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, p.responseError("failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, p.responseError("failed to create request: %v", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, transportError(p.Name(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, p.statusError(resp)
	}
	return resp, nil
}

// statusError maps a non-2xx API response onto the error taxonomy.
func (p *Provider) statusError(resp *http.Response) *brochure.Error {
	var apiErr errorResponse
	detail := ""
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		detail = ": " + apiErr.Error.Message
	}

	e := &brochure.Error{
		Provider:   p.Name(),
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Anthropic returned HTTP %d%s", resp.StatusCode, detail),
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		e.Code = brochure.EAUTH
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Code = brochure.ERATELIMIT
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusRequestTimeout:
		e.Code = brochure.ETIMEOUT
	default:
		e.Code = brochure.EHTTPSTATUS
	}
	return e
}

func (p *Provider) responseError(format string, args ...any) *brochure.Error {
	e := brochure.Errorf(brochure.ERESPONSE, format, args...)
	e.Provider = p.Name()
	return e
}

func transportError(provider string, err error) *brochure.Error {
	code := brochure.ENETWORK
	if errors.Is(err, context.DeadlineExceeded) {
		code = brochure.ETIMEOUT
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		code = brochure.ETIMEOUT
	}
	return &brochure.Error{
		Code:     code,
		Message:  err.Error(),
		Provider: provider,
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
