package brochure

import (
	"context"
	"sort"
)

// Provider invokes a hosted language model. Implementations differ only in
// wire-level request shaping and in mapping provider error payloads onto
// the shared error codes; callers never see provider-specific types.
type Provider interface {
	// Complete sends the prompt and returns the full response text.
	// Returns EAUTH, ERATELIMIT, ETIMEOUT or ERESPONSE on failure.
	Complete(ctx context.Context, prompt *Prompt, model string) (string, error)

	// Stream sends the prompt and returns a lazy sequence of text chunks.
	// The stream is finite and not restartable. A mid-stream connection
	// failure surfaces through Recv with the same error codes as
	// Complete; chunks already delivered are not retracted.
	Stream(ctx context.Context, prompt *Prompt, model string) (ChunkStream, error)

	// Name returns the provider's registry identifier.
	Name() string

	// DefaultModel returns the model used when options leave it empty.
	DefaultModel() string
}

// ChunkStream is a cancellable sequence of response chunks.
type ChunkStream interface {
	// Recv returns the next chunk. It returns io.EOF when the provider
	// signals normal completion and a taxonomy error if the connection
	// fails mid-stream.
	Recv() (string, error)

	// Close cancels the stream and releases the underlying connection
	// promptly rather than draining it. Safe to call multiple times.
	Close() error
}

// ProviderRegistry holds the available providers keyed by identifier.
// Adding a provider is a registration, never a change to pipeline logic.
type ProviderRegistry struct {
	providers map[string]Provider
}

// NewProviderRegistry creates a registry containing the given providers.
func NewProviderRegistry(providers ...Provider) *ProviderRegistry {
	r := &ProviderRegistry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a provider under its own name.
func (r *ProviderRegistry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get returns the provider for the identifier.
// Returns ECONFIG if no provider is registered under that name.
func (r *ProviderRegistry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, Errorf(ECONFIG, "unknown provider %q", name)
	}
	return p, nil
}

// List returns all registered provider names in lexical order.
func (r *ProviderRegistry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderLimiter enforces outbound rate limits per provider so that
// concurrent generations collectively respect published limits.
type ProviderLimiter interface {
	// Wait blocks until the rate limit allows a request to the provider.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, provider string) error
}
