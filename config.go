package brochure

import "time"

// Default configuration values, matching the shipped .env.example.
const (
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultMaxContentLength = 20000 // per-page extraction budget, characters
	DefaultMaxPromptLength  = 60000 // overall prompt budget, characters
	DefaultProviderRPS      = 1.0   // outbound requests per second per provider
)

// Config carries the externally supplied settings the pipeline consumes.
// It is constructed once at process start (the core never reads ambient
// environment state) and read once per request; there is no hot reload.
type Config struct {
	RequestTimeout   time.Duration
	MaxRetries       int
	MaxContentLength int
	MaxPromptLength  int
	ProviderRPS      float64

	OutputDir string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
}

// DefaultConfig returns a Config with defaults applied and no credentials.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:   DefaultRequestTimeout,
		MaxRetries:       DefaultMaxRetries,
		MaxContentLength: DefaultMaxContentLength,
		MaxPromptLength:  DefaultMaxPromptLength,
		ProviderRPS:      DefaultProviderRPS,
		OutputDir:        "output/brochures",
	}
}

// Validate returns ECONFIG if the configuration is unusable.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return Errorf(ECONFIG, "request timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return Errorf(ECONFIG, "max retries must not be negative")
	}
	if c.MaxContentLength <= 0 {
		return Errorf(ECONFIG, "max content length must be positive")
	}
	if c.MaxPromptLength <= 0 {
		return Errorf(ECONFIG, "max prompt length must be positive")
	}
	return nil
}
