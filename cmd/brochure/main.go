package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/brochure"
	"github.com/fwojciec/brochure/anthropic"
	"github.com/fwojciec/brochure/fs"
	"github.com/fwojciec/brochure/gemini"
	"github.com/fwojciec/brochure/generate"
	"github.com/fwojciec/brochure/goquery"
	brochurehttp "github.com/fwojciec/brochure/http"
	"github.com/fwojciec/brochure/openai"
	"github.com/fwojciec/brochure/prompt"
	brochureslog "github.com/fwojciec/brochure/slog"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration. Set before calling Run().
	Config brochure.Config

	// Logger used by the pipeline. Defaults to a text handler on stderr.
	Logger *slog.Logger
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	return &Main{
		Config: configFromEnv(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    m.Config,
		Logger:    logger,
		Languages: brochure.DefaultLanguages(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("brochure"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'brochure --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.Config.Validate(); err != nil {
		return err
	}

	outputDir := m.Config.OutputDir
	if cmd == "generate" && cli.Generate.Output != "" {
		outputDir = cli.Generate.Output
	}
	deps.Writer = fs.NewWriter(outputDir)

	// Providers are only needed by generate and check. Wiring them for
	// languages or cleanup would demand API keys those commands never use.
	if cmd == "generate" || cmd == "check" {
		registry, err := m.buildProviders(ctx, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: set OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY")
			return err
		}
		deps.Providers = registry

		fetcher := brochurehttp.NewFetcher(
			brochurehttp.WithTimeout(m.Config.RequestTimeout),
		)
		defer fetcher.Close()

		deps.Generator = &generate.Generator{
			Fetcher:   brochureslog.NewLoggingFetcher(fetcher, logger),
			Extractor: goquery.NewExtractor(goquery.WithMaxTextLength(m.Config.MaxContentLength)),
			Links:     brochure.NewKeywordLinkSelector(nil),
			Prompts: prompt.NewBuilder(deps.Languages,
				prompt.WithMaxPromptLength(m.Config.MaxPromptLength),
				prompt.WithLogger(logger),
			),
			Providers: registry,
			Languages: deps.Languages,
			Limiter:   generate.NewProviderLimiter(m.Config.ProviderRPS),
			Logger:    logger,
			Retry: generate.RetryConfig{
				MaxAttempts: m.Config.MaxRetries,
			},
		}
	}

	return kongCtx.Run(deps)
}

// buildProviders registers one provider per configured API key. At least
// one key must be present.
func (m *Main) buildProviders(ctx context.Context, logger *slog.Logger) (*brochure.ProviderRegistry, error) {
	var providers []brochure.Provider

	if key := m.Config.OpenAIAPIKey; key != "" {
		providers = append(providers, brochureslog.NewLoggingProvider(openai.NewProvider(key), logger))
	}
	if key := m.Config.AnthropicAPIKey; key != "" {
		providers = append(providers, brochureslog.NewLoggingProvider(anthropic.NewProvider(key), logger))
	}
	if key := m.Config.GeminiAPIKey; key != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		providers = append(providers, brochureslog.NewLoggingProvider(gemini.NewProvider(client, gemini.DefaultModel), logger))
	}

	if len(providers) == 0 {
		return nil, brochure.Errorf(brochure.ECONFIG, "no provider API keys configured")
	}
	return brochure.NewProviderRegistry(providers...), nil
}

// configFromEnv builds a Config from environment variables, falling back
// to defaults for anything unset or unparsable.
func configFromEnv() brochure.Config {
	cfg := brochure.DefaultConfig()

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("BROCHURE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("BROCHURE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("BROCHURE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("BROCHURE_MAX_CONTENT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxContentLength = n
		}
	}
	if v := os.Getenv("BROCHURE_MAX_PROMPT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPromptLength = n
		}
	}
	if v := os.Getenv("BROCHURE_PROVIDER_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ProviderRPS = f
		}
	}

	return cfg
}
