// Package generate provides the brochure generation orchestrator.
// It coordinates scraping, link selection, prompt construction and model
// invocation, applying the retry policy around each network-facing step.
package generate

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/brochure"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// State identifies a phase of a generation request.
type State string

// Generation states. FAILED is absorbing: it is reachable from every state
// except DONE.
const (
	StatePending         State = "pending"
	StateScrapingLanding State = "scraping_landing"
	StateScrapingLinks   State = "scraping_links"
	StateBuildingPrompt  State = "building_prompt"
	StateInvokingModel   State = "invoking_model"
	StateStreaming       State = "streaming"
	StateComplete        State = "complete"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// ProgressEvent reports a state transition during generation.
type ProgressEvent struct {
	State State
	URL   string
	Err   error
}

// ProgressFunc is a callback for reporting generation progress.
type ProgressFunc func(event ProgressEvent)

// ChunkFunc receives streamed output chunks as they arrive.
type ChunkFunc func(chunk string)

// Request bundles the inputs of one generation call.
type Request struct {
	CompanyName string
	WebsiteURL  string
	Options     brochure.GenerationOptions

	// Progress, if set, receives state transitions.
	Progress ProgressFunc

	// Chunks, if set, receives streamed output incrementally.
	// Only used when Options.Stream is true.
	Chunks ChunkFunc
}

// Generator orchestrates brochure generation. Generators are stateless
// across calls: every request builds its entities fresh and concurrent
// calls share nothing but the provider rate limiter.
type Generator struct {
	Fetcher   brochure.Fetcher
	Extractor brochure.Extractor
	Links     brochure.LinkSelector
	Prompts   brochure.PromptBuilder
	Providers *brochure.ProviderRegistry
	Languages *brochure.Languages
	Limiter   brochure.ProviderLimiter
	Logger    *slog.Logger

	// Retry is the per-step retry policy. Zero value uses defaults.
	Retry RetryConfig

	// LinkLimit caps the number of sub-pages fetched.
	// Zero means brochure.DefaultLinkLimit.
	LinkLimit int

	// Concurrency bounds parallel sub-page fetches. Zero means the
	// number of selected links (fully parallel).
	Concurrency int
}

// Generate runs the full pipeline for one company.
//
// The returned result is non-nil even on failure: its Metadata records the
// run (Success=false, accumulated RetryCount) for optional persistence by
// the caller. Content is only meaningful when err is nil. In streaming
// mode, chunks already forwarded to req.Chunks are not retracted when a
// later chunk fails; the returned error marks the generation as failed.
func (g *Generator) Generate(ctx context.Context, req Request) (*brochure.GenerationResult, error) {
	startedAt := time.Now()
	var retryCount atomic.Int64

	opts := req.Options
	meta := brochure.GenerationMetadata{
		ID:          uuid.NewString(),
		CompanyName: brochure.FormatCompanyName(req.CompanyName),
		WebsiteURL:  req.WebsiteURL,
		Provider:    opts.Provider,
		Model:       opts.Model,
		Language:    opts.Language,
		StartedAt:   startedAt,
	}

	fail := func(err error) (*brochure.GenerationResult, error) {
		g.emit(req.Progress, ProgressEvent{State: StateFailed, Err: err})
		meta.Duration = time.Since(startedAt)
		meta.RetryCount = int(retryCount.Load())
		return &brochure.GenerationResult{Metadata: meta}, err
	}

	g.emit(req.Progress, ProgressEvent{State: StatePending})

	if err := opts.Validate(g.Languages); err != nil {
		return fail(err)
	}
	provider, err := g.Providers.Get(opts.Provider)
	if err != nil {
		return fail(err)
	}
	model := opts.Model
	if model == "" {
		model = provider.DefaultModel()
		meta.Model = model
	}

	// Landing page. A failure here, after retries, fails the run.
	g.emit(req.Progress, ProgressEvent{State: StateScrapingLanding, URL: req.WebsiteURL})
	landing, retries, err := g.scrape(ctx, req.WebsiteURL)
	retryCount.Add(int64(retries))
	if err != nil {
		return fail(err)
	}

	// Sub-pages. Failures degrade gracefully: a failed sub-page is
	// dropped and generation proceeds with whatever succeeded.
	selected := g.selector().Select(landing.Links, g.linkLimit())
	g.emit(req.Progress, ProgressEvent{State: StateScrapingLinks})
	subpages := g.scrapeSubpages(ctx, selected, &retryCount)

	extraction := &brochure.Extraction{Landing: landing, Subpages: subpages}
	meta.SubpageCount = len(subpages)

	g.emit(req.Progress, ProgressEvent{State: StateBuildingPrompt})
	prompt, err := g.Prompts.Build(req.CompanyName, extraction, opts)
	if err != nil {
		return fail(err)
	}
	meta.PromptChars = prompt.Chars()

	g.emit(req.Progress, ProgressEvent{State: StateInvokingModel})

	var content string
	if opts.Stream {
		content, retries, err = g.invokeStream(ctx, provider, prompt, model, req)
	} else {
		content, retries, err = g.invoke(ctx, provider, prompt, model)
	}
	retryCount.Add(int64(retries))
	if err != nil {
		return fail(err)
	}

	if !opts.Stream {
		g.emit(req.Progress, ProgressEvent{State: StateComplete})
	}

	meta.Duration = time.Since(startedAt)
	meta.RetryCount = int(retryCount.Load())
	meta.ContentChars = len(content)
	meta.WordCount = len(strings.Fields(content))
	meta.Success = true

	g.emit(req.Progress, ProgressEvent{State: StateDone})

	return &brochure.GenerationResult{
		Content:  content,
		Metadata: meta,
	}, nil
}

// scrape fetches and extracts a single page, retrying the fetch on
// transient failures. Extraction itself is not retried: unparsable content
// won't parse better the second time.
func (g *Generator) scrape(ctx context.Context, url string) (*brochure.ScrapedPage, int, error) {
	var html string
	retries, err := Retry(ctx, g.Retry, func() error {
		var fetchErr error
		html, fetchErr = g.Fetcher.Fetch(ctx, url)
		return fetchErr
	})
	if err != nil {
		return nil, retries, err
	}

	page, err := g.Extractor.Extract(html, url)
	if err != nil {
		return nil, retries, err
	}
	return page, retries, nil
}

// scrapeSubpages fetches the selected links, possibly concurrently. The
// returned pages keep the selector's order, not fetch-completion order,
// and failed sub-pages are logged and dropped.
func (g *Generator) scrapeSubpages(ctx context.Context, links []brochure.Link, retryCount *atomic.Int64) []*brochure.ScrapedPage {
	if len(links) == 0 {
		return nil
	}

	concurrency := g.Concurrency
	if concurrency <= 0 {
		concurrency = len(links)
	}

	results := make([]*brochure.ScrapedPage, len(links))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, link := range links {
		eg.Go(func() error {
			page, retries, err := g.scrape(egCtx, link.Href)
			retryCount.Add(int64(retries))
			if err != nil {
				g.log().Warn("sub-page dropped",
					"url", link.Href,
					"code", brochure.ErrorCode(err),
					"err", brochure.ErrorMessage(err),
				)
				return nil
			}
			results[i] = page
			return nil
		})
	}
	_ = eg.Wait()

	pages := make([]*brochure.ScrapedPage, 0, len(links))
	for _, page := range results {
		if page != nil {
			pages = append(pages, page)
		}
	}
	return pages
}

// invoke calls the provider synchronously, retrying transient failures.
// The rate limiter gates every attempt, including retries.
func (g *Generator) invoke(ctx context.Context, provider brochure.Provider, prompt *brochure.Prompt, model string) (string, int, error) {
	var content string
	retries, err := Retry(ctx, g.Retry, func() error {
		if err := g.wait(ctx, provider.Name()); err != nil {
			return err
		}
		var callErr error
		content, callErr = provider.Complete(ctx, prompt, model)
		return callErr
	})
	return content, retries, err
}

// invokeStream establishes the stream (with retry), then forwards chunks
// while accumulating the final content. Mid-stream failures are not
// retried: partial output has already been handed to the caller.
func (g *Generator) invokeStream(ctx context.Context, provider brochure.Provider, prompt *brochure.Prompt, model string, req Request) (string, int, error) {
	var stream brochure.ChunkStream
	retries, err := Retry(ctx, g.Retry, func() error {
		if err := g.wait(ctx, provider.Name()); err != nil {
			return err
		}
		var openErr error
		stream, openErr = provider.Stream(ctx, prompt, model)
		return openErr
	})
	if err != nil {
		return "", retries, err
	}
	defer stream.Close()

	g.emit(req.Progress, ProgressEvent{State: StateStreaming})

	var b strings.Builder
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return b.String(), retries, err
		}
		b.WriteString(chunk)
		if req.Chunks != nil {
			req.Chunks(chunk)
		}
	}

	g.emit(req.Progress, ProgressEvent{State: StateComplete})
	return b.String(), retries, nil
}

func (g *Generator) wait(ctx context.Context, provider string) error {
	if g.Limiter == nil {
		return nil
	}
	return g.Limiter.Wait(ctx, provider)
}

func (g *Generator) selector() brochure.LinkSelector {
	if g.Links != nil {
		return g.Links
	}
	return brochure.NewKeywordLinkSelector(nil)
}

func (g *Generator) linkLimit() int {
	if g.LinkLimit > 0 {
		return g.LinkLimit
	}
	return brochure.DefaultLinkLimit
}

func (g *Generator) emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

func (g *Generator) log() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
