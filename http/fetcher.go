// Package http provides an HTTP-based implementation of brochure.Fetcher.
// It performs plain GET requests without JavaScript execution; sites that
// render their content client-side are a declared limitation.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/brochure"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// MaxRedirects is the redirect hop limit.
const MaxRedirects = 5

// MaxBodySize caps the response body read (10MB).
const MaxBodySize = int64(10 * 1024 * 1024)

// UserAgent is a browser-style user agent, set to avoid trivial bot
// blocking on company sites.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// Ensure Fetcher implements brochure.Fetcher at compile time.
var _ brochure.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", &brochure.Error{
			Code:    brochure.EINVALID,
			Message: fmt.Sprintf("unsupported URL scheme in %q", url),
			URL:     url,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &brochure.Error{
			Code:    brochure.EINVALID,
			Message: fmt.Sprintf("invalid request for %s: %v", url, err),
			URL:     url,
		}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 429 is a rate-limit signal, retryable like the provider-side
		// equivalent; other 4xx are permanent.
		code := brochure.EHTTPSTATUS
		if resp.StatusCode == http.StatusTooManyRequests {
			code = brochure.ERATELIMIT
		}
		return "", &brochure.Error{
			Code:       code,
			Message:    fmt.Sprintf("HTTP %d for %s", resp.StatusCode, url),
			URL:        url,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil && !isHTMLMediaType(mediaType) {
			return "", &brochure.Error{
				Code:    brochure.EPARSE,
				Message: fmt.Sprintf("content type %q for %s is not HTML", mediaType, url),
				URL:     url,
			}
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", classifyTransportError(url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func isHTMLMediaType(mediaType string) bool {
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// classifyTransportError maps net/http errors onto the error taxonomy:
// deadline failures become ETIMEOUT, everything else ENETWORK.
func classifyTransportError(url string, err error) *brochure.Error {
	code := brochure.ENETWORK
	if errors.Is(err, context.DeadlineExceeded) {
		code = brochure.ETIMEOUT
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		code = brochure.ETIMEOUT
	}
	return &brochure.Error{
		Code:    code,
		Message: fmt.Sprintf("fetch %s: %v", url, err),
		URL:     url,
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
