package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	brochurehttp "github.com/fwojciec/brochure/http"

	"github.com/fwojciec/brochure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", html)
	})

	t.Run("sends browser user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, brochurehttp.UserAgent, gotUA)
	})

	t.Run("non-2xx returns EHTTPSTATUS with status code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.EHTTPSTATUS, brochure.ErrorCode(err))

		var appErr *brochure.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
		assert.True(t, brochure.Transient(err))
	})

	t.Run("4xx is not transient", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.EHTTPSTATUS, brochure.ErrorCode(err))
		assert.False(t, brochure.Transient(err))
	})

	t.Run("429 is a transient rate limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.ERATELIMIT, brochure.ErrorCode(err))
		assert.True(t, brochure.Transient(err))
		assert.Equal(t, 3*time.Second, brochure.ErrorRetryAfter(err))

		var appErr *brochure.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)
	})

	t.Run("ignores malformed Retry-After", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "1m")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, time.Duration(0), brochure.ErrorRetryAfter(err))
	})

	t.Run("parses Retry-After seconds", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, 7*time.Second, brochure.ErrorRetryAfter(err))
	})

	t.Run("non-HTML content type returns EPARSE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.EPARSE, brochure.ErrorCode(err))
	})

	t.Run("unsupported scheme returns EINVALID", func(t *testing.T) {
		t.Parallel()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "ftp://example.com")
		require.Error(t, err)
		assert.Equal(t, brochure.EINVALID, brochure.ErrorCode(err))
	})

	t.Run("timeout returns ETIMEOUT", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher(brochurehttp.WithTimeout(20 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.ETIMEOUT, brochure.ErrorCode(err))
	})

	t.Run("connection failure returns ENETWORK", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listening anymore

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, brochure.ENETWORK, brochure.ErrorCode(err))
	})

	t.Run("stops after redirect limit", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
		}))
		defer srv.Close()

		fetcher := brochurehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	})
}
