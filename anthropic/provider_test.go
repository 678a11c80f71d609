package anthropic_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/brochure"
	"github.com/fwojciec/brochure/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrompt() *brochure.Prompt {
	return &brochure.Prompt{
		System: "You write brochures.",
		User:   "Write one for Acme.",
		FewShot: []brochure.FewShotExample{
			{Input: "example in", Output: "example out"},
		},
	}
}

func TestProvider_Complete(t *testing.T) {
	t.Parallel()

	t.Run("returns response text", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotKey, gotVersion string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-api-key")
			gotVersion = r.Header.Get("anthropic-version")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotBody)
			fmt.Fprint(w, `{"content":[{"type":"text","text":"# Acme Brochure"}]}`)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		content, err := provider.Complete(context.Background(), testPrompt(), "claude-3-5-haiku-latest")
		require.NoError(t, err)

		assert.Equal(t, "# Acme Brochure", content)
		assert.Equal(t, "/messages", gotPath)
		assert.Equal(t, "ak-test", gotKey)
		assert.Equal(t, "2023-06-01", gotVersion)

		// System prompt travels as a top-level field, not a message.
		assert.Equal(t, "You write brochures.", gotBody["system"])
		msgs := gotBody["messages"].([]any)
		require.Len(t, msgs, 3) // few-shot pair + user
		last := msgs[2].(map[string]any)
		assert.Equal(t, "user", last["role"])
		assert.Equal(t, "Write one for Acme.", last["content"])
	})

	t.Run("missing API key returns EAUTH", func(t *testing.T) {
		t.Parallel()

		provider := anthropic.NewProvider("")
		_, err := provider.Complete(context.Background(), testPrompt(), "")
		require.Error(t, err)
		assert.Equal(t, brochure.EAUTH, brochure.ErrorCode(err))
	})

	t.Run("429 returns ERATELIMIT with hint", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"type":"rate_limit_error","message":"slow down"}}`)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		_, err := provider.Complete(context.Background(), testPrompt(), "")
		require.Error(t, err)
		assert.Equal(t, brochure.ERATELIMIT, brochure.ErrorCode(err))
		assert.Equal(t, 30*time.Second, brochure.ErrorRetryAfter(err))
		assert.Contains(t, brochure.ErrorMessage(err), "slow down")
	})

	t.Run("overloaded server returns transient EHTTPSTATUS", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(529)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		_, err := provider.Complete(context.Background(), testPrompt(), "")
		require.Error(t, err)
		assert.Equal(t, brochure.EHTTPSTATUS, brochure.ErrorCode(err))
		assert.True(t, brochure.Transient(err))
	})

	t.Run("empty content returns ERESPONSE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"content":[]}`)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		_, err := provider.Complete(context.Background(), testPrompt(), "")
		require.Error(t, err)
		assert.Equal(t, brochure.ERESPONSE, brochure.ErrorCode(err))
	})
}

func TestProvider_Stream(t *testing.T) {
	t.Parallel()

	sseBody := "event: message_start\n" +
		"data: {\"type\":\"message_start\"}\n\n" +
		"event: content_block_delta\n" +
		"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"Hello\"}}\n\n" +
		"event: content_block_delta\n" +
		"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\" world\"}}\n\n" +
		"event: message_stop\n" +
		"data: {\"type\":\"message_stop\"}\n\n"

	t.Run("yields chunks then EOF", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, true, req["stream"])
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, sseBody)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		stream, err := provider.Stream(context.Background(), testPrompt(), "")
		require.NoError(t, err)
		defer stream.Close()

		var chunks []string
		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			chunks = append(chunks, chunk)
		}
		assert.Equal(t, []string{"Hello", " world"}, chunks)
	})

	t.Run("error event returns ERESPONSE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "event: error\ndata: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"overloaded\"}}\n\n")
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		stream, err := provider.Stream(context.Background(), testPrompt(), "")
		require.NoError(t, err)
		defer stream.Close()

		_, err = stream.Recv()
		require.Error(t, err)
		assert.Equal(t, brochure.ERESPONSE, brochure.ErrorCode(err))
		assert.Contains(t, brochure.ErrorMessage(err), "overloaded")
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sseBody)
		}))
		defer srv.Close()

		provider := anthropic.NewProvider("ak-test", anthropic.WithBaseURL(srv.URL))
		stream, err := provider.Stream(context.Background(), testPrompt(), "")
		require.NoError(t, err)

		assert.NoError(t, stream.Close())
		assert.NoError(t, stream.Close())
	})
}

func TestProvider_Name(t *testing.T) {
	t.Parallel()

	provider := anthropic.NewProvider("ak-test")
	assert.Equal(t, "claude", provider.Name())
	assert.Equal(t, anthropic.DefaultModel, provider.DefaultModel())
}
