package openai

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/fwojciec/brochure"
)

// Ensure stream implements brochure.ChunkStream at compile time.
var _ brochure.ChunkStream = (*stream)(nil)

// stream reads server-sent events from a chat completion response body.
// It is finite and not restartable. Close may be called concurrently with
// a blocked Recv: closing the body unblocks the read immediately instead
// of draining the connection.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool

	mu     sync.Mutex
	closed bool
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func newStream(body io.ReadCloser) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &stream{body: body, scanner: scanner}
}

// Recv returns the next non-empty text chunk, io.EOF when the provider
// signals [DONE], or a taxonomy error if the connection fails mid-stream.
func (s *stream) Recv() (string, error) {
	if s.done || s.isClosed() {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", &brochure.Error{
				Code:     brochure.ERESPONSE,
				Message:  "malformed stream chunk: " + err.Error(),
				Provider: "openai",
			}
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			return text, nil
		}
	}

	if err := s.scanner.Err(); err != nil && !s.isClosed() {
		return "", &brochure.Error{
			Code:     brochure.ENETWORK,
			Message:  "stream interrupted: " + err.Error(),
			Provider: "openai",
		}
	}

	s.done = true
	return "", io.EOF
}

// Close cancels the stream and releases the underlying connection
// promptly. Safe to call multiple times and concurrently with Recv.
func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

func (s *stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
