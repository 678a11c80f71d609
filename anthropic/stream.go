package anthropic

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

// stream reads server-sent events from a messages API response body.
// Anthropic tags each data line with a type: text arrives in
// content_block_delta events and message_stop marks normal completion.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool

	mu     sync.Mutex
	closed bool
}

type streamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func newStream(body io.ReadCloser) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &stream{body: body, scanner: scanner}
}

// Recv returns the next text chunk, io.EOF on message_stop, or a taxonomy
// error if the connection fails or the provider reports a stream error.
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

		var event streamEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			return "", &brochure.Error{
				Code:     brochure.ERESPONSE,
				Message:  "malformed stream event: " + err.Error(),
				Provider: "claude",
			}
		}

		switch event.Type {
		case "content_block_delta":
			if event.Delta.Text != "" {
				return event.Delta.Text, nil
			}
		case "message_stop":
			s.done = true
			return "", io.EOF
		case "error":
			return "", &brochure.Error{
				Code:     brochure.ERESPONSE,
				Message:  "stream error: " + event.Error.Message,
				Provider: "claude",
			}
		}
	}

	if err := s.scanner.Err(); err != nil && !s.isClosed() {
		return "", &brochure.Error{
			Code:     brochure.ENETWORK,
			Message:  "stream interrupted: " + err.Error(),
			Provider: "claude",
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
