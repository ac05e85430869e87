package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sseRetry is the reconnect delay suggested to clients
const sseRetry = 3 * time.Second

// SSEWriter writes Server-Sent Events. Each event is written as one frame
// and flushed immediately.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sends the stream headers and the retry hint. It fails when the
// response cannot be flushed incrementally.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &SSEWriter{w: w, flusher: flusher}
	if err := s.frame(fmt.Appendf(nil, "retry: %d\n\n", sseRetry.Milliseconds())); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteEvent sends data as JSON under the given event name. A non-zero id is
// sent as the event ID so reconnecting clients can report where they were.
func (s *SSEWriter) WriteEvent(event string, id uint64, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	var buf bytes.Buffer
	if id > 0 {
		fmt.Fprintf(&buf, "id: %d\n", id)
	}
	fmt.Fprintf(&buf, "event: %s\ndata: %s\n\n", event, payload)
	return s.frame(buf.Bytes())
}

// WriteKeepAlive sends a comment line so idle proxies keep the stream open.
func (s *SSEWriter) WriteKeepAlive() error {
	return s.frame([]byte(": keep-alive\n\n"))
}

// WriteError sends an error event. Write failures are ignored because the
// stream is being abandoned anyway.
func (s *SSEWriter) WriteError(message string) {
	_ = s.WriteEvent("error", 0, map[string]string{"error": message})
}

func (s *SSEWriter) frame(b []byte) error {
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
