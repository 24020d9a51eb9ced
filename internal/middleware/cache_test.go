package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

func writeAll(t *testing.T, cw *captureWriter, chunks ...string) {
	t.Helper()
	for _, ch := range chunks {
		if _, err := cw.Write([]byte(ch)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
}

func TestCaptureWriterWithinLimit(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 16}
	writeAll(t, cw, "hello ", "world")

	if cw.overflowed() {
		t.Fatal("response within limit reported as overflowed")
	}
	if got := cw.buf.String(); got != "hello world" {
		t.Errorf("buffered %q, want %q", got, "hello world")
	}
}

// A response larger than the capture limit must be flagged so the middleware
// skips the store; caching the buffered prefix would replay truncated bodies.
func TestCaptureWriterOverflowSingleWrite(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 8}
	writeAll(t, cw, strings.Repeat("x", 20))

	if !cw.overflowed() {
		t.Fatal("oversized response not reported as overflowed")
	}
	if cw.size != 20 {
		t.Errorf("size = %d, want 20", cw.size)
	}
	if cw.buf.Len() > 8 {
		t.Errorf("buffered %d bytes, want at most 8", cw.buf.Len())
	}
}

// Overflow must also be detected when the body crosses the limit in chunks
// that individually fit, including a chunk arriving after the buffer is full.
func TestCaptureWriterOverflowChunked(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 8}
	writeAll(t, cw, "aaaa", "bbbb", "cccc")

	if !cw.overflowed() {
		t.Fatal("chunked oversized response not reported as overflowed")
	}
	if cw.size != 12 {
		t.Errorf("size = %d, want 12", cw.size)
	}
	if got := cw.buf.String(); got != "aaaabbbb" {
		t.Errorf("buffered %q, want %q", got, "aaaabbbb")
	}
}

func TestCaptureWriterExactLimitIsCacheable(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 8}
	writeAll(t, cw, "aaaa", "bbbb")

	if cw.overflowed() {
		t.Fatal("response exactly at limit reported as overflowed")
	}
	if got := cw.buf.String(); got != "aaaabbbb" {
		t.Errorf("buffered %q, want %q", got, "aaaabbbb")
	}
}

func TestCaptureWriterNoLimitBuffersEverything(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 0}
	body := strings.Repeat("y", 4096)
	writeAll(t, cw, body)

	if cw.overflowed() {
		t.Fatal("unlimited capture reported as overflowed")
	}
	if !bytes.Equal(cw.buf.Bytes(), []byte(body)) {
		t.Errorf("buffered %d bytes, want %d", cw.buf.Len(), len(body))
	}
}

// Writes always reach the client untouched regardless of the capture limit.
func TestCaptureWriterForwardsFullBody(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, limit: 4}
	writeAll(t, cw, "full response body")

	if got := rec.Body.String(); got != "full response body" {
		t.Errorf("client received %q", got)
	}
}
