package render

import (
	"io"
	"net/http"
)

// StreamingRenderer wraps Renderer with chunked output support. The head is
// flushed before the body is serialized so the browser can start fetching
// stylesheets and the thin client early.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer writing to an
// http.ResponseWriter. If the writer does not implement http.Flusher the
// output is identical, just unflushed.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete HTML document, flushing after the head,
// after the body content, and at the end. The bytes written are exactly
// those of Renderer.RenderPage.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	if err := s.renderDocOpen(s.w, page); err != nil {
		return err
	}
	s.flush()

	if err := s.RenderToWriter(s.w, page.Body); err != nil {
		return err
	}
	s.flush()

	if err := s.renderDocClose(s.w, page); err != nil {
		return err
	}
	s.flush()

	return nil
}

// flush flushes the writer if it supports flushing.
func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// FlushableWriter wraps an io.Writer with flush counting, for testing
// streaming behavior without a live http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
