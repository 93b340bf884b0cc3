package render

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marquee-dev/marquee/pkg/vdom"
)

func streamingPage() PageData {
	body := vdom.Main(
		vdom.H1(vdom.Text("Welcome")),
		vdom.Button(vdom.Key("go"), vdom.OnClick(func() {}), vdom.Text("Get Started")),
	)
	vdom.AssignHIDs(body, vdom.NewHIDGenerator())
	return PageData{
		Body:        body,
		Title:       "Marquee",
		CSRFToken:   "tok",
		StyleSheets: []string{"/static/site.css"},
	}
}

func TestStreamingMatchesRenderPage(t *testing.T) {
	page := streamingPage()

	var want bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&want, page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	sr := NewStreamingRenderer(rec, RendererConfig{})
	if err := sr.RenderPage(page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Body.String() != want.String() {
		t.Errorf("streaming output diverged:\n%q\n%q", rec.Body.String(), want.String())
	}
}

func TestStreamingFlushes(t *testing.T) {
	var buf bytes.Buffer
	fw := &FlushableWriter{Writer: &buf}
	sr := &StreamingRenderer{
		Renderer: NewRenderer(RendererConfig{}),
		flusher:  fw,
		w:        fw,
	}

	if err := sr.RenderPage(streamingPage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fw.FlushCount != 3 {
		t.Errorf("expected 3 flushes (head, body, close), got %d", fw.FlushCount)
	}
	if buf.Len() == 0 {
		t.Error("expected output to be written")
	}
}

// unflushableWriter hides the recorder's Flush method.
type unflushableWriter struct {
	http.ResponseWriter
}

func TestStreamingWithoutFlusher(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := NewStreamingRenderer(unflushableWriter{rec}, RendererConfig{})

	if err := sr.RenderPage(streamingPage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected output without a flusher")
	}
}
