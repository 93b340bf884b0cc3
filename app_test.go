package marquee

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/render"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// stubPage is a minimal Page with one interactive button.
type stubPage struct{}

func (stubPage) Page(path string) (*vdom.VNode, error) {
	body := vdom.Div(
		vdom.H1("Stub"),
		vdom.Button(vdom.Key("cta"), vdom.OnClick(func(ctx Ctx) {
			ctx.Apply(protocol.NewSetTextPatch("cta", "Clicked"))
		}), "Click"),
	)
	vdom.AssignHIDs(body, vdom.NewHIDGenerator())
	return body, nil
}

func (stubPage) Title() string       { return "Stub Page" }
func (stubPage) Description() string { return "A stub." }

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	app, err := New(stubPage{}, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = app.Shutdown(ctx)
	})
	return app
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewRejectsNilPage(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("New(nil, ...) should fail")
	}
}

func TestAppHealth(t *testing.T) {
	rec := get(t, newTestApp(t, Config{}), HealthPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "ok\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAppClientScript(t *testing.T) {
	rec := get(t, newTestApp(t, Config{}), render.DefaultClientPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
}

func TestAppRendersPage(t *testing.T) {
	app := newTestApp(t, Config{})

	for _, path := range []string{"/", "/pricing"} {
		rec := get(t, app, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rec.Code)
		}
		body := rec.Body.String()
		if !strings.HasPrefix(body, "<!DOCTYPE html>") {
			t.Error("missing doctype")
		}
		if !strings.Contains(body, "<title>Stub Page</title>") {
			t.Error("missing title")
		}
		if !strings.Contains(body, `name="`+render.CSRFMetaName+`"`) {
			t.Error("missing CSRF meta tag")
		}
		if !strings.Contains(body, render.DefaultClientPath) {
			t.Error("missing client script tag")
		}

		var csrfCookie bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == "__marquee_csrf" && c.Value != "" {
				csrfCookie = true
			}
		}
		if !csrfCookie {
			t.Error("missing CSRF cookie")
		}
	}
}

func TestAppHeadRendersHeadersOnly(t *testing.T) {
	app := newTestApp(t, Config{})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body has %d bytes", rec.Body.Len())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestAppPageMethodNotAllowed(t *testing.T) {
	app := newTestApp(t, Config{})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Allow = %q", allow)
	}
}

func TestAppServesStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Config{
		Static: StaticConfig{Dir: dir, Prefix: "/static/"},
	})

	rec := get(t, app, "/static/styles.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Errorf("Cache-Control = %q", cc)
	}

	// A missing file under the prefix falls through to page rendering.
	rec = get(t, app, "/static/missing.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Stub Page</title>") {
		t.Error("fallback did not render the page")
	}
}

func TestAppStaticCustomHeaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Config{
		Static: StaticConfig{
			Dir:     dir,
			Prefix:  "/",
			Headers: map[string]string{"X-Served-By": "marquee"},
		},
	})

	rec := get(t, app, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Served-By"); got != "marquee" {
		t.Errorf("X-Served-By = %q", got)
	}
}

func TestAppMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, Config{Metrics: MetricsConfig{Enabled: true}})

	rec := get(t, app, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "marquee_") {
		t.Error("metrics body has no marquee instruments")
	}

	// Disabled config mounts nothing; the path renders the page instead.
	plain := newTestApp(t, Config{})
	rec = get(t, plain, "/metrics")
	if strings.Contains(rec.Body.String(), "# HELP") {
		t.Error("metrics served despite being disabled")
	}
}

func TestAppWebSocketSession(t *testing.T) {
	app := newTestApp(t, Config{DevMode: true})
	ts := httptest.NewServer(app)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + WebSocketPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	hello := &protocol.ClientHello{Version: protocol.CurrentVersion, Path: "/"}
	frame := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeClientHello(hello))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read hello: %v", err)
	}
	reply, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	serverHello, err := protocol.DecodeServerHello(reply.Payload)
	if err != nil {
		t.Fatalf("DecodeServerHello: %v", err)
	}
	if serverHello.Status != protocol.HandshakeOK {
		t.Fatalf("handshake status = %v", serverHello.Status)
	}
	if app.Server().SessionCount() != 1 {
		t.Errorf("SessionCount = %d, want 1", app.Server().SessionCount())
	}
}

func TestAppShutdownClosesSessions(t *testing.T) {
	app := newTestApp(t, Config{DevMode: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if app.Server().SessionCount() != 0 {
		t.Errorf("SessionCount = %d after shutdown", app.Server().SessionCount())
	}
}
