package marquee

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marquee-dev/marquee/pkg/middleware"
	"github.com/marquee-dev/marquee/pkg/render"
	"github.com/marquee-dev/marquee/pkg/server"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// WebSocketPath is where the session endpoint is mounted. The embedded
// client connects here; the path is part of the client contract.
const WebSocketPath = "/_marquee/ws"

// HealthPath is the liveness endpoint.
const HealthPath = "/healthz"

// Page is what the App serves: a body factory plus the document
// metadata rendered into the head. pkg/site's Site satisfies it.
//
// Page is called once per server render and once per session mount.
// Every call must return a fresh, fully prepared tree (handlers
// attached, hydration IDs assigned) so SSR markup and session refs
// agree.
type Page interface {
	Page(path string) (*vdom.VNode, error)
	Title() string
	Description() string
}

// App composes the page, the session server, the embedded client and
// static files into one http.Handler.
type App struct {
	config Config
	logger *slog.Logger
	server *server.Server
	router chi.Router
	page   Page

	staticFS http.FileSystem
}

// New creates an App serving the given page. Missing config fields are
// filled with defaults.
func New(page Page, cfg Config) (*App, error) {
	if page == nil {
		return nil, errors.New("marquee: nil page")
	}
	fillDefaults(&cfg)

	serverCfg := buildServerConfig(cfg)
	if cfg.Metrics.Enabled {
		serverCfg.OnSessionStart = func(httpCtx context.Context, s *Session) {
			middleware.RecordSessionStart()
			if cfg.OnSessionStart != nil {
				cfg.OnSessionStart(httpCtx, s)
			}
		}
		serverCfg.OnSessionEnd = func(s *Session) {
			middleware.RecordSessionEnd(time.Since(s.CreatedAt))
		}
	} else {
		serverCfg.OnSessionStart = cfg.OnSessionStart
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		return nil, err
	}
	srv.SetPage(page.Page)
	if cfg.Metrics.Enabled {
		srv.Use(middleware.Prometheus())
	}

	app := &App{
		config: cfg,
		logger: cfg.Logger.With("component", "app"),
		server: srv,
		page:   page,
	}
	if cfg.Static.Dir != "" {
		app.staticFS = http.Dir(cfg.Static.Dir)
	}
	app.router = app.routes()
	return app, nil
}

// routes builds the chi router: the client script and WebSocket under
// /_marquee/, health and optional metrics, and a fallback that tries
// static files before rendering the page.
func (a *App) routes() chi.Router {
	r := chi.NewRouter()

	r.Get(render.DefaultClientPath, a.server.ClientHandler().ServeHTTP)
	r.Head(render.DefaultClientPath, a.server.ClientHandler().ServeHTTP)
	r.Get(WebSocketPath, a.server.HandleWebSocket)
	r.Get(HealthPath, a.handleHealth)

	if a.config.Metrics.Enabled {
		r.Method(http.MethodGet, a.config.Metrics.Path, promhttp.Handler())
	}

	r.NotFound(a.handleFallback)
	return r
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler, for wrapping with router
// middleware.
func (a *App) Handler() http.Handler {
	return a
}

// Server returns the underlying session server for advanced
// configuration. Most apps won't need this.
func (a *App) Server() *server.Server {
	return a.server
}

// Config returns the app configuration after defaults were applied.
func (a *App) Config() Config {
	return a.config
}

// Use appends event dispatch middleware. Must be called before the
// first session connects.
func (a *App) Use(mw ...Middleware) {
	a.server.Use(mw...)
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleFallback serves everything the fixed routes did not claim:
// static files when one exists at the path, the rendered page
// otherwise.
func (a *App) handleFallback(w http.ResponseWriter, r *http.Request) {
	if a.shouldServeStatic(r.URL.Path) {
		a.serveStatic(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	a.renderPage(w, r)
}

// renderPage server-renders the page for one request. The CSRF token is
// minted per render, set as the double-submit cookie and embedded in the
// page meta; the WebSocket handshake presents both.
func (a *App) renderPage(w http.ResponseWriter, r *http.Request) {
	body, err := a.page.Page(r.URL.Path)
	if err != nil {
		a.logger.Error("page build failed", "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token := a.server.SetCSRFCookie(w, r)

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{Pretty: a.config.DevMode})
	err = renderer.RenderPage(&buf, render.PageData{
		Body:        body,
		Title:       a.page.Title(),
		Description: a.page.Description(),
		StyleSheets: a.config.StyleSheets,
		CSRFToken:   token,
	})
	if err != nil {
		a.logger.Error("render failed", "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

// Run serves the app on addr (falling back to Config.Addr) and blocks
// until SIGINT or SIGTERM, then shuts down gracefully within
// ShutdownTimeout.
func (a *App) Run(addr string) error {
	if addr == "" {
		addr = a.config.Addr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()
	a.logger.Info("listening", "addr", addr, "dev_mode", a.config.DevMode)

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	stop()
	a.logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	return errors.Join(
		httpServer.Shutdown(shutdownCtx),
		a.Shutdown(shutdownCtx),
	)
}

// Shutdown closes live sessions. Embedders running their own
// http.Server call this after shutting that down; Run does both.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
