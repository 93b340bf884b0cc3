package marquee

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/marquee-dev/marquee/pkg/server"
)

// Config is the application configuration. The zero value works for
// development; production deployments should at least set a CSRF secret
// and the allowed origins.
type Config struct {
	// Addr is the listen address used by Run when none is passed.
	// Default: ":8080".
	Addr string

	// Static configures static file serving.
	Static StaticConfig

	// Security configures CSRF, origin checking and proxy trust.
	Security SecurityConfig

	// Session configures per-session timeouts and limits.
	Session SessionConfig

	// Metrics configures the Prometheus endpoint and event metrics.
	Metrics MetricsConfig

	// StyleSheets are hrefs rendered as stylesheet links on every page.
	StyleSheets []string

	// ShutdownTimeout bounds graceful shutdown in Run.
	// Default: 30s.
	ShutdownTimeout time.Duration

	// DevMode relaxes security for local development: origin checking is
	// disabled, no CSRF secret is minted (handshake tokens then go
	// unvalidated), the client script is served uncached and pages render
	// pretty-printed. Never enable in production.
	DevMode bool

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// OnSessionStart runs when a WebSocket session is established, before
	// its loops start. Use it to carry values from the HTTP request
	// context (set by router middleware) into the session.
	OnSessionStart func(httpCtx context.Context, s *Session)
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files. Empty disables
	// static serving.
	Dir string

	// Prefix is the URL path prefix for static files.
	// Default: "/".
	Prefix string

	// CacheControl determines caching behavior for static files.
	// Default: CacheControlNone.
	CacheControl CacheControlStrategy

	// Headers are custom headers added to all static file responses.
	Headers map[string]string
}

// SecurityConfig configures security features.
type SecurityConfig struct {
	// CSRFSecret signs the handshake tokens embedded in rendered pages.
	// When empty outside DevMode, a random secret is generated at
	// startup; tokens then do not survive a restart.
	CSRFSecret []byte

	// AllowedOrigins lists origins accepted for WebSocket upgrades.
	// Empty means same-origin only.
	AllowedOrigins []string

	// TrustedProxies lists proxy IPs or CIDR ranges whose forwarding
	// headers are honored when resolving client IPs.
	TrustedProxies []string
}

// SessionConfig configures session behavior. Zero fields keep the
// server defaults.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a client message.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for a write to complete.
	WriteTimeout time.Duration

	// IdleTimeout is how long a session may go without events before it
	// is closed.
	IdleTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client.
	HeartbeatInterval time.Duration

	// MaxSessions caps concurrent sessions. Zero means unlimited.
	MaxSessions int
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns on event metrics and the scrape endpoint.
	Enabled bool

	// Path is where the scrape endpoint is mounted.
	// Default: "/metrics".
	Path string
}

// CacheControlStrategy determines caching behavior for static files.
type CacheControlStrategy int

const (
	// CacheControlNone adds no-store headers. Use in development for
	// instant updates.
	CacheControlNone CacheControlStrategy = iota

	// CacheControlProduction caches fingerprinted files (app.a1b2c3d4.css)
	// as immutable for a year and everything else briefly with
	// revalidation.
	CacheControlProduction
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr: ":8080",
		Static: StaticConfig{
			Prefix:       "/",
			CacheControl: CacheControlNone,
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
		ShutdownTimeout: 30 * time.Second,
	}
}

// fillDefaults completes a user config in place.
func fillDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Static.Prefix == "" {
		cfg.Static.Prefix = "/"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if len(cfg.Security.CSRFSecret) == 0 && !cfg.DevMode {
		cfg.Security.CSRFSecret = randomSecret()
	}
}

// randomSecret mints a process-lifetime CSRF secret. Panics if the
// system random source fails.
func randomSecret() []byte {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("marquee: failed to generate CSRF secret: " + err.Error())
	}
	return secret
}

// buildServerConfig translates the application config into the session
// server's configuration.
func buildServerConfig(cfg Config) *server.ServerConfig {
	serverCfg := server.DefaultServerConfig()
	serverCfg.Address = cfg.Addr
	serverCfg.DevMode = cfg.DevMode
	serverCfg.MaxSessions = cfg.Session.MaxSessions
	serverCfg.CSRFSecret = append([]byte(nil), cfg.Security.CSRFSecret...)
	serverCfg.TrustedProxies = append([]string(nil), cfg.Security.TrustedProxies...)

	if cfg.Session.ReadTimeout > 0 {
		serverCfg.Session.ReadTimeout = cfg.Session.ReadTimeout
	}
	if cfg.Session.WriteTimeout > 0 {
		serverCfg.Session.WriteTimeout = cfg.Session.WriteTimeout
	}
	if cfg.Session.IdleTimeout > 0 {
		serverCfg.Session.IdleTimeout = cfg.Session.IdleTimeout
	}
	if cfg.Session.HeartbeatInterval > 0 {
		serverCfg.Session.HeartbeatInterval = cfg.Session.HeartbeatInterval
	}

	switch {
	case cfg.DevMode:
		serverCfg.CheckOrigin = func(*http.Request) bool { return true }
	case len(cfg.Security.AllowedOrigins) > 0:
		serverCfg.CheckOrigin = originCheck(cfg.Security.AllowedOrigins)
	default:
		serverCfg.CheckOrigin = server.SameOriginCheck
	}

	return serverCfg
}

// originCheck accepts the listed origins plus same-origin requests.
// Requests without an Origin header (non-browser clients) are accepted.
func originCheck(allowed []string) func(r *http.Request) bool {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if origins[origin] {
			return true
		}
		return server.SameOriginCheck(r)
	}
}
