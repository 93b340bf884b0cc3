package server

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// SessionConfig holds per-session tuning parameters.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a client message.
	// The read deadline is re-armed before every read, so a healthy
	// client only needs to send something (events or pongs) within
	// this window.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for a write to complete.
	WriteTimeout time.Duration

	// IdleTimeout is how long a session may go without events before
	// the sweep loop closes it.
	IdleTimeout time.Duration

	// HandshakeTimeout is the maximum time to wait for the client hello
	// after the WebSocket upgrade.
	HandshakeTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum incoming WebSocket message size in bytes.
	MaxMessageSize int64

	// MaxEventQueue is the event channel capacity. Events arriving while
	// the queue is full are dropped with a warning.
	MaxEventQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       5 * time.Minute,
		HandshakeTimeout:  10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
	}
}

// Clone returns a copy of the config.
func (c *SessionConfig) Clone() *SessionConfig {
	clone := *c
	return &clone
}

// ServerConfig holds server-wide settings.
type ServerConfig struct {
	// Address is the listen address the application should bind.
	// The server itself does not listen; the address travels here so the
	// whole deployment reads from one config.
	Address string

	// ReadBufferSize is the WebSocket read buffer size in bytes.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size in bytes.
	WriteBufferSize int

	// CheckOrigin validates the Origin header during the upgrade.
	// Defaults to SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// Session is the per-session configuration.
	Session *SessionConfig

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CleanupInterval is how often idle sessions are swept.
	CleanupInterval time.Duration

	// MaxSessions caps concurrent sessions. Zero means unlimited.
	MaxSessions int

	// CSRFSecret signs handshake tokens. When empty, token validation is
	// skipped and a warning is logged at startup.
	CSRFSecret []byte

	// TrustedProxies lists proxy IPs or CIDR ranges whose forwarding
	// headers are honored when resolving client IPs.
	TrustedProxies []string

	// OnSessionStart runs after a session is created but before its
	// loops start. The http context is the upgrade request's context;
	// it is only valid for the duration of the callback.
	OnSessionStart func(httpCtx context.Context, session *Session)

	// OnSessionEnd runs once when a session closes, after it has been
	// removed from the registry. It runs on the closing goroutine, so
	// it must not block.
	OnSessionEnd func(session *Session)

	// DevMode disables client script caching and relaxes logging.
	DevMode bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":8080",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
		Session:         DefaultSessionConfig(),
		ShutdownTimeout: 30 * time.Second,
		CleanupInterval: time.Minute,
		MaxSessions:     0,
	}
}

// SameOriginCheck accepts requests whose Origin host matches the request
// host. Requests without an Origin header (same-origin fetches, non-browser
// clients) are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return originURL.Host == r.Host
}

// Clone returns a deep copy of the config.
func (c *ServerConfig) Clone() *ServerConfig {
	clone := *c
	if c.Session != nil {
		clone.Session = c.Session.Clone()
	}
	if c.CSRFSecret != nil {
		clone.CSRFSecret = append([]byte(nil), c.CSRFSecret...)
	}
	if c.TrustedProxies != nil {
		clone.TrustedProxies = append([]string(nil), c.TrustedProxies...)
	}
	return &clone
}

// WithAddress sets the listen address.
func (c *ServerConfig) WithAddress(addr string) *ServerConfig {
	c.Address = addr
	return c
}

// WithSessionConfig sets the session configuration.
func (c *ServerConfig) WithSessionConfig(sc *SessionConfig) *ServerConfig {
	c.Session = sc
	return c
}

// WithMaxSessions sets the session limit.
func (c *ServerConfig) WithMaxSessions(max int) *ServerConfig {
	c.MaxSessions = max
	return c
}

// WithCSRFSecret sets the CSRF signing secret.
func (c *ServerConfig) WithCSRFSecret(secret []byte) *ServerConfig {
	c.CSRFSecret = secret
	return c
}
