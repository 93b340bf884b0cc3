package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// PageFunc builds a fresh page body for one session or one render. The
// returned tree must be fully prepared: handlers attached and hydration
// IDs assigned. Building the tree the same way for server rendering and
// for session mounts is what keeps refs stable between the two.
type PageFunc func(path string) (*vdom.VNode, error)

// Server upgrades WebSocket connections, performs the handshake and runs
// sessions. It exposes http.Handlers for the application's router rather
// than listening itself.
type Server struct {
	config     *ServerConfig
	registry   *sessionRegistry
	upgrader   websocket.Upgrader
	proxies    *proxyMatcher
	logger     *slog.Logger
	pageFunc   PageFunc
	middleware []Middleware

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a server. Missing config fields are filled with defaults.
func New(config *ServerConfig) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if config.Session == nil {
		config.Session = DefaultSessionConfig()
	}
	if config.Address == "" {
		config.Address = ":8080"
	}
	if config.ReadBufferSize == 0 {
		config.ReadBufferSize = 4096
	}
	if config.WriteBufferSize == 0 {
		config.WriteBufferSize = 4096
	}
	if config.CheckOrigin == nil {
		config.CheckOrigin = SameOriginCheck
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 30 * time.Second
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}

	proxies, err := newProxyMatcher(config.TrustedProxies)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "server")
	if len(config.CSRFSecret) == 0 {
		logger.Warn("no CSRF secret configured, handshake tokens are not validated")
	}

	s := &Server{
		config:   config,
		registry: newSessionRegistry(),
		proxies:  proxies,
		logger:   logger,
		done:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	go s.sweepLoop()
	return s, nil
}

// SetPage installs the page factory used to mount sessions.
func (s *Server) SetPage(fn PageFunc) {
	s.pageFunc = fn
}

// Use appends dispatch middleware. Must be called before sessions are
// created; the chain is composed at session creation.
func (s *Server) Use(mw ...Middleware) {
	s.middleware = append(s.middleware, mw...)
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	return s.registry.count()
}

// GetSession returns a live session by ID.
func (s *Server) GetSession(id string) (*Session, error) {
	return s.registry.get(id)
}

// WebSocketHandler returns an http.Handler for the WebSocket endpoint.
func (s *Server) WebSocketHandler() http.Handler {
	return http.HandlerFunc(s.HandleWebSocket)
}

// HandleWebSocket upgrades the connection, runs the binary handshake and
// starts the session on success. Handshake failures are reported to the
// client with a status in the server hello before the connection closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		s.logger.Warn("websocket upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}

	conn.SetReadLimit(s.config.Session.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(s.config.Session.HandshakeTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		s.logger.Warn("handshake read failed", "err", err, "remote", r.RemoteAddr)
		_ = conn.Close()
		return
	}

	hello, err := decodeHandshakeFrame(msg)
	if err != nil {
		s.logger.Warn("malformed handshake", "err", err, "remote", r.RemoteAddr)
		s.sendHandshakeError(conn, protocol.HandshakeInvalidFormat)
		_ = conn.Close()
		return
	}

	if hello.Version.Major != protocol.CurrentVersion.Major {
		s.logger.Warn("protocol version mismatch",
			"client", fmt.Sprintf("%d.%d", hello.Version.Major, hello.Version.Minor),
			"server", fmt.Sprintf("%d.%d", protocol.CurrentVersion.Major, protocol.CurrentVersion.Minor))
		s.sendHandshakeError(conn, protocol.HandshakeVersionMismatch)
		_ = conn.Close()
		return
	}

	ip := clientIPFromRequest(r, s.proxies)

	if err := s.validateCSRF(r, hello.CSRFToken); err != nil {
		s.logger.Warn("handshake CSRF validation failed", "err", err, "ip", ip)
		s.sendHandshakeError(conn, protocol.HandshakeInvalidCSRF)
		_ = conn.Close()
		return
	}

	if s.config.MaxSessions > 0 && s.registry.count() >= s.config.MaxSessions {
		s.logger.Warn("rejecting connection", "err", ErrMaxSessionsReached, "max", s.config.MaxSessions)
		s.sendHandshakeError(conn, protocol.HandshakeSessionLimit)
		_ = conn.Close()
		return
	}

	session := newSession(conn, s.config.Session, slog.Default().With("component", "session"))
	session.IP = ip
	if hello.Path != "" {
		session.Path = hello.Path
	}
	session.dispatch = Compose(session.dispatchEvent, s.middleware...)
	session.onClose = func(sess *Session) {
		s.registry.remove(sess.ID)
		if s.config.OnSessionEnd != nil {
			s.config.OnSessionEnd(sess)
		}
	}

	if s.config.OnSessionStart != nil {
		s.config.OnSessionStart(r.Context(), session)
	}

	if err := s.mountSession(session); err != nil {
		s.logger.Error("session mount failed", "session_id", session.ID, "path", session.Path, "err", err)
		s.sendHandshakeError(conn, protocol.HandshakeInternalError)
		_ = conn.Close()
		return
	}

	s.registry.add(session)

	if err := s.sendServerHello(conn, session.ID); err != nil {
		s.logger.Error("failed to send server hello", "session_id", session.ID, "err", err)
		s.registry.remove(session.ID)
		_ = conn.Close()
		return
	}

	// The read loop re-arms its own deadline per read.
	_ = conn.SetReadDeadline(time.Time{})
	session.Start()
	s.logger.Info("session established", "session_id", session.ID, "path", session.Path, "ip", ip)
}

// decodeHandshakeFrame parses the raw first message into a client hello.
func decodeHandshakeFrame(msg []byte) (*protocol.ClientHello, error) {
	if len(msg) < protocol.FrameHeaderSize {
		return nil, ErrInvalidHandshake
	}
	if protocol.FrameType(msg[0]) != protocol.FrameHandshake {
		return nil, ErrInvalidHandshake
	}
	payloadLen := int(msg[2])<<8 | int(msg[3])
	if protocol.FrameHeaderSize+payloadLen > len(msg) {
		return nil, ErrInvalidHandshake
	}
	return protocol.DecodeClientHello(msg[protocol.FrameHeaderSize : protocol.FrameHeaderSize+payloadLen])
}

func (s *Server) mountSession(session *Session) error {
	if s.pageFunc == nil {
		return fmt.Errorf("server: no page configured")
	}
	body, err := s.pageFunc(session.Path)
	if err != nil {
		return err
	}
	return session.Mount(body)
}

func (s *Server) sendServerHello(conn *websocket.Conn, sessionID string) error {
	frame := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeServerHello(protocol.NewServerHello(sessionID)))
	_ = conn.SetWriteDeadline(time.Now().Add(s.config.Session.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

func (s *Server) sendHandshakeError(conn *websocket.Conn, status protocol.HandshakeStatus) {
	frame := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeServerHello(protocol.NewServerHelloError(status)))
	_ = conn.SetWriteDeadline(time.Now().Add(s.config.Session.WriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.logger.Debug("failed to send handshake error", "status", status.String(), "err", err)
	}
}

// sweepLoop periodically closes idle sessions.
func (s *Server) sweepLoop() {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.registry.sweepIdle(s.config.Session.IdleTimeout); n > 0 {
				s.logger.Info("closed idle sessions", "count", n)
			}
		case <-s.done:
			return
		}
	}
}

// Shutdown closes all sessions and stops the sweep loop. Returns the
// context error if the deadline expires first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	count := s.registry.count()
	s.logger.Info("server shutting down", "sessions", count)

	finished := make(chan struct{})
	go func() {
		s.registry.closeAll(protocol.CloseServerShutdown, "server shutting down")
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
