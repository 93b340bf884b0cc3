package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// Session represents one live connection. A session mounts a page tree at
// handshake time, dispatches the client's events to the handlers collected
// from that tree and streams the resulting patches back. It holds no
// cross-connection state; when the connection drops the session is gone.
type Session struct {
	ID        string
	CreatedAt time.Time
	IP        string
	Path      string

	conn    *websocket.Conn
	writeMu sync.Mutex

	config *SessionConfig
	logger *slog.Logger

	tree     *vdom.VNode
	handlers map[string]Handler
	dispatch Handler

	events     chan *Event
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool

	// baseCtx is the root standard context handed to event contexts.
	// It is canceled when the session closes.
	baseCtx    context.Context
	cancelBase context.CancelFunc

	lastActive atomic.Int64

	sendSeq atomic.Uint64
	recvSeq atomic.Uint64

	eventCount atomic.Uint64
	patchCount atomic.Uint64
	bytesSent  atomic.Uint64
	bytesRecv  atomic.Uint64

	data   map[string]any
	dataMu sync.RWMutex

	// onClose detaches the session from the registry.
	onClose func(*Session)
}

// generateSessionID returns a random 32-character hex ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("server: failed to generate session ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// newSession creates a session for the given connection. The connection
// may be nil for sessions used in tests; writes are then dropped.
func newSession(conn *websocket.Conn, config *SessionConfig, logger *slog.Logger) *Session {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		ID:         generateSessionID(),
		CreatedAt:  time.Now(),
		Path:       "/",
		conn:       conn,
		config:     config,
		events:     make(chan *Event, config.MaxEventQueue),
		dispatchCh: make(chan func(), 64),
		done:       make(chan struct{}),
		data:       make(map[string]any),
	}
	s.logger = logger.With("session_id", s.ID)
	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	s.dispatch = s.dispatchEvent
	s.touch()
	return s
}

// NewMockSession creates a session without a connection, for tests.
// Handlers can be mounted and events dispatched; outbound frames are
// dropped with ErrNoConnection.
func NewMockSession() *Session {
	return newSession(nil, DefaultSessionConfig(), slog.Default())
}

// Mount installs the page tree and collects its handlers. The tree must
// already have hydration IDs assigned; Mount does not modify it.
func (s *Session) Mount(body *vdom.VNode) error {
	if body == nil {
		return fmt.Errorf("server: mount: nil body")
	}
	handlers := make(map[string]Handler)
	s.collectHandlers(body, handlers)
	s.tree = body
	s.handlers = handlers
	s.logger.Info("session mounted", "path", s.Path, "handlers", len(handlers))
	return nil
}

// collectHandlers walks the tree and registers every function-valued
// on* prop under "<ref>_<event>".
func (s *Session) collectHandlers(node *vdom.VNode, handlers map[string]Handler) {
	node.Walk(func(n *vdom.VNode) bool {
		if n.Kind != vdom.KindElement {
			return true
		}
		for key, value := range n.Props {
			if !strings.HasPrefix(key, "on") || !isFuncValue(value) {
				continue
			}
			ref := n.Ref()
			if ref == "" {
				s.logger.Warn("handler on element without ref, skipping", "tag", n.Tag, "event", key)
				continue
			}
			wrapped := wrapHandler(value)
			if wrapped == nil {
				s.logger.Warn("unsupported handler type", "ref", ref, "event", key, "type", fmt.Sprintf("%T", value))
				continue
			}
			handlers[ref+"_"+strings.ToLower(key)] = wrapped
		}
		return true
	})
}

// isFuncValue reports whether a prop value is a function. String values of
// on* props are plain HTML attributes and stay with the renderer.
func isFuncValue(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Func
}

// HandlerCount returns the number of mounted handlers.
func (s *Session) HandlerCount() int {
	return len(s.handlers)
}

// Start launches the session's goroutines.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
	s.logger.Debug("session loops started")
}

// handleEvent runs one event through the dispatch chain and flushes the
// patches it produced.
func (s *Session) handleEvent(event *Event) {
	s.touch()
	s.eventCount.Add(1)
	s.recvSeq.Store(event.Seq)

	ctx := newEventCtx(s, event)
	s.dispatch(ctx, event)

	if patches := ctx.takePatches(); len(patches) > 0 {
		if err := s.sendPatches(patches); err != nil && !s.closed.Load() {
			s.logger.Warn("failed to flush patches", "seq", event.Seq, "err", err)
		}
	}
}

// dispatchEvent is the terminal dispatch layer: it resolves the handler
// for the event's ref and runs it with panic containment.
func (s *Session) dispatchEvent(ctx Ctx, event *Event) {
	key := event.Ref + "_on" + strings.ToLower(event.Type.String())
	handler, ok := s.handlers[key]
	if !ok {
		s.logger.Warn("no handler for event", "key", key, "seq", event.Seq, "err", ErrHandlerNotFound)
		s.sendError(protocol.ErrHandlerNotFound, fmt.Sprintf("no handler for %s", key))
		return
	}
	s.safeExecute(ctx, event, handler)
}

// safeExecute runs a handler, converting panics into an error frame so
// one broken handler cannot take the session down.
func (s *Session) safeExecute(ctx Ctx, event *Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			herr := &HandlerError{
				SessionID: s.ID,
				Ref:       event.Ref,
				EventType: event.Type.String(),
				Err:       fmt.Errorf("panic: %v", r),
			}
			s.logger.Error("handler panic", "err", herr, "stack", string(debug.Stack()))
			s.sendError(protocol.ErrHandlerPanic, "internal error")
		}
	}()
	handler(ctx, event)
}

// QueueEvent queues an event for the event loop. Returns ErrEventQueueFull
// when the queue is at capacity.
func (s *Session) QueueEvent(event *Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- event:
		return nil
	default:
		return ErrEventQueueFull
	}
}

// Dispatch runs fn on the event loop. Used by asynchronous work that must
// touch session state or send patches with loop affinity.
func (s *Session) Dispatch(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.dispatchCh <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// writeFrame writes one frame to the connection under the write lock.
func (s *Session) writeFrame(f *protocol.Frame) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil {
		return ErrNoConnection
	}
	data := f.Encode()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

// sendPatches encodes and sends one patch frame. A write failure closes
// the session; there is no retry or buffering for later delivery.
func (s *Session) sendPatches(patches []protocol.Patch) error {
	if len(patches) == 0 {
		return nil
	}
	seq := s.sendSeq.Add(1)
	frame := protocol.NewFrame(protocol.FramePatches, protocol.EncodePatches(&protocol.PatchFrame{
		Seq:     seq,
		Patches: patches,
	}))
	if err := s.writeFrame(frame); err != nil {
		if err == ErrNoConnection {
			s.logger.Warn("no connection, dropping patches", "count", len(patches))
			return err
		}
		if err != ErrSessionClosed {
			s.logger.Error("failed to send patches", "seq", seq, "err", err)
			s.closeInternal(protocol.CloseError, "write failed")
		}
		return &SessionError{SessionID: s.ID, Op: "send_patches", Err: err}
	}
	s.patchCount.Add(uint64(len(patches)))
	s.logger.Debug("sent patches", "seq", seq, "count", len(patches))
	return nil
}

// sendControl sends one control message, best effort.
func (s *Session) sendControl(ct protocol.ControlType, payload any) error {
	return s.writeFrame(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(ct, payload)))
}

// sendError sends an error frame to the client.
func (s *Session) sendError(code protocol.ErrorCode, message string) {
	frame := protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewError(code, message)))
	if err := s.writeFrame(frame); err != nil && err != ErrNoConnection && err != ErrSessionClosed {
		s.logger.Debug("failed to send error frame", "code", code.String(), "err", err)
	}
}

func (s *Session) sendPing() error {
	return s.sendControl(protocol.NewPing(uint64(time.Now().UnixMilli())))
}

// Close sends a close control frame and tears the session down.
func (s *Session) Close(reason protocol.CloseReason, message string) {
	if s.closed.Load() {
		return
	}
	ct, cm := protocol.NewClose(reason, message)
	_ = s.sendControl(ct, cm)
	s.closeInternal(reason, message)
}

func (s *Session) closeInternal(reason protocol.CloseReason, message string) {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.cancelBase()
	if s.conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, message)
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = s.conn.Close()
	}
	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("session closed",
		"reason", reason.String(),
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load(),
		"duration", time.Since(s.CreatedAt).Round(time.Millisecond))
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Context returns the session's root standard context. It is canceled
// when the session closes.
func (s *Session) Context() context.Context {
	return s.baseCtx
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last client event.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// IdleFor returns how long the session has gone without events.
func (s *Session) IdleFor() time.Duration {
	return time.Since(s.LastActive())
}

// Set stores a session-scoped value.
func (s *Session) Set(key string, value any) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.data[key] = value
}

// Get returns a session-scoped value, or nil.
func (s *Session) Get(key string) any {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data[key]
}

// GetString returns a session value as a string. Returns an empty string
// if absent or not a string.
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key).(string)
	return v
}

// Has reports whether a session value is set.
func (s *Session) Has(key string) bool {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Delete removes a session-scoped value.
func (s *Session) Delete(key string) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	delete(s.data, key)
}

// SessionStats is a snapshot of a session's counters.
type SessionStats struct {
	ID         string
	Path       string
	CreatedAt  time.Time
	LastActive time.Time
	Handlers   int
	Events     uint64
	Patches    uint64
	BytesSent  uint64
	BytesRecv  uint64
}

// Stats returns a snapshot of the session's counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		Path:       s.Path,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive(),
		Handlers:   len(s.handlers),
		Events:     s.eventCount.Load(),
		Patches:    s.patchCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}
