package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/marquee-dev/marquee/pkg/protocol"
)

// Ctx is the per-event context passed to handlers and middleware.
//
// Patches applied through the Ctx are buffered and flushed to the client
// as a single frame after the handler returns. The buffer is shared across
// WithStdContext copies, so middleware can swap the standard context
// without losing patches queued by inner layers.
type Ctx interface {
	// Session returns the session the event arrived on. Nil in test
	// contexts created without a session.
	Session() *Session

	// SessionID returns the session ID, or an empty string.
	SessionID() string

	// Event returns the event being dispatched. Nil in test contexts
	// created without an event.
	Event() *Event

	// Path returns the page path the session was mounted for.
	Path() string

	// Logger returns the session-scoped logger.
	Logger() *slog.Logger

	// Apply queues patches for the flush that follows the handler.
	Apply(patches ...protocol.Patch)

	// Emit queues a custom DOM event to be dispatched on the client.
	// The detail value is JSON encoded. An empty ref targets the
	// document.
	Emit(ref, name string, detail any)

	// PatchCount returns the number of patches queued so far, including
	// patches applied through WithStdContext copies.
	PatchCount() int

	// SetValue stores a per-event value, visible to later middleware
	// layers and the handler.
	SetValue(key, value any)

	// Value returns a per-event value, or nil.
	Value(key any) any

	// StdContext returns the standard context for outbound calls. It
	// carries trace spans injected by middleware and is canceled when
	// the session closes.
	StdContext() context.Context

	// WithStdContext returns a Ctx with the standard context replaced.
	// The patch buffer and values are shared with the receiver.
	WithStdContext(stdCtx context.Context) Ctx
}

// eventCtx is the concrete Ctx used during dispatch.
type eventCtx struct {
	session *Session
	event   *Event
	logger  *slog.Logger
	stdCtx  context.Context
	values  map[any]any
	patches *[]protocol.Patch
}

func newEventCtx(s *Session, event *Event) *eventCtx {
	return &eventCtx{
		session: s,
		event:   event,
		logger:  s.logger,
		stdCtx:  s.baseCtx,
		values:  make(map[any]any),
		patches: new([]protocol.Patch),
	}
}

func (c *eventCtx) Session() *Session { return c.session }

func (c *eventCtx) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.ID
}

func (c *eventCtx) Event() *Event { return c.event }

func (c *eventCtx) Path() string {
	if c.session == nil {
		return ""
	}
	return c.session.Path
}

func (c *eventCtx) Logger() *slog.Logger { return c.logger }

func (c *eventCtx) Apply(patches ...protocol.Patch) {
	*c.patches = append(*c.patches, patches...)
}

func (c *eventCtx) Emit(ref, name string, detail any) {
	encoded, err := json.Marshal(detail)
	if err != nil {
		c.logger.Warn("failed to encode event detail", "event", name, "err", err)
		return
	}
	c.Apply(protocol.NewEmitPatch(ref, name, string(encoded)))
}

func (c *eventCtx) PatchCount() int { return len(*c.patches) }

func (c *eventCtx) SetValue(key, value any) {
	c.values[key] = value
}

func (c *eventCtx) Value(key any) any {
	return c.values[key]
}

func (c *eventCtx) StdContext() context.Context { return c.stdCtx }

func (c *eventCtx) WithStdContext(stdCtx context.Context) Ctx {
	clone := *c
	clone.stdCtx = stdCtx
	return &clone
}

// takePatches returns the queued patches and resets the buffer.
func (c *eventCtx) takePatches() []protocol.Patch {
	patches := *c.patches
	*c.patches = nil
	return patches
}

// TestCtx is a Ctx that records applied patches for assertions. It has no
// session or connection behind it.
type TestCtx struct {
	*eventCtx
}

// NewTestCtx creates a context for testing handlers in isolation.
func NewTestCtx() *TestCtx {
	return &TestCtx{
		eventCtx: &eventCtx{
			logger:  slog.Default(),
			stdCtx:  context.Background(),
			values:  make(map[any]any),
			patches: new([]protocol.Patch),
		},
	}
}

// WithEvent sets the event returned by Event.
func (tc *TestCtx) WithEvent(event *Event) *TestCtx {
	tc.event = event
	return tc
}

// Patches returns the patches applied so far.
func (tc *TestCtx) Patches() []protocol.Patch {
	return *tc.patches
}

// Reset clears recorded patches.
func (tc *TestCtx) Reset() {
	*tc.patches = nil
}
