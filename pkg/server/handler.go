package server

import (
	"time"

	"github.com/marquee-dev/marquee/pkg/protocol"
)

// Handler is the normalized event handler signature. Handlers attached to
// the page tree may use any of the shapes wrapHandler accepts; they are
// wrapped into this form at mount time.
type Handler func(ctx Ctx, event *Event)

// Event is a client event enriched with session context.
type Event struct {
	Seq     uint64
	Type    protocol.EventType
	Ref     string
	Payload any
	Session *Session
	Time    time.Time
}

// Value returns the string payload for input and change events.
// Returns an empty string for other event types.
func (e *Event) Value() string {
	if s, ok := e.Payload.(string); ok {
		return s
	}
	return ""
}

// Form returns the submitted fields for submit events. Returns empty
// FormData for other event types.
func (e *Event) Form() FormData {
	if data, ok := e.Payload.(*protocol.SubmitEventData); ok && data != nil {
		return FormData{values: data.Fields}
	}
	return FormData{}
}

// FormData provides access to submitted form fields.
type FormData struct {
	values map[string]string
}

// NewFormData creates FormData from a field map. Used by tests and by
// code that synthesizes submissions.
func NewFormData(values map[string]string) FormData {
	return FormData{values: values}
}

// Get returns a field value. Returns an empty string if absent.
func (fd FormData) Get(name string) string {
	return fd.values[name]
}

// Has reports whether a field is present.
func (fd FormData) Has(name string) bool {
	_, ok := fd.values[name]
	return ok
}

// Len returns the number of fields.
func (fd FormData) Len() int {
	return len(fd.values)
}

// All returns a copy of all fields.
func (fd FormData) All() map[string]string {
	out := make(map[string]string, len(fd.values))
	for k, v := range fd.values {
		out[k] = v
	}
	return out
}

// wrapHandler normalizes the supported handler shapes into Handler.
// Returns nil for unsupported types; the caller logs and skips those.
func wrapHandler(v any) Handler {
	switch h := v.(type) {
	case Handler:
		return h
	case func(Ctx, *Event):
		return Handler(h)
	case func(Ctx):
		return func(ctx Ctx, _ *Event) { h(ctx) }
	case func(*Event):
		return func(_ Ctx, event *Event) { h(event) }
	case func():
		return func(Ctx, *Event) { h() }
	case func(Ctx, string):
		return func(ctx Ctx, event *Event) { h(ctx, event.Value()) }
	case func(string):
		return func(_ Ctx, event *Event) { h(event.Value()) }
	case func(Ctx, FormData):
		return func(ctx Ctx, event *Event) { h(ctx, event.Form()) }
	case func(FormData):
		return func(_ Ctx, event *Event) { h(event.Form()) }
	default:
		return nil
	}
}

// eventFromProtocol converts a decoded wire event into a session event.
func eventFromProtocol(pe *protocol.Event, s *Session) *Event {
	return &Event{
		Seq:     pe.Seq,
		Type:    pe.Type,
		Ref:     pe.Ref,
		Payload: pe.Payload,
		Session: s,
		Time:    time.Now(),
	}
}
