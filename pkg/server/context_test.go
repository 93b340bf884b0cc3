package server

import (
	"context"
	"testing"

	"github.com/marquee-dev/marquee/pkg/protocol"
)

func TestCtxApply(t *testing.T) {
	tc := NewTestCtx()

	tc.Apply(protocol.NewSetTextPatch("h1", "Hello"))
	tc.Apply(
		protocol.NewAddClassPatch("h2", "active"),
		protocol.NewFocusPatch("h3"),
	)

	patches := tc.Patches()
	if len(patches) != 3 {
		t.Fatalf("patches = %d, want 3", len(patches))
	}
	if patches[0].Op != protocol.PatchSetText || patches[0].Ref != "h1" {
		t.Errorf("first patch = %v %q, want SetText h1", patches[0].Op, patches[0].Ref)
	}
	if patches[2].Op != protocol.PatchFocus {
		t.Errorf("third patch op = %v, want Focus", patches[2].Op)
	}
	if tc.PatchCount() != 3 {
		t.Errorf("PatchCount() = %d, want 3", tc.PatchCount())
	}
}

func TestCtxPatchCountSeesCopies(t *testing.T) {
	tc := NewTestCtx()
	derived := tc.WithStdContext(context.Background())

	derived.Apply(protocol.NewFocusPatch("name"))

	if tc.PatchCount() != 1 {
		t.Errorf("PatchCount() = %d, want 1 after apply through copy", tc.PatchCount())
	}
	if derived.PatchCount() != 1 {
		t.Errorf("derived PatchCount() = %d, want 1", derived.PatchCount())
	}
}

func TestCtxEmit(t *testing.T) {
	tc := NewTestCtx()

	tc.Emit("", "marquee:toast", map[string]string{"message": "Saved"})

	patches := tc.Patches()
	if len(patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(patches))
	}
	p := patches[0]
	if p.Op != protocol.PatchEmit {
		t.Fatalf("op = %v, want Emit", p.Op)
	}
	if p.Key != "marquee:toast" {
		t.Errorf("event name = %q, want marquee:toast", p.Key)
	}
	if p.Value != `{"message":"Saved"}` {
		t.Errorf("detail = %q, want JSON object", p.Value)
	}
	if p.Ref != "" {
		t.Errorf("ref = %q, want empty (document target)", p.Ref)
	}
}

func TestCtxEmitUnencodable(t *testing.T) {
	tc := NewTestCtx()
	tc.Emit("", "bad", func() {})
	if len(tc.Patches()) != 0 {
		t.Error("unencodable detail should not queue a patch")
	}
}

func TestCtxValues(t *testing.T) {
	tc := NewTestCtx()

	type key struct{}
	tc.SetValue(key{}, "stored")
	if tc.Value(key{}) != "stored" {
		t.Errorf("Value = %v, want stored", tc.Value(key{}))
	}
	if tc.Value("absent") != nil {
		t.Error("absent value should be nil")
	}
}

func TestCtxWithStdContextSharesPatches(t *testing.T) {
	tc := NewTestCtx()

	type traceKey struct{}
	wrapped := tc.WithStdContext(context.WithValue(context.Background(), traceKey{}, "span"))

	wrapped.Apply(protocol.NewSetTextPatch("h1", "from wrapped"))
	tc.Apply(protocol.NewSetTextPatch("h2", "from original"))

	if len(tc.Patches()) != 2 {
		t.Errorf("patches = %d, want 2 (buffer shared across WithStdContext)", len(tc.Patches()))
	}
	if wrapped.StdContext().Value(traceKey{}) != "span" {
		t.Error("wrapped ctx should carry the new std context")
	}
	if tc.StdContext().Value(traceKey{}) != nil {
		t.Error("original ctx should keep its std context")
	}
}

func TestCtxWithStdContextSharesValues(t *testing.T) {
	tc := NewTestCtx()
	wrapped := tc.WithStdContext(context.Background())

	wrapped.SetValue("k", 1)
	if tc.Value("k") != 1 {
		t.Error("values should be shared across WithStdContext")
	}
}

func TestTestCtxReset(t *testing.T) {
	tc := NewTestCtx()
	tc.Apply(protocol.NewFocusPatch("h1"))
	tc.Reset()
	if len(tc.Patches()) != 0 {
		t.Error("Reset should clear patches")
	}
}

func TestTestCtxWithEvent(t *testing.T) {
	e := &Event{Seq: 3, Ref: "cta"}
	tc := NewTestCtx().WithEvent(e)
	if tc.Event() != e {
		t.Error("Event() should return the configured event")
	}
}

func TestEventCtxSessionAccessors(t *testing.T) {
	s := NewMockSession()
	s.Path = "/pricing"
	e := &Event{Seq: 1, Type: protocol.EventClick, Ref: "cta", Session: s}

	ctx := newEventCtx(s, e)
	if ctx.Session() != s {
		t.Error("Session() should return the session")
	}
	if ctx.SessionID() != s.ID {
		t.Errorf("SessionID() = %q, want %q", ctx.SessionID(), s.ID)
	}
	if ctx.Path() != "/pricing" {
		t.Errorf("Path() = %q, want /pricing", ctx.Path())
	}
	if ctx.Event() != e {
		t.Error("Event() should return the event")
	}
	if ctx.Logger() == nil {
		t.Error("Logger() should not be nil")
	}
	if ctx.StdContext() == nil {
		t.Error("StdContext() should not be nil")
	}
}

func TestTestCtxNilSessionAccessors(t *testing.T) {
	tc := NewTestCtx()
	if tc.Session() != nil {
		t.Error("Session() should be nil")
	}
	if tc.SessionID() != "" {
		t.Error("SessionID() should be empty")
	}
	if tc.Path() != "" {
		t.Error("Path() should be empty")
	}
	if tc.Logger() == nil {
		t.Error("Logger() should not be nil")
	}
}

func TestTakePatchesClearsBuffer(t *testing.T) {
	s := NewMockSession()
	ctx := newEventCtx(s, &Event{})

	ctx.Apply(protocol.NewFocusPatch("h1"))
	first := ctx.takePatches()
	if len(first) != 1 {
		t.Fatalf("takePatches = %d, want 1", len(first))
	}
	if len(ctx.takePatches()) != 0 {
		t.Error("second takePatches should be empty")
	}
}
