package middleware

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/marquee-dev/marquee/pkg/protocol"
	"github.com/marquee-dev/marquee/pkg/server"
)

type otelTestKey struct{}

func TestOpenTelemetryInjectsStdContext(t *testing.T) {
	base := server.NewTestCtx()
	outer := base.WithStdContext(context.WithValue(context.Background(), otelTestKey{}, "kept"))
	event := &server.Event{Type: protocol.EventClick, Ref: "cta"}

	var inner server.Ctx
	handler := OpenTelemetry()(func(ctx server.Ctx, _ *server.Event) {
		inner = ctx
		ctx.Apply(protocol.NewFocusPatch("cta"))
	})
	handler(outer, event)

	if inner == nil {
		t.Fatal("handler did not run")
	}
	if inner == outer {
		t.Error("expected the handler to receive a derived ctx")
	}
	if inner.StdContext() == outer.StdContext() {
		t.Error("expected the derived std context to carry the span")
	}
	if inner.StdContext().Value(otelTestKey{}) != "kept" {
		t.Error("derived context should wrap the original, not replace it")
	}
	if got := base.PatchCount(); got != 1 {
		t.Errorf("PatchCount() = %d, want 1: patches through the derived ctx must reach the buffer", got)
	}
}

func TestOpenTelemetryFilterSkips(t *testing.T) {
	outer := server.NewTestCtx()
	event := &server.Event{Type: protocol.EventClick, Ref: "cta"}

	var inner server.Ctx
	handler := OpenTelemetry(
		WithEventFilter(func(server.Ctx) bool { return false }),
	)(func(ctx server.Ctx, _ *server.Event) {
		inner = ctx
	})
	handler(outer, event)

	if inner == nil {
		t.Fatal("filter must not suppress dispatch")
	}
	if inner != outer {
		t.Error("skipped events should keep the original ctx")
	}
}

func TestOpenTelemetryAttributeExtractor(t *testing.T) {
	calls := 0
	mw := OpenTelemetry(
		WithAttributeExtractor(func(server.Ctx) []attribute.KeyValue {
			calls++
			return []attribute.KeyValue{attribute.String("site.section", "contact")}
		}),
	)

	event := &server.Event{Type: protocol.EventSubmit, Ref: "contact-form"}
	noop := func(server.Ctx, *server.Event) {}

	mw(noop)(server.NewTestCtx().WithEvent(event), event)
	if calls != 1 {
		t.Errorf("extractor ran %d times, want 1", calls)
	}

	// A filtered event must not invoke the extractor.
	filtered := OpenTelemetry(
		WithEventFilter(func(server.Ctx) bool { return false }),
		WithAttributeExtractor(func(server.Ctx) []attribute.KeyValue {
			calls++
			return nil
		}),
	)
	filtered(noop)(server.NewTestCtx().WithEvent(event), event)
	if calls != 1 {
		t.Errorf("extractor ran %d times after filtered event, want 1", calls)
	}
}

func TestSpanFromContextWithoutMiddleware(t *testing.T) {
	span := SpanFromContext(server.NewTestCtx())
	if span == nil {
		t.Fatal("SpanFromContext should return a no-op span, not nil")
	}
	if span.SpanContext().IsValid() {
		t.Error("span context should be invalid without an active trace")
	}
}

func TestOTelOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := defaultOTelConfig()
		if config.TracerName != defaultTracerName {
			t.Errorf("TracerName = %q, want %q", config.TracerName, defaultTracerName)
		}
		if !config.IncludeRoute {
			t.Error("IncludeRoute should be true by default")
		}
		if config.Filter != nil {
			t.Error("Filter should be nil by default")
		}
	})

	t.Run("setters", func(t *testing.T) {
		config := defaultOTelConfig()
		WithTracerName("mysite")(&config)
		WithIncludeRoute(false)(&config)
		WithEventFilter(func(server.Ctx) bool { return true })(&config)

		if config.TracerName != "mysite" {
			t.Errorf("TracerName = %q, want %q", config.TracerName, "mysite")
		}
		if config.IncludeRoute {
			t.Error("IncludeRoute should be false")
		}
		if config.Filter == nil {
			t.Error("Filter should be set")
		}
	})
}

func TestSpanName(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		event *server.Event
		want  string
	}{
		{"click event", "/", &server.Event{Type: protocol.EventClick}, "marquee.click"},
		{"submit event", "/contact", &server.Event{Type: protocol.EventSubmit}, "marquee.submit"},
		{"no event", "/pricing", nil, "marquee /pricing"},
		{"no event empty path", "", nil, "marquee /"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spanName(tt.path, tt.event); got != tt.want {
				t.Errorf("spanName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
