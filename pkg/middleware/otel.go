package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/marquee-dev/marquee/pkg/server"
)

// Default tracer name for marquee applications.
const defaultTracerName = "marquee"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "marquee").
	TracerName string

	// IncludeRoute includes the page path in span attributes.
	// Enabled by default.
	IncludeRoute bool

	// Filter determines which events to trace. Return true to trace the
	// event, false to skip. If nil, all events are traced.
	Filter func(ctx server.Ctx) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced event.
	AttributeExtractor func(ctx server.Ctx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeRoute enables or disables the path attribute on spans.
func WithIncludeRoute(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeRoute = include
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx server.Ctx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx server.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:   defaultTracerName,
		IncludeRoute: true,
		Filter:       nil,
	}
}

// OpenTelemetry creates middleware that traces every dispatched event.
//
// The middleware starts a span per event with the session ID, event type
// and target ref, then passes the handler a Ctx whose standard context
// carries the span, so database and HTTP calls made with ctx.StdContext()
// inherit the trace. The patch count is recorded on the span after the
// handler returns.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from the global provider.
	config.tracer = otel.Tracer(config.TracerName)

	return func(next server.Handler) server.Handler {
		return func(ctx server.Ctx, event *server.Event) {
			if config.Filter != nil && !config.Filter(ctx) {
				next(ctx, event)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("marquee.session_id", ctx.SessionID()),
			}
			if event != nil {
				attrs = append(attrs,
					attribute.String("marquee.event_type", eventLabel(event)),
					attribute.String("marquee.event_ref", event.Ref),
				)
			}
			if config.IncludeRoute {
				attrs = append(attrs, attribute.String("marquee.path", ctx.Path()))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ctx)...)
			}

			spanCtx, span := config.tracer.Start(
				ctx.StdContext(),
				spanName(ctx.Path(), event),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			next(ctx.WithStdContext(spanCtx), event)

			// Patches queued through the derived ctx land in the shared
			// buffer, so the receiver sees them.
			span.SetAttributes(attribute.Int("marquee.patch_count", ctx.PatchCount()))
			span.SetStatus(codes.Ok, "")
		}
	}
}

// SpanFromContext returns the span carried by the context's standard
// context. Handlers running under the OpenTelemetry middleware receive a
// span-carrying Ctx; without the middleware this returns a no-op span.
func SpanFromContext(ctx server.Ctx) trace.Span {
	return trace.SpanFromContext(ctx.StdContext())
}

// spanName names event spans by type and mount-time spans by path.
func spanName(path string, event *server.Event) string {
	if event != nil {
		return "marquee." + eventLabel(event)
	}
	if path == "" {
		path = "/"
	}
	return "marquee " + path
}
