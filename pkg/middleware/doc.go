// Package middleware provides event middleware for marquee servers.
//
// Middleware wraps a session's dispatch chain and observes every event a
// client relays, including events whose handler is missing.
//
// # Prometheus
//
// Prometheus counts events, times handlers, and tracks patch volume:
//
//	srv.Use(middleware.Prometheus())
//	http.Handle("/metrics", promhttp.Handler())
//
// The session gauge is driven by the server lifecycle hooks:
//
//	config.OnSessionStart = func(_ context.Context, _ *server.Session) {
//		middleware.RecordSessionStart()
//	}
//	config.OnSessionEnd = func(sess *server.Session) {
//		middleware.RecordSessionEnd(time.Since(sess.CreatedAt))
//	}
//
// # OpenTelemetry
//
// OpenTelemetry opens a span per event and hands the handler a Ctx whose
// standard context carries it, so outbound calls inherit the trace:
//
//	srv.Use(middleware.OpenTelemetry(
//		middleware.WithTracerName("mysite"),
//	))
//
// The tracer resolves from the global provider. Configure the provider in
// main before the server starts; without one, spans are no-ops.
package middleware
