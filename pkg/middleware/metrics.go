package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marquee-dev/marquee/pkg/server"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "marquee").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "marquee",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus instruments.
type metrics struct {
	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	patchesSent     prometheus.Counter
	activeSessions  prometheus.Gauge
	sessionDuration prometheus.Histogram
}

// globalMetrics is the singleton instance, created on the first call to
// Prometheus(). Later calls reuse it so the instruments register once.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func loadMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "event"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of DOM patches queued for clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of connected WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "session_duration_seconds",
			Help:        "Session lifetime in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 10, 60, 300, 1800, 7200},
		}),
	}
}

// Prometheus creates middleware that collects metrics for every dispatched
// event.
//
// Metrics collected:
//   - marquee_events_total: counter of events by path and event type
//   - marquee_event_duration_seconds: histogram of dispatch duration by path
//   - marquee_patches_sent_total: counter of patches queued by handlers
//   - marquee_active_sessions: gauge driven by RecordSessionStart/End
//   - marquee_session_duration_seconds: histogram driven by RecordSessionEnd
//
// Expose them with promhttp:
//
//	srv.Use(middleware.Prometheus())
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) server.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next server.Handler) server.Handler {
		return func(ctx server.Ctx, event *server.Event) {
			path := ctx.Path()
			if path == "" {
				path = "/"
			}

			start := time.Now()
			before := ctx.PatchCount()

			next(ctx, event)

			m.eventDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.eventsTotal.WithLabelValues(path, eventLabel(event)).Inc()
			if queued := ctx.PatchCount() - before; queued > 0 {
				m.patchesSent.Add(float64(queued))
			}
		}
	}
}

// eventLabel returns the metric label for an event. Event types are a
// small fixed set, so cardinality stays bounded.
func eventLabel(event *server.Event) string {
	if event == nil {
		return "none"
	}
	return strings.ToLower(event.Type.String())
}

// RecordSessionStart increments the active session gauge. Wire it through
// ServerConfig.OnSessionStart. No-op until Prometheus() has initialized
// the instruments.
func RecordSessionStart() {
	if m := loadMetrics(); m != nil {
		m.activeSessions.Inc()
	}
}

// RecordSessionEnd decrements the active session gauge and records the
// session lifetime. Wire it through ServerConfig.OnSessionEnd.
func RecordSessionEnd(lifetime time.Duration) {
	if m := loadMetrics(); m != nil {
		m.activeSessions.Dec()
		m.sessionDuration.Observe(lifetime.Seconds())
	}
}
