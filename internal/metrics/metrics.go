// Package metrics defines the Prometheus instrumentation for the chat
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat pipeline metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds prometheus.Histogram

	// Resolver metrics
	IntentResolvedTotal *prometheus.CounterVec
	ResolverStageTotal  *prometheus.CounterVec
	FallbackTotal       prometheus.Counter

	// Session metrics
	ActiveSessions     prometheus.Gauge
	RateLimiterDropped *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "collegechat_requests_total",
				Help: "Total number of chat requests by status",
			},
			[]string{"status"}, // status: success, invalid, rate_limited, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "collegechat_duration_seconds",
				Help:    "End-to-end chat turn duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
		),

		IntentResolvedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "collegechat_intent_resolved_total",
				Help: "Total resolved intents by tag",
			},
			[]string{"intent"},
		),

		ResolverStageTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "collegechat_resolver_stage_total",
				Help: "Which cascade stage answered, by stage name",
			},
			[]string{"stage"}, // stage: override, exact, fuzzy, classifier, none
		),

		FallbackTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "collegechat_fallback_replies_total",
				Help: "Total low-confidence fallback replies",
			},
		),

		ActiveSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "collegechat_active_sessions",
				Help: "Number of live conversation sessions",
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "collegechat_ratelimit_dropped_total",
				Help: "Requests rejected by the per-session rate limiter",
			},
			[]string{"scope"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "collegechat_http_errors_total",
				Help: "Total HTTP errors by endpoint and code",
			},
			[]string{"endpoint", "code"},
		),
	}
	return m
}

// RecordChat records one completed chat turn.
func (m *Metrics) RecordChat(status string, duration time.Duration) {
	m.ChatRequestsTotal.WithLabelValues(status).Inc()
	m.ChatDurationSeconds.Observe(duration.Seconds())
}

// RecordResolution records the resolver outcome of one turn.
func (m *Metrics) RecordResolution(intent, stage string) {
	m.ResolverStageTotal.WithLabelValues(stage).Inc()
	if intent == "" {
		m.FallbackTotal.Inc()
		return
	}
	m.IntentResolvedTotal.WithLabelValues(intent).Inc()
}

// RecordHTTPError records a non-2xx response.
func (m *Metrics) RecordHTTPError(endpoint, code string) {
	m.HTTPErrorsTotal.WithLabelValues(endpoint, code).Inc()
}

// RecordRateLimitDrop records a rejected request.
func (m *Metrics) RecordRateLimitDrop(scope string) {
	m.RateLimiterDropped.WithLabelValues(scope).Inc()
}

// SetActiveSessions updates the live session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
