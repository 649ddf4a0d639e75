// Package observability exposes application-level Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// SwapTransitionsTotal counts swap state transitions by resulting status.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap state transitions by resulting status",
	}, []string{"status"})

	// SwapConflictsTotal counts transitions lost to a concurrent update.
	SwapConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_swap_conflicts_total",
		Help: "Total number of swap transitions rejected due to a concurrent state change",
	})

	// SuggestionRequestsTotal counts suggestion gateway calls by outcome.
	SuggestionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_suggestion_requests_total",
		Help: "Total number of skill suggestion requests by outcome",
	}, []string{"outcome"})

	// SuggestionLatency records end-to-end suggestion gateway latency.
	SuggestionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skillswap_suggestion_latency_seconds",
		Help:    "Skill suggestion request latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FeedbackSubmittedTotal counts feedback records created, labelled by rating.
	FeedbackSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_feedback_submitted_total",
		Help: "Total number of feedback records created by rating",
	}, []string{"rating"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// Suggestion request outcomes.
const (
	SuggestionOutcomeOK      = "ok"
	SuggestionOutcomeError   = "error"
	SuggestionOutcomeTimeout = "timeout"
)

// RecordSwapTransition increments the transition counter for the status.
func RecordSwapTransition(status string) {
	SwapTransitionsTotal.WithLabelValues(status).Inc()
}

// RecordSuggestion records a suggestion request's outcome and latency.
func RecordSuggestion(outcome string, start time.Time) {
	SuggestionRequestsTotal.WithLabelValues(outcome).Inc()
	SuggestionLatency.Observe(time.Since(start).Seconds())
}

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
