package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the dashboard service

var (
	// Upstream API metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_api_calls_total",
			Help: "Total number of ESPN API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nfl_api_call_duration_seconds",
			Help:    "Duration of ESPN API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ScheduleFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_schedule_fallbacks_total",
			Help: "Scoreboard fetches that needed the second query variant or exhausted both",
		},
		[]string{"outcome"},
	)

	// Normalization metrics
	EventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_events_dropped_total",
			Help: "Scoreboard events skipped during normalization",
		},
		[]string{"reason"},
	)

	GamesNormalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nfl_games_normalized_total",
			Help: "Total number of games produced by the schedule normalizer",
		},
	)

	// Dashboard metrics
	StaleResultsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_stale_results_discarded_total",
			Help: "Fetch results ignored because a newer request superseded them",
		},
		[]string{"kind"},
	)

	// Snapshot metrics
	SnapshotsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_snapshots_published_total",
			Help: "Total number of schedule snapshots published",
		},
		[]string{"status"},
	)

	LastSuccessfulSnapshot = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nfl_last_successful_snapshot_timestamp",
			Help: "Timestamp of the last published schedule snapshot",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nfl_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nfl_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordScheduleFallback records a scoreboard fallback outcome
func RecordScheduleFallback(outcome string) {
	ScheduleFallbacksTotal.WithLabelValues(outcome).Inc()
}

// RecordNormalized records the result of normalizing one scoreboard
func RecordNormalized(events, games int) {
	GamesNormalized.Add(float64(games))
	if dropped := events - games; dropped > 0 {
		EventsDroppedTotal.WithLabelValues("missing_side").Add(float64(dropped))
	}
}

// RecordStaleResult records a discarded fetch result
func RecordStaleResult(kind string) {
	StaleResultsDiscarded.WithLabelValues(kind).Inc()
}

// RecordSnapshot records a snapshot publish
func RecordSnapshot(status string) {
	SnapshotsPublishedTotal.WithLabelValues(status).Inc()

	if status == "success" {
		LastSuccessfulSnapshot.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
