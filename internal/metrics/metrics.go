package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BackendRequestDuration tracks round trips to the review backend.
	BackendRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reviewboard_backend_request_duration_seconds",
		Help:    "Duration of requests to the review backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	BackendRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewboard_backend_requests_total",
		Help: "Number of requests sent to the review backend.",
	}, []string{"method", "path", "status"})

	// FetchOutcomeTotal counts completed view fetches by outcome.
	FetchOutcomeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewboard_fetch_outcomes_total",
		Help: "Completed review collection fetches by outcome.",
	}, []string{"outcome"})

	ActiveViews = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reviewboard_active_views",
		Help: "Number of live per-session review views.",
	})
)

// MustRegister registers all collectors with registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		BackendRequestDuration,
		BackendRequestTotal,
		FetchOutcomeTotal,
		ActiveViews,
	)
}

// ObserveBackendRequest records duration and status of a backend round trip.
// status is zero when no response was received.
func ObserveBackendRequest(method, path string, status int, start time.Time) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestDuration.WithLabelValues(method, path, label).Observe(time.Since(start).Seconds())
	BackendRequestTotal.WithLabelValues(method, path, label).Inc()
}

// ObserveFetchOutcome counts a completed fetch.
func ObserveFetchOutcome(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	FetchOutcomeTotal.WithLabelValues(outcome).Inc()
}
