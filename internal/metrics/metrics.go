// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Refresh metrics
	channelFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamgrid_channel_fetch_total",
		Help: "Total channel status lookups by resulting status",
	}, []string{"status"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "streamgrid_refresh_duration_seconds",
		Help:    "Duration of a full refresh in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	})

	droppedResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamgrid_dropped_results_total",
		Help: "Results discarded because the channel was removed during a refresh",
	})

	trackedChannels = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "streamgrid_tracked_channels",
		Help: "Number of tracked channels by last known status",
	}, []string{"status"})

	// HTTP metrics
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "streamgrid_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamgrid_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamgrid_http_requests_in_flight",
		Help: "Number of HTTP requests currently being processed",
	})

	throttledRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamgrid_throttled_refreshes_total",
		Help: "Manual refreshes rejected by the rate limiter",
	})
)

// IncrementFetch counts one channel lookup that ended with status.
func IncrementFetch(status string) {
	channelFetchTotal.WithLabelValues(status).Inc()
}

// ObserveRefresh records the duration of a refresh in seconds.
func ObserveRefresh(seconds float64) {
	refreshDuration.Observe(seconds)
}

// AddDropped counts results applied to channels that no longer exist.
func AddDropped(n int) {
	droppedResultsTotal.Add(float64(n))
}

// SetTracked sets the tracked channel gauge for each status.
func SetTracked(live, offline, errored int) {
	trackedChannels.WithLabelValues("live").Set(float64(live))
	trackedChannels.WithLabelValues("offline").Set(float64(offline))
	trackedChannels.WithLabelValues("error").Set(float64(errored))
}

// RecordRequest records a completed HTTP request.
func RecordRequest(method, path string, status int, seconds float64) {
	code := strconv.Itoa(status)
	httpRequestDuration.WithLabelValues(method, path, code).Observe(seconds)
	httpRequestsTotal.WithLabelValues(method, path, code).Inc()
}

// RequestStarted increments the in-flight gauge and returns the matching decrement.
func RequestStarted() func() {
	httpRequestsInFlight.Inc()
	return httpRequestsInFlight.Dec
}

// IncrementThrottled counts a manual refresh rejected by the limiter.
func IncrementThrottled() {
	throttledRefreshesTotal.Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
