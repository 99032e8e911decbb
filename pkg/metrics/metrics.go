// Package metrics holds the Prometheus collectors for outbound AI calls and
// note operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartnotes_upstream_requests_total",
			Help: "Total number of calls to external AI providers",
		},
		[]string{"provider", "operation", "outcome"},
	)
	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartnotes_upstream_request_duration_seconds",
			Help:    "Latency of calls to external AI providers",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"provider", "operation"},
	)
	retagFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smartnotes_retag_fallbacks_total",
			Help: "Retag requests answered by the local keyword classifier",
		},
	)
	queryCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartnotes_query_embedding_cache_total",
			Help: "Query embedding cache lookups",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		upstreamRequests,
		upstreamDuration,
		retagFallbacks,
		queryCacheLookups,
	)
}

// ObserveUpstream records one provider call started at start.
func ObserveUpstream(provider, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	upstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}

func RetagFallback() {
	retagFallbacks.Inc()
}

func QueryCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	queryCacheLookups.WithLabelValues(result).Inc()
}
