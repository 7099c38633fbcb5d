package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ContentQueryFailures counts public reads that were answered with an
	// empty fallback because the store failed.
	ContentQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_query_failures_total",
			Help: "Public content reads that fell back to an empty result.",
		},
		[]string{"operation"},
	)

	// TaxonomyCacheLookups counts taxonomy cache hits and misses.
	TaxonomyCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxonomy_cache_lookups_total",
			Help: "Collection taxonomy cache lookups by result.",
		},
		[]string{"key", "result"},
	)
)
