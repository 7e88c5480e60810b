// Package metrics defines the Prometheus collectors shared across the
// server: HTTP request accounting and read-cache effectiveness.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hearth",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// CacheHits counts read-cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "cache_hits_total",
		Help:      "Read cache hits.",
	})

	// CacheMisses counts read-cache misses, including expired entries.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "cache_misses_total",
		Help:      "Read cache misses.",
	})

	// CacheEvictions counts entries dropped to stay within capacity.
	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "cache_evictions_total",
		Help:      "Read cache capacity evictions.",
	})
)
