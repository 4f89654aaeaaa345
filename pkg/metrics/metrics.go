package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titoscorner_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// CacheHits counts read-through cache hits per resource.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titoscorner_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"resource"},
	)

	// CacheMisses counts read-through cache misses per resource.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titoscorner_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"resource"},
	)

	// CacheInvalidations counts invalidation sweeps per resource.
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titoscorner_cache_invalidations_total",
			Help: "Total number of cache invalidation sweeps",
		},
		[]string{"resource"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "titoscorner_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
