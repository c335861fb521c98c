// Package metrics defines Prometheus collectors for the query cache and
// the API client. Collectors live on a dedicated registry so each test
// (and each cache instance) can own an isolated set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pricewatch"

// Metrics bundles all collectors on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheStores        prometheus.Counter
	CacheInvalidations prometheus.Counter
	CacheSuperseded    prometheus.Counter

	QueriesTotal      *prometheus.CounterVec
	QueryRetriesTotal prometheus.Counter
	MutationsTotal    *prometheus.CounterVec
	RequestDuration   prometheus.Histogram
}

// New constructs and registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Query cache lookups served without a network call.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Query cache lookups that required a fetch.",
		}),
		CacheStores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_stores_total",
			Help:      "Fetched results stored into the query cache.",
		}),
		CacheInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache keys invalidated after mutations.",
		}),
		CacheSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_superseded_total",
			Help:      "Fetch results discarded because their key generation moved on.",
		}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Query runs by resource and outcome.",
		}, []string{"resource", "outcome"}),
		QueryRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_retries_total",
			Help:      "Automatic single retries of failed query fetches.",
		}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutations by resource and outcome.",
		}, []string{"resource", "outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of upstream API fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.CacheHits,
		m.CacheMisses,
		m.CacheStores,
		m.CacheInvalidations,
		m.CacheSuperseded,
		m.QueriesTotal,
		m.QueryRetriesTotal,
		m.MutationsTotal,
		m.RequestDuration,
	)

	return m
}
