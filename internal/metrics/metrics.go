package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the service's prometheus collectors.
type Metrics struct {
	SearchesTotal   prometheus.Counter
	SearchFailures  prometheus.Counter
	RefreshesTotal  prometheus.Counter
	RefreshFailures prometheus.Counter
	RefreshDuration prometheus.Histogram
	IndexedEvents   prometheus.Gauge
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventscout_searches_total",
			Help: "Number of search requests served.",
		}),
		SearchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventscout_search_failures_total",
			Help: "Number of search requests that failed.",
		}),
		RefreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventscout_index_refreshes_total",
			Help: "Number of completed index refreshes.",
		}),
		RefreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventscout_index_refresh_failures_total",
			Help: "Number of failed index refreshes.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventscout_index_refresh_duration_seconds",
			Help:    "Wall time of index refreshes.",
			Buckets: prometheus.DefBuckets,
		}),
		IndexedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eventscout_indexed_events",
			Help: "Number of events in the active index.",
		}),
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.SearchFailures,
		m.RefreshesTotal,
		m.RefreshFailures,
		m.RefreshDuration,
		m.IndexedEvents,
	)
	return m
}
