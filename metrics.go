package rrcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the set of Prometheus collectors a Facade/Pipeline reports
// against. A nil *Metrics is valid everywhere it's accepted: every call
// site nil-checks before touching it, so metrics are always optional.
//
// Built as promauto-registered collectors, in the style of
// bavix-outway's internal/metrics package.
type Metrics struct {
	hits         prometheus.Counter
	misses       prometheus.Counter
	inserts      prometheus.Counter
	rankRejected prometheus.Counter
	evictions    prometheus.Counter
	entries      prometheus.Gauge
	queueDepth   prometheus.Gauge
}

// NewMetrics registers a fresh set of collectors against reg. Passing nil
// registers against prometheus.NewRegistry(), useful for tests that don't
// want to pollute the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		hits: f.NewCounter(prometheus.CounterOpts{
			Name: "rrcache_lookup_hits_total",
			Help: "Lookups that found a live entry.",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Name: "rrcache_lookup_misses_total",
			Help: "Lookups that found no live entry.",
		}),
		inserts: f.NewCounter(prometheus.CounterOpts{
			Name: "rrcache_inserts_total",
			Help: "Inserts that changed the cache.",
		}),
		rankRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "rrcache_rank_rejected_total",
			Help: "Inserts rejected because the live entry outranked the candidate.",
		}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Name: "rrcache_evictions_total",
			Help: "Entries removed by periodic expiration sweeps; entries dropped while applying an insert are not counted.",
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Name: "rrcache_entries",
			Help: "Current number of entries held by the cache, live or not yet swept.",
		}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "rrcache_update_queue_depth",
			Help: "Current depth of the update pipeline's command queue.",
		}),
	}
}

func (m *Metrics) recordHit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) recordMiss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) setQueueDepth(n int) {
	if m != nil {
		m.queueDepth.Set(float64(n))
	}
}
