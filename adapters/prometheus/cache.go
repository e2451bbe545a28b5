package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/hashlru/core/cache"
	"github.com/codewandler/hashlru/core/metrics"
)

// cacheMetrics implements cache.Metrics using Prometheus.
type cacheMetrics struct {
	hits         *prometheus.CounterVec
	misses       *prometheus.CounterVec
	inserts      *prometheus.CounterVec
	evictions    *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	entries      *prometheus.GaugeVec
	loadDuration *prometheus.HistogramVec
}

// NewCacheMetrics registers the cache collectors with reg.
func NewCacheMetrics(reg prometheus.Registerer) cache.Metrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashlru_cache_hits_total",
			Help: "Total number of lookups that found a resident entry",
		}, []string{"cache"}),

		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashlru_cache_misses_total",
			Help: "Total number of lookups that found nothing",
		}, []string{"cache"}),

		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashlru_cache_inserts_total",
			Help: "Total number of admitted inserts",
		}, []string{"cache"}),

		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashlru_cache_evictions_total",
			Help: "Total number of entries evicted by capacity",
		}, []string{"cache"}),

		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashlru_cache_rejections_total",
			Help: "Total number of refused inserts",
		}, []string{"cache", "reason"}),

		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hashlru_cache_entries",
			Help: "Number of resident entries",
		}, []string{"cache"}),

		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hashlru_cache_load_duration_seconds",
			Help:    "Origin load latency of read-through loaders in seconds",
			Buckets: defaultBuckets,
		}, []string{"cache"}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.inserts,
		m.evictions,
		m.rejections,
		m.entries,
		m.loadDuration,
	)

	return m
}

func (m *cacheMetrics) Hit(name string)      { m.hits.WithLabelValues(name).Inc() }
func (m *cacheMetrics) Miss(name string)     { m.misses.WithLabelValues(name).Inc() }
func (m *cacheMetrics) Inserted(name string) { m.inserts.WithLabelValues(name).Inc() }
func (m *cacheMetrics) Evicted(name string)  { m.evictions.WithLabelValues(name).Inc() }

func (m *cacheMetrics) Rejected(name, reason string) {
	m.rejections.WithLabelValues(name, reason).Inc()
}

func (m *cacheMetrics) Size(name string, n int) {
	m.entries.WithLabelValues(name).Set(float64(n))
}

func (m *cacheMetrics) LoadDuration(name string) metrics.Timer {
	return newTimer(m.loadDuration.WithLabelValues(name))
}

var _ cache.Metrics = (*cacheMetrics)(nil)
