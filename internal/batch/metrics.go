package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for batch parsing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry      *prometheus.Registry
	PagesTotal    *prometheus.CounterVec
	FailuresTotal *prometheus.CounterVec
	CacheHits     prometheus.Counter
	ParseDuration prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itemscrape_pages_parsed_total",
			Help: "Pages turned into item records, by platform.",
		},
		[]string{"platform"},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itemscrape_page_failures_total",
			Help: "Pages that produced no record, by error code.",
		},
		[]string{"code"},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "itemscrape_cache_hits_total",
			Help: "Pages served from the record cache.",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itemscrape_parse_duration_seconds",
			Help:    "Time spent reading and extracting one page.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	registry.MustRegister(pages, failures, cacheHits, duration)

	return &Metrics{
		Registry:      registry,
		PagesTotal:    pages,
		FailuresTotal: failures,
		CacheHits:     cacheHits,
		ParseDuration: duration,
	}
}

// IncPage counts a page extracted for platform
func (m *Metrics) IncPage(platform string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(platform).Inc()
}

// IncFailure counts a failed page by error code
func (m *Metrics) IncFailure(code string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(code).Inc()
}

// IncCacheHit counts a page answered from the cache
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// ObserveDuration records the time spent on one page
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ParseDuration.Observe(d.Seconds())
}
