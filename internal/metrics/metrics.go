package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip stages label dltview_records_skipped_total.
const (
	StageIndex  = "index"
	StageFilter = "filter"
	StageSearch = "search"
)

// Metrics holds the viewer's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	IndexBuildDuration prometheus.Histogram
	MessagesIndexed    prometheus.Counter
	FilterDuration     prometheus.Histogram
	SearchDuration     prometheus.Histogram
	RecordsSkipped     *prometheus.CounterVec
	OpenFiles          prometheus.Gauge
	IndexCacheResults  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		IndexBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dltview_index_build_seconds",
				Help:    "Time spent building the message index of a file",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),

		MessagesIndexed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dltview_messages_indexed_total",
				Help: "Total number of messages found by index builds",
			},
		),

		FilterDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dltview_filter_seconds",
				Help:    "Duration of filter evaluations",
				Buckets: prometheus.DefBuckets,
			},
		),

		SearchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dltview_search_seconds",
				Help:    "Duration of search runs",
				Buckets: prometheus.DefBuckets,
			},
		),

		RecordsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dltview_records_skipped_total",
				Help: "Records that failed to parse and were skipped",
			},
			[]string{"stage"},
		),

		OpenFiles: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dltview_open_files",
				Help: "Number of files currently open in the session",
			},
		),

		IndexCacheResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dltview_index_cache_total",
				Help: "Index cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordIndexBuild records a completed index build.
func (m *Metrics) RecordIndexBuild(d time.Duration, messages int) {
	if m == nil {
		return
	}
	m.IndexBuildDuration.Observe(d.Seconds())
	m.MessagesIndexed.Add(float64(messages))
}

// RecordIndexCache records a cache lookup as "hit" or "miss".
func (m *Metrics) RecordIndexCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IndexCacheResults.WithLabelValues(result).Inc()
}

// RecordFilter records a filter evaluation.
func (m *Metrics) RecordFilter(d time.Duration, skipped int) {
	if m == nil {
		return
	}
	m.FilterDuration.Observe(d.Seconds())
	m.RecordSkipped(StageFilter, skipped)
}

// RecordSearch records a search run.
func (m *Metrics) RecordSearch(d time.Duration, skipped int) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(d.Seconds())
	m.RecordSkipped(StageSearch, skipped)
}

// RecordSkipped adds n unparseable records for stage.
func (m *Metrics) RecordSkipped(stage string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsSkipped.WithLabelValues(stage).Add(float64(n))
}

// UpdateOpenFiles sets the open file gauge.
func (m *Metrics) UpdateOpenFiles(n int) {
	if m == nil {
		return
	}
	m.OpenFiles.Set(float64(n))
}
