package collect

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for scrape runs. All vectors are
// labeled by scrape kind.
type Metrics struct {
	Registry         *prometheus.Registry
	PagesFetched     *prometheus.CounterVec
	RecordsExtracted *prometheus.CounterVec
	RunsFailed       *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_pages_fetched_total",
			Help: "Total result pages fetched across runs.",
		},
		[]string{"kind"},
	)
	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_records_extracted_total",
			Help: "Total records merged into run accumulators.",
		},
		[]string{"kind"},
	)
	failed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_runs_failed_total",
			Help: "Total runs aborted by a fetch or extraction error.",
		},
		[]string{"kind"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_run_duration_seconds",
			Help:    "End-to-end duration of completed runs.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	registry.MustRegister(pages, records, failed, duration)

	return &Metrics{
		Registry:         registry,
		PagesFetched:     pages,
		RecordsExtracted: records,
		RunsFailed:       failed,
		RunDuration:      duration,
	}
}
