// Package observability provides structured logging and run metrics.
//
// The analyzer is a batch process with no scrape endpoint, so metrics are
// flushed at end of run to a textfile in the output directory, in the
// node-exporter textfile-collector exposition format.
package observability

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus counters, gauges, and histograms for one run.
// Each Metrics value carries its own registry, so constructing several in
// tests never trips duplicate registration.
type Metrics struct {
	RowsLoaded    *prometheus.CounterVec // label: dataset={temperature,co2,disasters}
	RowsDropped   *prometheus.CounterVec // same label set
	MergedYears   prometheus.Gauge
	ChartsWritten prometheus.Counter
	TablesWritten prometheus.Counter
	StageDuration *prometheus.HistogramVec // label: stage
	RunSucceeded  prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all run metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "rows_loaded_total",
			Help:      "Distinct years loaded per input dataset.",
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "rows_dropped_total",
			Help:      "Raw input rows discarded as missing or unparsable, per dataset.",
		}, []string{"dataset"}),
		MergedYears: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "merged_years",
			Help:      "Number of years in the merged series.",
		}),
		ChartsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "charts_written_total",
			Help:      "Chart image files written.",
		}),
		TablesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "tables_written_total",
			Help:      "Derived table and summary files written.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		RunSucceeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "run_succeeded",
			Help:      "1 when the last run completed, 0 otherwise.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.MergedYears,
		m.ChartsWritten,
		m.TablesWritten,
		m.StageDuration,
		m.RunSucceeded,
	)

	return m
}

// WriteTextfile gathers the registry and writes it in exposition text format.
func (m *Metrics) WriteTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			f.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return f.Close()
}
