// Package pipeline orchestrates one analysis run: load and merge the input
// CSVs, compute statistics, fit forecast models, render charts, and write the
// derived tables.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/domain"
	"github.com/couchcryptid/climate-trends/internal/observability"
	"github.com/couchcryptid/climate-trends/internal/predict"
)

// MetricsFile is the textfile-collector dump written next to the other outputs.
const MetricsFile = "metrics.prom"

// SeriesLoader reads the configured inputs and merges them by year.
type SeriesLoader interface {
	Load(ctx context.Context) (domain.AnnualSeries, error)
}

// Analyzer computes descriptive statistics over the merged series.
type Analyzer interface {
	Analyze(s domain.AnnualSeries) (analysis.Report, error)
}

// Forecaster fits trend models and projects future years.
type Forecaster interface {
	Forecast(s domain.AnnualSeries) (predict.Forecast, error)
}

// ChartSet renders the chart files for a run into a directory.
type ChartSet interface {
	Render(s domain.AnnualSeries, rep analysis.Report, fc *predict.Forecast, dir string) ([]string, error)
}

// ReportWriter persists the derived tables and summary into a directory.
type ReportWriter interface {
	Write(dir string, s domain.AnnualSeries, rep analysis.Report, fc *predict.Forecast) ([]string, error)
}

// Result is everything a completed run produced.
type Result struct {
	Series     domain.AnnualSeries
	Report     analysis.Report
	Forecast   *predict.Forecast
	ChartPaths []string
	TablePaths []string
}

// Pipeline wires the stages together with logging and metrics.
type Pipeline struct {
	loader     SeriesLoader
	analyzer   Analyzer
	forecaster Forecaster // nil disables forecasting
	charts     ChartSet
	reports    ReportWriter
	outputDir  string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline. Pass a nil forecaster to skip model fitting.
func New(loader SeriesLoader, analyzer Analyzer, forecaster Forecaster, charts ChartSet, reports ReportWriter, outputDir string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:     loader,
		analyzer:   analyzer,
		forecaster: forecaster,
		charts:     charts,
		reports:    reports,
		outputDir:  outputDir,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes one load-analyze-forecast-render-report cycle. The context is
// checked between stages so an interrupted run stops at the next boundary.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	p.logger.Info("run started", "output_dir", p.outputDir)

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	result := &Result{}

	err := p.timed("load", func() error {
		series, err := p.loader.Load(ctx)
		if err != nil {
			return err
		}
		result.Series = series
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.metrics.RowsLoaded.WithLabelValues("temperature").Add(float64(result.Series.Sources.TemperatureYears))
	p.metrics.RowsLoaded.WithLabelValues("co2").Add(float64(result.Series.Sources.CO2Years))
	p.metrics.RowsLoaded.WithLabelValues("disasters").Add(float64(result.Series.Sources.DisasterYears))
	p.metrics.RowsDropped.WithLabelValues("temperature").Add(float64(result.Series.Sources.TemperatureDropped))
	p.metrics.RowsDropped.WithLabelValues("co2").Add(float64(result.Series.Sources.CO2Dropped))
	p.metrics.RowsDropped.WithLabelValues("disasters").Add(float64(result.Series.Sources.DisastersDropped))
	p.metrics.MergedYears.Set(float64(len(result.Series.Records)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = p.timed("analyze", func() error {
		rep, err := p.analyzer.Analyze(result.Series)
		if err != nil {
			return err
		}
		result.Report = rep
		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.forecaster != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err = p.timed("forecast", func() error {
			fc, err := p.forecaster.Forecast(result.Series)
			if err != nil {
				return err
			}
			result.Forecast = &fc
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = p.timed("render", func() error {
		paths, err := p.charts.Render(result.Series, result.Report, result.Forecast, p.outputDir)
		result.ChartPaths = paths
		p.metrics.ChartsWritten.Add(float64(len(paths)))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.timed("report", func() error {
		paths, err := p.reports.Write(p.outputDir, result.Series, result.Report, result.Forecast)
		result.TablePaths = paths
		p.metrics.TablesWritten.Add(float64(len(paths)))
		return err
	})
	if err != nil {
		return nil, err
	}

	p.metrics.RunSucceeded.Set(1)
	if err := p.metrics.WriteTextfile(filepath.Join(p.outputDir, MetricsFile)); err != nil {
		p.logger.Warn("metrics textfile write failed", "error", err)
	}

	p.logger.Info("run complete",
		"duration", time.Since(start),
		"charts", len(result.ChartPaths),
		"tables", len(result.TablePaths),
	)
	return result, nil
}

// timed runs a stage and records its duration.
func (p *Pipeline) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s stage: %w", stage, err)
	}
	return nil
}
