package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/chart"
	"github.com/couchcryptid/climate-trends/internal/config"
	"github.com/couchcryptid/climate-trends/internal/dataset"
	"github.com/couchcryptid/climate-trends/internal/observability"
	"github.com/couchcryptid/climate-trends/internal/pipeline"
	"github.com/couchcryptid/climate-trends/internal/predict"
	"github.com/couchcryptid/climate-trends/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.TempFile, "temp-file", cfg.TempFile, "path to the temperature anomaly CSV")
	flag.StringVar(&cfg.CO2File, "co2-file", cfg.CO2File, "path to the monthly CO2 CSV")
	flag.StringVar(&cfg.DisasterFile, "disaster-file", cfg.DisasterFile, "path to the IMF disasters CSV (empty disables the disaster series)")
	flag.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for charts and derived tables")
	flag.StringVar(&cfg.Country, "country", cfg.Country, "country filter for disaster data (empty or Global for the worldwide aggregate)")
	flag.StringVar(&cfg.DisasterType, "disaster-type", cfg.DisasterType, "disaster type filter, e.g. TOTAL, Drought, Flood")
	flag.IntVar(&cfg.ForecastYears, "forecast-years", cfg.ForecastYears, "years to project past the last observed year (0 disables)")
	listCountries := flag.Bool("list-countries", false, "list countries available in the disaster CSV and exit")
	listTypes := flag.Bool("list-disaster-types", false, "list disaster types available in the disaster CSV and exit")
	flag.Parse()

	logger := observability.NewLogger(cfg)

	if *listCountries || *listTypes {
		if err := runListing(cfg, *listCountries, *listTypes); err != nil {
			logger.Error("listing failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(cfg, logger)
	analyzer := analysis.NewEngine(cfg.Region(), logger)
	var forecaster pipeline.Forecaster
	if cfg.ForecastYears > 0 {
		forecaster = predict.NewForecaster(cfg.ForecastYears, logger)
	}
	charts := chart.NewRenderer(cfg.Region(), logger)
	reports := report.NewWriter(logger)

	p := pipeline.New(loader, analyzer, forecaster, charts, reports, cfg.OutputDir, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(report.FormatSummary(result.Report, result.Forecast))
}

// runListing handles -list-countries and -list-disaster-types, which print the
// available filter values without running the pipeline.
func runListing(cfg *config.Config, countries, types bool) error {
	if cfg.DisasterFile == "" {
		return fmt.Errorf("listing requires -disaster-file")
	}
	if countries {
		names, err := dataset.Countries(cfg.DisasterFile)
		if err != nil {
			return err
		}
		fmt.Println("Available countries:")
		for _, name := range names {
			fmt.Println("  " + name)
		}
	}
	if types {
		names, err := dataset.DisasterTypes(cfg.DisasterFile)
		if err != nil {
			return err
		}
		fmt.Println("Available disaster types:")
		for _, name := range names {
			fmt.Println("  " + name)
		}
	}
	return nil
}
