package dataset

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/climate-trends/internal/config"
	"github.com/couchcryptid/climate-trends/internal/domain"
)

// Loader reads the configured CSV files and merges them into an AnnualSeries.
// It implements the pipeline's SeriesLoader stage.
type Loader struct {
	tempPath     string
	co2Path      string
	disasterPath string
	country      string
	disasterType string
	logger       *slog.Logger
}

// NewLoader creates a Loader from the run configuration.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		tempPath:     cfg.TempFile,
		co2Path:      cfg.CO2File,
		disasterPath: cfg.DisasterFile,
		country:      cfg.Country,
		disasterType: cfg.DisasterType,
		logger:       logger,
	}
}

// Load reads every configured input, checking for cancellation between files.
func (l *Loader) Load(ctx context.Context) (domain.AnnualSeries, error) {
	temps, tempDropped, err := LoadTemperatures(l.tempPath)
	if err != nil {
		return domain.AnnualSeries{}, err
	}
	l.logger.Info("temperature data loaded",
		"path", l.tempPath,
		"years", len(temps),
		"dropped", tempDropped,
		"first", temps[0].Year,
		"last", temps[len(temps)-1].Year,
	)

	if err := ctx.Err(); err != nil {
		return domain.AnnualSeries{}, err
	}

	co2, co2Dropped, err := LoadCO2(l.co2Path)
	if err != nil {
		return domain.AnnualSeries{}, err
	}
	l.logger.Info("co2 data loaded",
		"path", l.co2Path,
		"years", len(co2),
		"dropped", co2Dropped,
		"first", co2[0].Year,
		"last", co2[len(co2)-1].Year,
	)

	var disasters []domain.DisasterCount
	disasterDropped := 0
	if l.disasterPath != "" {
		if err := ctx.Err(); err != nil {
			return domain.AnnualSeries{}, err
		}
		disasters, disasterDropped, err = LoadDisasters(l.disasterPath, l.country, l.disasterType)
		if err != nil {
			return domain.AnnualSeries{}, err
		}
		l.logger.Info("disaster data loaded",
			"path", l.disasterPath,
			"country", resolveCountry(l.country),
			"type", normalizeDisasterType(l.disasterType),
			"years", len(disasters),
			"dropped", disasterDropped,
		)
	}

	series, err := Merge(temps, co2, disasters)
	if err != nil {
		return domain.AnnualSeries{}, err
	}
	series.Sources.TemperatureDropped = tempDropped
	series.Sources.CO2Dropped = co2Dropped
	series.Sources.DisastersDropped = disasterDropped
	l.logger.Info("datasets merged",
		"years", len(series.Records),
		"first", series.Records[0].Year,
		"last", series.Records[len(series.Records)-1].Year,
		"disasters", series.HasDisasters,
	)
	return series, nil
}
