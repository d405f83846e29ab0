package config

import (
	"errors"
	"os"
	"strconv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultTempFile      = "data/raw/annual.csv"
	DefaultCO2File       = "data/raw/co2-mm-gl.csv"
	DefaultOutputDir     = "output"
	DefaultForecastYears = 30
)

// Config holds all analyzer settings, populated from environment variables.
// Command-line flags in cmd/climate override individual fields after Load.
type Config struct {
	TempFile     string
	CO2File      string
	DisasterFile string // empty disables the disaster series
	OutputDir    string

	Country      string // empty or "Global" selects the worldwide aggregate
	DisasterType string // indicator suffix, e.g. "TOTAL", "Drought"

	ForecastYears int // 0 disables forecasting

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where
// unset. Cross-field validation is deferred to Validate so flag overrides can
// complete a partial environment.
func Load() (*Config, error) {
	forecastYears, err := parseForecastYears()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TempFile:      envOrDefault("TEMP_FILE", DefaultTempFile),
		CO2File:       envOrDefault("CO2_FILE", DefaultCO2File),
		DisasterFile:  os.Getenv("DISASTER_FILE"),
		OutputDir:     envOrDefault("OUTPUT_DIR", DefaultOutputDir),
		Country:       os.Getenv("COUNTRY"),
		DisasterType:  envOrDefault("DISASTER_TYPE", "TOTAL"),
		ForecastYears: forecastYears,
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

// Validate checks field values after any flag overrides have been applied.
func (c *Config) Validate() error {
	if c.TempFile == "" {
		return errors.New("TEMP_FILE is required")
	}
	if c.CO2File == "" {
		return errors.New("CO2_FILE is required")
	}
	if c.OutputDir == "" {
		return errors.New("OUTPUT_DIR is required")
	}
	if c.ForecastYears < 0 {
		return errors.New("forecast years must not be negative")
	}
	if c.Country != "" && c.DisasterFile == "" {
		return errors.New("a country filter requires a disaster data file")
	}
	return nil
}

// Region names the geographic scope of the run for report headers.
func (c *Config) Region() string {
	if c.Country == "" {
		return "Global"
	}
	return c.Country
}

func parseForecastYears() (int, error) {
	s := os.Getenv("FORECAST_YEARS")
	if s == "" {
		return DefaultForecastYears, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid FORECAST_YEARS")
	}
	return n, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
