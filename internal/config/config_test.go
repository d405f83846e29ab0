package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TEMP_FILE", "CO2_FILE", "DISASTER_FILE", "OUTPUT_DIR",
		"COUNTRY", "DISASTER_TYPE", "FORECAST_YEARS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultTempFile, cfg.TempFile)
	assert.Equal(t, DefaultCO2File, cfg.CO2File)
	assert.Empty(t, cfg.DisasterFile)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Empty(t, cfg.Country)
	assert.Equal(t, "TOTAL", cfg.DisasterType)
	assert.Equal(t, DefaultForecastYears, cfg.ForecastYears)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEMP_FILE", "/data/temps.csv")
	t.Setenv("CO2_FILE", "/data/co2.csv")
	t.Setenv("DISASTER_FILE", "/data/disasters.csv")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("COUNTRY", "Japan")
	t.Setenv("DISASTER_TYPE", "Flood")
	t.Setenv("FORECAST_YEARS", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/temps.csv", cfg.TempFile)
	assert.Equal(t, "/data/co2.csv", cfg.CO2File)
	assert.Equal(t, "/data/disasters.csv", cfg.DisasterFile)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "Japan", cfg.Country)
	assert.Equal(t, "Flood", cfg.DisasterType)
	assert.Equal(t, 10, cfg.ForecastYears)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CountryWithoutDisasterFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUNTRY", "Japan")

	// Load must not reject this: a -disaster-file flag can still complete the
	// configuration before Validate runs.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.DisasterFile = "/data/disasters.csv"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidForecastYears(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORECAST_YEARS", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("country without disaster file", func(t *testing.T) {
		cfg := &Config{TempFile: "a.csv", CO2File: "b.csv", OutputDir: "out", Country: "Japan"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing temp file", func(t *testing.T) {
		cfg := &Config{CO2File: "b.csv", OutputDir: "out"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative forecast years", func(t *testing.T) {
		cfg := &Config{TempFile: "a.csv", CO2File: "b.csv", OutputDir: "out", ForecastYears: -1}
		assert.Error(t, cfg.Validate())
	})
}

func TestRegion(t *testing.T) {
	assert.Equal(t, "Global", (&Config{}).Region())
	assert.Equal(t, "Japan", (&Config{Country: "Japan"}).Region())
}
