// Package predict fits least-squares trend models to the merged series and
// projects each variable forward: temperature linear in year, CO2 log-linear
// (exponential growth), disaster counts linear and clamped at zero.
package predict

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// Model is a fitted ordinary least squares line y = Intercept + Slope*year.
// For the CO2 model the fit is performed on log(ppm), so R2 and MSE are
// measured in log space.
type Model struct {
	Intercept float64
	Slope     float64
	R2        float64
	MSE       float64
}

// At evaluates the fitted line at the given year.
func (m Model) At(year float64) float64 {
	return m.Intercept + m.Slope*year
}

// Projection is the modelled values for one future year.
type Projection struct {
	Temperature float64
	CO2         float64
	Disasters   float64
}

// Forecast holds per-year projections past the last observed year.
type Forecast struct {
	Years       []int
	Temperature []float64
	CO2         []float64
	Disasters   []float64

	// TemperatureBand is the half-width of the 95% confidence band around the
	// temperature projection, computed as 2*RMSE of the historical fit.
	TemperatureBand float64

	TempModel     Model
	CO2Model      Model
	DisasterModel Model

	HasDisasters bool
}

// At returns the projection for a target year, or false when the year is
// outside the forecast horizon.
func (f Forecast) At(year int) (Projection, bool) {
	for i, y := range f.Years {
		if y == year {
			p := Projection{Temperature: f.Temperature[i], CO2: f.CO2[i]}
			if f.HasDisasters {
				p.Disasters = f.Disasters[i]
			}
			return p, true
		}
	}
	return Projection{}, false
}

// Forecaster implements the pipeline's forecasting stage.
type Forecaster struct {
	horizon int
	logger  *slog.Logger
}

// NewForecaster creates a Forecaster projecting horizon years ahead.
func NewForecaster(horizon int, logger *slog.Logger) *Forecaster {
	return &Forecaster{horizon: horizon, logger: logger}
}

// Forecast fits the models and projects the configured horizon.
func (f *Forecaster) Forecast(s domain.AnnualSeries) (Forecast, error) {
	fc, err := Fit(s, f.horizon)
	if err != nil {
		return Forecast{}, err
	}
	f.logger.Info("models fitted",
		"horizon_years", f.horizon,
		"temperature_r2", fc.TempModel.R2,
		"co2_r2", fc.CO2Model.R2,
	)
	return fc, nil
}

// Fit trains the trend models on the series and projects horizon years past
// the last observed year.
func Fit(s domain.AnnualSeries, horizon int) (Forecast, error) {
	if horizon < 1 {
		return Forecast{}, fmt.Errorf("forecast horizon must be at least 1 year, got %d", horizon)
	}
	if len(s.Records) < 2 {
		return Forecast{}, fmt.Errorf("need at least 2 merged years to fit models, got %d", len(s.Records))
	}

	years := make([]float64, len(s.Records))
	anomalies := make([]float64, len(s.Records))
	logPPM := make([]float64, len(s.Records))
	disasters := make([]float64, len(s.Records))
	for i, r := range s.Records {
		years[i] = float64(r.Year)
		anomalies[i] = r.Anomaly
		logPPM[i] = math.Log(r.PPM)
		disasters[i] = float64(r.Disasters)
	}

	tempModel := fitLine(years, anomalies)
	co2Model := fitLine(years, logPPM)

	lastYear := s.Records[len(s.Records)-1].Year
	fc := Forecast{
		Years:           make([]int, horizon),
		Temperature:     make([]float64, horizon),
		CO2:             make([]float64, horizon),
		TemperatureBand: 2 * math.Sqrt(tempModel.MSE),
		TempModel:       tempModel,
		CO2Model:        co2Model,
		HasDisasters:    s.HasDisasters,
	}
	for i := 0; i < horizon; i++ {
		year := lastYear + 1 + i
		fc.Years[i] = year
		fc.Temperature[i] = tempModel.At(float64(year))
		fc.CO2[i] = math.Exp(co2Model.At(float64(year)))
	}

	if s.HasDisasters {
		fc.DisasterModel = fitLine(years, disasters)
		fc.Disasters = make([]float64, horizon)
		for i, year := range fc.Years {
			fc.Disasters[i] = math.Max(fc.DisasterModel.At(float64(year)), 0)
		}
	}

	return fc, nil
}

func fitLine(xs, ys []float64) Model {
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	m := Model{
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(xs, ys, nil, alpha, beta),
	}
	var sse float64
	for i, x := range xs {
		resid := ys[i] - m.At(x)
		sse += resid * resid
	}
	m.MSE = sse / float64(len(xs))
	return m
}
