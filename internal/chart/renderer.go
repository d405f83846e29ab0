package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/domain"
	"github.com/couchcryptid/climate-trends/internal/predict"
)

// Output file names within the output directory.
const (
	FileTemperatureTrend = "temperature_trend.png"
	FileCO2Trend         = "co2_trend.png"
	FileCorrelation      = "correlation.png"
	FileDecadeComparison = "decade_comparison.png"
	FileDisastersTrend   = "disasters_trend.png"
	FileCrossCorrelation = "cross_correlation.png"
	FileForecast         = "forecast.png"
)

// Renderer draws the chart set for a run. It implements the pipeline's
// ChartSet stage.
type Renderer struct {
	width  vg.Length
	height vg.Length
	region string
	logger *slog.Logger
}

// NewRenderer creates a Renderer labelling chart titles with the given region.
func NewRenderer(region string, logger *slog.Logger) *Renderer {
	return &Renderer{
		width:  12 * vg.Inch,
		height: 6 * vg.Inch,
		region: region,
		logger: logger,
	}
}

// Render writes every applicable chart into dir and returns the written paths.
// Disaster and forecast charts are skipped when their data is absent.
func (r *Renderer) Render(s domain.AnnualSeries, rep analysis.Report, fc *predict.Forecast, dir string) ([]string, error) {
	type job struct {
		name   string
		render func(path string) error
	}
	jobs := []job{
		{FileTemperatureTrend, func(p string) error { return r.TemperatureTrend(s, p) }},
		{FileCO2Trend, func(p string) error { return r.CO2Trend(s, p) }},
		{FileCorrelation, func(p string) error { return r.Correlation(s, p) }},
		{FileDecadeComparison, func(p string) error { return r.DecadeComparison(rep.Decades, s.HasDisasters, p) }},
	}
	if s.HasDisasters {
		jobs = append(jobs,
			job{FileDisastersTrend, func(p string) error { return r.DisastersTrend(s, p) }},
			job{FileCrossCorrelation, func(p string) error { return r.CrossCorrelations(s, p) }},
		)
	}
	if fc != nil {
		jobs = append(jobs, job{FileForecast, func(p string) error { return r.Forecasts(s, *fc, p) }})
	}

	var written []string
	for _, j := range jobs {
		path := filepath.Join(dir, j.name)
		if err := j.render(path); err != nil {
			return written, fmt.Errorf("render %s: %w", j.name, err)
		}
		r.logger.Info("chart written", "path", path)
		written = append(written, path)
	}
	return written, nil
}

// TemperatureTrend plots the anomaly series against year with a fitted line.
func (r *Renderer) TemperatureTrend(s domain.AnnualSeries, path string) error {
	p, err := trendPlot("Temperature Anomaly Trend - "+r.region, "Temperature Anomaly (°C)", yearPoints(s, func(rec domain.AnnualRecord) float64 { return rec.Anomaly }), colorRed)
	if err != nil {
		return err
	}
	return p.Save(r.width, r.height, path)
}

// CO2Trend plots the annual CO2 concentration against year with a fitted line.
func (r *Renderer) CO2Trend(s domain.AnnualSeries, path string) error {
	p, err := trendPlot("Atmospheric CO2 Concentration Trend", "CO2 Level (ppm)", yearPoints(s, func(rec domain.AnnualRecord) float64 { return rec.PPM }), colorGreen)
	if err != nil {
		return err
	}
	return p.Save(r.width, r.height, path)
}

// DisastersTrend plots annual disaster counts against year with a fitted line.
func (r *Renderer) DisastersTrend(s domain.AnnualSeries, path string) error {
	p, err := trendPlot("Climate-Related Disasters Trend - "+r.region, "Number of Disasters", yearPoints(s, func(rec domain.AnnualRecord) float64 { return float64(rec.Disasters) }), colorPurple)
	if err != nil {
		return err
	}
	return p.Save(r.width, r.height, path)
}

// Correlation plots temperature anomaly against CO2 level.
func (r *Renderer) Correlation(s domain.AnnualSeries, path string) error {
	pts := make(plotter.XYs, len(s.Records))
	for i, rec := range s.Records {
		pts[i] = plotter.XY{X: rec.PPM, Y: rec.Anomaly}
	}
	p, err := scatterFitPlot("Temperature Anomaly vs CO2 Concentration", "CO2 Level (ppm)", "Temperature Anomaly (°C)", pts, colorRed)
	if err != nil {
		return err
	}
	return p.Save(r.width, r.height, path)
}

// CrossCorrelations writes a three-panel scatter set relating temperature,
// CO2, and disaster counts.
func (r *Renderer) CrossCorrelations(s domain.AnnualSeries, path string) error {
	tempVsCO2 := make(plotter.XYs, len(s.Records))
	disVsTemp := make(plotter.XYs, len(s.Records))
	disVsCO2 := make(plotter.XYs, len(s.Records))
	for i, rec := range s.Records {
		tempVsCO2[i] = plotter.XY{X: rec.PPM, Y: rec.Anomaly}
		disVsTemp[i] = plotter.XY{X: rec.Anomaly, Y: float64(rec.Disasters)}
		disVsCO2[i] = plotter.XY{X: rec.PPM, Y: float64(rec.Disasters)}
	}

	p1, err := scatterFitPlot("Temperature vs CO2 - "+r.region, "CO2 Level (ppm)", "Temperature Anomaly (°C)", tempVsCO2, colorRed)
	if err != nil {
		return err
	}
	p2, err := scatterFitPlot("Disasters vs Temperature - "+r.region, "Temperature Anomaly (°C)", "Number of Disasters", disVsTemp, colorPurple)
	if err != nil {
		return err
	}
	p3, err := scatterFitPlot("Disasters vs CO2 - "+r.region, "CO2 Level (ppm)", "Number of Disasters", disVsCO2, colorGreen)
	if err != nil {
		return err
	}

	return writeTiled(path, [][]*plot.Plot{{p1, p2, p3}}, 18*vg.Inch, 6*vg.Inch)
}

// DecadeComparison writes side-by-side bar charts of decadal averages:
// temperature and CO2, plus disasters when present.
func (r *Renderer) DecadeComparison(decades []analysis.DecadeStat, hasDisasters bool, path string) error {
	labels := make([]string, len(decades))
	anomalies := make(plotter.Values, len(decades))
	ppm := make(plotter.Values, len(decades))
	disasters := make(plotter.Values, len(decades))
	for i, d := range decades {
		labels[i] = strconv.Itoa(d.Decade) + "s"
		anomalies[i] = d.Anomaly
		ppm[i] = d.PPM
		disasters[i] = d.Disasters
	}

	p1, err := barPlot("Decadal Average Temperature Anomalies", "Decade", "Temperature Anomaly (°C)", anomalies, labels, colorCoral)
	if err != nil {
		return err
	}
	p2, err := barPlot("Decadal Average CO2 Levels", "Decade", "CO2 Level (ppm)", ppm, labels, colorGreen)
	if err != nil {
		return err
	}
	row := []*plot.Plot{p1, p2}

	width := 15 * vg.Inch
	if hasDisasters {
		p3, err := barPlot("Decadal Average Disasters", "Decade", "Disasters per Year", disasters, labels, colorPurple)
		if err != nil {
			return err
		}
		row = append(row, p3)
		width = 18 * vg.Inch
	}

	return writeTiled(path, [][]*plot.Plot{row}, width, 6*vg.Inch)
}

// Forecasts writes stacked panels of historical scatter plus projection line
// for each modelled variable. The temperature panel includes dashed 95%
// confidence bounds.
func (r *Renderer) Forecasts(s domain.AnnualSeries, fc predict.Forecast, path string) error {
	tempPanel, err := r.forecastPanel(
		"Temperature Anomaly Projection - "+r.region, "Temperature Anomaly (°C)",
		yearPoints(s, func(rec domain.AnnualRecord) float64 { return rec.Anomaly }),
		fc.Years, fc.Temperature, colorRed,
	)
	if err != nil {
		return err
	}
	if err := addBand(tempPanel, fc.Years, fc.Temperature, fc.TemperatureBand, colorRed); err != nil {
		return err
	}

	co2Panel, err := r.forecastPanel(
		"CO2 Level Projection - "+r.region, "CO2 Level (ppm)",
		yearPoints(s, func(rec domain.AnnualRecord) float64 { return rec.PPM }),
		fc.Years, fc.CO2, colorGreen,
	)
	if err != nil {
		return err
	}

	rows := [][]*plot.Plot{{tempPanel}, {co2Panel}}
	height := 10 * vg.Inch

	if fc.HasDisasters {
		disPanel, err := r.forecastPanel(
			"Disasters Projection - "+r.region, "Number of Disasters",
			yearPoints(s, func(rec domain.AnnualRecord) float64 { return float64(rec.Disasters) }),
			fc.Years, fc.Disasters, colorPurple,
		)
		if err != nil {
			return err
		}
		rows = append(rows, []*plot.Plot{disPanel})
		height = 15 * vg.Inch
	}

	return writeTiled(path, rows, 12*vg.Inch, height)
}

func (r *Renderer) forecastPanel(title, yLabel string, historical plotter.XYs, years []int, projected []float64, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	if err := addScatter(p, historical, colorBlue); err != nil {
		return nil, err
	}
	ln, err := addLine(p, forecastPoints(years, projected), c)
	if err != nil {
		return nil, err
	}
	p.Legend.Add("projected", ln)
	p.Legend.Top = true
	return p, nil
}

func addBand(p *plot.Plot, years []int, values []float64, halfWidth float64, c color.Color) error {
	upper := make(plotter.XYs, len(years))
	lower := make(plotter.XYs, len(years))
	for i, y := range years {
		upper[i] = plotter.XY{X: float64(y), Y: values[i] + halfWidth}
		lower[i] = plotter.XY{X: float64(y), Y: values[i] - halfWidth}
	}
	if err := addDashedLine(p, upper, c); err != nil {
		return err
	}
	return addDashedLine(p, lower, c)
}

func yearPoints(s domain.AnnualSeries, value func(domain.AnnualRecord) float64) plotter.XYs {
	pts := make(plotter.XYs, len(s.Records))
	for i, rec := range s.Records {
		pts[i] = plotter.XY{X: float64(rec.Year), Y: value(rec)}
	}
	return pts
}

func forecastPoints(years []int, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(years))
	for i, y := range years {
		pts[i] = plotter.XY{X: float64(y), Y: values[i]}
	}
	return pts
}
