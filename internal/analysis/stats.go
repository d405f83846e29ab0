// Package analysis computes descriptive statistics over a merged annual series:
// decadal averages, year-over-year deltas, and cross-series correlations.
package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// DecadeStat holds the mean of each series over one decade.
// Disasters is only meaningful when the source series has disaster data.
type DecadeStat struct {
	Decade    int
	Anomaly   float64
	PPM       float64
	Disasters float64
}

// TrendPoint is one year's values with deltas from the previous year.
// HasDelta is false on the first year, which has no predecessor.
type TrendPoint struct {
	Year           int
	Anomaly        float64
	PPM            float64
	Disasters      int
	AnomalyDelta   float64
	PPMDelta       float64
	DisastersDelta int
	HasDelta       bool
}

// Summary aggregates headline statistics for the run.
// Disaster fields are zero unless HasDisasters is set.
type Summary struct {
	Region       string
	HasDisasters bool

	TempCO2Correlation      float64
	TempDisasterCorrelation float64
	CO2DisasterCorrelation  float64

	WarmestYear    int
	CoolestYear    int
	HighestCO2Year int
	LowestCO2Year  int

	MostDisastersYear   int
	FewestDisastersYear int
	AvgDisastersPerYear float64
	TotalDisasters      int

	GeneratedAt time.Time
}

// Report bundles everything the analysis stage produces.
type Report struct {
	Summary Summary
	Decades []DecadeStat
	Trends  []TrendPoint
}

// Engine implements the pipeline's analysis stage.
type Engine struct {
	region string
	logger *slog.Logger
}

// NewEngine creates an Engine labelling its output with the given region.
func NewEngine(region string, logger *slog.Logger) *Engine {
	return &Engine{region: region, logger: logger}
}

// Analyze computes the full report for a merged series.
func (e *Engine) Analyze(s domain.AnnualSeries) (Report, error) {
	summary, err := Summarize(s, e.region)
	if err != nil {
		return Report{}, err
	}
	e.logger.Info("analysis complete",
		"region", summary.Region,
		"temp_co2_correlation", summary.TempCO2Correlation,
		"warmest_year", summary.WarmestYear,
	)
	return Report{
		Summary: summary,
		Decades: DecadeAverages(s),
		Trends:  Trends(s),
	}, nil
}

// DecadeAverages returns the per-decade arithmetic means, ascending by decade.
func DecadeAverages(s domain.AnnualSeries) []DecadeStat {
	type acc struct {
		anomaly   float64
		ppm       float64
		disasters float64
		n         int
	}
	byDecade := make(map[int]*acc)
	for _, r := range s.Records {
		d := domain.Decade(r.Year)
		a, ok := byDecade[d]
		if !ok {
			a = &acc{}
			byDecade[d] = a
		}
		a.anomaly += r.Anomaly
		a.ppm += r.PPM
		a.disasters += float64(r.Disasters)
		a.n++
	}

	stats := make([]DecadeStat, 0, len(byDecade))
	for d, a := range byDecade {
		n := float64(a.n)
		ds := DecadeStat{
			Decade:  d,
			Anomaly: a.anomaly / n,
			PPM:     a.ppm / n,
		}
		if s.HasDisasters {
			ds.Disasters = a.disasters / n
		}
		stats = append(stats, ds)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Decade < stats[j].Decade })
	return stats
}

// Trends returns year-over-year deltas. The first point has HasDelta false.
func Trends(s domain.AnnualSeries) []TrendPoint {
	points := make([]TrendPoint, len(s.Records))
	for i, r := range s.Records {
		points[i] = TrendPoint{
			Year:      r.Year,
			Anomaly:   r.Anomaly,
			PPM:       r.PPM,
			Disasters: r.Disasters,
		}
		if i == 0 {
			continue
		}
		prev := s.Records[i-1]
		points[i].AnomalyDelta = r.Anomaly - prev.Anomaly
		points[i].PPMDelta = r.PPM - prev.PPM
		points[i].DisastersDelta = r.Disasters - prev.Disasters
		points[i].HasDelta = true
	}
	return points
}

// Summarize computes correlations and extreme years for the series.
func Summarize(s domain.AnnualSeries, region string) (Summary, error) {
	if len(s.Records) < 2 {
		return Summary{}, fmt.Errorf("need at least 2 merged years to summarize, got %d", len(s.Records))
	}

	anomalies := make([]float64, len(s.Records))
	ppm := make([]float64, len(s.Records))
	disasters := make([]float64, len(s.Records))
	for i, r := range s.Records {
		anomalies[i] = r.Anomaly
		ppm[i] = r.PPM
		disasters[i] = float64(r.Disasters)
	}

	summary := Summary{
		Region:             region,
		TempCO2Correlation: stat.Correlation(anomalies, ppm, nil),
		WarmestYear:        s.Records[argmax(anomalies)].Year,
		CoolestYear:        s.Records[argmin(anomalies)].Year,
		HighestCO2Year:     s.Records[argmax(ppm)].Year,
		LowestCO2Year:      s.Records[argmin(ppm)].Year,
		GeneratedAt:        domain.Now(),
	}

	if s.HasDisasters {
		summary.HasDisasters = true
		summary.TempDisasterCorrelation = stat.Correlation(anomalies, disasters, nil)
		summary.CO2DisasterCorrelation = stat.Correlation(ppm, disasters, nil)
		summary.MostDisastersYear = s.Records[argmax(disasters)].Year
		summary.FewestDisastersYear = s.Records[argmin(disasters)].Year
		summary.AvgDisastersPerYear = stat.Mean(disasters, nil)
		total := 0
		for _, r := range s.Records {
			total += r.Disasters
		}
		summary.TotalDisasters = total
	}

	return summary, nil
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func argmin(values []float64) int {
	best := 0
	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}
	return best
}
