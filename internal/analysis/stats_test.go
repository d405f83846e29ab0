package analysis_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/domain"
)

func testSeries() domain.AnnualSeries {
	return domain.AnnualSeries{
		HasDisasters: true,
		Records: []domain.AnnualRecord{
			{Year: 1988, Anomaly: 0.30, PPM: 351.0, Disasters: 100},
			{Year: 1989, Anomaly: 0.20, PPM: 352.0, Disasters: 90},
			{Year: 1990, Anomaly: 0.40, PPM: 354.0, Disasters: 120},
			{Year: 1991, Anomaly: 0.35, PPM: 355.0, Disasters: 110},
		},
	}
}

func TestDecadeAverages(t *testing.T) {
	stats := analysis.DecadeAverages(testSeries())

	want := []analysis.DecadeStat{
		{Decade: 1980, Anomaly: 0.25, PPM: 351.5, Disasters: 95},
		{Decade: 1990, Anomaly: 0.375, PPM: 354.5, Disasters: 115},
	}
	if diff := cmp.Diff(want, stats, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("decade averages mismatch (-want +got):\n%s", diff)
	}
}

func TestTrends(t *testing.T) {
	points := analysis.Trends(testSeries())
	require.Len(t, points, 4)

	assert.False(t, points[0].HasDelta)
	assert.True(t, points[1].HasDelta)
	assert.InDelta(t, -0.10, points[1].AnomalyDelta, 1e-9)
	assert.InDelta(t, 1.0, points[1].PPMDelta, 1e-9)
	assert.Equal(t, -10, points[1].DisastersDelta)
	assert.InDelta(t, 0.20, points[2].AnomalyDelta, 1e-9)
	assert.Equal(t, 30, points[2].DisastersDelta)
}

func TestSummarize(t *testing.T) {
	frozen := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	summary, err := analysis.Summarize(testSeries(), "Global")
	require.NoError(t, err)

	assert.Equal(t, "Global", summary.Region)
	assert.True(t, summary.HasDisasters)
	assert.Equal(t, 1990, summary.WarmestYear)
	assert.Equal(t, 1989, summary.CoolestYear)
	assert.Equal(t, 1991, summary.HighestCO2Year)
	assert.Equal(t, 1988, summary.LowestCO2Year)
	assert.Equal(t, 1990, summary.MostDisastersYear)
	assert.Equal(t, 1989, summary.FewestDisastersYear)
	assert.Equal(t, 420, summary.TotalDisasters)
	assert.InDelta(t, 105, summary.AvgDisastersPerYear, 1e-9)
	assert.Equal(t, frozen, summary.GeneratedAt)

	// Correlations are bounded and positive for these co-moving series.
	assert.Greater(t, summary.TempCO2Correlation, 0.0)
	assert.LessOrEqual(t, summary.TempCO2Correlation, 1.0)
}

func TestSummarize_PerfectCorrelation(t *testing.T) {
	s := domain.AnnualSeries{
		Records: []domain.AnnualRecord{
			{Year: 2000, Anomaly: 0.1, PPM: 370},
			{Year: 2001, Anomaly: 0.2, PPM: 372},
			{Year: 2002, Anomaly: 0.3, PPM: 374},
		},
	}
	summary, err := analysis.Summarize(s, "Global")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, summary.TempCO2Correlation, 1e-9)
	assert.False(t, summary.HasDisasters)
}

func TestSummarize_TooFewYears(t *testing.T) {
	s := domain.AnnualSeries{Records: []domain.AnnualRecord{{Year: 2000}}}
	_, err := analysis.Summarize(s, "Global")
	assert.Error(t, err)
}

func TestEngine_Analyze(t *testing.T) {
	engine := analysis.NewEngine("Global", slog.Default())
	rep, err := engine.Analyze(testSeries())
	require.NoError(t, err)

	assert.Equal(t, "Global", rep.Summary.Region)
	assert.Len(t, rep.Decades, 2)
	assert.Len(t, rep.Trends, 4)
}
