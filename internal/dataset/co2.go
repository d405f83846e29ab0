package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// LoadCO2 reads a monthly globally averaged CO2 CSV (Date, Average) and
// reduces it to annual mean concentrations. NOAA marks missing months with
// -99.99; any non-positive value is treated as missing. The second return
// value is the number of monthly rows discarded.
func LoadCO2(path string) ([]domain.CO2Reading, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open co2 data: %w", err)
	}
	defer f.Close()
	return readCO2(f)
}

func readCO2(r io.Reader) ([]domain.CO2Reading, int, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(map[string]series.Type{
		"Date":    series.String,
		"Average": series.Float,
	}))
	if df.Err != nil {
		return nil, 0, fmt.Errorf("read co2 data: %w", df.Err)
	}
	if err := requireColumns(df, "Date", "Average"); err != nil {
		return nil, 0, fmt.Errorf("co2 data: %w", err)
	}

	dates := df.Col("Date").Records()
	averages := df.Col("Average").Float()

	sums := make(map[int]float64)
	counts := make(map[int]int)
	dropped := 0
	for i, d := range dates {
		t, err := time.Parse("2006-01", d)
		if err != nil {
			dropped++
			continue
		}
		if math.IsNaN(averages[i]) || averages[i] <= 0 {
			dropped++
			continue
		}
		y := t.Year()
		sums[y] += averages[i]
		counts[y]++
	}
	if len(sums) == 0 {
		return nil, dropped, errors.New("co2 data: no usable rows")
	}

	readings := make([]domain.CO2Reading, 0, len(sums))
	for y, sum := range sums {
		readings = append(readings, domain.CO2Reading{
			Year: y,
			PPM:  sum / float64(counts[y]),
		})
	}
	sort.Slice(readings, func(i, j int) bool { return readings[i].Year < readings[j].Year })
	return readings, dropped, nil
}
