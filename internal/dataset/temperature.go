package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// LoadTemperatures reads an annual temperature anomaly CSV (Source, Year, Mean).
// Rows with a missing Year or Mean are dropped, and multiple sources reporting
// the same year are averaged to a single reading. The second return value is
// the number of rows discarded.
func LoadTemperatures(path string) ([]domain.TemperatureReading, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open temperature data: %w", err)
	}
	defer f.Close()
	return readTemperatures(f)
}

func readTemperatures(r io.Reader) ([]domain.TemperatureReading, int, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(map[string]series.Type{
		"Source": series.String,
		"Year":   series.Int,
		"Mean":   series.Float,
	}))
	if df.Err != nil {
		return nil, 0, fmt.Errorf("read temperature data: %w", df.Err)
	}
	if err := requireColumns(df, "Year", "Mean"); err != nil {
		return nil, 0, fmt.Errorf("temperature data: %w", err)
	}

	years := df.Col("Year").Float()
	means := df.Col("Mean").Float()

	sums := make(map[int]float64)
	counts := make(map[int]int)
	dropped := 0
	for i := range years {
		if math.IsNaN(years[i]) || math.IsNaN(means[i]) {
			dropped++
			continue
		}
		y := int(years[i])
		sums[y] += means[i]
		counts[y]++
	}
	if len(sums) == 0 {
		return nil, dropped, errors.New("temperature data: no usable rows")
	}

	readings := make([]domain.TemperatureReading, 0, len(sums))
	for y, sum := range sums {
		readings = append(readings, domain.TemperatureReading{
			Year:    y,
			Anomaly: sum / float64(counts[y]),
		})
	}
	sort.Slice(readings, func(i, j int) bool { return readings[i].Year < readings[j].Year })
	return readings, dropped, nil
}
