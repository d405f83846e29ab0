package dataset

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// Merge inner-joins the loaded datasets on year. The result contains exactly
// the years present in every input, ascending. Pass nil disasters for the
// two-dataset variant. An empty intersection is an error.
func Merge(temps []domain.TemperatureReading, co2 []domain.CO2Reading, disasters []domain.DisasterCount) (domain.AnnualSeries, error) {
	if len(temps) == 0 || len(co2) == 0 {
		return domain.AnnualSeries{}, errors.New("temperature and co2 data must be loaded before merging")
	}

	merged := dataframe.LoadStructs(temps).InnerJoin(dataframe.LoadStructs(co2), "Year")
	hasDisasters := disasters != nil
	if hasDisasters {
		merged = merged.InnerJoin(dataframe.LoadStructs(disasters), "Year")
	}
	if merged.Err != nil {
		return domain.AnnualSeries{}, fmt.Errorf("merge datasets: %w", merged.Err)
	}

	merged = merged.Arrange(dataframe.Sort("Year"))
	if merged.Err != nil {
		return domain.AnnualSeries{}, fmt.Errorf("sort merged data: %w", merged.Err)
	}
	if merged.Nrow() == 0 {
		return domain.AnnualSeries{}, ErrNoOverlap
	}

	years := merged.Col("Year").Float()
	anomalies := merged.Col("Anomaly").Float()
	ppm := merged.Col("PPM").Float()
	var counts []float64
	if hasDisasters {
		counts = merged.Col("Count").Float()
	}

	records := make([]domain.AnnualRecord, merged.Nrow())
	for i := range records {
		records[i] = domain.AnnualRecord{
			Year:    int(years[i]),
			Anomaly: anomalies[i],
			PPM:     ppm[i],
		}
		if hasDisasters {
			records[i].Disasters = int(counts[i])
		}
	}

	return domain.AnnualSeries{
		Records:      records,
		HasDisasters: hasDisasters,
		Sources: domain.SourceCounts{
			TemperatureYears: len(temps),
			CO2Years:         len(co2),
			DisasterYears:    len(disasters),
		},
	}, nil
}
