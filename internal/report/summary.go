package report

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/predict"
)

// targetYears are the milestone years called out in the summary when they fall
// inside the forecast horizon.
var targetYears = []int{2030, 2040, 2050}

// FormatSummary renders the run summary as plain text. The same text is
// written to summary.txt and printed to stdout.
func FormatSummary(rep analysis.Report, fc *predict.Forecast) string {
	s := rep.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "Climate Trends Summary - %s\n", s.Region)
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "Temperature-CO2 Correlation: %.3f\n", s.TempCO2Correlation)
	fmt.Fprintf(&b, "Warmest Year: %d\n", s.WarmestYear)
	fmt.Fprintf(&b, "Coolest Year: %d\n", s.CoolestYear)
	fmt.Fprintf(&b, "Highest CO2 Year: %d\n", s.HighestCO2Year)
	fmt.Fprintf(&b, "Lowest CO2 Year: %d\n", s.LowestCO2Year)

	if s.HasDisasters {
		fmt.Fprintf(&b, "\nTemperature-Disaster Correlation: %.3f\n", s.TempDisasterCorrelation)
		fmt.Fprintf(&b, "CO2-Disaster Correlation: %.3f\n", s.CO2DisasterCorrelation)
		fmt.Fprintf(&b, "Most Disasters Year: %d\n", s.MostDisastersYear)
		fmt.Fprintf(&b, "Fewest Disasters Year: %d\n", s.FewestDisastersYear)
		fmt.Fprintf(&b, "Average Disasters per Year: %.1f\n", s.AvgDisastersPerYear)
		fmt.Fprintf(&b, "Total Disasters: %d\n", s.TotalDisasters)
	}

	if len(rep.Decades) > 0 {
		fmt.Fprintf(&b, "\nDecadal Averages:\n")
		for _, d := range rep.Decades {
			fmt.Fprintf(&b, "  %ds: anomaly %+.3f °C, CO2 %.1f ppm", d.Decade, d.Anomaly, d.PPM)
			if s.HasDisasters {
				fmt.Fprintf(&b, ", %.1f disasters/yr", d.Disasters)
			}
			fmt.Fprintln(&b)
		}
	}

	if fc != nil {
		fmt.Fprintf(&b, "\nModel Fit:\n")
		fmt.Fprintf(&b, "  Temperature R²: %.3f\n", fc.TempModel.R2)
		fmt.Fprintf(&b, "  CO2 R² (log space): %.3f\n", fc.CO2Model.R2)
		if fc.HasDisasters {
			fmt.Fprintf(&b, "  Disasters R²: %.3f\n", fc.DisasterModel.R2)
		}

		for _, year := range targetYears {
			p, ok := fc.At(year)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "\nProjection for %d:\n", year)
			fmt.Fprintf(&b, "  Temperature Anomaly: %+.2f °C\n", p.Temperature)
			fmt.Fprintf(&b, "  CO2 Level: %.1f ppm\n", p.CO2)
			if fc.HasDisasters {
				fmt.Fprintf(&b, "  Disasters: %.0f\n", p.Disasters)
			}
		}
	}

	return b.String()
}
