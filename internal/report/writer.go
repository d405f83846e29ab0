// Package report writes the derived tables and the human-readable run summary
// to the output directory.
package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/climate-trends/internal/analysis"
	"github.com/couchcryptid/climate-trends/internal/domain"
	"github.com/couchcryptid/climate-trends/internal/predict"
)

// Output file names within the output directory.
const (
	FileMerged   = "merged.csv"
	FileTrends   = "trends.csv"
	FileDecades  = "decade_averages.csv"
	FileForecast = "forecast.csv"
	FileSummary  = "summary.txt"
)

// Writer persists the derived tables. It implements the pipeline's
// ReportWriter stage.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write emits merged.csv, trends.csv, decade_averages.csv, summary.txt, and,
// when a forecast is present, forecast.csv. It returns the written paths.
func (w *Writer) Write(dir string, s domain.AnnualSeries, rep analysis.Report, fc *predict.Forecast) ([]string, error) {
	var written []string

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{FileMerged, func(p string) error { return writeMerged(p, s) }},
		{FileTrends, func(p string) error { return writeTrends(p, rep.Trends, s.HasDisasters) }},
		{FileDecades, func(p string) error { return writeDecades(p, rep.Decades, s.HasDisasters) }},
		{FileSummary, func(p string) error { return writeSummary(p, rep, fc) }},
	}
	if fc != nil {
		steps = append(steps, struct {
			name  string
			write func(path string) error
		}{FileForecast, func(p string) error { return writeForecast(p, *fc) }})
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.name)
		if err := step.write(path); err != nil {
			return written, fmt.Errorf("write %s: %w", step.name, err)
		}
		w.logger.Info("report written", "path", path)
		written = append(written, path)
	}
	return written, nil
}

// writeMerged dumps the merged series through a dataframe so the column set
// matches what the join produced.
func writeMerged(path string, s domain.AnnualSeries) error {
	df := dataframe.LoadStructs(s.Records)
	if df.Err != nil {
		return df.Err
	}
	if !s.HasDisasters {
		df = df.Select([]string{"Year", "Anomaly", "PPM"})
		if df.Err != nil {
			return df.Err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTrends(path string, trends []analysis.TrendPoint, hasDisasters bool) error {
	header := []string{"Year", "Temperature_Anomaly", "CO2_Level"}
	if hasDisasters {
		header = append(header, "Disasters")
	}
	header = append(header, "Temp_Change", "CO2_Change")
	if hasDisasters {
		header = append(header, "Disaster_Change")
	}

	rows := make([][]string, 0, len(trends))
	for _, t := range trends {
		row := []string{strconv.Itoa(t.Year), formatFloat(t.Anomaly), formatFloat(t.PPM)}
		if hasDisasters {
			row = append(row, strconv.Itoa(t.Disasters))
		}
		if t.HasDelta {
			row = append(row, formatFloat(t.AnomalyDelta), formatFloat(t.PPMDelta))
			if hasDisasters {
				row = append(row, strconv.Itoa(t.DisastersDelta))
			}
		} else {
			row = append(row, "", "")
			if hasDisasters {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

func writeDecades(path string, decades []analysis.DecadeStat, hasDisasters bool) error {
	header := []string{"Decade", "Temperature_Anomaly", "CO2_Level"}
	if hasDisasters {
		header = append(header, "Disasters")
	}

	rows := make([][]string, 0, len(decades))
	for _, d := range decades {
		row := []string{strconv.Itoa(d.Decade), formatFloat(d.Anomaly), formatFloat(d.PPM)}
		if hasDisasters {
			row = append(row, formatFloat(d.Disasters))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

func writeForecast(path string, fc predict.Forecast) error {
	header := []string{"Year", "Temperature_Anomaly", "CO2_Level"}
	if fc.HasDisasters {
		header = append(header, "Disasters")
	}

	rows := make([][]string, 0, len(fc.Years))
	for i, year := range fc.Years {
		row := []string{strconv.Itoa(year), formatFloat(fc.Temperature[i]), formatFloat(fc.CO2[i])}
		if fc.HasDisasters {
			row = append(row, formatFloat(fc.Disasters[i]))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

func writeSummary(path string, rep analysis.Report, fc *predict.Forecast) error {
	return os.WriteFile(path, []byte(FormatSummary(rep, fc)), 0o644)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
