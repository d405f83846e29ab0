package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

// GlobalCountry is the IMF aggregate row covering the whole world.
const GlobalCountry = "All Countries and International Organizations"

// LoadDisasters reads the IMF climate-related disasters CSV and returns the
// annual event counts for one country and disaster type. The file is wide
// format: one row per (Country, Indicator) pair with a column per year.
// An empty country or "Global" selects the worldwide aggregate row; an empty
// disasterType selects the TOTAL indicator. The second return value is the
// number of year cells discarded as empty or unparsable.
func LoadDisasters(path, country, disasterType string) ([]domain.DisasterCount, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open disaster data: %w", err)
	}
	defer f.Close()
	return readDisasters(f, country, disasterType)
}

func readDisasters(r io.Reader, country, disasterType string) ([]domain.DisasterCount, int, error) {
	df, err := readDisasterFrame(r)
	if err != nil {
		return nil, 0, err
	}

	selected := resolveCountry(country)
	sub := df.Filter(dataframe.F{Colname: "Country", Comparator: series.Eq, Comparando: selected})
	if sub.Err != nil {
		return nil, 0, fmt.Errorf("filter disaster data: %w", sub.Err)
	}
	if sub.Nrow() == 0 {
		return nil, 0, fmt.Errorf("%w: %q (use -list-countries to see available values)", ErrUnknownCountry, country)
	}

	wanted := normalizeDisasterType(disasterType)
	names := sub.Names()
	indicatorIdx := -1
	type yearColumn struct {
		idx  int
		year int
	}
	var yearCols []yearColumn
	for i, name := range names {
		if name == "Indicator" {
			indicatorIdx = i
		}
		if y, err := strconv.Atoi(name); err == nil {
			yearCols = append(yearCols, yearColumn{idx: i, year: y})
		}
	}
	if len(yearCols) == 0 {
		return nil, 0, errors.New("disaster data: no year columns found")
	}

	counts := make(map[int]int)
	matched := false
	dropped := 0
	records := sub.Records()
	for _, row := range records[1:] {
		if indicatorSuffix(row[indicatorIdx]) != wanted {
			continue
		}
		matched = true
		for _, yc := range yearCols {
			cell := strings.TrimSpace(row[yc.idx])
			if cell == "" {
				dropped++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				dropped++
				continue
			}
			counts[yc.year] += int(v)
		}
	}
	if !matched {
		return nil, 0, fmt.Errorf("%w: %q (use -list-disaster-types to see available values)", ErrUnknownDisasterType, disasterType)
	}
	if len(counts) == 0 {
		return nil, dropped, errors.New("disaster data: no usable rows")
	}

	out := make([]domain.DisasterCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, domain.DisasterCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, dropped, nil
}

// Countries returns the sorted list of country names present in the disaster CSV.
func Countries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open disaster data: %w", err)
	}
	defer f.Close()

	df, err := readDisasterFrame(f)
	if err != nil {
		return nil, err
	}
	return uniqueSorted(df.Col("Country").Records()), nil
}

// DisasterTypes returns the sorted list of indicator type suffixes present in
// the disaster CSV, e.g. "Drought", "Flood", "TOTAL".
func DisasterTypes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open disaster data: %w", err)
	}
	defer f.Close()

	df, err := readDisasterFrame(f)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for _, indicator := range df.Col("Indicator").Records() {
		if i := strings.LastIndex(indicator, ":"); i >= 0 {
			display := strings.TrimSpace(indicator[i+1:])
			seen[strings.ToLower(display)] = display
		}
	}
	types := make([]string, 0, len(seen))
	for _, display := range seen {
		types = append(types, display)
	}
	sort.Strings(types)
	return types, nil
}

// readDisasterFrame loads the wide CSV with every column as a string. Year
// columns are parsed by hand so empty cells stay distinguishable from zeros.
func readDisasterFrame(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Err != nil {
		return df, fmt.Errorf("read disaster data: %w", df.Err)
	}
	if err := requireColumns(df, "Country", "Indicator"); err != nil {
		return df, fmt.Errorf("disaster data: %w", err)
	}
	return df, nil
}

func resolveCountry(country string) string {
	if country == "" || strings.EqualFold(country, "global") {
		return GlobalCountry
	}
	return country
}

// normalizeDisasterType maps user input like "extreme-temperature" or "TOTAL"
// onto the lowercase indicator suffix form.
func normalizeDisasterType(t string) string {
	t = strings.TrimSpace(strings.ToLower(t))
	if t == "" {
		return "total"
	}
	return strings.ReplaceAll(t, "-", " ")
}

// indicatorSuffix extracts the disaster type from an IMF indicator string,
// e.g. "Climate related disasters frequency, Number of Disasters: Drought" -> "drought".
func indicatorSuffix(indicator string) string {
	if i := strings.LastIndex(indicator, ":"); i >= 0 {
		indicator = indicator[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(indicator))
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
