// Package dataset loads the raw climate CSVs into typed records and merges
// them into a year-aligned series. See the domain package docs for the
// upstream file conventions.
package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// requireColumns verifies that the frame contains every named column.
func requireColumns(df dataframe.DataFrame, cols ...string) error {
	have := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, c := range cols {
		if !have[c] {
			return fmt.Errorf("missing required column %q", c)
		}
	}
	return nil
}
