package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

func TestReadTemperatures(t *testing.T) {
	t.Run("averages multiple sources per year", func(t *testing.T) {
		csv := "Source,Year,Mean\nGCAG,2016,0.90\nGISTEMP,2016,1.00\nGCAG,2015,0.80\n"
		readings, dropped, err := readTemperatures(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Zero(t, dropped)
		require.Len(t, readings, 2)
		assert.Equal(t, domain.TemperatureReading{Year: 2015, Anomaly: 0.80}, readings[0])
		assert.Equal(t, 2016, readings[1].Year)
		assert.InDelta(t, 0.95, readings[1].Anomaly, 1e-9)
	})

	t.Run("drops rows with missing values and counts them", func(t *testing.T) {
		csv := "Source,Year,Mean\nGCAG,2016,0.90\nGCAG,,0.50\nGCAG,2015,\n"
		readings, dropped, err := readTemperatures(strings.NewReader(csv))
		require.NoError(t, err)

		require.Len(t, readings, 1)
		assert.Equal(t, 2016, readings[0].Year)
		assert.Equal(t, 2, dropped)
	})

	t.Run("sorted ascending by year", func(t *testing.T) {
		csv := "Source,Year,Mean\nGCAG,2016,0.9\nGCAG,1990,0.2\nGCAG,2001,0.5\n"
		readings, _, err := readTemperatures(strings.NewReader(csv))
		require.NoError(t, err)

		years := make([]int, len(readings))
		for i, r := range readings {
			years[i] = r.Year
		}
		assert.Equal(t, []int{1990, 2001, 2016}, years)
	})

	t.Run("missing required column", func(t *testing.T) {
		csv := "Source,Year\nGCAG,2016\n"
		_, _, err := readTemperatures(strings.NewReader(csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mean")
	})

	t.Run("no usable rows", func(t *testing.T) {
		csv := "Source,Year,Mean\nGCAG,,\n"
		_, _, err := readTemperatures(strings.NewReader(csv))
		assert.Error(t, err)
	})
}

func TestLoadTemperatures_MissingFile(t *testing.T) {
	_, _, err := LoadTemperatures("does/not/exist.csv")
	assert.Error(t, err)
}
