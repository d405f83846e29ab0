package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

func TestMerge(t *testing.T) {
	temps := []domain.TemperatureReading{
		{Year: 1980, Anomaly: 0.1},
		{Year: 1981, Anomaly: 0.2},
		{Year: 1982, Anomaly: 0.3},
	}
	co2 := []domain.CO2Reading{
		{Year: 1981, PPM: 340},
		{Year: 1982, PPM: 341},
		{Year: 1983, PPM: 342},
	}
	disasters := []domain.DisasterCount{
		{Year: 1979, Count: 90},
		{Year: 1981, Count: 100},
		{Year: 1982, Count: 110},
	}

	t.Run("three-way inner join keeps exactly the shared years", func(t *testing.T) {
		series, err := Merge(temps, co2, disasters)
		require.NoError(t, err)

		want := []domain.AnnualRecord{
			{Year: 1981, Anomaly: 0.2, PPM: 340, Disasters: 100},
			{Year: 1982, Anomaly: 0.3, PPM: 341, Disasters: 110},
		}
		if diff := cmp.Diff(want, series.Records); diff != "" {
			t.Errorf("merged records mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, series.HasDisasters)
		assert.Equal(t, domain.SourceCounts{TemperatureYears: 3, CO2Years: 3, DisasterYears: 3}, series.Sources)
	})

	t.Run("two-way join without disasters", func(t *testing.T) {
		series, err := Merge(temps, co2, nil)
		require.NoError(t, err)

		assert.False(t, series.HasDisasters)
		assert.Equal(t, []int{1981, 1982}, series.Years())
	})

	t.Run("no overlapping years", func(t *testing.T) {
		late := []domain.CO2Reading{{Year: 2000, PPM: 370}}
		_, err := Merge(temps, late, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoOverlap))
	})

	t.Run("requires both base datasets", func(t *testing.T) {
		_, err := Merge(nil, co2, nil)
		assert.Error(t, err)
	})
}
