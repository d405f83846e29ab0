package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-trends/internal/domain"
)

const disasterCSV = `Country,Indicator,1980,1981,1982
"All Countries and International Organizations","Climate related disasters frequency, Number of Disasters: TOTAL",100,120,
"All Countries and International Organizations","Climate related disasters frequency, Number of Disasters: Drought",10,12,14
Japan,"Climate related disasters frequency, Number of Disasters: TOTAL",3,,5
Japan,"Climate related disasters frequency, Number of Disasters: Flood",1,2,3
`

func TestReadDisasters(t *testing.T) {
	t.Run("global total by default", func(t *testing.T) {
		counts, dropped, err := readDisasters(strings.NewReader(disasterCSV), "", "")
		require.NoError(t, err)

		assert.Equal(t, []domain.DisasterCount{
			{Year: 1980, Count: 100},
			{Year: 1981, Count: 120},
		}, counts)
		assert.Equal(t, 1, dropped)
	})

	t.Run("empty year cells are skipped and counted, not zero", func(t *testing.T) {
		counts, dropped, err := readDisasters(strings.NewReader(disasterCSV), "Japan", "TOTAL")
		require.NoError(t, err)

		assert.Equal(t, []domain.DisasterCount{
			{Year: 1980, Count: 3},
			{Year: 1982, Count: 5},
		}, counts)
		assert.Equal(t, 1, dropped)
	})

	t.Run("country and type filter returns only matching rows", func(t *testing.T) {
		counts, dropped, err := readDisasters(strings.NewReader(disasterCSV), "Japan", "Flood")
		require.NoError(t, err)

		assert.Equal(t, []domain.DisasterCount{
			{Year: 1980, Count: 1},
			{Year: 1981, Count: 2},
			{Year: 1982, Count: 3},
		}, counts)
		assert.Zero(t, dropped)
	})

	t.Run("type input is case and hyphen insensitive", func(t *testing.T) {
		counts, _, err := readDisasters(strings.NewReader(disasterCSV), "global", "drought")
		require.NoError(t, err)
		require.Len(t, counts, 3)
		assert.Equal(t, 10, counts[0].Count)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, _, err := readDisasters(strings.NewReader(disasterCSV), "Atlantis", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownCountry))
		assert.Contains(t, err.Error(), "list-countries")
	})

	t.Run("unknown disaster type", func(t *testing.T) {
		_, _, err := readDisasters(strings.NewReader(disasterCSV), "Japan", "Earthquake")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownDisasterType))
		assert.Contains(t, err.Error(), "list-disaster-types")
	})

	t.Run("missing required column", func(t *testing.T) {
		_, _, err := readDisasters(strings.NewReader("Country,1980\nJapan,3\n"), "Japan", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Indicator")
	})
}

func TestCountriesAndDisasterTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disasters.csv")
	require.NoError(t, os.WriteFile(path, []byte(disasterCSV), 0o644))

	countries, err := Countries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{GlobalCountry, "Japan"}, countries)

	types, err := DisasterTypes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drought", "Flood", "TOTAL"}, types)
}
