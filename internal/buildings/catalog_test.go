package buildings_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/buildings"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,architect,year,description,imageUrl,address,latitude,longitude
Obihiro Centennial Hall,Kenzo Tange,1982,Civic hall,https://example.com/hall.jpg,北海道帯広市西2条南14-3-1,42.9199,143.1966
Tokyo Cathedral,Kenzo Tange,1964,Cathedral,https://example.com/cathedral.jpg,東京都文京区関口3-16-15,35.7140,139.7277
Sendai Mediatheque,Toyo Ito,2001,Library,,宮城県仙台市青葉区春日町2-1,,
`

func TestLoad(t *testing.T) {
	t.Run("parses all columns", func(t *testing.T) {
		catalog, err := buildings.Load(strings.NewReader(sampleCSV))

		require.NoError(t, err)
		require.Equal(t, 3, catalog.Len())

		all := catalog.Filter(buildings.Filters{})
		assert.Equal(t, buildings.Building{
			Name:        "Obihiro Centennial Hall",
			Architect:   "Kenzo Tange",
			Year:        1982,
			Description: "Civic hall",
			ImageURL:    "https://example.com/hall.jpg",
			Address:     "北海道帯広市西2条南14-3-1",
			Location:    &models.Coordinates{Latitude: 42.9199, Longitude: 143.1966},
		}, all[0])
		assert.Nil(t, all[2].Location, "row without coordinates keeps a nil location")
	})

	t.Run("columns in any order and blank rows skipped", func(t *testing.T) {
		input := "year,name,architect\n1964,Yoyogi Gymnasium,Kenzo Tange\n,,\n"

		catalog, err := buildings.Load(strings.NewReader(input))

		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())
		assert.Equal(t, 1964, catalog.Filter(buildings.Filters{})[0].Year)
	})

	t.Run("missing name column", func(t *testing.T) {
		_, err := buildings.Load(strings.NewReader("architect,year\nKenzo Tange,1964\n"))

		require.ErrorIs(t, err, buildings.ErrMissingColumn)
	})

	t.Run("invalid year reports the line", func(t *testing.T) {
		_, err := buildings.Load(strings.NewReader("name,year\nA,1964\nB,sixties\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), `line 3: invalid year "sixties"`)
	})

	t.Run("half a coordinate pair is rejected", func(t *testing.T) {
		_, err := buildings.Load(strings.NewReader("name,latitude,longitude\nA,42.9,\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("out of range coordinates are rejected", func(t *testing.T) {
		_, err := buildings.Load(strings.NewReader("name,latitude,longitude\nA,142.9,143.1\n"))

		require.ErrorIs(t, err, models.ErrCoordinatesOutOfRange)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := buildings.Load(strings.NewReader(""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read header")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	catalog, err := buildings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())

	_, err = buildings.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog_Filter(t *testing.T) {
	catalog, err := buildings.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	names := func(list []buildings.Building) []string {
		out := make([]string, 0, len(list))
		for _, b := range list {
			out = append(out, b.Name)
		}
		return out
	}

	tests := []struct {
		name    string
		filters buildings.Filters
		want    []string
	}{
		{
			name: "no filters",
			want: []string{"Obihiro Centennial Hall", "Tokyo Cathedral", "Sendai Mediatheque"},
		},
		{
			name:    "architect exact match",
			filters: buildings.Filters{Architect: "Kenzo Tange"},
			want:    []string{"Obihiro Centennial Hall", "Tokyo Cathedral"},
		},
		{
			name:    "architect is case sensitive",
			filters: buildings.Filters{Architect: "kenzo tange"},
			want:    []string{},
		},
		{
			name:    "inclusive year range",
			filters: buildings.Filters{YearFrom: 1964, YearTo: 1982},
			want:    []string{"Obihiro Centennial Hall", "Tokyo Cathedral"},
		},
		{
			name:    "year from only",
			filters: buildings.Filters{YearFrom: 1990},
			want:    []string{"Sendai Mediatheque"},
		},
		{
			name:    "combined",
			filters: buildings.Filters{Architect: "Kenzo Tange", YearTo: 1970},
			want:    []string{"Tokyo Cathedral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(catalog.Filter(tt.filters)))
		})
	}
}

func TestCatalog_Architects(t *testing.T) {
	catalog, err := buildings.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Kenzo Tange", "Toyo Ito"}, catalog.Architects())
}
