package buildings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// Column names of the catalog CSV header. Column order is free.
const (
	columnName        = "name"
	columnArchitect   = "architect"
	columnYear        = "year"
	columnDescription = "description"
	columnImageURL    = "imageUrl"
	columnAddress     = "address"
	columnLatitude    = "latitude"
	columnLongitude   = "longitude"
)

// ErrMissingColumn is returned when the CSV header lacks the name column.
var ErrMissingColumn = errors.New("catalog header is missing a required column")

// Building is one catalog entry. Location is nil when the CSV row carries no coordinates.
type Building struct {
	Name        string              `json:"name"`
	Architect   string              `json:"architect"`
	Year        int                 `json:"year"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	Address     string              `json:"address"`
	Location    *models.Coordinates `json:"location,omitempty"`
}

// Filters narrows a catalog listing. Zero values disable a filter;
// the year bounds are inclusive.
type Filters struct {
	Architect string
	YearFrom  int
	YearTo    int
}

// Catalog is an immutable list of buildings, safe for concurrent reads.
type Catalog struct {
	buildings []Building
}

// LoadFile reads a catalog from the CSV file at path.
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Load reads a header-first CSV catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow short rows, missing cells read as empty
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}
	if _, ok := columns[columnName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnName)
	}

	var buildings []Building
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		cell := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if cell(columnName) == "" {
			continue
		}

		building, err := parseBuilding(cell)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		buildings = append(buildings, building)
	}

	return &Catalog{buildings: buildings}, nil
}

func parseBuilding(cell func(string) string) (Building, error) {
	building := Building{
		Name:        cell(columnName),
		Architect:   cell(columnArchitect),
		Description: cell(columnDescription),
		ImageURL:    cell(columnImageURL),
		Address:     cell(columnAddress),
	}

	if year := cell(columnYear); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			return Building{}, fmt.Errorf("invalid year %q", year)
		}
		building.Year = parsed
	}

	lat, lng := cell(columnLatitude), cell(columnLongitude)
	if lat == "" && lng == "" {
		return building, nil
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Building{}, fmt.Errorf("invalid latitude %q", lat)
	}
	longitude, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Building{}, fmt.Errorf("invalid longitude %q", lng)
	}

	location := models.Coordinates{Latitude: latitude, Longitude: longitude}
	if err = location.Validate(); err != nil {
		return Building{}, err
	}
	building.Location = &location

	return building, nil
}

// Len returns the number of buildings in the catalog.
func (c *Catalog) Len() int {
	return len(c.buildings)
}

// Filter returns the buildings matching f in catalog order.
func (c *Catalog) Filter(f Filters) []Building {
	matched := make([]Building, 0, len(c.buildings))
	for _, building := range c.buildings {
		if f.Architect != "" && building.Architect != f.Architect {
			continue
		}
		if f.YearFrom != 0 && building.Year < f.YearFrom {
			continue
		}
		if f.YearTo != 0 && building.Year > f.YearTo {
			continue
		}
		matched = append(matched, building)
	}

	return matched
}

// Architects returns the distinct architect names, sorted.
func (c *Catalog) Architects() []string {
	architects := make([]string, 0, len(c.buildings))
	for _, building := range c.buildings {
		if building.Architect != "" {
			architects = append(architects, building.Architect)
		}
	}
	slices.Sort(architects)

	return slices.Compact(architects)
}
