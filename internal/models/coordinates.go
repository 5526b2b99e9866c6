package models

import (
	"errors"
	"fmt"
	"math"
)

const (
	maxLatitude  = 90
	maxLongitude = 180
)

// ErrCoordinatesOutOfRange is returned when a point lies outside the geographic ranges.
var ErrCoordinatesOutOfRange = errors.New("coordinates out of range")

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Validate reports whether the latitude is within [-90, 90] and the longitude within [-180, 180].
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -maxLatitude || c.Latitude > maxLatitude {
		return fmt.Errorf("%w: latitude %v", ErrCoordinatesOutOfRange, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -maxLongitude || c.Longitude > maxLongitude {
		return fmt.Errorf("%w: longitude %v", ErrCoordinatesOutOfRange, c.Longitude)
	}

	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("latitude: %v, longitude: %v", c.Latitude, c.Longitude)
}
