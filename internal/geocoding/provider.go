package geocoding

import (
	"context"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the coordinates of the first candidate, or an error
// that Kind can classify.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
