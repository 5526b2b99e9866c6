package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"googlemaps.github.io/maps"
)

const providerGoogleMaps = "googlemaps"

// mapsStatusPrefix prefixes the errors the maps client builds from a non-OK API status.
const mapsStatusPrefix = "maps: "

// GoogleMapsProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It performs the same lookup as
// GoogleProvider through the official client library.
type GoogleMapsProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleMapsProvider wraps an initialised Google Maps client.
func NewGoogleMapsProvider(client GoogleAPIClient, log *slog.Logger) *GoogleMapsProvider {
	return &GoogleMapsProvider{client: client, log: log}
}

// Geocode takes a context and an address string as input, and returns the geographical coordinates
// of the first candidate using the Google Maps Geocoding API.
// Client errors are translated into TransportError, ServiceError or MalformedResponseError.
func (gp *GoogleMapsProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps client", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, classifyMapsError(err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNoResult
	}
	coords := geocodeResponse[0].Geometry.Location
	if coords == (maps.LatLng{}) {
		return nil, &MalformedResponseError{Provider: providerGoogleMaps, Reason: "first result has no geometry.location"}
	}

	return &models.Coordinates{Latitude: coords.Lat, Longitude: coords.Lng}, nil
}

func classifyMapsError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &MalformedResponseError{Provider: providerGoogleMaps, Reason: "failed to decode google maps response", Err: err}
	case strings.HasPrefix(err.Error(), mapsStatusPrefix):
		status, message, _ := strings.Cut(strings.TrimPrefix(err.Error(), mapsStatusPrefix), " - ")
		return &ServiceError{Provider: providerGoogleMaps, Status: status, Message: message}
	default:
		return &TransportError{Provider: providerGoogleMaps, Err: err}
	}
}
