package geocoding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// GoogleGeocodeURL is the JSON endpoint of the Google Geocoding API.
const GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

const providerGoogle = "google"

// Google statuses that still count as a successful exchange.
const (
	googleStatusOK          = "OK"
	googleStatusZeroResults = "ZERO_RESULTS"
)

// GoogleProvider talks to the Google Geocoding JSON endpoint directly:
// one GET with the address and the key, first candidate wins.
type GoogleProvider struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	log     *slog.Logger
}

type googleResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []googleResult `json:"results"`
}

type googleResult struct {
	Geometry struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// NewGoogleProvider creates a provider for the public Google endpoint.
// An empty baseURL selects GoogleGeocodeURL.
func NewGoogleProvider(client HTTPClient, baseURL, apiKey string, log *slog.Logger) *GoogleProvider {
	if baseURL == "" {
		baseURL = GoogleGeocodeURL
	}

	return &GoogleProvider{client: client, baseURL: baseURL, apiKey: apiKey, log: log}
}

// Geocode resolves address to the location of the first result candidate.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google", "address", address)

	req, err := newGetRequest(ctx, gp.baseURL, url.Values{
		"address": {address},
		"key":     {gp.apiKey},
	})
	if err != nil {
		return nil, err
	}

	body, err := fetch(ctx, gp.client, gp.log, providerGoogle, req)
	if err != nil {
		return nil, err
	}

	var resp googleResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Provider: providerGoogle, Reason: "failed to decode google response", Err: err}
	}

	switch resp.Status {
	case "", googleStatusOK, googleStatusZeroResults:
	default:
		return nil, &ServiceError{
			Provider:   providerGoogle,
			StatusCode: http.StatusOK,
			Status:     resp.Status,
			Message:    resp.ErrorMessage,
		}
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoResult
	}

	location := resp.Results[0].Geometry.Location
	if location == nil || location.Lat == nil || location.Lng == nil {
		return nil, &MalformedResponseError{Provider: providerGoogle, Reason: "first result has no geometry.location lat/lng"}
	}

	return &models.Coordinates{Latitude: *location.Lat, Longitude: *location.Lng}, nil
}
