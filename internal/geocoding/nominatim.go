package geocoding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimUserAgent identifies pinpoint to Nominatim.
// The usage policy requires a valid application identifier:
// https://operations.osmfoundation.org/policies/nominatim/
const NominatimUserAgent = "pinpoint/1.0 (https://github.com/UnknownOlympus/pinpoint)"

const providerNominatim = "nominatim"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client    HTTPClient   // HTTP client for making requests
	baseURL   string       // Base URL for the Nominatim API
	userAgent string       // userAgent is required by Nominatim usage policy
	log       *slog.Logger // Logger for logging operations
}

// nominatimResponse represents one element of the JSON array returned by Nominatim.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// NewNominatimProvider creates a Nominatim provider. An empty baseURL selects NominatimBaseURL.
func NewNominatimProvider(client HTTPClient, baseURL string, log *slog.Logger) *NominatimProvider {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}

	return &NominatimProvider{
		client:    client,
		baseURL:   baseURL,
		userAgent: NominatimUserAgent,
		log:       log,
	}
}

// Geocode converts an address to geographic coordinates using the Nominatim API.
// Only the top result is requested.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	req, err := newGetRequest(ctx, np.baseURL, url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	})
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", np.userAgent)

	body, err := fetch(ctx, np.client, np.log, providerNominatim, req)
	if err != nil {
		return nil, err
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, &MalformedResponseError{Provider: providerNominatim, Reason: "failed to decode nominatim response", Err: err}
	}

	if len(results) == 0 {
		return nil, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, &MalformedResponseError{Provider: providerNominatim, Reason: "invalid latitude " + strconv.Quote(results[0].Lat), Err: err}
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, &MalformedResponseError{Provider: providerNominatim, Reason: "invalid longitude " + strconv.Quote(results[0].Lon), Err: err}
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
