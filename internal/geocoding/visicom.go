package geocoding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"golang.org/x/time/rate"
)

// VisicomBaseURL -- Visicom API base URL.
const VisicomBaseURL = "https://api.visicom.ua/data-api/5.0/uk/geocode.json"

// DefaultVisicomRateLimit applies when no rate limit is configured for Visicom.
const DefaultVisicomRateLimit = 5

const providerVisicom = "visicom"

// VisicomProvider implements geocoding using Visicom API.
type VisicomProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Visicom API
	apiKey  string        // API key with geocoding access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Visicom API response (simplified for geocoding use-case).
type visicomResponse struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geo_centroid"`
}

// NewVisicomProvider creates a Visicom provider. An empty baseURL selects VisicomBaseURL
// and a nil limiter allows DefaultVisicomRateLimit requests per second.
func NewVisicomProvider(
	client HTTPClient,
	baseURL string,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *VisicomProvider {
	if baseURL == "" {
		baseURL = VisicomBaseURL
	}

	if limiter == nil {
		limiter = rate.NewLimiter(DefaultVisicomRateLimit, DefaultVisicomRateLimit)
	}

	return &VisicomProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts address into geographic coordinates using Visicom API.
// It waits for the local limiter before sending the request.
func (vp *VisicomProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	const coordsListLength = 2

	if err := vp.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Provider: providerVisicom, Err: err}
	}

	vp.log.DebugContext(ctx, "Geocoding using Visicom", "address", address)

	req, err := newGetRequest(ctx, vp.baseURL, url.Values{
		"text":  {address},
		"limit": {"1"},
		"key":   {vp.apiKey},
	})
	if err != nil {
		return nil, err
	}

	body, err := fetch(ctx, vp.client, vp.log, providerVisicom, req)
	if err != nil {
		return nil, err
	}

	var result visicomResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, &MalformedResponseError{Provider: providerVisicom, Reason: "failed to decode visicom response", Err: err}
	}

	coords := result.Geometry.Coordinates
	if len(coords) == 0 {
		return nil, ErrNoResult
	}

	if len(coords) != coordsListLength {
		return nil, &MalformedResponseError{Provider: providerVisicom, Reason: "geo_centroid must hold [lon, lat]"}
	}

	return &models.Coordinates{Latitude: coords[1], Longitude: coords[0]}, nil
}
