package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Geocoding JSON endpoint called directly.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeGoogleMaps represents Google Geocoding through the official maps client.
	ProviderTypeGoogleMaps ProviderType = "googlemaps"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeVisicom represents Visicom Maps geocoding provider.
	ProviderTypeVisicom ProviderType = "visicom"
)

// ErrMissingAPIKey is returned when a provider that needs a credential gets none.
var ErrMissingAPIKey = errors.New("API key is required")

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key (google, googlemaps, visicom)
	BaseURL   string        // Endpoint override; empty selects the public endpoint
	RateLimit int           // Requests per second enforced locally (googlemaps, visicom)
	Timeout   time.Duration // Per-request HTTP timeout; zero selects DefaultTimeout
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from business logic.
//
// Supported provider types:
// - "google": Google Geocoding JSON endpoint (requires API key)
// - "googlemaps": Google Geocoding via googlemaps.github.io/maps (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "visicom": Visicom Data API (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeGoogleMaps:
		return newGoogleMapsProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	case ProviderTypeVisicom:
		return newVisicomProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w for Google provider", ErrMissingAPIKey)
	}

	return NewGoogleProvider(newHTTPClient(config.Timeout), config.BaseURL, config.APIKey, config.Logger), nil
}

func newGoogleMapsProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w for Google Maps provider", ErrMissingAPIKey)
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithHTTPClient(newHTTPClient(config.Timeout)),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	if config.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(config.BaseURL))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleMapsProvider(client, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) (Provider, error) {
	return NewNominatimProvider(newHTTPClient(config.Timeout), config.BaseURL, config.Logger), nil
}

func newVisicomProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w for Visicom provider", ErrMissingAPIKey)
	}

	if config.RateLimit <= 0 {
		config.RateLimit = DefaultVisicomRateLimit
		config.Logger.Warn("Rate limit for Visicom API not set, set a default value", "value", config.RateLimit)
	}

	limiter := rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimit)

	return NewVisicomProvider(
		newHTTPClient(config.Timeout), config.BaseURL, config.APIKey, limiter, config.Logger,
	), nil
}
