package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create Google provider successfully", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := provider.(*geocoding.GoogleProvider)
		assert.True(t, ok, "expected provider to be *GoogleProvider")
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			Logger: logger,
		})

		require.ErrorIs(t, err, geocoding.ErrMissingAPIKey)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("create Google Maps provider with rate limit and base URL", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogleMaps,
			APIKey:    "test-api-key",
			BaseURL:   "http://localhost:8081",
			RateLimit: 50,
			Logger:    logger,
		})

		require.NoError(t, err)
		_, ok := provider.(*geocoding.GoogleMapsProvider)
		assert.True(t, ok, "expected provider to be *GoogleMapsProvider")
	})

	t.Run("create Google Maps provider without API key fails", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogleMaps,
			Logger: logger,
		})

		require.ErrorIs(t, err, geocoding.ErrMissingAPIKey)
		require.Nil(t, provider)
	})

	t.Run("create Nominatim provider without API key", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeNominatim,
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := provider.(*geocoding.NominatimProvider)
		assert.True(t, ok, "expected provider to be *NominatimProvider")
	})

	t.Run("create Visicom provider with default rate limit", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeVisicom,
			APIKey: "test-api-key",
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := provider.(*geocoding.VisicomProvider)
		assert.True(t, ok, "expected provider to be *VisicomProvider")
	})

	t.Run("create Visicom provider without API key fails", func(t *testing.T) {
		_, err := geocoding.NewProvider(geocoding.ProviderConfig{Type: geocoding.ProviderTypeVisicom})

		require.ErrorIs(t, err, geocoding.ErrMissingAPIKey)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("unsupported"),
			Logger: logger,
		})

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type: unsupported")
	})

	t.Run("empty provider type", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{})

		require.Error(t, err)
		require.Nil(t, provider)
	})
}
