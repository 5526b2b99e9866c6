package geocoding_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, googleplex, req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, geocoding.NominatimUserAgent, req.Header.Get("User-Agent"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`[{"lat":"37.4224764","lon":"-122.0842499"}]`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProvider(mockClient, "", logger)
		coords, err := provider.Geocode(ctx, googleplex)

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 37.4224764, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -122.0842499, coords.Longitude, 0.0001)
	})

	t.Run("empty response from API", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(respondWith(http.StatusOK, `[]`), "", logger)
		coords, err := provider.Geocode(ctx, "invalid address")

		require.Nil(t, coords)
		assert.ErrorIs(t, err, geocoding.ErrNoResult)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(
			respondWith(http.StatusTooManyRequests, `{"error":"Rate limit exceeded"}`), "", logger,
		)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		var serviceErr *geocoding.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, http.StatusTooManyRequests, serviceErr.StatusCode)
		assert.Contains(t, err.Error(), "nominatim: service returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(respondWith(http.StatusOK, `invalid json`), "", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		assert.Equal(t, geocoding.KindMalformed, geocoding.Kind(err))
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("invalid latitude in response", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(
			respondWith(http.StatusOK, `[{"lat":"invalid","lon":"-122.0842499"}]`), "", logger,
		)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		assert.Equal(t, geocoding.KindMalformed, geocoding.Kind(err))
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid longitude in response", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(
			respondWith(http.StatusOK, `[{"lat":"37.4224764","lon":"invalid"}]`), "", logger,
		)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("request error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewNominatimProvider(mockClient, "", logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, geocoding.KindTransport, geocoding.Kind(err))
	})

	t.Run("invalid base URL", func(t *testing.T) {
		provider := geocoding.NewNominatimProvider(respondWith(http.StatusOK, `[]`), "://bad", logger)
		_, err := provider.Geocode(ctx, "some address")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse base URL")
	})
}
