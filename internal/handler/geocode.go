package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/service"
	"github.com/gin-gonic/gin"
)

// Resolver is the lookup the handler delegates to.
type Resolver interface {
	Resolve(ctx context.Context, address string) (models.Coordinates, error)
}

// GeocodeHandler serves address lookups over HTTP.
type GeocodeHandler struct {
	resolver Resolver
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(resolver Resolver) *GeocodeHandler {
	return &GeocodeHandler{resolver: resolver}
}

// Geocode handles GET /geocode?address=... requests.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'address'"})
		return
	}

	coords, err := h.resolver.Resolve(c.Request.Context(), address)
	if err != nil {
		status, kind := statusFor(err)
		c.JSON(status, gin.H{"error": "could not resolve address", "kind": kind})
		return
	}

	c.JSON(http.StatusOK, coords)
}

func statusFor(err error) (int, string) {
	if errors.Is(err, service.ErrEmptyAddress) {
		return http.StatusBadRequest, "invalid_input"
	}

	kind := geocoding.Kind(err)
	switch kind {
	case geocoding.KindNoResult:
		return http.StatusNotFound, string(kind)
	case geocoding.KindTransport:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, string(kind)
		}
		return http.StatusBadGateway, string(kind)
	case geocoding.KindService, geocoding.KindMalformed:
		return http.StatusBadGateway, string(kind)
	default:
		return http.StatusInternalServerError, string(geocoding.KindUnknown)
	}
}
