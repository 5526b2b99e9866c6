package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/metrics"
	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ErrEmptyAddress is returned when Resolve is called without an address.
var ErrEmptyAddress = errors.New("address must not be empty")

// Resolver turns an address into coordinates with exactly one provider call.
// It keeps no state between calls apart from metrics.
type Resolver struct {
	log           *slog.Logger       // Logger for logging resolver activities
	provider      geocoding.Provider // Geocoding provider for external geocoding services
	providerName  string             // Name of the provider for metrics labeling
	metrics       *metrics.Metrics   // Metrics for tracking lookups
	timeout       time.Duration      // Upper bound for a single lookup, zero disables it
	addressPrefix string             // Address prefix for more accurate geocoding (indicating country, city, etc.)
}

// NewResolver creates a new instance of Resolver.
func NewResolver(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	timeout time.Duration,
	addressPrefix string,
) *Resolver {
	return &Resolver{
		log:           log,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		timeout:       timeout,
		addressPrefix: addressPrefix,
	}
}

// Resolve returns the coordinates of the first candidate for address.
// On failure the coordinates are zero and the error classifies with geocoding.Kind,
// so a caller never observes half a coordinate pair.
func (r *Resolver) Resolve(ctx context.Context, address string) (models.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		r.metrics.LookupsTotal.WithLabelValues(r.providerName, metrics.OutcomeInvalid).Inc()
		return models.Coordinates{}, ErrEmptyAddress
	}

	query := r.addressPrefix + address

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.metrics.InFlight.Inc()
	startTime := time.Now()
	coords, err := r.provider.Geocode(ctx, query)
	r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())
	r.metrics.InFlight.Dec()

	if err == nil {
		err = r.check(coords)
	}

	if err != nil {
		kind := geocoding.Kind(err)
		r.metrics.LookupsTotal.WithLabelValues(r.providerName, string(kind)).Inc()

		level := slog.LevelWarn
		if kind == geocoding.KindNoResult {
			level = slog.LevelInfo
		}
		r.log.Log(ctx, level, "Failed to resolve address", "address", query, "kind", kind, "error", err)

		return models.Coordinates{}, fmt.Errorf("failed to resolve address %q: %w", query, err)
	}

	r.metrics.LookupsTotal.WithLabelValues(r.providerName, metrics.OutcomeFound).Inc()
	r.log.DebugContext(ctx, "Address resolved", "address", query, "lat", coords.Latitude, "lng", coords.Longitude)

	return *coords, nil
}

func (r *Resolver) check(coords *models.Coordinates) error {
	if coords == nil {
		return &geocoding.MalformedResponseError{Provider: r.providerName, Reason: "provider returned no coordinates"}
	}

	if err := coords.Validate(); err != nil {
		return &geocoding.MalformedResponseError{Provider: r.providerName, Reason: "candidate outside geographic range", Err: err}
	}

	return nil
}
