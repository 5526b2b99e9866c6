package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of LookupsTotal besides the geocoding error kinds.
const (
	OutcomeFound   = "found"
	OutcomeInvalid = "invalid_input"
)

type Metrics struct {
	LookupsTotal   *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	InFlight       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		LookupsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pinpoint_lookups_total",
			Help: "Total number of address lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinpoint_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		InFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pinpoint_lookups_in_flight",
			Help: "Current number of lookups waiting on the geocoding provider.",
		}),
	}
}
