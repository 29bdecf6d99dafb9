// Package metrics defines the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors shared by the HTTP middleware and the services.
type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	Mutations      *prometheus.CounterVec
	ScannedRecords prometheus.Histogram
	MatchedRecords prometheus.Histogram
}

// NewMetrics creates every collector and registers it on reg. Registering twice
// on the same registry panics, so tests pass a fresh prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Mutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "addresses_mutations_total",
			Help: "Total number of successful address mutations.",
		}, []string{"op"}),
		ScannedRecords: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "proximity_scanned_records",
			Help:    "Number of records scanned per proximity query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		MatchedRecords: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "proximity_matched_records",
			Help:    "Number of records returned per proximity query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}
