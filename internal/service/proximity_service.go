package service

import (
	"context"
	"fmt"

	"address-api/internal/geo"
	"address-api/internal/metrics"
	"address-api/internal/models"
)

// ProximityService answers radius searches around a reference point
type ProximityService struct {
	repo    ProximityRepository
	metrics *metrics.Metrics
}

// ProximityRepository interface for dependency injection
type ProximityRepository interface {
	ListAll(ctx context.Context) ([]models.Address, error)
}

// NewProximityService creates a new proximity service
func NewProximityService(repo ProximityRepository, metrics *metrics.Metrics) *ProximityService {
	return &ProximityService{repo: repo, metrics: metrics}
}

// WithinDistance returns every stored address whose geodesic distance to the
// query point is at most q.DistanceKm, in the store's order.
func (s *ProximityService) WithinDistance(ctx context.Context, q models.ProximityQuery) ([]models.Address, error) {
	addresses, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}

	origin := geo.Point{Lat: q.Latitude, Lon: q.Longitude}
	matches := make([]models.Address, 0)
	for _, addr := range addresses {
		d := geo.DistanceKm(origin, geo.Point{Lat: addr.Latitude, Lon: addr.Longitude})
		if d <= q.DistanceKm {
			matches = append(matches, addr)
		}
	}

	s.metrics.ScannedRecords.Observe(float64(len(addresses)))
	s.metrics.MatchedRecords.Observe(float64(len(matches)))

	return matches, nil
}
