package service

import (
	"context"
	"testing"

	"address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProximityService_WithinDistance(t *testing.T) {
	stored := []models.Address{
		{ID: 1, Name: "A", Latitude: 0, Longitude: 0},
		{ID: 2, Name: "B", Latitude: 0, Longitude: 1},
		{ID: 3, Name: "C", Latitude: 10, Longitude: 10},
	}

	tests := []struct {
		name        string
		query       models.ProximityQuery
		mockRows    []models.Address
		mockError   error
		expected    []models.Address
		expectError bool
	}{
		{
			name:     "50 km returns only the origin record",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: 50},
			mockRows: stored,
			expected: stored[:1],
		},
		{
			name:     "200 km returns both nearby records in store order",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: 200},
			mockRows: stored,
			expected: stored[:2],
		},
		{
			name:     "zero distance matches exact coordinates",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 1, DistanceKm: 0},
			mockRows: stored,
			expected: []models.Address{stored[1]},
		},
		{
			name:     "zero distance without exact match is empty",
			query:    models.ProximityQuery{Latitude: 0.000001, Longitude: 1, DistanceKm: 0},
			mockRows: stored,
			expected: []models.Address{},
		},
		{
			name:     "negative distance matches nothing",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: -1},
			mockRows: stored,
			expected: []models.Address{},
		},
		{
			name:     "antipodal record is reached across the pole",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 180, DistanceKm: 20004},
			mockRows: stored[:1],
			expected: stored[:1],
		},
		{
			name:     "empty store",
			query:    models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: 20000},
			mockRows: []models.Address{},
			expected: []models.Address{},
		},
		{
			name:        "repository error",
			query:       models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: 1},
			mockRows:    nil,
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockProximityRepository)
			service := NewProximityService(mockRepo, newTestMetrics())
			mockRepo.On("ListAll", mock.Anything).Return(tt.mockRows, tt.mockError)

			// Execute
			result, err := service.WithinDistance(context.Background(), tt.query)

			// Assert
			if tt.expectError {
				require.ErrorIs(t, err, assert.AnError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProximityService_RadiusIsMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	points := [][2]float64{{0, 0}, {0, 1}, {0.5, 0.5}, {-2, 3}, {45, 45}, {-60, -170}, {89.9, 0}}
	for i, p := range points {
		_, err := repo.Insert(ctx, models.Address{Name: string(rune('A' + i)), Latitude: p[0], Longitude: p[1]})
		require.NoError(t, err)
	}
	service := NewProximityService(repo, newTestMetrics())

	radii := []float64{0, 1, 50, 112, 500, 5000, 20000}
	var previous []models.Address
	for _, r := range radii {
		current, err := service.WithinDistance(ctx, models.ProximityQuery{Latitude: 0, Longitude: 0, DistanceKm: r})
		require.NoError(t, err)

		for _, addr := range previous {
			assert.Contains(t, current, addr, "radius %v lost a match from a smaller radius", r)
		}
		previous = current
	}
	assert.Len(t, previous, len(points))
}
