package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Contract for retrieving businesses near a location.
type BusinessSearcher interface {
	// Return businesses near the given coordinates, in provider ranking order.
	SearchBusinesses(ctx context.Context, at domain.Coordinates) ([]domain.Business, error)
}
