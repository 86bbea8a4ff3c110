package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Contract for resolving free-form address text into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
