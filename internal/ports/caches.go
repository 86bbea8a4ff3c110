package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Cache mapping normalized address text to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// Cache of business search results keyed by search location.
// Get returns ok=false on a miss.
type BusinessCache interface {
	Get(ctx context.Context, at domain.Coordinates) (_ []domain.Business, ok bool, _ error)
	Put(ctx context.Context, at domain.Coordinates, businesses []domain.Business) error
}
