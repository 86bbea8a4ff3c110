package ports

import (
	"context"
	"meeting-point-service/internal/domain"

	"github.com/paulmach/orb/geojson"
)

// Contract for retrieving the area reachable within a travel time.
type IsochroneProvider interface {
	// Return the reachable polygons around at for the given minutes and travel profile
	// (e.g. "driving", "walking", "cycling").
	GetIsochrone(ctx context.Context, at domain.Coordinates, minutes int, profile string) (*geojson.FeatureCollection, error)
}
