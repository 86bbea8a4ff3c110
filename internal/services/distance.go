package services

import (
	"github.com/golang/geo/s2"

	"meeting-point-service/internal/domain"
)

// earthRadiusMeters is the Earth's volumetric mean radius.
const earthRadiusMeters = 6371000

// GreatCircleMeters returns the spherical distance between two coordinates.
func GreatCircleMeters(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// DistancesMeters reports how far each point is from center, in input order.
// Used to show travel spread; the solver itself stays planar.
func DistancesMeters(center domain.Coordinates, points []domain.Coordinates) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = GreatCircleMeters(center, p)
	}
	return out
}
