package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
)

var (
	_ ports.BusinessSearcher  = (*BusinessSearcher)(nil)
	_ ports.IsochroneProvider = (*IsochroneProvider)(nil)
	_ ports.Geocoder          = (*Geocoder)(nil)
	_ ports.BusinessCache     = (*BusinessCache)(nil)
	_ ports.GeocodeCache      = (*GeocodeCache)(nil)
)

// BusinessSearcher returns a fixed business list and records the search points.
type BusinessSearcher struct {
	Businesses []domain.Business
	Err        error

	mu    sync.Mutex
	Calls []domain.Coordinates
}

func (m *BusinessSearcher) SearchBusinesses(ctx context.Context, at domain.Coordinates) ([]domain.Business, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, at)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Business, len(m.Businesses))
	copy(out, m.Businesses)
	return out, nil
}

// IsochroneProvider returns a square of HalfSide degrees around the requested point.
type IsochroneProvider struct {
	HalfSide float64
	Err      error

	mu    sync.Mutex
	Calls []domain.Coordinates
}

func (m *IsochroneProvider) GetIsochrone(
	ctx context.Context,
	at domain.Coordinates,
	minutes int,
	profile string,
) (*geojson.FeatureCollection, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, at)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	h := m.HalfSide
	ring := orb.Ring{
		{at.Lon - h, at.Lat - h},
		{at.Lon + h, at.Lat - h},
		{at.Lon + h, at.Lat + h},
		{at.Lon - h, at.Lat + h},
		{at.Lon - h, at.Lat - h},
	}

	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["contour"] = minutes
	f.Properties["profile"] = profile

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return fc, nil
}

// Geocoder resolves queries from a fixed table.
type Geocoder struct {
	Results map[string]domain.Coordinates
}

func (m *Geocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	c, ok := m.Results[query]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", query, ports.ErrNotFound)
	}
	return c, nil
}

// BusinessCache is an in-memory BusinessCache keyed by exact coordinates.
type BusinessCache struct {
	mu sync.Mutex
	m  map[domain.Coordinates][]domain.Business
}

func NewBusinessCache() *BusinessCache {
	return &BusinessCache{m: make(map[domain.Coordinates][]domain.Business)}
}

func (c *BusinessCache) Get(ctx context.Context, at domain.Coordinates) ([]domain.Business, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[at]
	return b, ok, nil
}

func (c *BusinessCache) Put(ctx context.Context, at domain.Coordinates, businesses []domain.Business) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[at] = businesses
	return nil
}

// GeocodeCache is an in-memory GeocodeCache.
type GeocodeCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func NewGeocodeCache() *GeocodeCache {
	return &GeocodeCache{m: make(map[string]domain.Coordinates)}
}

func (c *GeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]domain.Coordinates)
	for _, a := range addresses {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *GeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}
