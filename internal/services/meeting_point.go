package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"golang.org/x/sync/errgroup"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
)

var ErrDuplicateAddress = fmt.Errorf("address already in the list: %w", ErrInvalidArgument)

// AddressInput is one address picked by the user. Either Location or Query
// must be set; Query is resolved through the Geocoder.
type AddressInput struct {
	ID       string
	Label    string
	Query    string
	Location *domain.Coordinates
}

type MeetingPointRequest struct {
	Addresses []AddressInput
	Minutes   int
	Profile   string
	Median    MedianOptions
}

// MeetingPointDeps are the collaborators used by FindMeetingPoint.
// Geocoder and Isochrones may be nil.
type MeetingPointDeps struct {
	Geocoder   ports.Geocoder
	Isochrones ports.IsochroneProvider
	Businesses ports.BusinessSearcher
}

// MeetingPoint is the computed center with everything the map needs around it.
type MeetingPoint struct {
	Center          domain.Coordinates
	Converged       bool
	Iterations      int
	Addresses       []domain.Address
	DistancesMeters []float64
	Isochrone       *geojson.FeatureCollection
	Businesses      []domain.Business
}

// FindMeetingPoint resolves the addresses, computes their geometric median
// and loads the reachable area and nearby businesses around it.
//
// A median that hit the iteration cap is still used; MeetingPoint.Converged
// reports it.
func FindMeetingPoint(
	ctx context.Context,
	req MeetingPointRequest,
	deps MeetingPointDeps,
) (_ *MeetingPoint, err error) {
	defer obs.Time(ctx, "services.FindMeetingPoint")(&err)

	if deps.Businesses == nil {
		return nil, errors.New("find meeting point: business searcher is nil")
	}

	if len(req.Addresses) < 2 {
		return nil, fmt.Errorf("find meeting point: at least two addresses must be provided: %w", ErrInvalidArgument)
	}

	addresses, err := resolveAddresses(ctx, req.Addresses, deps.Geocoder)
	if err != nil {
		return nil, fmt.Errorf("find meeting point: %w", err)
	}

	points := make([]domain.Coordinates, 0, len(addresses))
	for _, a := range addresses {
		points = append(points, a.Location)
	}

	median, err := GeometricMedian(points, req.Median)
	if err != nil && !errors.Is(err, ErrNonConvergence) {
		return nil, fmt.Errorf("find meeting point: %w", err)
	}
	obs.ObserveSolver(median.Iterations, median.Converged)

	out := &MeetingPoint{
		Center:          median.Center,
		Converged:       median.Converged,
		Iterations:      median.Iterations,
		Addresses:       addresses,
		DistancesMeters: DistancesMeters(median.Center, points),
	}

	g, gctx := errgroup.WithContext(ctx)

	if deps.Isochrones != nil {
		g.Go(func() error {
			fc, err := deps.Isochrones.GetIsochrone(gctx, median.Center, req.Minutes, req.Profile)
			if err != nil {
				return fmt.Errorf("get isochrone around %v: %w", median.Center, err)
			}
			out.Isochrone = fc
			return nil
		})
	}

	g.Go(func() error {
		businesses, err := deps.Businesses.SearchBusinesses(gctx, median.Center)
		if err != nil {
			return fmt.Errorf("search businesses around %v: %w", median.Center, err)
		}
		out.Businesses = businesses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("find meeting point: %w", err)
	}

	if out.Isochrone != nil {
		MarkInReach(out.Businesses, out.Isochrone)
	}

	return out, nil
}

// resolveAddresses rejects duplicate ids and geocodes query-only addresses
// concurrently. Output order follows input order.
func resolveAddresses(
	ctx context.Context,
	in []AddressInput,
	geocoder ports.Geocoder,
) ([]domain.Address, error) {
	out := make([]domain.Address, len(in))
	seen := make(map[string]struct{}, len(in))

	for i, a := range in {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			id = addressKey(a)
		}
		if id == "" {
			return nil, fmt.Errorf("address %d has neither location nor query: %w", i+1, ErrInvalidArgument)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("address %q: %w", id, ErrDuplicateAddress)
		}
		seen[id] = struct{}{}

		out[i] = domain.Address{ID: id, Label: a.Label}

		if a.Location != nil {
			if err := a.Location.Validate(); err != nil {
				return nil, fmt.Errorf("address %q: %v: %w", id, err, ErrInvalidArgument)
			}
			out[i].Location = *a.Location
			continue
		}

		if strings.TrimSpace(a.Query) == "" {
			return nil, fmt.Errorf("address %q has neither location nor query: %w", id, ErrInvalidArgument)
		}
		if geocoder == nil {
			return nil, fmt.Errorf("address %q needs geocoding but no geocoder is configured: %w", id, ErrInvalidArgument)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for i, a := range in {
		if a.Location != nil {
			continue
		}

		i, a := i, a
		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, a.Query)
			if err != nil {
				return fmt.Errorf("geocode address %q: %w", out[i].ID, err)
			}
			out[i].Location = c
			if out[i].Label == "" {
				out[i].Label = a.Query
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// addressKey derives an identity for addresses that carry no id.
func addressKey(a AddressInput) string {
	if a.Location != nil {
		return a.Location.String()
	}
	return strings.ToLower(strings.Join(strings.Fields(a.Query), " "))
}

// MarkInReach flags businesses located inside any polygon of the isochrone.
func MarkInReach(businesses []domain.Business, isochrone *geojson.FeatureCollection) {
	for i := range businesses {
		p := orb.Point{businesses[i].Coordinates.Lon, businesses[i].Coordinates.Lat}
		businesses[i].InReach = false

		for _, f := range isochrone.Features {
			if geometryContains(f.Geometry, p) {
				businesses[i].InReach = true
				break
			}
		}
	}
}

func geometryContains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	}
	return false
}
