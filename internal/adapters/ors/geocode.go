package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
)

// Geocode resolves address text to coordinates using /geocode/search.
// The persistent geocode cache is consulted first and filled on a miss.
func (c *Client) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	norm := normalize(query)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: query must be non-empty")
	}

	if c.geocodeCache != nil {
		hits, err := c.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if hit, ok := hits[norm]; ok {
			return hit, nil
		}
	}

	defer obs.Time(ctx, "ors.Geocode")(&err)

	endpoint := c.baseURL + "/geocode/search"

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		if c.country != "" {
			q.Set("boundary.country", c.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: read response: %w", norm, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(fc.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", norm, ports.ErrNotFound)
	}

	p, ok := fc.Features[0].Geometry.(orb.Point)
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	coords := domain.Coordinates{Lat: p.Lat(), Lon: p.Lon()}
	if err := coords.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if c.geocodeCache != nil {
		if err := c.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}
