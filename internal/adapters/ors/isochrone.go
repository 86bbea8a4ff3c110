package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
)

type isochroneRequest struct {
	Locations [][]float64 `json:"locations"`
	Range     []int       `json:"range"`
	RangeType string      `json:"range_type"`
}

// orsProfile maps the generic travel modes onto ORS profile names.
func orsProfile(profile string) string {
	switch profile {
	case "", "driving":
		return "driving-car"
	case "walking":
		return "foot-walking"
	case "cycling":
		return "cycling-regular"
	}
	return profile
}

// GetIsochrone retrieves the area reachable from at within minutes
// using the OpenRouteService isochrones endpoint.
func (c *Client) GetIsochrone(
	ctx context.Context,
	at domain.Coordinates,
	minutes int,
	profile string,
) (_ *geojson.FeatureCollection, err error) {
	defer obs.Time(ctx, "ors.GetIsochrone")(&err)

	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("ors isochrone: %w", err)
	}
	if minutes < 1 {
		return nil, fmt.Errorf("ors isochrone: minutes must be positive, got %d", minutes)
	}

	endpoint := fmt.Sprintf("%s/v2/isochrones/%s", c.baseURL, orsProfile(profile))

	payload, err := json.Marshal(isochroneRequest{
		Locations: [][]float64{at.CoordsToList()},
		Range:     []int{minutes * 60},
		RangeType: "time",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal isochrone request: %w", err)
	}

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("isochrone request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read isochrone response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode isochrone response: %w", err)
	}

	return fc, nil
}
