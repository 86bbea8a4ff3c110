package mapbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/httpx"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
)

const defaultBaseURL = "https://api.mapbox.com"

// IsochroneClient implements IsochroneProvider using the Mapbox Isochrone API.
type IsochroneClient struct {
	http        *httpx.Client
	accessToken string
	baseURL     string
}

var _ ports.IsochroneProvider = (*IsochroneClient)(nil)

func NewIsochroneClient(accessToken string, baseURL string, h *httpx.Client) (*IsochroneClient, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("mapbox access token is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if h == nil {
		h = httpx.NewClient(10 * time.Second)
	}
	return &IsochroneClient{
		http:        h,
		accessToken: accessToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *IsochroneClient) GetIsochrone(
	ctx context.Context,
	at domain.Coordinates,
	minutes int,
	profile string,
) (_ *geojson.FeatureCollection, err error) {
	defer obs.Time(ctx, "mapbox.GetIsochrone")(&err)

	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("mapbox isochrone: %w", err)
	}
	// Mapbox caps contours at 60 minutes.
	if minutes < 1 || minutes > 60 {
		return nil, fmt.Errorf("mapbox isochrone: minutes must be between 1 and 60, got %d", minutes)
	}
	if profile == "" {
		profile = "driving"
	}

	endpoint := fmt.Sprintf(
		"%s/isochrone/v1/mapbox/%s/%s,%s",
		c.baseURL, profile,
		strconv.FormatFloat(at.Lon, 'f', -1, 64),
		strconv.FormatFloat(at.Lat, 'f', -1, 64),
	)

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("contours_minutes", strconv.Itoa(minutes))
		q.Set("polygons", "true")
		q.Set("access_token", c.accessToken)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("mapbox isochrone request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mapbox isochrone response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode mapbox isochrone response: %w", err)
	}
	return fc, nil
}
