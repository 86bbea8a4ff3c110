package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/httpx"
)

const isoBody = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"contour": 15, "color": "#bf4040", "metric": "time"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-74.01, 40.70], [-73.99, 40.70], [-73.99, 40.72], [-74.01, 40.72], [-74.01, 40.70]]]
      }
    }
  ]
}`

func TestGetIsochrone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/isochrone/v1/mapbox/walking/-74,40.71", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "15", q.Get("contours_minutes"))
		assert.Equal(t, "true", q.Get("polygons"))
		assert.Equal(t, "tok", q.Get("access_token"))
		_, _ = w.Write([]byte(isoBody))
	}))
	defer srv.Close()

	h := httpx.NewClient(2 * time.Second)
	h.Backoff = time.Millisecond
	c, err := NewIsochroneClient("tok", srv.URL, h)
	require.NoError(t, err)

	fc, err := c.GetIsochrone(context.Background(), domain.Coordinates{Lat: 40.71, Lon: -74}, 15, "walking")
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, 15.0, fc.Features[0].Properties.MustFloat64("contour"))

	_, ok := fc.Features[0].Geometry.(orb.Polygon)
	assert.True(t, ok)
}

func TestGetIsochroneValidatesInput(t *testing.T) {
	c, err := NewIsochroneClient("tok", "http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = c.GetIsochrone(context.Background(), domain.Coordinates{Lat: 0, Lon: 200}, 15, "driving")
	require.Error(t, err)

	_, err = c.GetIsochrone(context.Background(), domain.Coordinates{Lat: 0, Lon: 0}, 61, "driving")
	require.Error(t, err)
}

func TestNewIsochroneClientRequiresToken(t *testing.T) {
	_, err := NewIsochroneClient("", "", nil)
	require.Error(t, err)
}
