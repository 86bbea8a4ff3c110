package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YELP_API_KEY", "yelp")
	t.Setenv("MAPBOX_ACCESS_TOKEN", "mapbox")
	t.Setenv("ISOCHRONE_PROVIDER", "")
	t.Setenv("ISOCHRONE_MINUTES", "")
	t.Setenv("MEDIAN_TOLERANCE", "")
	t.Setenv("MEDIAN_MAX_ITERATIONS", "")
	t.Setenv("BUSINESS_CACHE_TTL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mapbox", cfg.IsochroneProvider)
	assert.Equal(t, 15, cfg.IsochroneMinutes)
	assert.Equal(t, 1e-6, cfg.MedianTolerance)
	assert.Equal(t, 1000, cfg.MedianMaxIterations)
	assert.Equal(t, 10*time.Minute, cfg.BusinessCacheTTL)
}

func TestLoadRequiresKeys(t *testing.T) {
	t.Setenv("YELP_API_KEY", "")
	t.Setenv("ISOCHRONE_PROVIDER", "ors")
	t.Setenv("ORS_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YELP_API_KEY is required")
	assert.Contains(t, err.Error(), "ORS_API_KEY is required")
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("YELP_API_KEY", "yelp")
	t.Setenv("ISOCHRONE_PROVIDER", "mapbox")
	t.Setenv("MAPBOX_ACCESS_TOKEN", "mapbox")
	t.Setenv("MEDIAN_TOLERANCE", "-1")
	t.Setenv("MEDIAN_MAX_ITERATIONS", "zero")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEDIAN_TOLERANCE")
	assert.Contains(t, err.Error(), "MEDIAN_MAX_ITERATIONS")
}
