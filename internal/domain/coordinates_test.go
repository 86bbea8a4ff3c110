package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesValidate(t *testing.T) {
	cases := []struct {
		name    string
		c       Coordinates
		wantErr bool
	}{
		{"origin", Coordinates{Lat: 0, Lon: 0}, false},
		{"phoenix", Coordinates{Lat: 33.4484, Lon: -112.0740}, false},
		{"poles", Coordinates{Lat: 90, Lon: -180}, false},
		{"lat too big", Coordinates{Lat: 90.0001, Lon: 0}, true},
		{"lon too small", Coordinates{Lat: 0, Lon: -180.5}, true},
		{"nan", Coordinates{Lat: math.NaN(), Lon: 0}, true},
		{"inf", Coordinates{Lat: 0, Lon: math.Inf(1)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordsToListIsLonLat(t *testing.T) {
	c := Coordinates{Lat: 1.5, Lon: -2.5}
	require.Equal(t, []float64{-2.5, 1.5}, c.CoordsToList())
}

