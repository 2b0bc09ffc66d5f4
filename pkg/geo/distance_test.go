package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceZero(t *testing.T) {
	p := Coordinate{Latitude: 24.7136, Longitude: 46.6753}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		a, b Coordinate
	}{
		{Coordinate{24.7136, 46.6753}, Coordinate{24.7140, 46.6750}},
		{Coordinate{40.7128, -74.0060}, Coordinate{34.0522, -118.2437}},
		{Coordinate{-33.8688, 151.2093}, Coordinate{51.5074, -0.1278}},
		{Coordinate{0, 179.999}, Coordinate{0, -179.999}},
	}

	for _, p := range pairs {
		assert.InDelta(t, Distance(p.a, p.b), Distance(p.b, p.a), 1e-9)
	}
}

func TestDistanceKnownReference(t *testing.T) {
	// Riyadh reference pair, roughly 50 m apart.
	a := Coordinate{Latitude: 24.7136, Longitude: 46.6753}
	b := Coordinate{Latitude: 24.7140, Longitude: 46.6750}

	d := Distance(a, b)
	assert.Greater(t, d, 48.0)
	assert.Less(t, d, 52.0)
}

func TestDistanceLongRange(t *testing.T) {
	// New York to Los Angeles, ~3936 km.
	a := Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	b := Coordinate{Latitude: 34.0522, Longitude: -118.2437}

	d := Distance(a, b)
	assert.InDelta(t, 3936000, d, 10000)
}

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{24.7136, 46.6753}, false},
		{"boundary north pole", Coordinate{90, 0}, false},
		{"boundary south pole", Coordinate{-90, 0}, false},
		{"boundary antimeridian", Coordinate{0, 180}, false},
		{"latitude too high", Coordinate{90.0001, 0}, true},
		{"latitude too low", Coordinate{-90.0001, 0}, true},
		{"longitude too high", Coordinate{0, 180.0001}, true},
		{"longitude too low", Coordinate{0, -180.0001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoordinate)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
