package geo

import (
	"errors"
	"math"
)

const earthRadiusMeters = 6371000.0

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that latitude is within -90..90 and longitude within -180..180.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance calculates the great-circle distance in meters between two
// coordinates using the haversine formula.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180.0)*math.Cos(b.Latitude*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
