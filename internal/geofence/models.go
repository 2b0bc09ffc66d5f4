package geofence

import (
	"time"

	"github.com/google/uuid"

	"github.com/Santa0027/fleetops/pkg/geo"
)

// GeoFence is a circular authorized check-in zone. A nil DriverID makes the
// fence global: it applies to every driver.
type GeoFence struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	DriverID     *uuid.UUID     `json:"driver_id,omitempty" db:"driver_id"`
	Name         string         `json:"name" db:"name"`
	Center       geo.Coordinate `json:"center"`
	RadiusMeters float64        `json:"radius_meters" db:"radius_meters"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// AppliesTo reports whether the fence is a candidate for the given driver.
func (f *GeoFence) AppliesTo(driverID uuid.UUID) bool {
	return f.DriverID == nil || *f.DriverID == driverID
}
