package geofence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for geofences
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new geofence repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetActiveFencesForDriver returns all active fences that apply to the driver:
// fences scoped to the driver plus global (unscoped) fences.
func (r *Repository) GetActiveFencesForDriver(ctx context.Context, driverID uuid.UUID) ([]GeoFence, error) {
	query := `
		SELECT id, driver_id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at
		FROM geofences
		WHERE is_active = true AND (driver_id = $1 OR driver_id IS NULL)
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query geofences: %w", err)
	}
	defer rows.Close()

	var fences []GeoFence
	for rows.Next() {
		var f GeoFence
		if err := rows.Scan(
			&f.ID,
			&f.DriverID,
			&f.Name,
			&f.Center.Latitude,
			&f.Center.Longitude,
			&f.RadiusMeters,
			&f.IsActive,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		fences = append(fences, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read geofences: %w", err)
	}

	return fences, nil
}
