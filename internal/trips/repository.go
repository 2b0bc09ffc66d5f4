package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Santa0027/fleetops/pkg/geo"
)

// Repository handles database operations for trips
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new trips repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const tripColumns = `
	id, driver_id, customer_id,
	pickup_address, pickup_latitude, pickup_longitude, pickup_time,
	dropoff_address, dropoff_latitude, dropoff_longitude, dropoff_time,
	distance_km, duration_minutes, waiting_minutes,
	base_fare, distance_fare, time_fare, waiting_charges,
	toll_charges, parking_charges, additional_charges, surge_multiplier,
	total_fare, commission_rate_percent, commission_amount, driver_earnings, tip_amount,
	payment_method, status, created_at, updated_at`

// Create inserts a new trip
func (r *Repository) Create(ctx context.Context, trip *Trip) error {
	query := `
		INSERT INTO trips (
			id, driver_id, customer_id,
			pickup_address, pickup_latitude, pickup_longitude, pickup_time,
			dropoff_address, dropoff_latitude, dropoff_longitude, dropoff_time,
			distance_km, duration_minutes, waiting_minutes,
			base_fare, distance_fare, time_fare, waiting_charges,
			toll_charges, parking_charges, additional_charges, surge_multiplier,
			total_fare, commission_rate_percent, commission_amount, driver_earnings, tip_amount,
			payment_method, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $30)
	`

	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	pickupLat, pickupLon := coordinateCols(trip.PickupLocation)
	dropoffLat, dropoffLon := coordinateCols(trip.DropoffLocation)

	_, err := r.db.Exec(ctx, query,
		trip.ID, trip.DriverID, trip.CustomerID,
		trip.PickupAddress, pickupLat, pickupLon, trip.PickupTime,
		trip.DropoffAddress, dropoffLat, dropoffLon, trip.DropoffTime,
		trip.DistanceKm, trip.DurationMinutes, trip.WaitingMinutes,
		trip.BaseFare, trip.DistanceFare, trip.TimeFare, trip.WaitingCharges,
		trip.TollCharges, trip.ParkingCharges, trip.AdditionalCharges, trip.SurgeMultiplier,
		trip.TotalFare, trip.CommissionRatePercent, trip.CommissionAmount, trip.DriverEarnings, trip.TipAmount,
		trip.PaymentMethod, trip.Status, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

// Update rewrites all mutable trip fields
func (r *Repository) Update(ctx context.Context, trip *Trip) error {
	query := `
		UPDATE trips SET
			pickup_address = $2, pickup_latitude = $3, pickup_longitude = $4, pickup_time = $5,
			dropoff_address = $6, dropoff_latitude = $7, dropoff_longitude = $8, dropoff_time = $9,
			distance_km = $10, duration_minutes = $11, waiting_minutes = $12,
			base_fare = $13, distance_fare = $14, time_fare = $15, waiting_charges = $16,
			toll_charges = $17, parking_charges = $18, additional_charges = $19, surge_multiplier = $20,
			total_fare = $21, commission_rate_percent = $22, commission_amount = $23,
			driver_earnings = $24, tip_amount = $25,
			payment_method = $26, status = $27, updated_at = $28
		WHERE id = $1
	`

	now := time.Now().UTC()
	pickupLat, pickupLon := coordinateCols(trip.PickupLocation)
	dropoffLat, dropoffLon := coordinateCols(trip.DropoffLocation)

	tag, err := r.db.Exec(ctx, query,
		trip.ID,
		trip.PickupAddress, pickupLat, pickupLon, trip.PickupTime,
		trip.DropoffAddress, dropoffLat, dropoffLon, trip.DropoffTime,
		trip.DistanceKm, trip.DurationMinutes, trip.WaitingMinutes,
		trip.BaseFare, trip.DistanceFare, trip.TimeFare, trip.WaitingCharges,
		trip.TollCharges, trip.ParkingCharges, trip.AdditionalCharges, trip.SurgeMultiplier,
		trip.TotalFare, trip.CommissionRatePercent, trip.CommissionAmount,
		trip.DriverEarnings, trip.TipAmount,
		trip.PaymentMethod, trip.Status, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	trip.UpdatedAt = now

	return nil
}

// GetByID retrieves a trip by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// ListByDriver returns paginated trips for a driver, newest first
func (r *Repository) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]Trip, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM trips WHERE driver_id = $1`, driverID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, driverID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips, err := collectTrips(rows)
	if err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

// ListForPeriod returns all trips created within [from, to) for a driver
func (r *Repository) ListForPeriod(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]Trip, error) {
	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips for period: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	var trip Trip
	var pickupLat, pickupLon, dropoffLat, dropoffLon *float64

	err := row.Scan(
		&trip.ID, &trip.DriverID, &trip.CustomerID,
		&trip.PickupAddress, &pickupLat, &pickupLon, &trip.PickupTime,
		&trip.DropoffAddress, &dropoffLat, &dropoffLon, &trip.DropoffTime,
		&trip.DistanceKm, &trip.DurationMinutes, &trip.WaitingMinutes,
		&trip.BaseFare, &trip.DistanceFare, &trip.TimeFare, &trip.WaitingCharges,
		&trip.TollCharges, &trip.ParkingCharges, &trip.AdditionalCharges, &trip.SurgeMultiplier,
		&trip.TotalFare, &trip.CommissionRatePercent, &trip.CommissionAmount,
		&trip.DriverEarnings, &trip.TipAmount,
		&trip.PaymentMethod, &trip.Status, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pickupLat != nil && pickupLon != nil {
		trip.PickupLocation = &geo.Coordinate{Latitude: *pickupLat, Longitude: *pickupLon}
	}
	if dropoffLat != nil && dropoffLon != nil {
		trip.DropoffLocation = &geo.Coordinate{Latitude: *dropoffLat, Longitude: *dropoffLon}
	}

	return &trip, nil
}

func collectTrips(rows pgx.Rows) ([]Trip, error) {
	var trips []Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trips: %w", err)
	}
	return trips, nil
}

func coordinateCols(c *geo.Coordinate) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Latitude, &c.Longitude
}
