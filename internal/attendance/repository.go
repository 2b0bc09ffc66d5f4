package attendance

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

// Repository handles database operations for attendance records
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new attendance repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpsertCheckIn inserts the day's record or, when one already exists for
// (driver_id, date), updates its check-in fields in place. The unique
// constraint plus ON CONFLICT makes concurrent check-ins for the same
// driver-day serialize at the database; logout fields are never touched here.
func (r *Repository) UpsertCheckIn(ctx context.Context, rec *AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (
			id, driver_id, date, assigned_time, login_time,
			login_latitude, login_longitude, geofence_id, punctuality, completion,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (driver_id, date) DO UPDATE SET
			assigned_time   = EXCLUDED.assigned_time,
			login_time      = EXCLUDED.login_time,
			login_latitude  = EXCLUDED.login_latitude,
			login_longitude = EXCLUDED.login_longitude,
			geofence_id     = EXCLUDED.geofence_id,
			punctuality     = EXCLUDED.punctuality,
			updated_at      = EXCLUDED.updated_at
		RETURNING id, completion, created_at, updated_at
	`

	now := time.Now().UTC()
	var lat, lon *float64
	if rec.LoginLocation != nil {
		lat = &rec.LoginLocation.Latitude
		lon = &rec.LoginLocation.Longitude
	}

	err := r.db.QueryRow(ctx, query,
		rec.ID,
		rec.DriverID,
		rec.Date,
		rec.AssignedTime,
		rec.LoginTime,
		lat,
		lon,
		rec.GeofenceID,
		rec.Punctuality,
		rec.Completion,
		now,
	).Scan(&rec.ID, &rec.Completion, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return nil
}

// GetByID retrieves an attendance record by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
	query := `
		SELECT id, driver_id, date, assigned_time, login_time,
		       login_latitude, login_longitude, geofence_id,
		       logout_time, logout_latitude, logout_longitude,
		       punctuality, completion, deduction_reason, deduction_amount,
		       created_at, updated_at
		FROM attendance_records
		WHERE id = $1
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// SetCheckOut persists the logout fields and completion state
func (r *Repository) SetCheckOut(ctx context.Context, rec *AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET logout_time = $2, logout_latitude = $3, logout_longitude = $4,
		    completion = $5, updated_at = $6
		WHERE id = $1
	`

	var lat, lon *float64
	if rec.LogoutLocation != nil {
		lat = &rec.LogoutLocation.Latitude
		lon = &rec.LogoutLocation.Longitude
	}

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, rec.ID, rec.LogoutTime, lat, lon, rec.Completion, now)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	rec.UpdatedAt = now

	return nil
}

// ListForMonth returns all attendance records for a driver within a calendar month
func (r *Repository) ListForMonth(ctx context.Context, driverID uuid.UUID, month time.Month, year int) ([]AttendanceRecord, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT id, driver_id, date, assigned_time, login_time,
		       login_latitude, login_longitude, geofence_id,
		       logout_time, logout_latitude, logout_longitude,
		       punctuality, completion, deduction_reason, deduction_amount,
		       created_at, updated_at
		FROM attendance_records
		WHERE driver_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	var loginLat, loginLon, logoutLat, logoutLon *float64

	err := row.Scan(
		&rec.ID,
		&rec.DriverID,
		&rec.Date,
		&rec.AssignedTime,
		&rec.LoginTime,
		&loginLat,
		&loginLon,
		&rec.GeofenceID,
		&rec.LogoutTime,
		&logoutLat,
		&logoutLon,
		&rec.Punctuality,
		&rec.Completion,
		&rec.DeductionReason,
		&rec.DeductionAmount,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if loginLat != nil && loginLon != nil {
		rec.LoginLocation = &geo.Coordinate{Latitude: *loginLat, Longitude: *loginLon}
	}
	if logoutLat != nil && logoutLon != nil {
		rec.LogoutLocation = &geo.Coordinate{Latitude: *logoutLat, Longitude: *logoutLon}
	}

	return &rec, nil
}
