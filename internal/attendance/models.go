package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Santa0027/fleetops/pkg/geo"
)

// Punctuality captures whether the driver showed up on time. It is decided
// once at check-in and never changes afterwards.
type Punctuality string

const (
	PunctualityAbsent Punctuality = "absent"
	PunctualityOnTime Punctuality = "on_time"
	PunctualityLate   Punctuality = "late"
)

// Completion captures whether the shift was closed out. It is orthogonal to
// punctuality: checking out does not erase a late mark.
type Completion string

const (
	CompletionPending   Completion = "pending"
	CompletionLoggedOut Completion = "logged_out"
)

// Status is the legacy combined attendance status kept for API compatibility.
type Status string

const (
	StatusAbsent    Status = "ABSENT"
	StatusOnTime    Status = "ON_TIME"
	StatusLate      Status = "LATE"
	StatusLoggedIn  Status = "LOGGED_IN"
	StatusLoggedOut Status = "LOGGED_OUT"
)

// AttendanceRecord is one driver-day of attendance. At most one record exists
// per (driver, date); check-in upserts and check-out mutates it.
type AttendanceRecord struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	DriverID        uuid.UUID        `json:"driver_id" db:"driver_id"`
	Date            time.Time        `json:"date" db:"date"`
	AssignedTime    *time.Time       `json:"assigned_time,omitempty" db:"assigned_time"`
	LoginTime       *time.Time       `json:"login_time,omitempty" db:"login_time"`
	LoginLocation   *geo.Coordinate  `json:"login_location,omitempty"`
	GeofenceID      *uuid.UUID       `json:"geofence_id,omitempty" db:"geofence_id"`
	LogoutTime      *time.Time       `json:"logout_time,omitempty" db:"logout_time"`
	LogoutLocation  *geo.Coordinate  `json:"logout_location,omitempty"`
	Punctuality     Punctuality      `json:"punctuality" db:"punctuality"`
	Completion      Completion       `json:"completion" db:"completion"`
	DeductionReason *string          `json:"deduction_reason,omitempty" db:"deduction_reason"`
	DeductionAmount *decimal.Decimal `json:"deduction_amount,omitempty" db:"deduction_amount"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// Status derives the legacy single-field status from the two orthogonal facts.
func (r *AttendanceRecord) Status() Status {
	if r.LoginTime == nil {
		return StatusAbsent
	}
	if r.Completion == CompletionLoggedOut {
		return StatusLoggedOut
	}
	switch r.Punctuality {
	case PunctualityLate:
		return StatusLate
	case PunctualityOnTime:
		return StatusOnTime
	}
	return StatusLoggedIn
}

// Present reports whether the record counts as a worked day.
func (r *AttendanceRecord) Present() bool {
	return r.LoginTime != nil
}

// MonthlySummary rolls one driver-month of attendance records into counts,
// percentages and a score. Derived on demand, never hand-edited.
type MonthlySummary struct {
	DriverID         uuid.UUID       `json:"driver_id"`
	Month            time.Month      `json:"month"`
	Year             int             `json:"year"`
	TotalWorkingDays int             `json:"total_working_days"`
	PresentDays      int             `json:"present_days"`
	LateDays         int             `json:"late_days"`
	AbsentDays       int             `json:"absent_days"`
	OnTimePercentage float64         `json:"on_time_percentage"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	AttendanceScore  int             `json:"attendance_score"`
}

// CheckInRequest is the check-in payload
type CheckInRequest struct {
	DriverID       uuid.UUID  `json:"driver_id" binding:"required"`
	LoginTime      time.Time  `json:"login_time" binding:"required"`
	LoginLatitude  *float64   `json:"login_latitude,omitempty"`
	LoginLongitude *float64   `json:"login_longitude,omitempty"`
	AssignedTime   *time.Time `json:"assigned_time,omitempty"`
}

// CheckOutRequest is the check-out payload
type CheckOutRequest struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" binding:"required"`
	LogoutTime         time.Time `json:"logout_time" binding:"required"`
	LogoutLatitude     *float64  `json:"logout_latitude,omitempty"`
	LogoutLongitude    *float64  `json:"logout_longitude,omitempty"`
}

// CheckInResult pairs the persisted record with the fence decision so callers
// can surface an out-of-zone warning without re-matching.
type CheckInResult struct {
	Record       *AttendanceRecord `json:"record"`
	FenceMatched bool              `json:"fence_matched"`
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
