package trips

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Santa0027/fleetops/pkg/geo"
)

// TripStatus represents the status of a trip
type TripStatus string

const (
	TripStatusPending    TripStatus = "pending"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
	TripStatusDisputed   TripStatus = "disputed"
)

// PaymentMethod represents how the customer paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Cash reports whether the payment bypassed the platform.
func (p PaymentMethod) Cash() bool {
	return p == PaymentMethodCash
}

// Trip represents one customer trip. TotalFare, CommissionAmount and
// DriverEarnings are derived from the other fields on every write and are
// never accepted from callers.
type Trip struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	DriverID        uuid.UUID       `json:"driver_id" db:"driver_id"`
	CustomerID      uuid.UUID       `json:"customer_id" db:"customer_id"`
	PickupAddress   string          `json:"pickup_address" db:"pickup_address"`
	PickupLocation  *geo.Coordinate `json:"pickup_location,omitempty"`
	PickupTime      *time.Time      `json:"pickup_time,omitempty" db:"pickup_time"`
	DropoffAddress  string          `json:"dropoff_address" db:"dropoff_address"`
	DropoffLocation *geo.Coordinate `json:"dropoff_location,omitempty"`
	DropoffTime     *time.Time      `json:"dropoff_time,omitempty" db:"dropoff_time"`
	DistanceKm      float64         `json:"distance_km" db:"distance_km"`
	DurationMinutes int             `json:"duration_minutes" db:"duration_minutes"`
	WaitingMinutes  int             `json:"waiting_minutes" db:"waiting_minutes"`

	BaseFare          decimal.Decimal `json:"base_fare" db:"base_fare"`
	DistanceFare      decimal.Decimal `json:"distance_fare" db:"distance_fare"`
	TimeFare          decimal.Decimal `json:"time_fare" db:"time_fare"`
	WaitingCharges    decimal.Decimal `json:"waiting_charges" db:"waiting_charges"`
	TollCharges       decimal.Decimal `json:"toll_charges" db:"toll_charges"`
	ParkingCharges    decimal.Decimal `json:"parking_charges" db:"parking_charges"`
	AdditionalCharges decimal.Decimal `json:"additional_charges" db:"additional_charges"`
	SurgeMultiplier   decimal.Decimal `json:"surge_multiplier" db:"surge_multiplier"`

	TotalFare             decimal.Decimal `json:"total_fare" db:"total_fare"`
	CommissionRatePercent decimal.Decimal `json:"commission_rate_percent" db:"commission_rate_percent"`
	CommissionAmount      decimal.Decimal `json:"commission_amount" db:"commission_amount"`
	DriverEarnings        decimal.Decimal `json:"driver_earnings" db:"driver_earnings"`
	TipAmount             decimal.Decimal `json:"tip_amount" db:"tip_amount"`

	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	Status        TripStatus    `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// EarningsSummary aggregates a driver's trips over a period.
type EarningsSummary struct {
	DriverID             uuid.UUID       `json:"driver_id"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	TotalTrips           int             `json:"total_trips"`
	CompletedTrips       int             `json:"completed_trips"`
	CancelledTrips       int             `json:"cancelled_trips"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	TotalTips            decimal.Decimal `json:"total_tips"`
	TotalDistanceKm      float64         `json:"total_distance_km"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
	AverageTripEarnings  decimal.Decimal `json:"average_trip_earnings"`
	AverageTripDistance  float64         `json:"average_trip_distance_km"`
	CashTrips            int             `json:"cash_trips"`
	DigitalTrips         int             `json:"digital_trips"`
	CashEarnings         decimal.Decimal `json:"cash_earnings"`
	DigitalEarnings      decimal.Decimal `json:"digital_earnings"`
}

// TripRequest carries the caller-settable trip fields. Derived monetary
// fields are intentionally absent.
type TripRequest struct {
	DriverID        uuid.UUID  `json:"driver_id" binding:"required"`
	CustomerID      uuid.UUID  `json:"customer_id" binding:"required"`
	PickupAddress   string     `json:"pickup_address" binding:"required"`
	PickupLatitude  *float64   `json:"pickup_latitude,omitempty" validate:"omitempty,latitude"`
	PickupLongitude *float64   `json:"pickup_longitude,omitempty" validate:"omitempty,longitude"`
	PickupTime      *time.Time `json:"pickup_time,omitempty"`

	DropoffAddress   string     `json:"dropoff_address" binding:"required"`
	DropoffLatitude  *float64   `json:"dropoff_latitude,omitempty" validate:"omitempty,latitude"`
	DropoffLongitude *float64   `json:"dropoff_longitude,omitempty" validate:"omitempty,longitude"`
	DropoffTime      *time.Time `json:"dropoff_time,omitempty"`

	DistanceKm      float64 `json:"distance_km" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"min=0"`
	WaitingMinutes  int     `json:"waiting_minutes" binding:"min=0"`

	BaseFare          decimal.Decimal  `json:"base_fare"`
	DistanceFare      decimal.Decimal  `json:"distance_fare"`
	TimeFare          decimal.Decimal  `json:"time_fare"`
	WaitingCharges    decimal.Decimal  `json:"waiting_charges"`
	TollCharges       decimal.Decimal  `json:"toll_charges"`
	ParkingCharges    decimal.Decimal  `json:"parking_charges"`
	AdditionalCharges decimal.Decimal  `json:"additional_charges"`
	SurgeMultiplier   *decimal.Decimal `json:"surge_multiplier,omitempty"`
	CommissionRate    *decimal.Decimal `json:"commission_rate_percent,omitempty"`
	TipAmount         decimal.Decimal  `json:"tip_amount"`

	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
}

// TripListResponse returns paginated trips
type TripListResponse struct {
	Trips    []Trip `json:"trips"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
