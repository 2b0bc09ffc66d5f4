package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Santa0027/fleetops/pkg/common"
	"github.com/Santa0027/fleetops/pkg/geo"
	"github.com/Santa0027/fleetops/pkg/validation"
)

// RepositoryInterface is the storage contract the service depends on.
type RepositoryInterface interface {
	Create(ctx context.Context, trip *Trip) error
	Update(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]Trip, int, error)
	ListForPeriod(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]Trip, error)
}

// Service handles trip business logic
type Service struct {
	repo              RepositoryInterface
	defaultCommission decimal.Decimal
	defaultSurge      decimal.Decimal
}

// NewService creates a new trips service. defaultCommissionPercent applies to
// trips created without an explicit rate.
func NewService(repo RepositoryInterface, defaultCommissionPercent decimal.Decimal) *Service {
	return &Service{
		repo:              repo,
		defaultCommission: defaultCommissionPercent,
		defaultSurge:      decimal.NewFromInt(1),
	}
}

// CreateTrip creates a trip. The derived monetary fields are computed here;
// anything the caller supplied for them is ignored.
func (s *Service) CreateTrip(ctx context.Context, req *TripRequest) (*Trip, error) {
	trip, err := s.tripFromRequest(req)
	if err != nil {
		return nil, err
	}

	trip.ID = uuid.New()
	trip.Status = TripStatusPending

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	return trip, nil
}

// UpdateTrip replaces the caller-settable fields of a trip and rederives the
// money, keeping the stored-vs-computed invariant.
func (s *Service) UpdateTrip(ctx context.Context, id uuid.UUID, req *TripRequest) (*Trip, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	updated, err := s.tripFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.Status = existing.Status
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}

	return updated, nil
}

// CompleteTrip marks a trip completed. Only pending or in-progress trips can
// complete.
func (s *Service) CompleteTrip(ctx context.Context, id uuid.UUID) (*Trip, error) {
	return s.transition(ctx, id, TripStatusCompleted, TripStatusPending, TripStatusInProgress)
}

// StartTrip marks a pending trip in progress.
func (s *Service) StartTrip(ctx context.Context, id uuid.UUID) (*Trip, error) {
	return s.transition(ctx, id, TripStatusInProgress, TripStatusPending)
}

// CancelTrip cancels a trip that has not finished yet.
func (s *Service) CancelTrip(ctx context.Context, id uuid.UUID) (*Trip, error) {
	return s.transition(ctx, id, TripStatusCancelled, TripStatusPending, TripStatusInProgress)
}

// GetTrip retrieves a trip by ID
func (s *Service) GetTrip(ctx context.Context, id uuid.UUID) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return trip, nil
}

// ListTrips returns paginated trips for a driver
func (s *Service) ListTrips(ctx context.Context, driverID uuid.UUID, page, pageSize int) (*TripListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	trips, total, err := s.repo.ListByDriver(ctx, driverID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if trips == nil {
		trips = []Trip{}
	}

	return &TripListResponse{
		Trips:    trips,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// EarningsSummary aggregates a driver's trips between from and to.
func (s *Service) EarningsSummary(ctx context.Context, driverID uuid.UUID, from, to time.Time) (*EarningsSummary, error) {
	if !to.After(from) {
		return nil, common.NewBadRequestError("period end must be after period start", nil)
	}

	trips, err := s.repo.ListForPeriod(ctx, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list trips for period: %w", err)
	}

	summary := Summarize(driverID, from, to, trips)
	return &summary, nil
}

// tripFromRequest validates the request and builds a Trip with the derived
// money already computed.
func (s *Service) tripFromRequest(req *TripRequest) (*Trip, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}

	switch req.PaymentMethod {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet:
	default:
		return nil, common.NewBadRequestError("unknown payment method", ErrInvalidPaymentMethod)
	}

	pickup, err := coordinateFrom(req.PickupLatitude, req.PickupLongitude)
	if err != nil {
		return nil, common.NewBadRequestError("invalid pickup coordinates", err)
	}
	dropoff, err := coordinateFrom(req.DropoffLatitude, req.DropoffLongitude)
	if err != nil {
		return nil, common.NewBadRequestError("invalid dropoff coordinates", err)
	}

	surge := s.defaultSurge
	if req.SurgeMultiplier != nil {
		surge = *req.SurgeMultiplier
	}
	commissionRate := s.defaultCommission
	if req.CommissionRate != nil {
		commissionRate = *req.CommissionRate
	}

	fare := Fare{
		BaseFare:          req.BaseFare,
		DistanceFare:      req.DistanceFare,
		TimeFare:          req.TimeFare,
		WaitingCharges:    req.WaitingCharges,
		TollCharges:       req.TollCharges,
		ParkingCharges:    req.ParkingCharges,
		AdditionalCharges: req.AdditionalCharges,
		SurgeMultiplier:   surge,
		CommissionRate:    commissionRate,
		TipAmount:         req.TipAmount,
	}

	breakdown, err := fare.Compute()
	if err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}

	return &Trip{
		DriverID:              req.DriverID,
		CustomerID:            req.CustomerID,
		PickupAddress:         req.PickupAddress,
		PickupLocation:        pickup,
		PickupTime:            req.PickupTime,
		DropoffAddress:        req.DropoffAddress,
		DropoffLocation:       dropoff,
		DropoffTime:           req.DropoffTime,
		DistanceKm:            req.DistanceKm,
		DurationMinutes:       req.DurationMinutes,
		WaitingMinutes:        req.WaitingMinutes,
		BaseFare:              req.BaseFare,
		DistanceFare:          req.DistanceFare,
		TimeFare:              req.TimeFare,
		WaitingCharges:        req.WaitingCharges,
		TollCharges:           req.TollCharges,
		ParkingCharges:        req.ParkingCharges,
		AdditionalCharges:     req.AdditionalCharges,
		SurgeMultiplier:       surge,
		TotalFare:             breakdown.TotalFare,
		CommissionRatePercent: commissionRate,
		CommissionAmount:      breakdown.CommissionAmount,
		DriverEarnings:        breakdown.DriverEarnings,
		TipAmount:             req.TipAmount,
		PaymentMethod:         req.PaymentMethod,
	}, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target TripStatus, allowedFrom ...TripStatus) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	allowed := false
	for _, from := range allowedFrom {
		if trip.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, common.NewConflictError(
			fmt.Sprintf("cannot move trip from %s to %s", trip.Status, target))
	}

	trip.Status = target

	// Rederive the money on every persist, even when only the status moved.
	fare := trip.Fare()
	breakdown, err := fare.Compute()
	if err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}
	trip.TotalFare = breakdown.TotalFare
	trip.CommissionAmount = breakdown.CommissionAmount
	trip.DriverEarnings = breakdown.DriverEarnings

	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip status: %w", err)
	}

	return trip, nil
}

func (s *Service) mapNotFound(err error) error {
	if errors.Is(err, ErrTripNotFound) {
		return common.NewNotFoundError("trip not found", ErrTripNotFound)
	}
	return err
}

func coordinateFrom(lat, lon *float64) (*geo.Coordinate, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	c := geo.Coordinate{Latitude: *lat, Longitude: *lon}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
