package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Santa0027/fleetops/internal/geofence"
	"github.com/Santa0027/fleetops/pkg/cache"
	"github.com/Santa0027/fleetops/pkg/common"
	"github.com/Santa0027/fleetops/pkg/geo"
	"github.com/Santa0027/fleetops/pkg/logger"
)

// RepositoryInterface is the storage contract the service depends on.
type RepositoryInterface interface {
	// UpsertCheckIn must be atomic on the (driver_id, date) unique key so
	// concurrent check-ins for the same driver-day serialize at the store.
	UpsertCheckIn(ctx context.Context, rec *AttendanceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error)
	SetCheckOut(ctx context.Context, rec *AttendanceRecord) error
	ListForMonth(ctx context.Context, driverID uuid.UUID, month time.Month, year int) ([]AttendanceRecord, error)
}

// FenceSource supplies the active fence set for a driver.
type FenceSource interface {
	GetActiveFencesForDriver(ctx context.Context, driverID uuid.UUID) ([]geofence.GeoFence, error)
}

// Policy holds the attendance decisions that are configuration, not code.
type Policy struct {
	// Grace is how far past the assigned time a check-in still counts as on time.
	Grace time.Duration
	// RequireGeofenceMatch escalates an unmatched check-in location from a
	// logged warning to a rejection.
	RequireGeofenceMatch bool
	// SummaryCacheTTL bounds staleness of cached monthly summaries.
	SummaryCacheTTL time.Duration
}

// Service handles attendance business logic
type Service struct {
	repo    RepositoryInterface
	fences  FenceSource
	matcher *geofence.Matcher
	cache   *cache.Manager
	policy  Policy
}

// NewService creates a new attendance service. cache may be nil to disable
// summary caching.
func NewService(repo RepositoryInterface, fences FenceSource, matcher *geofence.Matcher, cacheManager *cache.Manager, policy Policy) *Service {
	return &Service{
		repo:    repo,
		fences:  fences,
		matcher: matcher,
		cache:   cacheManager,
		policy:  policy,
	}
}

// CheckIn records a driver's shift start. Re-submitting for the same
// driver-day updates the existing record instead of duplicating it.
func (s *Service) CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResult, error) {
	loc, err := coordinateFrom(req.LoginLatitude, req.LoginLongitude)
	if err != nil {
		return nil, common.NewBadRequestError("invalid login coordinates", err)
	}

	var fenceID *uuid.UUID
	fenceMatched := false
	if loc != nil {
		fenceID, fenceMatched, err = s.resolveFence(ctx, req.DriverID, *loc)
		if err != nil {
			return nil, err
		}
	}

	loginTime := req.LoginTime
	rec := &AttendanceRecord{
		ID:            uuid.New(),
		DriverID:      req.DriverID,
		Date:          DateOf(loginTime),
		AssignedTime:  req.AssignedTime,
		LoginTime:     &loginTime,
		LoginLocation: loc,
		GeofenceID:    fenceID,
		Punctuality:   ResolvePunctuality(&loginTime, req.AssignedTime, s.policy.Grace),
		Completion:    CompletionPending,
	}

	if err := s.repo.UpsertCheckIn(ctx, rec); err != nil {
		return nil, fmt.Errorf("check in: %w", err)
	}

	s.invalidateSummary(ctx, rec.DriverID, rec.Date.Month(), rec.Date.Year())

	return &CheckInResult{Record: rec, FenceMatched: fenceMatched}, nil
}

// CheckOut closes a driver's shift. Punctuality decided at check-in is kept;
// only completion changes.
func (s *Service) CheckOut(ctx context.Context, req *CheckOutRequest) (*AttendanceRecord, error) {
	loc, err := coordinateFrom(req.LogoutLatitude, req.LogoutLongitude)
	if err != nil {
		return nil, common.NewBadRequestError("invalid logout coordinates", err)
	}

	rec, err := s.repo.GetByID(ctx, req.AttendanceRecordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, common.NewBadRequestError("no check-in recorded for this date", ErrMissingCheckIn)
		}
		return nil, err
	}
	if rec == nil || rec.LoginTime == nil {
		return nil, common.NewBadRequestError("no check-in recorded for this date", ErrMissingCheckIn)
	}
	if rec.LogoutTime != nil {
		return nil, common.NewConflictError(ErrAlreadyCheckedOut.Error())
	}

	logoutTime := req.LogoutTime
	rec.LogoutTime = &logoutTime
	rec.LogoutLocation = loc
	rec.Completion = CompletionLoggedOut

	if err := s.repo.SetCheckOut(ctx, rec); err != nil {
		return nil, fmt.Errorf("check out: %w", err)
	}

	s.invalidateSummary(ctx, rec.DriverID, rec.Date.Month(), rec.Date.Year())

	return rec, nil
}

// MonthlySummary computes (or serves from cache) the driver's summary for a month.
func (s *Service) MonthlySummary(ctx context.Context, driverID uuid.UUID, month time.Month, year int) (*MonthlySummary, error) {
	key := summaryCacheKey(driverID, month, year)

	if s.cache != nil {
		var cached MonthlySummary
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	records, err := s.repo.ListForMonth(ctx, driverID, month, year)
	if err != nil {
		return nil, fmt.Errorf("list attendance for month: %w", err)
	}

	summary := Summarize(driverID, month, year, records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.policy.SummaryCacheTTL); err != nil {
			logger.WarnContext(ctx, "failed to cache monthly summary", zap.Error(err))
		}
	}

	return &summary, nil
}

// resolveFence matches the check-in location against the driver's authorized
// zones. An unmatched location logs a warning and proceeds unless the policy
// requires a match.
func (s *Service) resolveFence(ctx context.Context, driverID uuid.UUID, point geo.Coordinate) (*uuid.UUID, bool, error) {
	fences, err := s.fences.GetActiveFencesForDriver(ctx, driverID)
	if err != nil {
		return nil, false, fmt.Errorf("load geofences: %w", err)
	}

	fence, ok := s.matcher.Match(point, driverID, fences)
	if !ok {
		if s.policy.RequireGeofenceMatch {
			return nil, false, common.NewBadRequestError("check-in location outside all authorized zones", ErrNoActiveFence)
		}
		logger.WarnContext(ctx, "check-in outside all authorized zones",
			zap.String("driver_id", driverID.String()),
			zap.Float64("latitude", point.Latitude),
			zap.Float64("longitude", point.Longitude),
		)
		return nil, false, nil
	}

	return &fence.ID, true, nil
}

func (s *Service) invalidateSummary(ctx context.Context, driverID uuid.UUID, month time.Month, year int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, summaryCacheKey(driverID, month, year)); err != nil {
		logger.WarnContext(ctx, "failed to invalidate monthly summary cache", zap.Error(err))
	}
}

func summaryCacheKey(driverID uuid.UUID, month time.Month, year int) string {
	return fmt.Sprintf("attendance:summary:%s:%d-%02d", driverID, year, int(month))
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
