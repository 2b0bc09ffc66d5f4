package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Santa0027/fleetops/internal/geofence"
	"github.com/Santa0027/fleetops/pkg/common"
	"github.com/Santa0027/fleetops/pkg/geo"
)

// ========================================
// INTERNAL MOCKS
// ========================================

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) UpsertCheckIn(ctx context.Context, rec *AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AttendanceRecord), args.Error(1)
}

func (m *mockRepo) SetCheckOut(ctx context.Context, rec *AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepo) ListForMonth(ctx context.Context, driverID uuid.UUID, month time.Month, year int) ([]AttendanceRecord, error) {
	args := m.Called(ctx, driverID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AttendanceRecord), args.Error(1)
}

type mockFenceSource struct {
	mock.Mock
}

func (m *mockFenceSource) GetActiveFencesForDriver(ctx context.Context, driverID uuid.UUID) ([]geofence.GeoFence, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geofence.GeoFence), args.Error(1)
}

// ========================================
// TEST HELPERS
// ========================================

var (
	depotCenter = geo.Coordinate{Latitude: 24.7136, Longitude: 46.6753}
	// Roughly 50 m from the depot center.
	insideDepot = geo.Coordinate{Latitude: 24.7140, Longitude: 46.6750}
)

func defaultPolicy() Policy {
	return Policy{Grace: 5 * time.Minute, SummaryCacheTTL: time.Minute}
}

func newTestService(repo RepositoryInterface, fences FenceSource, policy Policy) *Service {
	return NewService(repo, fences, geofence.NewMatcher(geofence.StrategyFirstMatch), nil, policy)
}

func depotFence() geofence.GeoFence {
	return geofence.GeoFence{
		ID:           uuid.New(),
		Name:         "depot",
		Center:       depotCenter,
		RadiusMeters: 100,
		IsActive:     true,
	}
}

func ptr[T any](v T) *T { return &v }

// ========================================
// TESTS: CheckIn
// ========================================

func TestCheckInInsideFence(t *testing.T) {
	driverID := uuid.New()
	fence := depotFence()
	assigned := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	repo := new(mockRepo)
	fences := new(mockFenceSource)
	fences.On("GetActiveFencesForDriver", mock.Anything, driverID).Return([]geofence.GeoFence{fence}, nil)
	repo.On("UpsertCheckIn", mock.Anything, mock.MatchedBy(func(rec *AttendanceRecord) bool {
		return rec.DriverID == driverID &&
			rec.GeofenceID != nil && *rec.GeofenceID == fence.ID &&
			rec.Punctuality == PunctualityOnTime &&
			rec.Completion == CompletionPending
	})).Return(nil)

	svc := newTestService(repo, fences, defaultPolicy())

	result, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:       driverID,
		LoginTime:      assigned.Add(3 * time.Minute),
		LoginLatitude:  ptr(insideDepot.Latitude),
		LoginLongitude: ptr(insideDepot.Longitude),
		AssignedTime:   &assigned,
	})

	require.NoError(t, err)
	assert.True(t, result.FenceMatched)
	assert.Equal(t, fence.ID, *result.Record.GeofenceID)
	repo.AssertExpectations(t)
	fences.AssertExpectations(t)
}

func TestCheckInLatePastGrace(t *testing.T) {
	driverID := uuid.New()
	assigned := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	repo := new(mockRepo)
	repo.On("UpsertCheckIn", mock.Anything, mock.MatchedBy(func(rec *AttendanceRecord) bool {
		return rec.Punctuality == PunctualityLate
	})).Return(nil)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	result, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:     driverID,
		LoginTime:    assigned.Add(6 * time.Minute),
		AssignedTime: &assigned,
	})

	require.NoError(t, err)
	assert.Equal(t, PunctualityLate, result.Record.Punctuality)
}

func TestCheckInOutsideFenceProceedsByDefault(t *testing.T) {
	driverID := uuid.New()
	farAway := geo.Coordinate{Latitude: 25.2048, Longitude: 55.2708}

	repo := new(mockRepo)
	fences := new(mockFenceSource)
	fences.On("GetActiveFencesForDriver", mock.Anything, driverID).Return([]geofence.GeoFence{depotFence()}, nil)
	repo.On("UpsertCheckIn", mock.Anything, mock.MatchedBy(func(rec *AttendanceRecord) bool {
		return rec.GeofenceID == nil
	})).Return(nil)

	svc := newTestService(repo, fences, defaultPolicy())

	result, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:       driverID,
		LoginTime:      time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		LoginLatitude:  ptr(farAway.Latitude),
		LoginLongitude: ptr(farAway.Longitude),
	})

	require.NoError(t, err)
	assert.False(t, result.FenceMatched)
	assert.Nil(t, result.Record.GeofenceID)
	repo.AssertExpectations(t)
}

func TestCheckInOutsideFenceRejectedWhenEnforced(t *testing.T) {
	driverID := uuid.New()
	farAway := geo.Coordinate{Latitude: 25.2048, Longitude: 55.2708}

	repo := new(mockRepo)
	fences := new(mockFenceSource)
	fences.On("GetActiveFencesForDriver", mock.Anything, driverID).Return([]geofence.GeoFence{depotFence()}, nil)

	policy := defaultPolicy()
	policy.RequireGeofenceMatch = true
	svc := newTestService(repo, fences, policy)

	_, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:       driverID,
		LoginTime:      time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		LoginLatitude:  ptr(farAway.Latitude),
		LoginLongitude: ptr(farAway.Longitude),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveFence)
	repo.AssertNotCalled(t, "UpsertCheckIn", mock.Anything, mock.Anything)
}

func TestCheckInInvalidCoordinates(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	_, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:       uuid.New(),
		LoginTime:      time.Now(),
		LoginLatitude:  ptr(95.0),
		LoginLongitude: ptr(46.0),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
	repo.AssertNotCalled(t, "UpsertCheckIn", mock.Anything, mock.Anything)
}

func TestCheckInWithoutLocationSkipsMatching(t *testing.T) {
	driverID := uuid.New()

	repo := new(mockRepo)
	fences := new(mockFenceSource)
	repo.On("UpsertCheckIn", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo, fences, defaultPolicy())

	result, err := svc.CheckIn(context.Background(), &CheckInRequest{
		DriverID:  driverID,
		LoginTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Nil(t, result.Record.GeofenceID)
	fences.AssertNotCalled(t, "GetActiveFencesForDriver", mock.Anything, mock.Anything)
}

// ========================================
// TESTS: CheckOut
// ========================================

func existingRecord(driverID uuid.UUID) *AttendanceRecord {
	login := time.Date(2025, 3, 10, 8, 4, 0, 0, time.UTC)
	return &AttendanceRecord{
		ID:          uuid.New(),
		DriverID:    driverID,
		Date:        DateOf(login),
		LoginTime:   &login,
		Punctuality: PunctualityOnTime,
		Completion:  CompletionPending,
	}
}

func TestCheckOutHappyPath(t *testing.T) {
	driverID := uuid.New()
	rec := existingRecord(driverID)
	logout := rec.LoginTime.Add(9 * time.Hour)

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)
	repo.On("SetCheckOut", mock.Anything, mock.MatchedBy(func(r *AttendanceRecord) bool {
		return r.Completion == CompletionLoggedOut && r.LogoutTime != nil && r.LogoutTime.Equal(logout)
	})).Return(nil)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	updated, err := svc.CheckOut(context.Background(), &CheckOutRequest{
		AttendanceRecordID: rec.ID,
		LogoutTime:         logout,
	})

	require.NoError(t, err)
	assert.Equal(t, CompletionLoggedOut, updated.Completion)
	// Punctuality decided at check-in survives check-out.
	assert.Equal(t, PunctualityOnTime, updated.Punctuality)
	repo.AssertExpectations(t)
}

func TestCheckOutTwiceRejected(t *testing.T) {
	driverID := uuid.New()
	rec := existingRecord(driverID)
	logout := rec.LoginTime.Add(9 * time.Hour)
	rec.LogoutTime = &logout
	rec.Completion = CompletionLoggedOut

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	_, err := svc.CheckOut(context.Background(), &CheckOutRequest{
		AttendanceRecordID: rec.ID,
		LogoutTime:         logout.Add(time.Minute),
	})

	require.Error(t, err)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	repo.AssertNotCalled(t, "SetCheckOut", mock.Anything, mock.Anything)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	repo := new(mockRepo)
	missingID := uuid.New()
	repo.On("GetByID", mock.Anything, missingID).Return(nil, ErrRecordNotFound)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	_, err := svc.CheckOut(context.Background(), &CheckOutRequest{
		AttendanceRecordID: missingID,
		LogoutTime:         time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCheckIn)
}

// ========================================
// TESTS: MonthlySummary
// ========================================

func TestMonthlySummaryAggregatesRecords(t *testing.T) {
	driverID := uuid.New()
	records := []AttendanceRecord{
		makeRecord(PunctualityOnTime, CompletionLoggedOut, ""),
		makeRecord(PunctualityLate, CompletionLoggedOut, "10.00"),
	}

	repo := new(mockRepo)
	repo.On("ListForMonth", mock.Anything, driverID, time.March, 2025).Return(records, nil)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	summary, err := svc.MonthlySummary(context.Background(), driverID, time.March, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalWorkingDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.InDelta(t, 50.0, summary.OnTimePercentage, 1e-9)
	assert.Equal(t, 95, summary.AttendanceScore)
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	driverID := uuid.New()

	repo := new(mockRepo)
	repo.On("ListForMonth", mock.Anything, driverID, time.January, 2025).Return(nil, nil)

	svc := newTestService(repo, new(mockFenceSource), defaultPolicy())

	summary, err := svc.MonthlySummary(context.Background(), driverID, time.January, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.OnTimePercentage)
	assert.Equal(t, 0, summary.TotalWorkingDays)
}
