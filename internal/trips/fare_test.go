package trips

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func referenceFare() Fare {
	return Fare{
		BaseFare:        dec("3.00"),
		DistanceFare:    dec("12.50"),
		TimeFare:        dec("2.25"),
		WaitingCharges:  dec("1.00"),
		SurgeMultiplier: dec("1.0"),
		CommissionRate:  dec("15"),
		TipAmount:       dec("2.00"),
	}
}

func TestFareCompute(t *testing.T) {
	fare := referenceFare()
	breakdown, err := fare.Compute()
	require.NoError(t, err)

	assert.True(t, breakdown.TotalFare.Equal(dec("18.75")), "total fare, got %s", breakdown.TotalFare)
	// 18.75 * 15% = 2.8125, rounds to 2.81
	assert.True(t, breakdown.CommissionAmount.Equal(dec("2.81")), "commission, got %s", breakdown.CommissionAmount)
	// 18.75 - 2.81 + 2.00 tip
	assert.True(t, breakdown.DriverEarnings.Equal(dec("17.94")), "earnings, got %s", breakdown.DriverEarnings)
}

func TestFareComputeSurge(t *testing.T) {
	fare := referenceFare()
	fare.SurgeMultiplier = dec("1.5")

	breakdown, err := fare.Compute()
	require.NoError(t, err)

	assert.True(t, breakdown.TotalFare.Equal(dec("28.13")), "18.75 * 1.5 = 28.125 rounds to 28.13, got %s", breakdown.TotalFare)
}

func TestFareComputeZeroCommission(t *testing.T) {
	fare := referenceFare()
	fare.CommissionRate = decimal.Zero
	fare.TipAmount = decimal.Zero

	breakdown, err := fare.Compute()
	require.NoError(t, err)

	assert.True(t, breakdown.CommissionAmount.IsZero())
	assert.True(t, breakdown.DriverEarnings.Equal(breakdown.TotalFare))
}

func TestFareComputeStableOnRecompute(t *testing.T) {
	firstFare := referenceFare()
	first, err := firstFare.Compute()
	require.NoError(t, err)

	// Feeding the same inputs back through must not drift the money.
	secondFare := referenceFare()
	second, err := secondFare.Compute()
	require.NoError(t, err)

	assert.True(t, first.TotalFare.Equal(second.TotalFare))
	assert.True(t, first.CommissionAmount.Equal(second.CommissionAmount))
	assert.True(t, first.DriverEarnings.Equal(second.DriverEarnings))
}

func TestFareValidateNegativeComponents(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Fare)
	}{
		{"base_fare", func(f *Fare) { f.BaseFare = dec("-0.01") }},
		{"distance_fare", func(f *Fare) { f.DistanceFare = dec("-1") }},
		{"time_fare", func(f *Fare) { f.TimeFare = dec("-1") }},
		{"waiting_charges", func(f *Fare) { f.WaitingCharges = dec("-1") }},
		{"toll_charges", func(f *Fare) { f.TollCharges = dec("-1") }},
		{"parking_charges", func(f *Fare) { f.ParkingCharges = dec("-1") }},
		{"additional_charges", func(f *Fare) { f.AdditionalCharges = dec("-1") }},
		{"tip_amount", func(f *Fare) { f.TipAmount = dec("-1") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fare := referenceFare()
			tc.mutate(&fare)

			_, err := fare.Compute()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFareComponent))
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestFareValidateSurgeAndRate(t *testing.T) {
	fare := referenceFare()
	fare.SurgeMultiplier = dec("-0.5")
	_, err := fare.Compute()
	assert.ErrorIs(t, err, ErrInvalidSurgeMultiplier)

	fare = referenceFare()
	fare.CommissionRate = dec("100.01")
	_, err = fare.Compute()
	assert.ErrorIs(t, err, ErrInvalidCommissionRate)

	fare = referenceFare()
	fare.CommissionRate = dec("-1")
	_, err = fare.Compute()
	assert.ErrorIs(t, err, ErrInvalidCommissionRate)

	fare = referenceFare()
	fare.CommissionRate = dec("100")
	_, err = fare.Compute()
	assert.NoError(t, err, "100 percent is the inclusive upper bound")
}

func TestTripFareExtraction(t *testing.T) {
	trip := Trip{
		BaseFare:              dec("3.00"),
		DistanceFare:          dec("12.50"),
		TimeFare:              dec("2.25"),
		WaitingCharges:        dec("1.00"),
		SurgeMultiplier:       dec("1.0"),
		CommissionRatePercent: dec("15"),
		TipAmount:             dec("2.00"),
		// Stale derived values must not influence the recompute.
		TotalFare:        dec("999"),
		CommissionAmount: dec("999"),
		DriverEarnings:   dec("999"),
	}

	fare := trip.Fare()
	breakdown, err := fare.Compute()
	require.NoError(t, err)
	assert.True(t, breakdown.TotalFare.Equal(dec("18.75")))
	assert.True(t, breakdown.DriverEarnings.Equal(dec("17.94")))
}
