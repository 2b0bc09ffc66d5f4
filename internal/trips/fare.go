package trips

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyPrecision is the fixed-point scale for all monetary amounts.
const moneyPrecision = 2

// Fare holds the caller-supplied fare inputs for one trip.
type Fare struct {
	BaseFare          decimal.Decimal
	DistanceFare      decimal.Decimal
	TimeFare          decimal.Decimal
	WaitingCharges    decimal.Decimal
	TollCharges       decimal.Decimal
	ParkingCharges    decimal.Decimal
	AdditionalCharges decimal.Decimal
	SurgeMultiplier   decimal.Decimal
	CommissionRate    decimal.Decimal // percent, 0-100
	TipAmount         decimal.Decimal
}

// FareBreakdown is the derived money for one trip. These three values are
// recomputed on every persist and never accepted from callers.
type FareBreakdown struct {
	TotalFare        decimal.Decimal `json:"total_fare"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	DriverEarnings   decimal.Decimal `json:"driver_earnings"`
}

// Fare extracts the fare inputs from a trip so the derived money can be
// recomputed before any persist.
func (t *Trip) Fare() Fare {
	return Fare{
		BaseFare:          t.BaseFare,
		DistanceFare:      t.DistanceFare,
		TimeFare:          t.TimeFare,
		WaitingCharges:    t.WaitingCharges,
		TollCharges:       t.TollCharges,
		ParkingCharges:    t.ParkingCharges,
		AdditionalCharges: t.AdditionalCharges,
		SurgeMultiplier:   t.SurgeMultiplier,
		CommissionRate:    t.CommissionRatePercent,
		TipAmount:         t.TipAmount,
	}
}

// Validate rejects negative monetary inputs and out-of-range rates.
func (f *Fare) Validate() error {
	components := []struct {
		name  string
		value decimal.Decimal
	}{
		{"base_fare", f.BaseFare},
		{"distance_fare", f.DistanceFare},
		{"time_fare", f.TimeFare},
		{"waiting_charges", f.WaitingCharges},
		{"toll_charges", f.TollCharges},
		{"parking_charges", f.ParkingCharges},
		{"additional_charges", f.AdditionalCharges},
		{"tip_amount", f.TipAmount},
	}
	for _, c := range components {
		if c.value.IsNegative() {
			return fmt.Errorf("%s: %w", c.name, ErrInvalidFareComponent)
		}
	}

	if f.SurgeMultiplier.IsNegative() {
		return ErrInvalidSurgeMultiplier
	}
	if f.CommissionRate.IsNegative() || f.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidCommissionRate
	}

	return nil
}

// Compute derives the total fare, platform commission and driver take-home
// pay. All intermediate math stays in fixed-point decimals; results are
// rounded to 2 decimal places, so repeated save/recompute cycles cannot drift.
func (f *Fare) Compute() (FareBreakdown, error) {
	if err := f.Validate(); err != nil {
		return FareBreakdown{}, err
	}

	baseTotal := f.BaseFare.
		Add(f.DistanceFare).
		Add(f.TimeFare).
		Add(f.WaitingCharges).
		Add(f.TollCharges).
		Add(f.ParkingCharges).
		Add(f.AdditionalCharges)

	totalFare := baseTotal.Mul(f.SurgeMultiplier).Round(moneyPrecision)
	commission := totalFare.Mul(f.CommissionRate).Div(decimal.NewFromInt(100)).Round(moneyPrecision)
	earnings := totalFare.Sub(commission).Add(f.TipAmount).Round(moneyPrecision)

	return FareBreakdown{
		TotalFare:        totalFare,
		CommissionAmount: commission,
		DriverEarnings:   earnings,
	}, nil
}
