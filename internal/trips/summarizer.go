package trips

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summarize aggregates a driver's trips for a period. All trips count toward
// totals; only completed trips contribute to earnings, distance and duration
// sums. Pure and deterministic: the same trip set always yields the same
// summary.
func Summarize(driverID uuid.UUID, periodStart, periodEnd time.Time, trips []Trip) EarningsSummary {
	summary := EarningsSummary{
		DriverID:            driverID,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		TotalEarnings:       decimal.Zero,
		TotalTips:           decimal.Zero,
		AverageTripEarnings: decimal.Zero,
		CashEarnings:        decimal.Zero,
		DigitalEarnings:     decimal.Zero,
	}

	for i := range trips {
		trip := &trips[i]
		summary.TotalTrips++

		switch trip.Status {
		case TripStatusCancelled:
			summary.CancelledTrips++
			continue
		case TripStatusCompleted:
		default:
			continue
		}

		summary.CompletedTrips++
		summary.TotalEarnings = summary.TotalEarnings.Add(trip.DriverEarnings)
		summary.TotalTips = summary.TotalTips.Add(trip.TipAmount)
		summary.TotalDistanceKm += trip.DistanceKm
		summary.TotalDurationMinutes += trip.DurationMinutes

		if trip.PaymentMethod.Cash() {
			summary.CashTrips++
			summary.CashEarnings = summary.CashEarnings.Add(trip.DriverEarnings)
		} else {
			summary.DigitalTrips++
			summary.DigitalEarnings = summary.DigitalEarnings.Add(trip.DriverEarnings)
		}
	}

	if summary.CompletedTrips > 0 {
		count := decimal.NewFromInt(int64(summary.CompletedTrips))
		summary.AverageTripEarnings = summary.TotalEarnings.Div(count).Round(moneyPrecision)
		summary.AverageTripDistance = summary.TotalDistanceKm / float64(summary.CompletedTrips)
	}

	return summary
}
