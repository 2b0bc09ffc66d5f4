package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxAttendanceScore = 100
	latePenalty        = 5
	absentPenalty      = 10
)

// Summarize rolls a driver's attendance records for one month into a
// MonthlySummary. Pure computation: the caller loads the records and persists
// or caches the result.
func Summarize(driverID uuid.UUID, month time.Month, year int, records []AttendanceRecord) MonthlySummary {
	summary := MonthlySummary{
		DriverID:        driverID,
		Month:           month,
		Year:            year,
		TotalDeductions: decimal.Zero,
	}

	onTimeDays := 0
	for i := range records {
		rec := &records[i]
		summary.TotalWorkingDays++

		if rec.Present() {
			summary.PresentDays++
		} else {
			summary.AbsentDays++
		}
		switch rec.Punctuality {
		case PunctualityLate:
			summary.LateDays++
		case PunctualityOnTime:
			onTimeDays++
		}

		if rec.DeductionAmount != nil {
			summary.TotalDeductions = summary.TotalDeductions.Add(*rec.DeductionAmount)
		}
	}

	if summary.TotalWorkingDays > 0 {
		summary.OnTimePercentage = float64(onTimeDays) / float64(summary.TotalWorkingDays) * 100
	}

	score := maxAttendanceScore - summary.LateDays*latePenalty - summary.AbsentDays*absentPenalty
	if score < 0 {
		score = 0
	}
	summary.AttendanceScore = score

	return summary
}
