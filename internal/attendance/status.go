package attendance

import "time"

// ResolvePunctuality decides the punctuality of a check-in. With an assigned
// time, a login within the grace window (inclusive) is on time and anything
// later is late. Without an assigned time any login is on time. A nil login
// means the driver never showed up.
func ResolvePunctuality(loginTime, assignedTime *time.Time, grace time.Duration) Punctuality {
	if loginTime == nil {
		return PunctualityAbsent
	}
	if assignedTime == nil {
		return PunctualityOnTime
	}

	deadline := assignedTime.Add(grace)
	if loginTime.After(deadline) {
		return PunctualityLate
	}
	return PunctualityOnTime
}
