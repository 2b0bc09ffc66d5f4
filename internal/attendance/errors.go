package attendance

import "errors"

var (
	// ErrMissingCheckIn is returned when a check-out references a day with
	// no prior check-in.
	ErrMissingCheckIn = errors.New("no check-in recorded for this date")
	// ErrAlreadyCheckedOut is returned on a second check-out for the same record.
	ErrAlreadyCheckedOut = errors.New("already checked out")
	// ErrNoActiveFence is returned, when enforcement is enabled, for a
	// check-in location outside every authorized zone.
	ErrNoActiveFence = errors.New("location outside all authorized zones")
	// ErrRecordNotFound is returned when an attendance record does not exist.
	ErrRecordNotFound = errors.New("attendance record not found")
)
