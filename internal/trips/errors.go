package trips

import "errors"

var (
	// ErrInvalidFareComponent is returned for any negative monetary input.
	// Negative values are rejected, never clamped.
	ErrInvalidFareComponent = errors.New("fare component must not be negative")
	// ErrInvalidSurgeMultiplier is returned when the surge multiplier is negative.
	ErrInvalidSurgeMultiplier = errors.New("surge multiplier must not be negative")
	// ErrInvalidCommissionRate is returned when the commission rate is
	// outside 0-100 percent.
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	// ErrTripNotFound is returned when a trip does not exist.
	ErrTripNotFound = errors.New("trip not found")
	// ErrInvalidStatusTransition is returned when a trip cannot move to the
	// requested status.
	ErrInvalidStatusTransition = errors.New("invalid trip status transition")
)
