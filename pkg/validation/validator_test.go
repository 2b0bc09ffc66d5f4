package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locationPayload struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

type tripPayload struct {
	PaymentMethod string `validate:"payment_method"`
	Status        string `validate:"trip_status"`
}

func TestLatitudeLongitudeRules(t *testing.T) {
	require.NoError(t, ValidateStruct(locationPayload{Latitude: 24.7136, Longitude: 46.6753}))
	require.NoError(t, ValidateStruct(locationPayload{Latitude: -90, Longitude: 180}))

	assert.Error(t, ValidateStruct(locationPayload{Latitude: 91, Longitude: 0}))
	assert.Error(t, ValidateStruct(locationPayload{Latitude: 0, Longitude: -181}))
}

func TestPaymentMethodRule(t *testing.T) {
	for _, method := range []string{"cash", "card", "wallet"} {
		require.NoError(t, ValidateStruct(tripPayload{PaymentMethod: method, Status: "pending"}))
	}
	assert.Error(t, ValidateStruct(tripPayload{PaymentMethod: "cheque", Status: "pending"}))
}

func TestTripStatusRule(t *testing.T) {
	for _, status := range []string{"pending", "in_progress", "completed", "cancelled", "disputed"} {
		require.NoError(t, ValidateStruct(tripPayload{PaymentMethod: "cash", Status: status}))
	}
	assert.Error(t, ValidateStruct(tripPayload{PaymentMethod: "cash", Status: "done"}))
}
