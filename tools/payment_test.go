package tools

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPayment(t *testing.T) {
	t.Parallel()

	c := ProcessPayment(PaymentRequest{
		BookingIDs:    []string{"FL-1", "HT-1"},
		PaymentMethod: "card",
		Amount:        100.0,
		Currency:      "USD",
	})

	assert.Equal(t, StatusConfirmed, c.Status)
	assert.Contains(t, c.Summary, "FL-1, HT-1")
	assert.Contains(t, c.Summary, "100.0 USD")
	assert.Contains(t, c.Summary, "via card")
	assert.Equal(t, []string{"FL-1", "HT-1"}, c.BookingIDs)
	assert.Regexp(t, `^PY-\d{4}$`, c.PaymentID)
}

func TestProcessPayment_DefaultCurrency(t *testing.T) {
	t.Parallel()

	c := ProcessPayment(PaymentRequest{
		BookingIDs:    []string{"FL-NYCLAX123"},
		PaymentMethod: "card",
		Amount:        249.99,
	})

	assert.Equal(t, "SAR", c.Currency)
	assert.Contains(t, c.Summary, "249.99 SAR")
}

func TestProcessPayment_CustomerDetails(t *testing.T) {
	t.Parallel()

	c := ProcessPayment(PaymentRequest{
		BookingIDs:    []string{"HT-PAR567"},
		PaymentMethod: "apple_pay",
		Amount:        420,
		Currency:      "EUR",
		CustomerName:  "Amira",
		Email:         "amira@example.com",
	})

	assert.Contains(t, c.Summary, "420.0 EUR")
	assert.Contains(t, c.Summary, "for Amira (amira@example.com)")
}

func TestProcessPayment_Idempotent(t *testing.T) {
	t.Parallel()

	req := PaymentRequest{BookingIDs: []string{"FL-1", "HT-1"}, PaymentMethod: "card", Amount: 100}
	require.Equal(t, ProcessPayment(req), ProcessPayment(req))
}

func TestProcessPayment_Permissive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  PaymentRequest
	}{
		{"no bookings", PaymentRequest{PaymentMethod: "card", Amount: 10}},
		{"negative amount", PaymentRequest{BookingIDs: []string{"X"}, PaymentMethod: "card", Amount: -50}},
		{"empty method", PaymentRequest{BookingIDs: []string{"X"}, Amount: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ProcessPayment(tt.req)
			assert.Equal(t, StatusConfirmed, c.Status)
			assert.NotEmpty(t, c.PaymentID)
		})
	}
}

func TestSelectMeal(t *testing.T) {
	t.Parallel()

	c := SelectMeal(MealRequest{
		FlightID: "FL-NYCLAX123",
		MealType: "vegetarian",
	})

	assert.Equal(t, StatusConfirmed, c.Status)
	assert.Equal(t, "FL-NYCLAX123", c.FlightID)
	assert.True(t, strings.HasPrefix(c.MealPreferenceID, "MP-123"), "id %q should embed the flight id tail", c.MealPreferenceID)
	assert.Regexp(t, `^MP-123\d{3}$`, c.MealPreferenceID)
	assert.Contains(t, c.Summary, "vegetarian meal")
	assert.Contains(t, c.Summary, "for flight FL-NYCLAX123")
	assert.Contains(t, c.Summary, fmt.Sprintf("Preference ID: %s.", c.MealPreferenceID))
}

func TestSelectMeal_AllFields(t *testing.T) {
	t.Parallel()

	c := SelectMeal(MealRequest{
		FlightID:            "FL-RIYJED123",
		MealType:            "chicken",
		DietaryRestrictions: "gluten-free",
		SpecialRequests:     "extra water",
		PassengerName:       "Omar",
	})

	assert.Contains(t, c.Summary, "chicken meal (gluten-free)")
	assert.Contains(t, c.Summary, "for Omar")
	assert.Contains(t, c.Summary, "Special request noted: extra water.")
}

func TestSelectMeal_Idempotent(t *testing.T) {
	t.Parallel()

	req := MealRequest{FlightID: "FL-NYCLAX123", MealType: "vegan"}
	require.Equal(t, SelectMeal(req), SelectMeal(req))
}
