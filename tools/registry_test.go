package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func bookingRegistry() *Registry {
	r := NewRegistry()
	r.Register(CurrentTimeDeclaration(), CurrentTimeHandler)
	r.Register(BookFlightDeclaration(), BookFlightHandler)
	r.Register(BookHotelDeclaration(), BookHotelHandler)
	r.Register(BookCabDeclaration(), BookCabHandler)
	r.Register(SelectMealDeclaration(), SelectMealHandler)
	r.Register(ProcessPaymentDeclaration(), ProcessPaymentHandler)
	return r
}

func TestRegistry_Declarations(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()
	assert.Equal(t, 6, r.Len())
	assert.Equal(t, []string{
		"current_time", "book_flight", "book_hotel", "book_cab", "select_meal", "process_payment",
	}, r.Names())

	decls := r.Declarations()
	require.Len(t, decls, 1)
	require.Len(t, decls[0].FunctionDeclarations, 6)
	assert.Equal(t, "current_time", decls[0].FunctionDeclarations[0].Name)
}

func TestRegistry_EmptyDeclarationsNil(t *testing.T) {
	t.Parallel()

	// Agents without tools must hand the Live session a nil tool list
	assert.Nil(t, NewRegistry().Declarations())
}

func TestRegistry_DispatchBookFlight(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()
	resp := r.Dispatch(context.Background(), &genai.FunctionCall{
		ID:   "call-1",
		Name: "book_flight",
		Args: map[string]any{
			"origin":         "NYC",
			"destination":    "LAX",
			"departure_date": "2025-06-01",
		},
	})

	require.NotNil(t, resp)
	assert.Equal(t, "call-1", resp.ID)
	assert.Equal(t, "book_flight", resp.Name)
	assert.Equal(t, "FL-NYCLAX123", resp.Response["flight_id"])
	assert.Equal(t, StatusConfirmed, resp.Response["status"])

	summary, ok := resp.Response["summary"].(string)
	require.True(t, ok)
	assert.Contains(t, summary, "1 passenger(s)")
	assert.Contains(t, summary, "economy class")
}

func TestRegistry_DispatchDecodesJSONNumbers(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()

	// The model's arguments come through JSON decoding: numbers are float64
	resp := r.Dispatch(context.Background(), &genai.FunctionCall{
		Name: "book_hotel",
		Args: map[string]any{
			"city":           "Paris",
			"check_in_date":  "2025-06-01",
			"check_out_date": "2025-06-05",
			"guests":         float64(2),
		},
	})

	summary, ok := resp.Response["summary"].(string)
	require.True(t, ok)
	assert.Contains(t, summary, "2 guest(s)")
	assert.Equal(t, "HT-PAR567", resp.Response["hotel_id"])
}

func TestRegistry_DispatchPayment(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()
	resp := r.Dispatch(context.Background(), &genai.FunctionCall{
		Name: "process_payment",
		Args: map[string]any{
			"booking_ids":    []any{"FL-1", "HT-1"},
			"payment_method": "card",
			"amount":         float64(100),
			"currency":       "USD",
		},
	})

	summary, ok := resp.Response["summary"].(string)
	require.True(t, ok)
	assert.Contains(t, summary, "FL-1, HT-1")
	assert.Contains(t, summary, "100.0 USD")
	assert.Equal(t, StatusConfirmed, resp.Response["status"])
}

func TestRegistry_DispatchCurrentTime(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()
	resp := r.Dispatch(context.Background(), &genai.FunctionCall{Name: "current_time"})

	now, ok := resp.Response["current_time"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, now)
}

func TestRegistry_DispatchUnknownTool(t *testing.T) {
	t.Parallel()

	r := bookingRegistry()
	resp := r.Dispatch(context.Background(), &genai.FunctionCall{ID: "call-9", Name: "reviewOrder"})

	require.NotNil(t, resp)
	assert.Equal(t, "call-9", resp.ID)
	assert.Equal(t, "Unknown function: reviewOrder", resp.Response["error"])
}

func TestRegistry_RegisterTwiceKeepsOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(CurrentTimeDeclaration(), CurrentTimeHandler)
	r.Register(BookFlightDeclaration(), BookFlightHandler)
	r.Register(CurrentTimeDeclaration(), CurrentTimeHandler)

	assert.Equal(t, []string{"current_time", "book_flight"}, r.Names())
	assert.Equal(t, 2, r.Len())
}
