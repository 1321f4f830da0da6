package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookFlight_Defaults(t *testing.T) {
	t.Parallel()

	c := BookFlight(FlightRequest{
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureDate: "2025-06-01",
	})

	assert.Equal(t, "FL-NYCLAX123", c.FlightID)
	assert.Equal(t, StatusConfirmed, c.Status)
	assert.Contains(t, c.Summary, "NYC")
	assert.Contains(t, c.Summary, "LAX")
	assert.Contains(t, c.Summary, "2025-06-01")
	assert.Contains(t, c.Summary, "1 passenger(s)")
	assert.Contains(t, c.Summary, "economy class")
	assert.Contains(t, c.Summary, "Booking ID is FL-NYCLAX123.")
	assert.NotContains(t, c.Summary, "Return flight")
}

func TestBookFlight_RoundTrip(t *testing.T) {
	t.Parallel()

	c := BookFlight(FlightRequest{
		Origin:         "Riyadh",
		Destination:    "Jeddah",
		DepartureDate:  "2025-07-10",
		ReturnDate:     "2025-07-20",
		PassengerCount: 4,
		ClassType:      "business",
	})

	assert.Equal(t, "FL-RIYJED123", c.FlightID)
	assert.Contains(t, c.Summary, "Return flight on 2025-07-20.")
	assert.Contains(t, c.Summary, "4 passenger(s)")
	assert.Contains(t, c.Summary, "business class")
}

func TestBookFlight_Idempotent(t *testing.T) {
	t.Parallel()

	req := FlightRequest{Origin: "NYC", Destination: "LAX", DepartureDate: "2025-06-01"}
	first := BookFlight(req)
	second := BookFlight(req)

	assert.Equal(t, first.FlightID, second.FlightID)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestBookFlight_PermissiveInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  FlightRequest
	}{
		{"empty everything", FlightRequest{}},
		{"short city names", FlightRequest{Origin: "A", Destination: "B", DepartureDate: "x"}},
		{"negative passengers", FlightRequest{Origin: "NYC", Destination: "LAX", DepartureDate: "2025-06-01", PassengerCount: -5}},
		{"malformed date", FlightRequest{Origin: "NYC", Destination: "LAX", DepartureDate: "not-a-date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BookFlight(tt.req)
			assert.Equal(t, StatusConfirmed, c.Status)
			assert.NotEmpty(t, c.FlightID)
			assert.NotEmpty(t, c.Summary)
		})
	}
}

func TestBookHotel(t *testing.T) {
	t.Parallel()

	c := BookHotel(HotelRequest{
		City:         "Paris",
		CheckInDate:  "2025-06-01",
		CheckOutDate: "2025-06-05",
		Guests:       2,
	})

	assert.Equal(t, "HT-PAR567", c.HotelID)
	assert.Equal(t, StatusConfirmed, c.Status)
	assert.Contains(t, c.Summary, "2025-06-01")
	assert.Contains(t, c.Summary, "2025-06-05")
	assert.Contains(t, c.Summary, "2 guest(s)")
	assert.Contains(t, c.Summary, "3-star hotel booked in Paris")
}

func TestBookHotel_TypeCapitalized(t *testing.T) {
	t.Parallel()

	c := BookHotel(HotelRequest{
		City:         "Munich",
		CheckInDate:  "2025-08-01",
		CheckOutDate: "2025-08-03",
		HotelType:    "deluxe",
	})

	assert.Contains(t, c.Summary, "Deluxe hotel booked in Munich")
	assert.Contains(t, c.Summary, "1 guest(s)")
}

func TestBookHotel_Idempotent(t *testing.T) {
	t.Parallel()

	req := HotelRequest{City: "Paris", CheckInDate: "2025-06-01", CheckOutDate: "2025-06-05", Guests: 2}
	require.Equal(t, BookHotel(req), BookHotel(req))
}

func TestBookCab(t *testing.T) {
	t.Parallel()

	c := BookCab(CabRequest{
		City:            "Dubai",
		PickupLocation:  "Dubai International Airport",
		DropoffLocation: "Burj Khalifa",
		PickupTime:      "18:30",
		Passengers:      3,
		CabType:         "premium",
	})

	assert.Equal(t, "CB-DUB830", c.CabID)
	assert.Equal(t, StatusConfirmed, c.Status)
	assert.Contains(t, c.Summary, "Premium cab booked in Dubai")
	assert.Contains(t, c.Summary, "from Dubai International Airport to Burj Khalifa")
	assert.Contains(t, c.Summary, "at 18:30 for 3 passenger(s)")
}

func TestBookCab_Defaults(t *testing.T) {
	t.Parallel()

	c := BookCab(CabRequest{
		City:            "Cairo",
		PickupLocation:  "Hotel",
		DropoffLocation: "Cairo Airport",
		PickupTime:      "07:15",
	})

	assert.Equal(t, "CB-CAI715", c.CabID)
	assert.Contains(t, c.Summary, "Standard cab")
	assert.Contains(t, c.Summary, "1 passenger(s)")
}

func TestBookCab_ShortPickupTime(t *testing.T) {
	t.Parallel()

	// Pickup time shorter than four characters must not panic
	c := BookCab(CabRequest{City: "Doha", PickupTime: "9"})
	assert.Equal(t, "CB-DOH9", c.CabID)
	assert.Equal(t, StatusConfirmed, c.Status)
}
