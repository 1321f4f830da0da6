package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Mock booking formatters. Each one is a pure function: it builds a cosmetic
// booking id and a spoken-style summary from its arguments and always confirms.
// Nothing is validated or stored; the model carries ids between calls itself.

// FlightRequest describes a flight booking request.
type FlightRequest struct {
	Origin         string
	Destination    string
	DepartureDate  string
	ReturnDate     string // optional
	PassengerCount int    // default 1
	ClassType      string // default "economy"
}

// FlightConfirmation is the result of a flight booking.
type FlightConfirmation struct {
	FlightID string
	Status   string
	Summary  string
}

// BookFlight books a mock flight and returns a flight summary.
func BookFlight(req FlightRequest) FlightConfirmation {
	if req.PassengerCount == 0 {
		req.PassengerCount = 1
	}
	if req.ClassType == "" {
		req.ClassType = "economy"
	}

	flightID := fmt.Sprintf("FL-%s%s123", cityCode(req.Origin), cityCode(req.Destination))

	var b strings.Builder
	fmt.Fprintf(&b, "Flight booked from %s to %s on %s for %d passenger(s) in %s class. ",
		req.Origin, req.Destination, req.DepartureDate, req.PassengerCount, req.ClassType)
	if req.ReturnDate != "" {
		fmt.Fprintf(&b, "Return flight on %s. ", req.ReturnDate)
	}
	fmt.Fprintf(&b, "Booking ID is %s.", flightID)

	return FlightConfirmation{
		FlightID: flightID,
		Status:   StatusConfirmed,
		Summary:  b.String(),
	}
}

func BookFlightDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "book_flight",
		Description: "Books a mock flight and returns flight summary.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"origin":          {Type: genai.TypeString, Description: "Departure city"},
				"destination":     {Type: genai.TypeString, Description: "Arrival city"},
				"departure_date":  {Type: genai.TypeString, Description: "Departure date, e.g. 2025-06-01"},
				"return_date":     {Type: genai.TypeString, Description: "Return date, omit for one-way"},
				"passenger_count": {Type: genai.TypeInteger, Description: "Number of passengers, defaults to 1"},
				"class_type":      {Type: genai.TypeString, Description: "Cabin class, defaults to economy"},
			},
			Required: []string{"origin", "destination", "departure_date"},
		},
	}
}

func BookFlightHandler(_ context.Context, args map[string]any) map[string]any {
	c := BookFlight(FlightRequest{
		Origin:         stringArg(args, "origin", ""),
		Destination:    stringArg(args, "destination", ""),
		DepartureDate:  stringArg(args, "departure_date", ""),
		ReturnDate:     stringArg(args, "return_date", ""),
		PassengerCount: intArg(args, "passenger_count", 1),
		ClassType:      stringArg(args, "class_type", "economy"),
	})
	log.Printf("✈️ %s", c.Summary)
	return map[string]any{
		"flight_id": c.FlightID,
		"status":    c.Status,
		"summary":   c.Summary,
	}
}

// HotelRequest describes a hotel booking request.
type HotelRequest struct {
	City         string
	CheckInDate  string
	CheckOutDate string
	Guests       int    // default 1
	HotelType    string // default "3-star"
}

// HotelConfirmation is the result of a hotel booking.
type HotelConfirmation struct {
	HotelID string
	Status  string
	Summary string
}

// BookHotel books a mock hotel and returns a hotel summary.
func BookHotel(req HotelRequest) HotelConfirmation {
	if req.Guests == 0 {
		req.Guests = 1
	}
	if req.HotelType == "" {
		req.HotelType = "3-star"
	}

	hotelID := fmt.Sprintf("HT-%s567", cityCode(req.City))
	summary := fmt.Sprintf("%s hotel booked in %s from %s to %s for %d guest(s). Booking ID is %s.",
		capitalize(req.HotelType), req.City, req.CheckInDate, req.CheckOutDate, req.Guests, hotelID)

	return HotelConfirmation{
		HotelID: hotelID,
		Status:  StatusConfirmed,
		Summary: summary,
	}
}

func BookHotelDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "book_hotel",
		Description: "Books a mock hotel and returns hotel summary.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"city":           {Type: genai.TypeString, Description: "City of the hotel"},
				"check_in_date":  {Type: genai.TypeString, Description: "Check-in date"},
				"check_out_date": {Type: genai.TypeString, Description: "Check-out date"},
				"guests":         {Type: genai.TypeInteger, Description: "Number of guests, defaults to 1"},
				"hotel_type":     {Type: genai.TypeString, Description: "Hotel category, defaults to 3-star"},
			},
			Required: []string{"city", "check_in_date", "check_out_date"},
		},
	}
}

func BookHotelHandler(_ context.Context, args map[string]any) map[string]any {
	c := BookHotel(HotelRequest{
		City:         stringArg(args, "city", ""),
		CheckInDate:  stringArg(args, "check_in_date", ""),
		CheckOutDate: stringArg(args, "check_out_date", ""),
		Guests:       intArg(args, "guests", 1),
		HotelType:    stringArg(args, "hotel_type", "3-star"),
	})
	log.Printf("🏨 %s", c.Summary)
	return map[string]any{
		"hotel_id": c.HotelID,
		"status":   c.Status,
		"summary":  c.Summary,
	}
}

// CabRequest describes an intracity cab booking request.
type CabRequest struct {
	City            string
	PickupLocation  string
	DropoffLocation string
	PickupTime      string
	Passengers      int    // default 1
	CabType         string // default "standard"
}

// CabConfirmation is the result of a cab booking.
type CabConfirmation struct {
	CabID   string
	Status  string
	Summary string
}

// BookCab books a mock cab for intracity travel and returns a summary.
func BookCab(req CabRequest) CabConfirmation {
	if req.Passengers == 0 {
		req.Passengers = 1
	}
	if req.CabType == "" {
		req.CabType = "standard"
	}

	cabID := fmt.Sprintf("CB-%s%s", cityCode(req.City),
		strings.ReplaceAll(tail(req.PickupTime, 4), ":", ""))
	summary := fmt.Sprintf("%s cab booked in %s from %s to %s at %s for %d passenger(s). Booking ID is %s.",
		capitalize(req.CabType), req.City, req.PickupLocation, req.DropoffLocation,
		req.PickupTime, req.Passengers, cabID)

	return CabConfirmation{
		CabID:   cabID,
		Status:  StatusConfirmed,
		Summary: summary,
	}
}

func BookCabDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "book_cab",
		Description: "Books a mock cab for intracity travel and returns cab booking summary.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"city":             {Type: genai.TypeString, Description: "City of the trip"},
				"pickup_location":  {Type: genai.TypeString, Description: "Pickup location"},
				"dropoff_location": {Type: genai.TypeString, Description: "Drop-off location"},
				"pickup_time":      {Type: genai.TypeString, Description: "Pickup time, e.g. 18:30"},
				"passengers":       {Type: genai.TypeInteger, Description: "Number of passengers, defaults to 1"},
				"cab_type":         {Type: genai.TypeString, Description: "Cab category, defaults to standard"},
			},
			Required: []string{"city", "pickup_location", "dropoff_location", "pickup_time"},
		},
	}
}

func BookCabHandler(_ context.Context, args map[string]any) map[string]any {
	c := BookCab(CabRequest{
		City:            stringArg(args, "city", ""),
		PickupLocation:  stringArg(args, "pickup_location", ""),
		DropoffLocation: stringArg(args, "dropoff_location", ""),
		PickupTime:      stringArg(args, "pickup_time", ""),
		Passengers:      intArg(args, "passengers", 1),
		CabType:         stringArg(args, "cab_type", "standard"),
	})
	log.Printf("🚕 %s", c.Summary)
	return map[string]any{
		"cab_id":  c.CabID,
		"status":  c.Status,
		"summary": c.Summary,
	}
}
