package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// MealRequest describes a meal preference for a booked flight.
type MealRequest struct {
	FlightID            string
	MealType            string
	DietaryRestrictions string // optional
	SpecialRequests     string // optional
	PassengerName       string // optional
}

// MealConfirmation is the result of a meal selection.
type MealConfirmation struct {
	MealPreferenceID string
	FlightID         string
	Status           string
	Summary          string
}

// SelectMeal records a meal preference for a flight and returns a confirmation.
// The flight id is not checked against anything; whatever the caller passes is
// echoed back.
func SelectMeal(req MealRequest) MealConfirmation {
	prefID := fmt.Sprintf("MP-%s%03d", tail(req.FlightID, 3), hashMod(req.MealType, 1000))

	mealSummary := req.MealType + " meal"
	if req.DietaryRestrictions != "" {
		mealSummary += " (" + req.DietaryRestrictions + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Meal preference set to %s for flight %s", mealSummary, req.FlightID)
	if req.PassengerName != "" {
		fmt.Fprintf(&b, " for %s", req.PassengerName)
	}
	fmt.Fprintf(&b, ". Preference ID: %s.", prefID)
	if req.SpecialRequests != "" {
		fmt.Fprintf(&b, " Special request noted: %s.", req.SpecialRequests)
	}

	return MealConfirmation{
		MealPreferenceID: prefID,
		FlightID:         req.FlightID,
		Status:           StatusConfirmed,
		Summary:          b.String(),
	}
}

func SelectMealDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "select_meal",
		Description: "Selects meal preferences for a flight and returns confirmation.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"flight_id":            {Type: genai.TypeString, Description: "Flight booking ID the meal is for"},
				"meal_type":            {Type: genai.TypeString, Description: "Meal choice, e.g. vegetarian, chicken"},
				"dietary_restrictions": {Type: genai.TypeString, Description: "Dietary restrictions, if any"},
				"special_requests":     {Type: genai.TypeString, Description: "Special requests, if any"},
				"passenger_name":       {Type: genai.TypeString, Description: "Passenger the meal is for"},
			},
			Required: []string{"flight_id", "meal_type"},
		},
	}
}

func SelectMealHandler(_ context.Context, args map[string]any) map[string]any {
	c := SelectMeal(MealRequest{
		FlightID:            stringArg(args, "flight_id", ""),
		MealType:            stringArg(args, "meal_type", ""),
		DietaryRestrictions: stringArg(args, "dietary_restrictions", ""),
		SpecialRequests:     stringArg(args, "special_requests", ""),
		PassengerName:       stringArg(args, "passenger_name", ""),
	})
	log.Printf("🍽️ %s", c.Summary)
	return map[string]any{
		"meal_preference_id":   c.MealPreferenceID,
		"flight_id":            c.FlightID,
		"meal_type":            stringArg(args, "meal_type", ""),
		"dietary_restrictions": stringArg(args, "dietary_restrictions", ""),
		"special_requests":     stringArg(args, "special_requests", ""),
		"status":               c.Status,
		"summary":              c.Summary,
	}
}
