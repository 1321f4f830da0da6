package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// PaymentRequest describes a payment across one or more bookings.
type PaymentRequest struct {
	BookingIDs    []string
	PaymentMethod string
	Amount        float64
	Currency      string // default "SAR"
	CustomerName  string // optional
	Email         string // optional
}

// PaymentConfirmation is the result of a payment.
type PaymentConfirmation struct {
	PaymentID  string
	Status     string
	Amount     float64
	Currency   string
	BookingIDs []string
	Summary    string
}

// ProcessPayment confirms a mock payment for the given bookings. The booking
// ids are taken at face value; nothing verifies they exist.
func ProcessPayment(req PaymentRequest) PaymentConfirmation {
	if req.Currency == "" {
		req.Currency = "SAR"
	}

	paymentID := fmt.Sprintf("PY-%04d", hashMod(strings.Join(req.BookingIDs, ","), 10000))

	var b strings.Builder
	fmt.Fprintf(&b, "Payment of %s %s processed successfully via %s for booking(s): %s. Payment ID: %s.",
		formatAmount(req.Amount), req.Currency, req.PaymentMethod,
		strings.Join(req.BookingIDs, ", "), paymentID)
	if req.CustomerName != "" {
		fmt.Fprintf(&b, " for %s", req.CustomerName)
		if req.Email != "" {
			fmt.Fprintf(&b, " (%s)", req.Email)
		}
	}

	return PaymentConfirmation{
		PaymentID:  paymentID,
		Status:     StatusConfirmed,
		Amount:     req.Amount,
		Currency:   req.Currency,
		BookingIDs: req.BookingIDs,
		Summary:    b.String(),
	}
}

func ProcessPaymentDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "process_payment",
		Description: "Processes payment for bookings and returns payment confirmation.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"booking_ids": {
					Type:        genai.TypeArray,
					Description: "Booking IDs being paid for",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
				"payment_method": {Type: genai.TypeString, Description: "Payment method, e.g. card"},
				"amount":         {Type: genai.TypeNumber, Description: "Payment amount"},
				"currency":       {Type: genai.TypeString, Description: "Currency code, defaults to SAR"},
				"customer_name":  {Type: genai.TypeString, Description: "Customer name, if provided"},
				"email":          {Type: genai.TypeString, Description: "Customer email, if provided"},
			},
			Required: []string{"booking_ids", "payment_method", "amount"},
		},
	}
}

func ProcessPaymentHandler(_ context.Context, args map[string]any) map[string]any {
	c := ProcessPayment(PaymentRequest{
		BookingIDs:    stringsArg(args, "booking_ids"),
		PaymentMethod: stringArg(args, "payment_method", ""),
		Amount:        floatArg(args, "amount", 0),
		Currency:      stringArg(args, "currency", "SAR"),
		CustomerName:  stringArg(args, "customer_name", ""),
		Email:         stringArg(args, "email", ""),
	})
	log.Printf("💳 %s", c.Summary)
	return map[string]any{
		"payment_id":  c.PaymentID,
		"status":      c.Status,
		"amount":      c.Amount,
		"currency":    c.Currency,
		"booking_ids": c.BookingIDs,
		"summary":     c.Summary,
	}
}
