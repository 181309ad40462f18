package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentic-ai/playground/booking"
	"github.com/agentic-ai/playground/tools"
)

// BookingTool confirms a reservation for a flight the user has picked from
// earlier search results.
type BookingTool struct {
	svc *booking.Service
}

// NewBookingTool creates the book_flight tool on top of a booking service.
func NewBookingTool(svc *booking.Service) *BookingTool {
	return &BookingTool{svc: svc}
}

func (t *BookingTool) Name() string {
	return "book_flight"
}

func (t *BookingTool) Description() string {
	return "Book a specific flight for a passenger. Use this only after the user has chosen a flight number from search results and provided their name, email, and phone number."
}

func (t *BookingTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The travel date",
			},
			"origin": map[string]interface{}{
				"type":        "string",
				"description": "The departure city or airport code",
			},
			"destination": map[string]interface{}{
				"type":        "string",
				"description": "The arrival city or airport code",
			},
			"flight_number": map[string]interface{}{
				"type":        "string",
				"description": "The flight number chosen by the user, e.g. 6E110",
			},
			"passenger_name": map[string]interface{}{
				"type":        "string",
				"description": "Full name of the passenger",
			},
			"passenger_email": map[string]interface{}{
				"type":        "string",
				"description": "Email address for the booking confirmation",
			},
			"passenger_phone": map[string]interface{}{
				"type":        "string",
				"description": "Phone number for the booking confirmation",
			},
			"passenger_age": map[string]interface{}{
				"type":        "integer",
				"description": "Passenger age in years",
			},
			"id_type": map[string]interface{}{
				"type":        "string",
				"description": "ID document type: Aadhaar, PAN Card, or Passport",
			},
			"id_number": map[string]interface{}{
				"type":        "string",
				"description": "ID document number",
			},
		},
		"required": []string{"date", "origin", "destination", "flight_number", "passenger_name", "passenger_email", "passenger_phone"},
	}
}

// Execute implements tools.Tool.
func (t *BookingTool) Execute(ctx context.Context, input string) (string, error) {
	res, err := t.ExecuteData(ctx, input)
	return res.Output, err
}

// ExecuteData implements tools.DataTool. Booking failures that the user can
// fix (bad details, sold out, past date) come back as text so the model can
// relay them instead of aborting the run.
func (t *BookingTool) ExecuteData(ctx context.Context, input string) (tools.Result, error) {
	var args struct {
		Date           string `json:"date"`
		Origin         string `json:"origin"`
		Destination    string `json:"destination"`
		FlightNumber   string `json:"flight_number"`
		PassengerName  string `json:"passenger_name"`
		PassengerEmail string `json:"passenger_email"`
		PassengerPhone string `json:"passenger_phone"`
		PassengerAge   int    `json:"passenger_age"`
		Gender         string `json:"gender"`
		IDType         string `json:"id_type"`
		IDNumber       string `json:"id_number"`
		SessionID      string `json:"session_id"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return tools.Result{}, fmt.Errorf("invalid booking arguments: %w", err)
	}

	b, err := t.svc.Book(ctx, booking.Request{
		Date:         args.Date,
		Origin:       args.Origin,
		Destination:  args.Destination,
		FlightNumber: args.FlightNumber,
		SessionID:    args.SessionID,
		Passenger: booking.Passenger{
			Name:     args.PassengerName,
			Email:    args.PassengerEmail,
			Phone:    args.PassengerPhone,
			Age:      args.PassengerAge,
			Gender:   args.Gender,
			IDType:   args.IDType,
			IDNumber: args.IDNumber,
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return tools.Result{}, err
		}
		return tools.Result{
			Output: fmt.Sprintf("The booking could not be completed: %s. Please correct the details and try again.", err),
			Kind:   "error",
		}, nil
	}

	return tools.Result{Output: b.Summary(), Kind: "booking", Data: b}, nil
}

var _ tools.DataTool = (*BookingTool)(nil)
