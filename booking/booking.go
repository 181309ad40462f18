// Package booking records confirmed flight reservations. A booking pairs
// passenger details with a snapshot of the chosen flight so later lookups do
// not depend on the synthetic inventory regenerating identically.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentic-ai/playground/travel"
	"github.com/google/uuid"
)

// Status values for a booking.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Accepted passenger ID document types.
var idTypes = map[string]bool{
	"aadhaar":  true,
	"pan card": true,
	"passport": true,
}

// Passenger holds the traveller details collected at booking time.
type Passenger struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	IDType   string `json:"id_type,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

// Validate reports the first problem with the passenger details.
func (p Passenger) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("passenger name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("passenger email is required")
	}
	if !strings.Contains(p.Email, "@") {
		return fmt.Errorf("invalid email address: %s", p.Email)
	}
	if strings.TrimSpace(p.Phone) == "" {
		return errors.New("passenger phone number is required")
	}
	if p.Age != 0 && (p.Age < 1 || p.Age > 120) {
		return fmt.Errorf("invalid passenger age: %d", p.Age)
	}
	if p.IDType != "" && !idTypes[strings.ToLower(p.IDType)] {
		return fmt.Errorf("unsupported ID type: %s (use Aadhaar, PAN Card, or Passport)", p.IDType)
	}
	return nil
}

// Booking is a confirmed reservation for one passenger on one flight.
type Booking struct {
	Reference string        `json:"reference"`
	Passenger Passenger     `json:"passenger"`
	Flight    travel.Flight `json:"flight"`
	AmountINR int           `json:"amount_inr"`
	Status    string        `json:"status"`
	SessionID string        `json:"session_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewReference returns a short booking reference like "PG-7F3A2C1B".
func NewReference() string {
	id := uuid.NewString()
	return "PG-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// Summary renders the booking the way a confirmation message reads.
func (b Booking) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking confirmed for %s!\n", b.Passenger.Name)
	fmt.Fprintf(&sb, "Reference: %s\n", b.Reference)
	fmt.Fprintf(&sb, "Flight: %s %s\n", b.Flight.Airline, b.Flight.FlightNumber)
	fmt.Fprintf(&sb, "Route: %s to %s\n", b.Flight.Origin, b.Flight.Destination)
	fmt.Fprintf(&sb, "Date: %s\n", b.Flight.DepartureDate)
	fmt.Fprintf(&sb, "Time: %s\n", b.Flight.DepartureTime)
	fmt.Fprintf(&sb, "Amount Paid: %s\n", travel.FormatINR(float64(b.AmountINR)))
	sb.WriteString("Booking details have been sent to your email and phone.")
	return sb.String()
}
