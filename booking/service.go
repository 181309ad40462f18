package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/agentic-ai/playground/travel"
)

// Request carries everything needed to confirm a reservation.
type Request struct {
	Date         string    `json:"date"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	FlightNumber string    `json:"flight_number"`
	Passenger    Passenger `json:"passenger"`
	SessionID    string    `json:"session_id,omitempty"`
}

// Service books flights against a Store. The zero clock defaults to
// time.Now.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a booking service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Book validates the request, resolves the flight from the inventory for the
// requested route and date, and persists a confirmed booking.
func (s *Service) Book(ctx context.Context, req Request) (*Booking, error) {
	if err := req.Passenger.Validate(); err != nil {
		return nil, err
	}
	if req.FlightNumber == "" {
		return nil, fmt.Errorf("flight number is required")
	}

	date, ok := travel.ParseDate(req.Date)
	if !ok {
		return nil, fmt.Errorf("could not understand travel date %q", req.Date)
	}
	if travel.IsPastDate(date, s.now()) {
		return nil, fmt.Errorf("travel date %s is in the past", date.Format("2006-01-02"))
	}

	origin := travel.AirportCode(req.Origin)
	destination := travel.AirportCode(req.Destination)
	dateStr := date.Format("2006-01-02")

	flight, found := travel.FindFlight(dateStr, origin, destination, req.FlightNumber)
	if !found {
		return nil, fmt.Errorf("no flight %s from %s to %s on %s", req.FlightNumber, origin, destination, dateStr)
	}
	if flight.SeatsAvailable < 1 {
		return nil, fmt.Errorf("flight %s is sold out", flight.FlightNumber)
	}

	b := &Booking{
		Reference: NewReference(),
		Passenger: req.Passenger,
		Flight:    flight,
		AmountINR: flight.PriceINR,
		Status:    StatusConfirmed,
		SessionID: req.SessionID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}
	return b, nil
}

// Lookup returns the booking for a reference.
func (s *Service) Lookup(ctx context.Context, reference string) (*Booking, error) {
	return s.store.Get(ctx, reference)
}

// Cancel cancels an existing booking.
func (s *Service) Cancel(ctx context.Context, reference string) (*Booking, error) {
	return s.store.Cancel(ctx, reference)
}

// List returns all bookings, newest first.
func (s *Service) List(ctx context.Context) ([]*Booking, error) {
	return s.store.List(ctx)
}
