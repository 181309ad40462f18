package booking

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no booking exists for a reference.
var ErrNotFound = errors.New("booking not found")

// Store persists bookings. Implementations must be safe for concurrent use.
type Store interface {
	// Create saves a new booking. The reference must be unique.
	Create(ctx context.Context, b *Booking) error
	// Get returns the booking for a reference, or ErrNotFound.
	Get(ctx context.Context, reference string) (*Booking, error)
	// List returns all bookings, newest first.
	List(ctx context.Context) ([]*Booking, error)
	// Cancel marks the booking cancelled, returning the updated record.
	Cancel(ctx context.Context, reference string) (*Booking, error)
}
