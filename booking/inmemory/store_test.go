package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agentic-ai/playground/booking"
	"github.com/agentic-ai/playground/travel"
)

func sample(ref string, created time.Time) *booking.Booking {
	return &booking.Booking{
		Reference: ref,
		Passenger: booking.Passenger{Name: "Priya Sharma", Email: "priya@example.com", Phone: "+91 98765 43210"},
		Flight:    travel.Flight{Airline: "IndiGo", FlightNumber: "6E110", Origin: "DEL", Destination: "GOI"},
		AmountINR: 4500,
		Status:    booking.StatusConfirmed,
		CreatedAt: created,
	}
}

func TestStoreCreateGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := sample("PG-AAAA1111", time.Now())
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create(ctx, b); err == nil {
		t.Error("expected duplicate create to fail")
	}

	got, err := s.Get(ctx, "PG-AAAA1111")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Passenger.Name != "Priya Sharma" {
		t.Errorf("unexpected passenger: %s", got.Passenger.Name)
	}

	// The store must hand out copies, not aliases.
	got.Status = "mutated"
	again, _ := s.Get(ctx, "PG-AAAA1111")
	if again.Status != booking.StatusConfirmed {
		t.Errorf("store returned aliased booking, status = %s", again.Status)
	}

	if _, err := s.Get(ctx, "PG-MISSING1"); !errors.Is(err, booking.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	for i, ref := range []string{"PG-AAAA0001", "PG-AAAA0002", "PG-AAAA0003"} {
		if err := s.Create(ctx, sample(ref, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(got))
	}
	if got[0].Reference != "PG-AAAA0003" || got[2].Reference != "PG-AAAA0001" {
		t.Errorf("expected newest first, got %s .. %s", got[0].Reference, got[2].Reference)
	}
}

func TestStoreCancel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.Create(ctx, sample("PG-AAAA1111", time.Now())); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	b, err := s.Cancel(ctx, "PG-AAAA1111")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if b.Status != booking.StatusCancelled {
		t.Errorf("expected cancelled, got %s", b.Status)
	}

	got, _ := s.Get(ctx, "PG-AAAA1111")
	if got.Status != booking.StatusCancelled {
		t.Errorf("cancel not persisted, status = %s", got.Status)
	}

	if _, err := s.Cancel(ctx, "PG-MISSING1"); !errors.Is(err, booking.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
