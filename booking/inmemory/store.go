// Package inmemory provides a map-backed booking store for development and
// tests.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agentic-ai/playground/booking"
)

// Store keeps bookings in process memory.
type Store struct {
	mu   sync.RWMutex
	byRef map[string]*booking.Booking
}

// NewStore creates an empty in-memory booking store.
func NewStore() *Store {
	return &Store{byRef: make(map[string]*booking.Booking)}
}

// Create implements booking.Store.
func (s *Store) Create(ctx context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byRef[b.Reference]; exists {
		return fmt.Errorf("booking %s already exists", b.Reference)
	}
	cp := *b
	s.byRef[b.Reference] = &cp
	return nil
}

// Get implements booking.Store.
func (s *Store) Get(ctx context.Context, reference string) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.byRef[reference]
	if !exists {
		return nil, booking.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

// List implements booking.Store.
func (s *Store) List(ctx context.Context) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*booking.Booking, 0, len(s.byRef))
	for _, b := range s.byRef {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Cancel implements booking.Store.
func (s *Store) Cancel(ctx context.Context, reference string) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.byRef[reference]
	if !exists {
		return nil, booking.ErrNotFound
	}
	b.Status = booking.StatusCancelled
	cp := *b
	return &cp, nil
}

var _ booking.Store = (*Store)(nil)
