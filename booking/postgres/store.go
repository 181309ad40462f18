// Package postgres persists bookings in PostgreSQL via a pgx pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentic-ai/playground/booking"
	"github.com/agentic-ai/playground/travel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store writes bookings to a single table.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Expect table schema similar to:
// CREATE TABLE IF NOT EXISTS bookings (
//   reference  text PRIMARY KEY,
//   passenger  jsonb NOT NULL,
//   flight     jsonb NOT NULL,
//   amount_inr integer NOT NULL,
//   status     text NOT NULL,
//   session_id text,
//   created_at timestamptz NOT NULL
// );

// New creates a postgres-backed booking store on the given pool.
func New(pool *pgxpool.Pool, table string) *Store {
	if table == "" {
		table = "bookings"
	}
	return &Store{pool: pool, table: table}
}

// Connect opens a pgx pool for the database URL and pings it.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the bookings table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	reference  text PRIMARY KEY,
	passenger  jsonb NOT NULL,
	flight     jsonb NOT NULL,
	amount_inr integer NOT NULL,
	status     text NOT NULL,
	session_id text,
	created_at timestamptz NOT NULL
)`, s.table))
	return err
}

// Create implements booking.Store.
func (s *Store) Create(ctx context.Context, b *booking.Booking) error {
	passenger, err := json.Marshal(b.Passenger)
	if err != nil {
		return err
	}
	flight, err := json.Marshal(b.Flight)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (reference, passenger, flight, amount_inr, status, session_id, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)", s.table),
		b.Reference, passenger, flight, b.AmountINR, b.Status, b.SessionID, b.CreatedAt)
	return err
}

// Get implements booking.Store.
func (s *Store) Get(ctx context.Context, reference string) (*booking.Booking, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT reference, passenger, flight, amount_inr, status, session_id, created_at FROM %s WHERE reference=$1", s.table),
		reference)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List implements booking.Store.
func (s *Store) List(ctx context.Context) ([]*booking.Booking, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf("SELECT reference, passenger, flight, amount_inr, status, session_id, created_at FROM %s ORDER BY created_at DESC", s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*booking.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Cancel implements booking.Store.
func (s *Store) Cancel(ctx context.Context, reference string) (*booking.Booking, error) {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET status=$1 WHERE reference=$2", s.table),
		booking.StatusCancelled, reference)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, booking.ErrNotFound
	}
	return s.Get(ctx, reference)
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		b         booking.Booking
		passenger []byte
		flight    []byte
	)
	if err := row.Scan(&b.Reference, &passenger, &flight, &b.AmountINR, &b.Status, &b.SessionID, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passenger, &b.Passenger); err != nil {
		return nil, err
	}
	var f travel.Flight
	if err := json.Unmarshal(flight, &f); err != nil {
		return nil, err
	}
	b.Flight = f
	return &b, nil
}

var _ booking.Store = (*Store)(nil)
