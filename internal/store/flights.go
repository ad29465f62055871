package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const selectFlightViews = `
	SELECT flights.flight_destination, flight_numbers.num_title, flights.airplane_type
	FROM flights
	INNER JOIN flight_numbers ON flight_numbers.num_id = flights.num_id`

// ResolveFlightNumber returns the id of the flight number with the given
// title, creating the row first if no such title is stored yet.
//
// Lookup and insert are two statements in one transaction. Separate
// processes resolving the same new title at the same moment can still both
// insert it.
func (s *Store) ResolveFlightNumber(ctx context.Context, title string) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := s.resolveFlightNumber(ctx, tx, title)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit flight number: %w", err)
	}
	return id, nil
}

func (s *Store) resolveFlightNumber(ctx context.Context, q querier, title string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT num_id FROM flight_numbers WHERE num_title = ? ORDER BY num_id LIMIT 1`,
		title,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up flight number %q: %w", title, err)
	}

	result, err := q.ExecContext(ctx, `INSERT INTO flight_numbers (num_title) VALUES (?)`, title)
	if err != nil {
		return 0, fmt.Errorf("failed to create flight number %q: %w", title, err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read flight number id: %w", err)
	}

	s.logger.Debug("created flight number", slog.String("title", title), slog.Int64("id", id))
	return id, nil
}

// AddFlight stores a new flight and returns its id. The flight number is
// resolved and the flight inserted in a single transaction, so a failure
// leaves neither row behind.
func (s *Store) AddFlight(ctx context.Context, in NewFlight) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}

	if err := s.validateFlight(ctx, in); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	numID, err := s.resolveFlightNumber(ctx, tx, in.FlightNumber)
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO flights (flight_destination, num_id, airplane_type) VALUES (?, ?, ?)`,
		in.Destination, numID, in.AirplaneType,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert flight: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read flight id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit flight: %w", err)
	}

	s.logger.Debug("added flight",
		slog.Int64("id", id),
		slog.String("destination", in.Destination),
		slog.String("flight_number", in.FlightNumber),
		slog.String("airplane_type", in.AirplaneType),
	)
	return id, nil
}

// ListAll returns every flight with its flight number title, in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]FlightView, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	return queryFlightViews(ctx, s.db, selectFlightViews+` ORDER BY flights.flight_id`)
}

// ListByType returns the flights whose airplane type equals airplaneType
// exactly. The comparison is case-sensitive.
func (s *Store) ListByType(ctx context.Context, airplaneType string) ([]FlightView, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	return queryFlightViews(ctx, s.db,
		selectFlightViews+` WHERE flights.airplane_type = ? ORDER BY flights.flight_id`,
		airplaneType,
	)
}

// ListFlightNumbers returns all stored flight numbers ordered by id.
func (s *Store) ListFlightNumbers(ctx context.Context) ([]FlightNumber, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx, `SELECT num_id, num_title FROM flight_numbers ORDER BY num_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list flight numbers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	numbers := []FlightNumber{}
	for rows.Next() {
		var n FlightNumber
		if err := rows.Scan(&n.ID, &n.Title); err != nil {
			return nil, fmt.Errorf("failed to scan flight number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list flight numbers: %w", err)
	}
	return numbers, nil
}

func queryFlightViews(ctx context.Context, q querier, query string, args ...any) ([]FlightView, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	flights := []FlightView{}
	for rows.Next() {
		var f FlightView
		if err := rows.Scan(&f.Destination, &f.FlightNumber, &f.AirplaneType); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	return flights, nil
}

// GetFlight returns the flight with the given id and the title of its
// flight number as stored.
func (s *Store) GetFlight(ctx context.Context, id int64) (*Flight, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	f := &Flight{}
	err := s.db.QueryRowContext(ctx, `
		SELECT flights.flight_id, flights.flight_destination, flights.num_id,
		       flight_numbers.num_title, flights.airplane_type
		FROM flights
		INNER JOIN flight_numbers ON flight_numbers.num_id = flights.num_id
		WHERE flights.flight_id = ?`,
		id,
	).Scan(&f.ID, &f.Destination, &f.FlightNumberID, &f.FlightNumber, &f.AirplaneType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flight not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return f, nil
}
