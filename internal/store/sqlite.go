// Package store persists flights and their flight numbers in an embedded
// SQLite database.
//
// The database holds two tables, flight_numbers and flights, related by a
// foreign key. Every command opens the store, acts, and closes it again; no
// state is kept between invocations.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// foreignKeysPragma is applied by the driver to every new connection.
const foreignKeysPragma = "_pragma=foreign_keys(1)"

// Store is a flights database handle.
type Store struct {
	db       *sql.DB
	logger   *slog.Logger
	validate *validator.Validate
}

// Open opens (creating if needed) the SQLite database at path.
// The schema is not touched; call EnsureSchema afterwards.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// foreign_keys is per connection; one connection keeps every statement
	// and transaction on the same pragma state.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := NewWithDB(db, logger)
	s.logger.Debug("opened flights database", slog.String("path", path))
	return s, nil
}

// NewWithDB wraps an existing connection. The caller is responsible for
// having enabled foreign keys on it.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:       db,
		logger:   logger,
		validate: newValidator(),
	}
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + foreignKeysPragma
	}
	return path + "?" + foreignKeysPragma
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// EnsureSchema creates the flight_numbers and flights tables if they do not
// exist yet. It is safe to call on every invocation.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
