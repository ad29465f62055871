// Package employees stores employee rows in a SQLite database whose schema is
// managed by goose migrations.
package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ErrNotOpen is returned by every operation on a closed store.
var ErrNotOpen = errors.New("database not opened")

// Employee is one row of the employees table.
type Employee struct {
	ID         int64  `json:"id" yaml:"id" validate:"gt=0"`
	Name       string `json:"name" yaml:"name" validate:"required"`
	Salary     int64  `json:"salary" yaml:"salary" validate:"gte=0"`
	Department string `json:"department" yaml:"department" validate:"required"`
	Position   string `json:"position" yaml:"position" validate:"required"`
	HireDate   string `json:"hire_date" yaml:"hire_date" validate:"required,datetime=2006-01-02"`
}

// SeedRows returns the two employees the database was first populated with.
func SeedRows() []Employee {
	return []Employee{
		{ID: 1, Name: "John", Salary: 700, Department: "HR", Position: "Manager", HireDate: "2017-01-04"},
		{ID: 2, Name: "Andrew", Salary: 800, Department: "IT", Position: "Tech", HireDate: "2018-02-06"},
	}
}

// Store is an employees database handle.
type Store struct {
	db       *sql.DB
	logger   *slog.Logger
	validate *validator.Validate
}

// Open opens (creating if needed) the SQLite database at path. Call Migrate
// before using it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("opened employees database", slog.String("path", path))

	return &Store{
		db:       db,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
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

// Insert stores all employees in one transaction. Either every row is
// written or none is.
func (s *Store) Insert(ctx context.Context, employees ...Employee) error {
	if s.db == nil {
		return ErrNotOpen
	}

	for _, e := range employees {
		if err := s.validate.StructCtx(ctx, e); err != nil {
			return fmt.Errorf("invalid employee %d: %w", e.ID, describe(err))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range employees {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO employees (id, name, salary, department, position, hireDate) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Salary, e.Department, e.Position, e.HireDate,
		); err != nil {
			return fmt.Errorf("failed to insert employee %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit employees: %w", err)
	}

	s.logger.Debug("inserted employees", slog.Int("count", len(employees)))
	return nil
}

// List returns all employees ordered by id.
func (s *Store) List(ctx context.Context) ([]Employee, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, salary, department, position, hireDate FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []Employee{}
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Salary, &e.Department, &e.Position, &e.HireDate); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return result, nil
}

// describe turns validator errors into "field tag" pairs.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(msgs, ", "))
}
