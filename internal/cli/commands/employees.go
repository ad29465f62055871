package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/leapstack-labs/flights/internal/cli/output"
	"github.com/leapstack-labs/flights/internal/employees"
	"github.com/spf13/cobra"
)

// NewEmployeesSeedCommand creates the seed command of the employees binary.
func NewEmployeesSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the initial employee rows",
		Long: `Create the employees table if needed and insert the two initial rows
in a single transaction. Running it twice fails on the duplicate ids and
leaves the table unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return insertEmployees(cmd, employees.SeedRows()...)
		},
	}
}

// NewEmployeesAddCommand creates the add command of the employees binary.
func NewEmployeesAddCommand() *cobra.Command {
	var e employees.Employee

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert one employee",
		Example: `  employees add --id 3 --name Maria --salary 900 --department IT --position Lead --hired 2020-05-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return insertEmployees(cmd, e)
		},
	}

	cmd.Flags().Int64Var(&e.ID, "id", 0, "Employee id")
	cmd.Flags().StringVar(&e.Name, "name", "", "Employee name")
	cmd.Flags().Int64Var(&e.Salary, "salary", 0, "Salary")
	cmd.Flags().StringVar(&e.Department, "department", "", "Department")
	cmd.Flags().StringVar(&e.Position, "position", "", "Position")
	cmd.Flags().StringVar(&e.HireDate, "hired", "", "Hire date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// NewEmployeesListCommand creates the list command of the employees binary.
func NewEmployeesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd, config.Employees)

			s, cleanup, err := cc.openEmployees(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			return renderEmployees(cc.Renderer, rows)
		},
	}
}

func insertEmployees(cmd *cobra.Command, rows ...employees.Employee) error {
	cc := NewCommandContext(cmd, config.Employees)

	s, cleanup, err := cc.openEmployees(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := s.Insert(cmd.Context(), rows...); err != nil {
		return err
	}
	cc.Logger.Debug("inserted employees", slog.Int("count", len(rows)))

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rows)
	case output.ModeYAML:
		return r.YAML(rows)
	case output.ModeMarkdown:
		r.Println(fmt.Sprintf("Inserted %d employee(s).", len(rows)))
	default:
		r.Success(fmt.Sprintf("Inserted %d employee(s).", len(rows)))
	}
	return nil
}
