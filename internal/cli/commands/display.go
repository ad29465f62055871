package commands

import (
	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewDisplayCommand creates the display command.
func NewDisplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Display all flights",
		Long: `Display every stored flight with its destination, flight number and
airplane type, in the order the flights were added.`,
		Example: `  # Show all flights as a table
  flights display

  # Show all flights as JSON
  flights display --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDisplay(cmd)
		},
	}
}

func runDisplay(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd, config.Flights)

	s, cleanup, err := cc.openFlights(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	flights, err := s.ListAll(cmd.Context())
	if err != nil {
		return err
	}
	return renderFlights(cc.Renderer, flights)
}
