package commands

import (
	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewNumbersCommand creates the numbers command.
func NewNumbersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "numbers",
		Short: "List stored flight numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd, config.Flights)

			s, cleanup, err := cc.openFlights(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			numbers, err := s.ListFlightNumbers(cmd.Context())
			if err != nil {
				return err
			}
			return renderFlightNumbers(cc.Renderer, numbers)
		},
	}
}
