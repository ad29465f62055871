package commands

import (
	"log/slog"

	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	var airplaneType string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the flights of one airplane type",
		Long: `Display the flights whose airplane type equals the given value.

The match is exact and case-sensitive; no wildcards are applied.`,
		Example: `  # Flights flown by an A320
  flights select -T A320`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, airplaneType)
		},
	}

	cmd.Flags().StringVarP(&airplaneType, "type", "T", "", "The required type")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runSelect(cmd *cobra.Command, airplaneType string) error {
	cc := NewCommandContext(cmd, config.Flights)

	s, cleanup, err := cc.openFlights(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	flights, err := s.ListByType(cmd.Context(), airplaneType)
	if err != nil {
		return err
	}
	cc.Logger.Debug("selected flights", slog.String("airplane_type", airplaneType), slog.Int("count", len(flights)))
	return renderFlights(cc.Renderer, flights)
}
