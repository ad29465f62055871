package commands

import (
	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/leapstack-labs/flights/internal/cli/output"
	"github.com/leapstack-labs/flights/internal/store"
	"github.com/spf13/cobra"
)

// addedFlight is the machine-readable result of the add command.
type addedFlight struct {
	ID           int64  `json:"id" yaml:"id"`
	Destination  string `json:"destination" yaml:"destination"`
	FlightNumber string `json:"flight_number" yaml:"flight_number"`
	AirplaneType string `json:"airplane_type" yaml:"airplane_type"`
}

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	var in store.NewFlight

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new flight",
		Long: `Add a flight to the database.

The flight number is looked up by its label and created on first use, so
adding several flights with the same number stores the label only once.`,
		Example: `  # Add a flight
  flights add -d Paris -n AF100 -t A320

  # Add a flight to a specific database
  flights add --db ./trips.db --dest Oslo --flight_num SK101 --type B737`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.Destination, "dest", "d", "", "Flight destination")
	cmd.Flags().StringVarP(&in.FlightNumber, "flight_num", "n", "", "The flight number")
	cmd.Flags().StringVarP(&in.AirplaneType, "type", "t", "", "The airplane type")
	_ = cmd.MarkFlagRequired("dest")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runAdd(cmd *cobra.Command, in store.NewFlight) error {
	cc := NewCommandContext(cmd, config.Flights)

	s, cleanup, err := cc.openFlights(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	id, err := s.AddFlight(cmd.Context(), in)
	if err != nil {
		return err
	}

	f, err := s.GetFlight(cmd.Context(), id)
	if err != nil {
		return err
	}
	result := addedFlight{
		ID:           f.ID,
		Destination:  f.Destination,
		FlightNumber: f.FlightNumber,
		AirplaneType: f.AirplaneType,
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeYAML:
		return r.YAML(result)
	}

	summary := flightSummary(result.ID, store.NewFlight{
		Destination:  result.Destination,
		FlightNumber: result.FlightNumber,
		AirplaneType: result.AirplaneType,
	})
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(summary)
	} else {
		r.Success(summary)
	}
	return nil
}
