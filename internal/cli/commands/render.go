package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/flights/internal/cli/output"
	"github.com/leapstack-labs/flights/internal/employees"
	"github.com/leapstack-labs/flights/internal/store"
)

// Sentinels printed instead of an empty table.
const (
	emptyFlights       = "Flight list is empty."
	emptyFlightNumbers = "No flight numbers stored."
	emptyEmployees     = "No employees stored."
)

// Fixed column widths of the flights table.
const (
	widthIndex        = 4
	widthDestination  = 30
	widthFlightNumber = 20
	widthAirplaneType = 15
)

func newTable(r *output.Renderer) table.Writer {
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = true

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(style)
	return t
}

func fixedColumn(number, width int) table.ColumnConfig {
	return table.ColumnConfig{
		Number:      number,
		WidthMin:    width,
		WidthMax:    width,
		AlignHeader: text.AlignCenter,
	}
}

// renderTableOrEmpty prints t in the renderer's mode, or the sentinel when
// the table has no rows. A non-empty title is printed above the table.
func renderTableOrEmpty(r *output.Renderer, t table.Writer, rows int, title, empty string) {
	if rows == 0 {
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(empty)
			return
		}
		r.Muted(empty)
		return
	}
	if title != "" {
		r.Header(title)
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

// renderFlights prints flights as a table, markdown, JSON or YAML.
func renderFlights(r *output.Renderer, flights []store.FlightView) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(flights)
	case output.ModeYAML:
		return r.YAML(flights)
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"No", "Destination", "Flight number", "Airplane type"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: widthIndex, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		fixedColumn(2, widthDestination),
		fixedColumn(3, widthFlightNumber),
		fixedColumn(4, widthAirplaneType),
	})
	for i, f := range flights {
		t.AppendRow(table.Row{i + 1, f.Destination, f.FlightNumber, f.AirplaneType})
	}

	renderTableOrEmpty(r, t, len(flights), "", emptyFlights)
	return nil
}

// renderFlightNumbers prints the stored flight numbers.
func renderFlightNumbers(r *output.Renderer, numbers []store.FlightNumber) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(numbers)
	case output.ModeYAML:
		return r.YAML(numbers)
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"ID", "Flight number"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: widthIndex, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		fixedColumn(2, widthFlightNumber),
	})
	for _, n := range numbers {
		t.AppendRow(table.Row{n.ID, n.Title})
	}

	renderTableOrEmpty(r, t, len(numbers), "Flight numbers", emptyFlightNumbers)
	return nil
}

// renderEmployees prints employee rows.
func renderEmployees(r *output.Renderer, rows []employees.Employee) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rows)
	case output.ModeYAML:
		return r.YAML(rows)
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"ID", "Name", "Salary", "Department", "Position", "Hire date"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, e := range rows {
		t.AppendRow(table.Row{e.ID, e.Name, e.Salary, e.Department, e.Position, e.HireDate})
	}

	renderTableOrEmpty(r, t, len(rows), "Employees", emptyEmployees)
	return nil
}

// flightSummary is the one-line description printed after an add.
func flightSummary(id int64, f store.NewFlight) string {
	return fmt.Sprintf("Added flight #%d: %s (%s, %s)", id, f.Destination, f.FlightNumber, f.AirplaneType)
}
