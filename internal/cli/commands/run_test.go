package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/leapstack-labs/flights/internal/employees"
	"github.com/leapstack-labs/flights/internal/store"
	"github.com/leapstack-labs/flights/internal/testutil"
)

// runCommand executes cmd against the database at db and returns stdout.
func runCommand(t *testing.T, cmd *cobra.Command, db, mode string, args ...string) (string, error) {
	t.Helper()

	ctx := config.WithConfig(context.Background(), &config.Config{DB: db, Output: mode})
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func addFlight(t *testing.T, db, dest, num, typ string) {
	t.Helper()
	_, err := runCommand(t, NewAddCommand(), db, "text", "-d", dest, "-n", num, "-t", typ)
	require.NoError(t, err)
}

func TestAdd_PrintsSummary(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	out, err := runCommand(t, NewAddCommand(), db, "text", "--dest", "Paris", "--flight_num", "AF100", "--type", "A320")
	require.NoError(t, err)
	assert.Equal(t, "Added flight #1: Paris (AF100, A320)\n", out)
}

func TestAdd_CreatesMissingDirectory(t *testing.T) {
	db := testutil.TempDBPath(t, "nested/dir/flights.db")

	addFlight(t, db, "Paris", "AF100", "A320")

	out, err := runCommand(t, NewDisplayCommand(), db, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris")
}

func TestAdd_JSON(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	out, err := runCommand(t, NewAddCommand(), db, "json", "-d", "Rome", "-n", "AZ200", "-t", "A321")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"destination":"Rome","flight_number":"AZ200","airplane_type":"A321"}`, out)
}

func TestAdd_MissingFlightNumberFailsValidation(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	_, err := runCommand(t, NewAddCommand(), db, "text", "-d", "Paris", "-t", "A320")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidFlight)
	assert.Contains(t, err.Error(), "flight_number is required")
}

func TestAdd_MissingRequiredFlag(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	_, err := runCommand(t, NewAddCommand(), db, "text", "-n", "AF100", "-t", "A320")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "dest" not set`)
}

func TestDisplay_Empty(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	for _, mode := range []string{"text", "markdown"} {
		t.Run(mode, func(t *testing.T) {
			out, err := runCommand(t, NewDisplayCommand(), db, mode)
			require.NoError(t, err)
			assert.Equal(t, emptyFlights+"\n", out)
		})
	}
}

func TestDisplay_Table(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")
	addFlight(t, db, "Oslo", "SK101", "B737")

	out, err := runCommand(t, NewDisplayCommand(), db, "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	border := "+" + strings.Repeat("-", widthIndex+2) +
		"+" + strings.Repeat("-", widthDestination+2) +
		"+" + strings.Repeat("-", widthFlightNumber+2) +
		"+" + strings.Repeat("-", widthAirplaneType+2) + "+"
	assert.Equal(t, border, lines[0])
	assert.Equal(t, border, lines[len(lines)-1])
	assert.Contains(t, out, "Destination")
	assert.Contains(t, out, "Flight number")
	assert.Contains(t, out, "Airplane type")

	paris := strings.Index(out, "Paris")
	oslo := strings.Index(out, "Oslo")
	require.Positive(t, paris)
	require.Positive(t, oslo)
	assert.Less(t, paris, oslo, "flights are listed in insertion order")
}

func TestDisplay_Markdown(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")

	out, err := runCommand(t, NewDisplayCommand(), db, "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "|"), "got %q", out)
	assert.Contains(t, out, "Paris")
	assert.NotContains(t, out, "+---")
}

func TestDisplay_YAML(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")

	out, err := runCommand(t, NewDisplayCommand(), db, "yaml")
	require.NoError(t, err)

	var got []store.FlightView
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []store.FlightView{{Destination: "Paris", FlightNumber: "AF100", AirplaneType: "A320"}}, got)
}

func TestSelect_FiltersByType(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")
	addFlight(t, db, "Oslo", "SK101", "B737")
	addFlight(t, db, "Rome", "AF100", "A320")

	out, err := runCommand(t, NewSelectCommand(), db, "json", "-T", "A320")
	require.NoError(t, err)

	var got []store.FlightView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []store.FlightView{
		{Destination: "Paris", FlightNumber: "AF100", AirplaneType: "A320"},
		{Destination: "Rome", FlightNumber: "AF100", AirplaneType: "A320"},
	}, got)
}

func TestSelect_NoMatch(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")

	out, err := runCommand(t, NewSelectCommand(), db, "text", "--type", "a320")
	require.NoError(t, err)
	assert.Equal(t, emptyFlights+"\n", out)

	out, err = runCommand(t, NewSelectCommand(), db, "json", "--type", "E190")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestSelect_RequiresType(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	_, err := runCommand(t, NewSelectCommand(), db, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "type" not set`)
}

func TestNumbers_ListsDistinctLabels(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")
	addFlight(t, db, "Rome", "AF100", "A320")
	addFlight(t, db, "Oslo", "SK101", "B737")

	out, err := runCommand(t, NewNumbersCommand(), db, "json")
	require.NoError(t, err)

	var got []store.FlightNumber
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []store.FlightNumber{{ID: 1, Title: "AF100"}, {ID: 2, Title: "SK101"}}, got)
}

func TestEmployees_SeedAndList(t *testing.T) {
	db := testutil.TempDBPath(t, "mydatabase.db")

	out, err := runCommand(t, NewEmployeesSeedCommand(), db, "text")
	require.NoError(t, err)
	assert.Equal(t, "Inserted 2 employee(s).\n", out)

	out, err = runCommand(t, NewEmployeesListCommand(), db, "json")
	require.NoError(t, err)

	var got []employees.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, employees.SeedRows(), got)
}

func TestEmployees_SeedTwiceFails(t *testing.T) {
	db := testutil.TempDBPath(t, "mydatabase.db")

	_, err := runCommand(t, NewEmployeesSeedCommand(), db, "text")
	require.NoError(t, err)
	_, err = runCommand(t, NewEmployeesSeedCommand(), db, "text")
	require.Error(t, err)

	out, err := runCommand(t, NewEmployeesListCommand(), db, "json")
	require.NoError(t, err)
	var got []employees.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestEmployees_AddAndListEmpty(t *testing.T) {
	db := testutil.TempDBPath(t, "mydatabase.db")

	out, err := runCommand(t, NewEmployeesListCommand(), db, "text")
	require.NoError(t, err)
	assert.Equal(t, emptyEmployees+"\n", out)

	_, err = runCommand(t, NewEmployeesAddCommand(), db, "text",
		"--id", "3", "--name", "Maria", "--salary", "900",
		"--department", "IT", "--position", "Lead", "--hired", "2020-05-01")
	require.NoError(t, err)

	out, err = runCommand(t, NewEmployeesListCommand(), db, "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Maria")
}

func TestEmployees_AddRejectsBadDate(t *testing.T) {
	db := testutil.TempDBPath(t, "mydatabase.db")

	_, err := runCommand(t, NewEmployeesAddCommand(), db, "text",
		"--id", "3", "--name", "Maria", "--department", "IT", "--position", "Lead", "--hired", "01/05/2020")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid employee 3")
}

func TestAdd_ReportsStoredRow(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")
	addFlight(t, db, "Paris", "AF100", "A320")

	out, err := runCommand(t, NewAddCommand(), db, "yaml", "-d", "Lyon", "-n", "AF100", "-t", "A321")
	require.NoError(t, err)

	var got addedFlight
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, addedFlight{ID: 2, Destination: "Lyon", FlightNumber: "AF100", AirplaneType: "A321"}, got)

	listed, err := runCommand(t, NewDisplayCommand(), db, "json")
	require.NoError(t, err)
	var flights []store.FlightView
	require.NoError(t, json.Unmarshal([]byte(listed), &flights))
	require.Len(t, flights, 2)
	assert.Equal(t, got.FlightNumber, flights[1].FlightNumber)
}

func TestNumbers_TitledTable(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	out, err := runCommand(t, NewNumbersCommand(), db, "text")
	require.NoError(t, err)
	assert.Equal(t, emptyFlightNumbers+"\n", out, "no title above an empty result")

	addFlight(t, db, "Paris", "AF100", "A320")

	out, err = runCommand(t, NewNumbersCommand(), db, "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Flight numbers\n+"), "got %q", out)

	out, err = runCommand(t, NewNumbersCommand(), db, "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Flight numbers\n\n|"), "got %q", out)
	assert.Contains(t, out, "AF100")
}

func TestAdd_EmptyTypeRejected(t *testing.T) {
	db := testutil.TempDBPath(t, "flights.db")

	_, err := runCommand(t, NewAddCommand(), db, "text", "-d", "Paris", "-n", "AF100", "-t", "")
	require.ErrorIs(t, err, store.ErrInvalidFlight)
	assert.Contains(t, err.Error(), "airplane_type is required")

	out, err := runCommand(t, NewDisplayCommand(), db, "text")
	require.NoError(t, err)
	assert.Equal(t, emptyFlights+"\n", out)
}
