package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/flights/internal/store"
)

// isolate gives the test its own home and working directory and clears the
// environment variables read by the config loader.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, name := range []string{"FLIGHTS_DB", "FLIGHTS_OUTPUT", "FLIGHTS_VERBOSE", "EMPLOYEES_DB", "EMPLOYEES_OUTPUT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := NewRootCmd()

	assert.Equal(t, "flights", rootCmd.Use)
	assert.Equal(t, Version, rootCmd.Version)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	for _, name := range []string{"config", "db", "verbose", "output"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %q should exist", name)
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"add", "display", "select", "numbers", "version", "completion"})
}

func TestRoot_VersionFlag(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "flights v"+Version+"\n", out)
}

func TestRoot_VersionIgnoresBrokenConfig(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "malformed config file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "flights.yaml"), []byte("db: [unclosed\n"), 0o600))
			},
		},
		{
			name: "invalid output in env",
			setup: func(t *testing.T, _ string) {
				t.Setenv("FLIGHTS_OUTPUT", "xml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			tt.setup(t, dir)

			out, _, err := run(t, "version")
			require.NoError(t, err)
			assert.Equal(t, "flights v"+Version+"\n", out)

			// Commands that need the config still report the problem.
			_, _, err = run(t, "display")
			require.Error(t, err)
		})
	}
}

func TestRoot_AddThenDisplay(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "trips.db")

	_, _, err := run(t, "add", "--db", db, "-d", "Paris", "-n", "AF100", "-t", "A320")
	require.NoError(t, err)
	_, _, err = run(t, "add", "--db", db, "-d", "Oslo", "-n", "SK101", "-t", "B737")
	require.NoError(t, err)

	out, _, err := run(t, "display", "--db", db, "-o", "json")
	require.NoError(t, err)

	var got []store.FlightView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []store.FlightView{
		{Destination: "Paris", FlightNumber: "AF100", AirplaneType: "A320"},
		{Destination: "Oslo", FlightNumber: "SK101", AirplaneType: "B737"},
	}, got)
}

func TestRoot_DefaultDatabaseInHome(t *testing.T) {
	dir := isolate(t)

	_, _, err := run(t, "add", "-d", "Paris", "-n", "AF100", "-t", "A320")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "flights.db"))
}

func TestRoot_ConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flights.yaml"), []byte("db: from-file.db\noutput: json\n"), 0o600))

	_, _, err := run(t, "add", "-d", "Paris", "-n", "AF100", "-t", "A320")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-file.db"))

	t.Setenv("FLIGHTS_DB", filepath.Join(dir, "from-env.db"))
	out, _, err := run(t, "display")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
	assert.FileExists(t, filepath.Join(dir, "from-env.db"))
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dir := isolate(t)

	_, errOut, err := run(t, "display", "-v", "--db", filepath.Join(dir, "flights.db"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "invocation=")

	_, errOut, err = run(t, "display", "--db", filepath.Join(dir, "flights.db"))
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing dest", []string{"add", "-n", "AF100", "-t", "A320"}, `required flag(s) "dest" not set`},
		{"missing select type", []string{"select"}, `required flag(s) "type" not set`},
		{"unknown output", []string{"display", "-o", "xml"}, `unknown output format "xml"`},
		{"unknown command", []string{"remove"}, `unknown command "remove"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)

			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, filepath.Join(dir, "flights.db"))
		})
	}
}

func TestEmployeesRoot_SeedAndList(t *testing.T) {
	dir := isolate(t)

	rootCmd := NewEmployeesRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"seed"})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "mydatabase.db"))

	rootCmd = NewEmployeesRootCmd()
	out.Reset()
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"list", "-o", "yaml"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "name: John")
	assert.Contains(t, out.String(), "name: Andrew")
}

func TestNewCompletionCommand(t *testing.T) {
	rootCmd := NewRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"completion", "bash"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "flights")
}
