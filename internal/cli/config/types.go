// Package config provides configuration management for the flights and
// employees CLIs.
//
// Values are layered with koanf: built-in defaults, an optional YAML file,
// prefixed environment variables and finally explicitly set flags.
package config

import (
	"os"
	"path/filepath"
)

// Config holds all CLI configuration options.
type Config struct {
	DB      string `koanf:"db"`
	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`

	// ConfigFile is the config file that was loaded, empty if none.
	ConfigFile string `koanf:"-"`
}

// App describes one binary: where its config lives and what it defaults to.
type App struct {
	Name        string
	EnvPrefix   string
	ConfigNames []string
	DefaultDB   func() string
}

// Default configuration values.
const (
	DefaultOutput     = "text"
	FlightsDBFile     = "flights.db"
	EmployeesDBFile   = "mydatabase.db"
	flightsEnvPrefix  = "FLIGHTS_"
	employeeEnvPrefix = "EMPLOYEES_"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// Flights is the configuration profile of the flights binary.
var Flights = App{
	Name:        "flights",
	EnvPrefix:   flightsEnvPrefix,
	ConfigNames: []string{"flights.yaml", "flights.yml"},
	DefaultDB:   DefaultFlightsDB,
}

// Employees is the configuration profile of the employees binary.
var Employees = App{
	Name:        "employees",
	EnvPrefix:   employeeEnvPrefix,
	ConfigNames: []string{"employees.yaml", "employees.yml"},
	DefaultDB:   func() string { return EmployeesDBFile },
}

// DefaultFlightsDB returns flights.db inside the user's home directory,
// falling back to the working directory when the home is unknown.
func DefaultFlightsDB() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return FlightsDBFile
	}
	return filepath.Join(home, FlightsDBFile)
}
