// Package main is the entry point of the employees CLI, which seeds and lists
// the employees table.
package main

import (
	"os"

	"github.com/leapstack-labs/flights/internal/cli"
)

func main() {
	if err := cli.ExecuteEmployees(); err != nil {
		os.Exit(1)
	}
}
