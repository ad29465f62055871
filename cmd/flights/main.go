// Package main is the entry point of the flights CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/flights/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
