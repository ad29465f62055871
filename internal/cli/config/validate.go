package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("db is required\nHint: pass --db or set it in the config file")
	}

	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("unknown output format %q (available: %s)", c.Output, strings.Join(OutputModes, ", "))
	}
	return nil
}
