package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/flights/internal/cli/config"
	"github.com/leapstack-labs/flights/internal/cli/output"
	"github.com/leapstack-labs/flights/internal/employees"
	"github.com/leapstack-labs/flights/internal/store"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects config, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command, app config.App) *CommandContext {
	cfg := getConfig(cmd, app)
	mode := output.Mode(cfg.Output)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the config loaded by the root command, or the defaults
// of app when the command runs on its own (as in tests).
func getConfig(cmd *cobra.Command, app config.App) *config.Config {
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		return cfg
	}
	return &config.Config{
		DB:     app.DefaultDB(),
		Output: config.DefaultOutput,
	}
}

// ensureParentDir creates the directory holding a database file.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// closer returns a cleanup that closes a database and reports a failure on
// stderr. The command's own result is already written by then, so the error
// is not returned.
func (c *CommandContext) closer(name string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			c.Logger.Warn("failed to close database", slog.String("db", name), slog.String("error", err.Error()))
			c.Renderer.Warn(fmt.Sprintf("Warning: failed to close %s database: %v", name, err))
		}
	}
}

// openFlights opens the flights store and makes sure its schema exists.
// The returned cleanup closes the store and must always be called.
func (c *CommandContext) openFlights(cmd *cobra.Command) (*store.Store, func(), error) {
	if err := ensureParentDir(c.Cfg.DB); err != nil {
		return nil, nil, err
	}

	s, err := store.Open(cmd.Context(), c.Cfg.DB, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := c.closer("flights", s.Close)

	if err := s.EnsureSchema(cmd.Context()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return s, cleanup, nil
}

// openEmployees opens the employees store and applies pending migrations.
func (c *CommandContext) openEmployees(cmd *cobra.Command) (*employees.Store, func(), error) {
	if err := ensureParentDir(c.Cfg.DB); err != nil {
		return nil, nil, err
	}

	s, err := employees.Open(cmd.Context(), c.Cfg.DB, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := c.closer("employees", s.Close)

	if err := s.Migrate(cmd.Context()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return s, cleanup, nil
}
