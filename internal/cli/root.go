// Package cli provides the command-line interfaces of the flights and
// employees binaries.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/flights/internal/cli/commands"
	"github.com/leapstack-labs/flights/internal/cli/config"
)

// Version is the release of both binaries (set at build time).
var Version = "0.1.0"

// NewRootCmd creates the root command of the flights binary.
func NewRootCmd() *cobra.Command {
	rootCmd := newRoot(config.Flights, &cobra.Command{
		Use:   "flights",
		Short: "Record and list flights",
		Long: `flights keeps a small catalogue of flights in a local SQLite file.

Each flight has a destination, a flight number and an airplane type. Flight
numbers are stored once and shared by every flight that uses them.`,
	})

	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewDisplayCommand())
	rootCmd.AddCommand(commands.NewSelectCommand())
	rootCmd.AddCommand(commands.NewNumbersCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(config.Flights.Name, Version))
	rootCmd.AddCommand(NewCompletionCommand(config.Flights.Name))

	return rootCmd
}

// NewEmployeesRootCmd creates the root command of the employees binary.
func NewEmployeesRootCmd() *cobra.Command {
	rootCmd := newRoot(config.Employees, &cobra.Command{
		Use:   "employees",
		Short: "Insert and list employee rows",
	})

	rootCmd.AddCommand(commands.NewEmployeesSeedCommand())
	rootCmd.AddCommand(commands.NewEmployeesAddCommand())
	rootCmd.AddCommand(commands.NewEmployeesListCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(config.Employees.Name, Version))
	rootCmd.AddCommand(NewCompletionCommand(config.Employees.Name))

	return rootCmd
}

// newRoot adds the persistent flags and config loading shared by both binaries.
func newRoot(app config.App, rootCmd *cobra.Command) *cobra.Command {
	var cfgFile string

	rootCmd.Version = Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// Skip config loading for commands that never touch the database
		switch cmd.Name() {
		case "help", "completion", "__complete", "version":
			return nil
		}

		cfg, err := config.LoadConfig(app, cfgFile, cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}

		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
		if cfg.ConfigFile != "" {
			logger.Debug("using config file", slog.String("path", cfg.ConfigFile))
		}
		logger.Debug("using database", slog.String("path", cfg.DB))

		ctx := config.WithConfig(cmd.Context(), cfg)
		ctx = config.WithLogger(ctx, logger)
		cmd.SetContext(ctx)
		return nil
	}

	rootCmd.SetVersionTemplate(`{{.Name}} v{{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default: ./%s)", app.ConfigNames[0]))
	rootCmd.PersistentFlags().String("db", "", fmt.Sprintf("Path to the SQLite database (default: %s)", app.DefaultDB()))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputModes, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// newLogger returns the per-invocation logger. Verbose runs log at debug
// level, otherwise only warnings reach stderr.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("invocation", uuid.NewString()))
}

// Execute runs the flights root command.
func Execute() error {
	return execute(NewRootCmd())
}

// ExecuteEmployees runs the employees root command.
func ExecuteEmployees() error {
	return execute(NewEmployeesRootCmd())
}

func execute(rootCmd *cobra.Command) error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command for the named binary.
func NewCompletionCommand(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate shell completion scripts for %[1]s.

To load completions:

Bash:
  $ source <(%[1]s completion bash)

Zsh:
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:
  $ %[1]s completion fish | source

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression
`, name),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
