// Package cli provides the command-line interface for duckbridge.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/cli/commands"
	"github.com/leapstack-labs/duckbridge/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "duckbridge",
		Short: "duckbridge - DuckDB access service",
		Long: `duckbridge is a thin access layer over an embedded DuckDB database.

It exposes initialization, Parquet import, ad-hoc queries, catalog
introspection, and index creation to foreign callers over HTTP/JSON,
and the same operations locally through this CLI.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file path")
	flags.String("database", "", "DuckDB database path (empty for in-memory)")
	flags.String("listen", config.DefaultListen, "HTTP listen address for serve")
	flags.String("history", "", "Operation history database path (empty disables)")
	flags.StringP("output", "o", config.DefaultOutput, "Output format: table, json, csv, md")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		commands.NewServeCommand(),
		commands.NewQueryCommand(),
		commands.NewImportCommand(),
		commands.NewTablesCommand(),
		commands.NewIndexesCommand(),
		commands.NewHistoryCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command with a signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}
