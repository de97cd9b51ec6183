package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL against the database",
		Long: `Execute SQL directly against the DuckDB database.

Results are returned as a uniform string table. Supports multiple
output formats for scripting and integration.

When invoked without arguments on a terminal, enters interactive
REPL mode.`,
		Example: `  # Execute SQL directly
  duckbridge query "SELECT 42"

  # Query a file-backed database
  duckbridge query --database analytics.duckdb "SELECT COUNT(*) FROM sales"

  # Output as JSON
  duckbridge query "SELECT * FROM sales LIMIT 10" --format json

  # Interactive mode
  duckbridge query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md (overrides --output)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cfg := configFrom(cmd)
	format := opts.Format
	if format == "" {
		format = cfg.Output
	}

	database := db.New(newLogger(cfg))
	defer func() { _ = database.Close() }()

	if err := database.Open(cmd.Context(), cfg.Database); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, database, format)
	}

	result, err := database.Query(cmd.Context(), sqlQuery)
	if err != nil {
		return err
	}
	return renderResult(cmd.OutOrStdout(), result, format)
}
