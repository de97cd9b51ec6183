package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var tableName string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a Parquet file into a table",
		Long: `Load a Parquet file into the database via CREATE TABLE AS SELECT.

The table name is derived from the file name unless --table is given:
every character that is not a letter, digit or underscore becomes an
underscore.`,
		Example: `  # Table name derived from the file ("sales report" -> sales_report)
  duckbridge import --database analytics.duckdb "sales report.parquet"

  # Explicit table name
  duckbridge import --database analytics.duckdb events.parquet --table raw_events`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)

			database := db.New(newLogger(cfg))
			defer func() { _ = database.Close() }()

			if err := database.Open(cmd.Context(), cfg.Database); err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			summary, err := database.ImportParquet(cmd.Context(), args[0], tableName)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into table %s\n", summary.Rows, summary.Table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tableName, "table", "t", "", "Target table name (derived from file name if empty)")

	return cmd
}
