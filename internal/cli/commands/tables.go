package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables with row counts, schemas and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)

			database := db.New(newLogger(cfg))
			defer func() { _ = database.Close() }()

			if err := database.Open(cmd.Context(), cfg.Database); err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			tables, err := database.Tables(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			}

			if len(tables) == 0 {
				_, _ = fmt.Fprintln(out, "(no tables)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Table", "Rows", "Schema", "Indexes"})
			for _, tbl := range tables {
				t.AppendRow(table.Row{tbl.Name, tbl.RowCount, tbl.Schema, strings.Join(tbl.Indexes, ", ")})
			}
			t.Render()
			return nil
		},
	}
}
