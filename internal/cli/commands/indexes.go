package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

// NewIndexesCommand creates the indexes command and its subcommands.
func NewIndexesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "indexes",
		Aliases: []string{"indices"},
		Short:   "List indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)

			database := db.New(newLogger(cfg))
			defer func() { _ = database.Close() }()

			if err := database.Open(cmd.Context(), cfg.Database); err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			indexes, err := database.Indexes(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(indexes)
			}

			if len(indexes) == 0 {
				_, _ = fmt.Fprintln(out, "(no indexes)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Index", "Table"})
			for _, idx := range indexes {
				t.AppendRow(table.Row{idx.Name, idx.Table})
			}
			t.Render()
			return nil
		},
	}

	cmd.AddCommand(newIndexesCreateCommand())

	return cmd
}

func newIndexesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create TABLE COLUMN",
		Short: "Create an index on a table column",
		Long: `Create an index named idx_<table>_<column>.

Creating the same index twice fails with a name collision.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)

			database := db.New(newLogger(cfg))
			defer func() { _ = database.Close() }()

			if err := database.Open(cmd.Context(), cfg.Database); err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			name, err := database.CreateIndex(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created index %s on %s.%s\n", name, args[0], args[1])
			return nil
		},
	}
}
