package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/history"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded operations",
		Long:  `List recent operations from the history store, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			if cfg.History == "" {
				return fmt.Errorf("no history store configured (set --history or the history config key)")
			}

			store, err := history.Open(cfg.History, newLogger(cfg))
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, "(no history)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Time", "Operation", "Detail", "Status", "Duration (ms)"})
			for _, e := range entries {
				t.AppendRow(table.Row{
					e.StartedAt.Local().Format(time.DateTime),
					e.Operation,
					e.Detail,
					e.Status,
					fmt.Sprintf("%.2f", e.DurationMs),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of entries to show")

	return cmd
}
