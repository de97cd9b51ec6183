package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

func runQueryREPL(cmd *cobra.Command, database *db.DB, format string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "duckbridge> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "duckbridge SQL REPL")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := runDotCommand(cmd, database, line, &format); quit {
				break
			}
			continue
		}

		result, err := database.Query(cmd.Context(), line)
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if err := renderResult(out, result, format); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	return nil
}

// runDotCommand handles REPL meta commands. Returns true when the
// REPL should exit.
func runDotCommand(cmd *cobra.Command, database *db.DB, line string, format *string) bool {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case ".quit", ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(out, "Commands:")
		_, _ = fmt.Fprintln(out, "  .tables              List tables")
		_, _ = fmt.Fprintln(out, "  .indexes             List indexes")
		_, _ = fmt.Fprintln(out, "  .schema <table>      Show a table's schema")
		_, _ = fmt.Fprintln(out, "  .import <file> [t]   Import a Parquet file")
		_, _ = fmt.Fprintln(out, "  .format <fmt>        Set output format (table, json, csv, md)")
		_, _ = fmt.Fprintln(out, "  .quit                Exit")

	case ".tables":
		tables, err := database.Tables(cmd.Context())
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		for _, t := range tables {
			_, _ = fmt.Fprintf(out, "%s (%d rows)\n", t.Name, t.RowCount)
		}

	case ".indexes":
		indexes, err := database.Indexes(cmd.Context())
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		for _, idx := range indexes {
			_, _ = fmt.Fprintf(out, "%s on %s\n", idx.Name, idx.Table)
		}

	case ".schema":
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(out, "Usage: .schema <table>")
			return false
		}
		info, err := database.Info(cmd.Context())
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		schema, ok := info.TableSchemas[fields[1]]
		if !ok {
			_, _ = fmt.Fprintf(out, "Table %s not found\n", fields[1])
			return false
		}
		_, _ = fmt.Fprintln(out, schema)

	case ".import":
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(out, "Usage: .import <file> [table]")
			return false
		}
		table := ""
		if len(fields) > 2 {
			table = fields[2]
		}
		summary, err := database.ImportParquet(cmd.Context(), fields[1], table)
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Imported %d rows into table %s\n", summary.Rows, summary.Table)

	case ".format":
		if len(fields) < 2 {
			_, _ = fmt.Fprintf(out, "Current format: %s\n", *format)
			return false
		}
		*format = fields[1]

	default:
		_, _ = fmt.Fprintf(out, "Unknown command %s (try .help)\n", fields[0])
	}

	return false
}
