package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/db"
	"github.com/leapstack-labs/duckbridge/internal/history"
	"github.com/leapstack-labs/duckbridge/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the duckbridge HTTP server",
		Long: `Start the HTTP/JSON server exposing the duckbridge operations.

With --database the connection is opened at startup; otherwise callers
initialize it through POST /v1/database/init.`,
		Example: `  # In-memory database, initialized by the first caller
  duckbridge serve

  # File-backed database opened at startup
  duckbridge serve --database analytics.duckdb --listen :8098`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			logger := newLogger(cfg)

			database := db.New(logger)
			defer func() { _ = database.Close() }()

			if cfg.Database != "" {
				if err := database.Open(cmd.Context(), cfg.Database); err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
			}

			var store *history.Store
			if cfg.History != "" {
				var err error
				store, err = history.Open(cfg.History, logger)
				if err != nil {
					return fmt.Errorf("failed to open history store: %w", err)
				}
				defer func() { _ = store.Close() }()
			}

			srv := server.New(server.Config{
				DB:      database,
				History: store,
				Addr:    cfg.Listen,
				Logger:  logger,
			})
			return srv.Serve(cmd.Context())
		},
	}
}
