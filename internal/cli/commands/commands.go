// Package commands implements the duckbridge CLI commands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/duckbridge/internal/config"
)

// configKey is used to store config in the command context.
type configKey struct{}

// WithConfig stores the loaded config in a context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom retrieves the config from the command context, falling
// back to defaults when the root command did not load one.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return &config.Config{Listen: config.DefaultListen, Output: config.DefaultOutput}
}

// newLogger builds the CLI logger. Verbose enables debug output;
// otherwise only warnings and errors reach stderr.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
