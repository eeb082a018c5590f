// Package commands implements the orso subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/orso-db/orso/internal/config"
	"github.com/orso-db/orso/pkg/adapter"
	"github.com/spf13/cobra"

	// Registered database adapters.
	_ "github.com/orso-db/orso/pkg/adapters/postgres"
	_ "github.com/orso-db/orso/pkg/adapters/sqlite"
)

// CommandContext carries the loaded configuration and an open database
// connection for one command invocation.
type CommandContext struct {
	Config *config.Config
	DB     adapter.Adapter
	Logger *slog.Logger
}

// NewCommandContext loads the project configuration and connects to the
// configured database. The returned cleanup function closes the
// connection.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd)

	if err := cfg.Connection.Validate(); err != nil {
		return nil, nil, err
	}

	db, err := adapter.New(cfg.Connection.AdapterConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Connect(cmdContext(cmd), cfg.Connection.AdapterConfig()); err != nil {
		return nil, nil, err
	}

	cleanup := func() { _ = db.Close() }
	return &CommandContext{Config: cfg, DB: db, Logger: logger}, cleanup, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	dir := config.FindProjectRoot(cwd)
	if dir == "" {
		return nil, fmt.Errorf("no %s found in %s or any parent directory", config.ConfigFileName, cwd)
	}

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no %s found in %s", config.ConfigFileName, dir)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// cmdContext returns the command's context, falling back to Background
// when the command is run outside Execute (as in tests).
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
