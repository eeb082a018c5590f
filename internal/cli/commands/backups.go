package commands

import (
	"fmt"

	"github.com/orso-db/orso/pkg/migrate"
	"github.com/spf13/cobra"
)

// NewBackupsCommand creates the backups command.
func NewBackupsCommand() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "backups <table>",
		Short: "List a table's migration backups",
		Long: `List the timestamped backup tables left by past migrations of a
table, newest first. With --prune, backups exceeding the configured
retention policy are dropped.`,
		Example: `  # List backups of the users table
  orso backups users

  # Prune backups past the retention policy
  orso backups users --prune`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackups(cmd, args[0], prune)
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Drop backups exceeding the retention policy")
	return cmd
}

func runBackups(cmd *cobra.Command, table string, prune bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sweeper, err := migrate.NewSweeper(cmdCtx.DB, cmdCtx.Config.Migration.MigrateConfig(), cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	if prune {
		dropped, err := sweeper.Sweep(ctx, table)
		if err != nil {
			return err
		}
		for _, name := range dropped {
			fmt.Fprintf(out, "dropped %s\n", name)
		}
		fmt.Fprintf(out, "%d backup(s) pruned\n", len(dropped))
	}

	backups, err := sweeper.Backups(ctx, table)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintf(out, "no backups for %s\n", table)
		return nil
	}
	for _, name := range backups {
		fmt.Fprintln(out, name)
	}
	return nil
}
