package commands

import (
	"fmt"

	"github.com/orso-db/orso/pkg/migrate"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring every declared table in line with its model",
		Long: `Migrate each model declared in orso.yaml, in file order.

A missing table is created. A table whose schema matches is left alone.
A diverging table is rebuilt: its rows are copied into a fresh table with
the declared schema and the old table is renamed to a timestamped backup.
Old backups are pruned per the configured retention policy.`,
		Example: `  # Migrate all declared models
  orso migrate

  # With an explicit config file
  orso migrate --config ./deploy/orso.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd)
		},
	}
	return cmd
}

func runMigrate(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	defs, err := cmdCtx.Config.Definitions()
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return fmt.Errorf("no models declared in configuration")
	}

	executor, err := migrate.New(cmdCtx.DB, cmdCtx.Config.Migration.MigrateConfig(), cmdCtx.Logger)
	if err != nil {
		return err
	}

	results, err := executor.MigrateAll(cmdContext(cmd), defs)
	for _, res := range results {
		printResult(cmd, res)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d model(s) migrated\n", len(results))
	return nil
}

func printResult(cmd *cobra.Command, res migrate.Result) {
	out := cmd.OutOrStdout()
	switch res.Action {
	case migrate.TableCreated:
		fmt.Fprintf(out, "%s: created\n", res.Table)
	case migrate.SchemaMatched:
		fmt.Fprintf(out, "%s: up to date\n", res.Table)
	case migrate.DataMigrated:
		fmt.Fprintf(out, "%s: migrated %d row(s), backup %s\n",
			res.Table, res.RowsMigrated, res.BackupTable)
		for _, change := range res.Changes {
			fmt.Fprintf(out, "  - %s\n", change)
		}
	}
}
