package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/orso-db/orso/pkg/core"
	"github.com/orso-db/orso/pkg/schema"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <table>",
		Short: "Show the live schema of a table",
		Long: `Read a table's current schema from the database catalog and print
its columns with their constraints.`,
		Example: `  orso inspect users`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, table string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	intro, err := schema.NewIntrospector(cmdCtx.DB, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)
	exists, err := intro.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("table %s does not exist", table)
	}

	live, err := intro.Schema(ctx, table)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Table %s (%d columns)\n\n", live.Table, len(live.Columns))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tNAME\tTYPE\tCONSTRAINTS")
	for _, col := range live.Columns {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", col.Position, col.Name, col.Type, constraintNotes(col))
	}
	return w.Flush()
}

func constraintNotes(col core.Column) string {
	var notes []string
	if col.PrimaryKey {
		notes = append(notes, "primary key")
	} else if col.Unique {
		notes = append(notes, "unique")
	}
	if !col.Nullable {
		notes = append(notes, "not null")
	}
	if col.HasDefault {
		notes = append(notes, "default")
	}
	if col.Compressed {
		notes = append(notes, "compressed")
	}
	if col.ForeignKey != "" {
		notes = append(notes, "references "+col.ForeignKey)
	}
	return strings.Join(notes, ", ")
}
