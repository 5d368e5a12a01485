package main

import (
	"context"
	"fmt"
	"io"

	"tasktracker/internal/migration"
	"tasktracker/internal/services"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var writesPerSecond float64

	cmd := &cobra.Command{
		Use:   "import <dump.json>",
		Short: "Import a legacy JSON dump",
		Long: `Imports users, projects, tasks, comments, history and notifications from a
legacy dump. Numeric ids are remapped to new identifiers; records whose
references cannot be resolved are skipped and reported.

This is a one-time operation: running it twice duplicates projects and tasks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := migration.LoadDump(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			mongodb, closeDB, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			importer := migration.NewImporter(migration.Repositories{
				Users:         services.NewUserStore(mongodb),
				Projects:      services.NewProjectStore(mongodb),
				Tasks:         services.NewTaskStore(mongodb),
				Comments:      services.NewCommentStore(mongodb),
				History:       services.NewHistoryStore(mongodb),
				Notifications: services.NewNotificationStore(mongodb),
			}, migration.Options{WritesPerSecond: writesPerSecond})

			return runImport(ctx, cmd.OutOrStdout(), importer, dump)
		},
	}

	cmd.Flags().Float64Var(&writesPerSecond, "rate", 0, "maximum writes per second (0 = unlimited)")
	return cmd
}

func runImport(ctx context.Context, out io.Writer, importer *migration.Importer, dump *migration.Dump) error {
	summary, err := importer.Run(ctx, dump)
	if summary != nil {
		printSummary(out, summary)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

func printSummary(out io.Writer, summary *migration.Summary) {
	fmt.Fprintf(out, "Import run %s\n", summary.RunID)
	for _, name := range migration.Collections {
		c := summary.Counts[name]
		fmt.Fprintf(out, "  %s: %d imported, %d skipped\n", name, c.Imported, c.Skipped)
	}
	if len(summary.Warnings) > 0 {
		fmt.Fprintf(out, "Warnings (%d):\n", len(summary.Warnings))
		for _, w := range summary.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
}
