package main

import (
	"context"
	"fmt"
	"io"

	"tasktracker/internal/seed"
	"tasktracker/internal/services"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default users and projects",
		Long: `Creates the default accounts (admin, user1, user2) and projects, or the
ones listed in a YAML seed file. Existing usernames and project names are
skipped, so it is safe to run more than once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := seed.Default()
			if file != "" {
				loaded, err := seed.Load(file)
				if err != nil {
					return err
				}
				data = loaded
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

			seeder := seed.NewSeeder(services.NewUserStore(mongodb), services.NewProjectStore(mongodb))
			return runSeed(ctx, cmd.OutOrStdout(), seeder, data)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to the built-in data)")
	return cmd
}

func runSeed(ctx context.Context, out io.Writer, seeder *seed.Seeder, data *seed.File) error {
	res, err := seeder.Apply(ctx, data)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintf(out, "Users: %d created, %d already present\n", res.UsersCreated, res.UsersSkipped)
	fmt.Fprintf(out, "Projects: %d created, %d already present\n", res.ProjectsCreated, res.ProjectsSkipped)
	return nil
}
