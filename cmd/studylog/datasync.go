package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/database"
	"github.com/at-ishikawa/studylog/internal/datasync"
	"github.com/at-ishikawa/studylog/internal/seed"
	"github.com/at-ishikawa/studylog/internal/store"
	"github.com/at-ishikawa/studylog/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, func(ctx context.Context, _ *bootstrap.App, env *bootstrap.Environment) error {
				if env.DB == nil {
					return fmt.Errorf("migrate requires storage.driver %q, got %q", bootstrap.DriverMySQL, env.Config.Storage.Driver)
				}
				if err := database.Migrate(ctx, env.DB, schemas.Migrations); err != nil {
					return fmt.Errorf("database.Migrate() > %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the default curriculum and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, func(ctx context.Context, _ *bootstrap.App, env *bootstrap.Environment) error {
				data, err := seed.Load(env.Config.Seeds.CurriculumFile, env.Config.Seeds.AchievementsFile)
				if err != nil {
					return fmt.Errorf("seed.Load() > %w", err)
				}
				incoming := store.Snapshot{
					Phases:       data.Phases,
					Achievements: data.Achievements,
				}

				out := cmd.OutOrStdout()
				opts := datasync.ImportOptions{DryRun: dryRun}
				var result *datasync.ImportResult
				if env.DB != nil {
					importer := datasync.NewImporter(
						curriculum.NewDBRepository(env.DB),
						activity.NewDBRepository(env.DB),
						achievement.NewDBRepository(env.DB),
						out,
					)
					result, err = importer.Import(ctx, incoming, opts)
					if err != nil {
						return fmt.Errorf("importer.Import() > %w", err)
					}
				} else {
					result, err = datasync.ImportYAML(ctx, env.Cache, incoming, opts, out)
					if err != nil {
						return fmt.Errorf("datasync.ImportYAML() > %w", err)
					}
				}

				fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				fmt.Fprintf(out, "  Phases:       %d new, %d skipped\n", result.PhasesNew, result.PhasesSkipped)
				fmt.Fprintf(out, "  Achievements: %d new, %d skipped\n", result.AchievementsNew, result.AchievementsSkipped)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the store")
	return cmd
}

func newExportCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to YAML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, func(ctx context.Context, _ *bootstrap.App, env *bootstrap.Environment) error {
				var snapshot store.Snapshot
				var err error
				if env.DB != nil {
					exporter := datasync.NewExporter(
						curriculum.NewDBRepository(env.DB),
						activity.NewDBRepository(env.DB),
						achievement.NewDBRepository(env.DB),
					)
					snapshot, err = exporter.Export(ctx, env.Clock())
					if err != nil {
						return fmt.Errorf("exporter.Export() > %w", err)
					}
				} else {
					snapshot, err = store.LoadSnapshot(ctx, env.Cache)
					if err != nil {
						return fmt.Errorf("store.LoadSnapshot() > %w", err)
					}
				}

				if err := store.NewYAMLStore(outputDir, env.Clock).SaveSnapshot(ctx, snapshot); err != nil {
					return fmt.Errorf("SaveSnapshot(%s) > %w", outputDir, err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Exported to %s\n", outputDir)
				fmt.Fprintf(out, "  Phases:       %d\n", len(snapshot.Phases))
				fmt.Fprintf(out, "  Daily logs:   %d\n", len(snapshot.DailyLogs))
				fmt.Fprintf(out, "  Achievements: %d\n", len(snapshot.Achievements))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "./export", "Output directory for YAML files")
	return cmd
}
