package main

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/engine"
)

func newAchievementsCommand() *cobra.Command {
	achievementsCommand := &cobra.Command{
		Use:   "achievements",
		Short: "Achievement commands",
	}

	achievementsCommand.AddCommand(
		newAchievementsListCommand(),
		newAchievementsCompleteCommand(),
		newAchievementsReplenishCommand(),
		newAchievementsResetCommand(),
	)
	return achievementsCommand
}

func newAchievementsListCommand() *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				items := session.Achievements()
				if availableOnly {
					items = session.Available()
				}
				items = slices.Clone(items)
				slices.SortStableFunc(items, func(a, b achievement.Achievement) int {
					return a.Order - b.Order
				})
				writeAchievementTable(cmd, items)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only list active achievements that are still locked")
	return cmd
}

func writeAchievementTable(cmd *cobra.Command, items []achievement.Achievement) {
	unlockedColor := color.New(color.FgGreen)
	retiredColor := color.New(color.FgHiBlack)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPOINTS\tSTATUS")
	for _, a := range items {
		status := "locked"
		switch {
		case a.Unlocked && a.UnlockedDate != nil:
			status = unlockedColor.Sprintf("unlocked %s", a.UnlockedDate.Format(time.DateOnly))
		case a.Unlocked:
			status = unlockedColor.Sprint("unlocked")
		case a.Manual:
			status = "manual"
		}
		if !a.IsActive {
			status += retiredColor.Sprint(", retired")
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\t%s\n", a.ID, a.Icon, a.Title, a.Category, a.Points, status)
	}
	_ = w.Flush()
}

func newAchievementsCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <achievement id>",
		Short: "Complete an achievement that cannot be detected automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				all := session.Achievements()
				if i, ok := achievement.Find(all, args[0]); ok && all[i].Unlocked {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already completed.\n", all[i].Icon, all[i].Title)
					return nil
				}

				completed, cascaded, err := session.MarkComplete(ctx, args[0])
				if !completed.Unlocked {
					return err
				}
				printUnlockSummary(cmd, append([]achievement.Achievement{completed}, cascaded...), env.Config.Notifications.Console)
				printMetrics(cmd, session.Metrics())
				return err
			})
		},
	}
}

func newAchievementsReplenishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replenish",
		Short: "Add a generated achievement when too few are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				created, ok, err := session.Replenish(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintf(out, "%d achievements are available, nothing to add.\n", len(session.Available()))
					return nil
				}
				fmt.Fprintf(out, "New achievement: %s %s (%d points)\n  %s\n", created.Icon, created.Title, created.Points, created.Description)
				return nil
			})
		},
	}
}

func newAchievementsResetCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Relock every achievement and remove generated ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("%w: pass --yes to reset all achievements", engine.ErrResetNotConfirmed)
			}
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				if err := session.Reset(ctx, engine.ResetOptions{Confirmed: confirmed}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d achievements.\n", len(session.Achievements()))
				printMetrics(cmd, session.Metrics())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")
	return cmd
}
