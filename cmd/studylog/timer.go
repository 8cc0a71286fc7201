package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/timer"
)

func newTimerCommand() *cobra.Command {
	var (
		entry   activity.DailyLog
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a countdown study session and log it when it finishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				if minutes == 0 {
					minutes = env.Config.Timer.DefaultMinutes
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
				defer stop()

				out := cmd.OutOrStdout()
				t := timer.New(time.Duration(minutes)*time.Minute, timer.WithTickHandler(func(remaining time.Duration) {
					fmt.Fprintf(out, "\r%02d:%02d remaining ", int(remaining.Minutes()), int(remaining.Seconds())%60)
				}))
				fmt.Fprintf(out, "Studying %s for %d minutes. Press Ctrl-C to abandon.\n", entry.PhaseID, minutes)

				result, err := t.Run(ctx, session, entry)
				fmt.Fprintln(out)
				if errors.Is(err, timer.ErrAbandoned) {
					fmt.Fprintln(out, "Session abandoned, nothing was logged.")
					return nil
				}
				if result.Log.PhaseID == "" {
					return err
				}
				fmt.Fprintf(out, "Session complete: logged %.2fh.\n", result.Log.HoursSpent)
				printUnlockSummary(cmd, result.Unlocked, env.Config.Notifications.Console)
				printMetrics(cmd, session.Metrics())
				return err
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&entry.PhaseID, "phase", "", "Phase the session belongs to")
	flags.StringVar(&entry.TopicID, "topic", "", "Topic studied")
	flags.StringVar(&entry.ProjectID, "project", "", "Project worked on")
	flags.StringVar(&entry.KeyTakeaway, "takeaway", "", "Key takeaway of the session")
	flags.IntVar(&minutes, "minutes", 0, "Session length in minutes, defaults to timer.default_minutes")
	_ = cmd.MarkFlagRequired("phase")
	return cmd
}
