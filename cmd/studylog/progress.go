package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/engine"
)

type ProjectStatusFlag curriculum.ProjectStatus

// Set implements pflag.Value.
func (s *ProjectStatusFlag) Set(v string) error {
	status, err := curriculum.ParseProjectStatus(v)
	if err != nil {
		return err
	}
	*s = ProjectStatusFlag(status)
	return nil
}

// String implements pflag.Value.
func (s *ProjectStatusFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *ProjectStatusFlag) Type() string {
	return "ProjectStatus"
}

var (
	_ pflag.Value = (*ProjectStatusFlag)(nil)
)

func newLogCommand() *cobra.Command {
	var (
		entry      activity.DailyLog
		date       string
		activities []string
		breakdown  map[string]int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				logDate, err := parseDate(date, env.Location)
				if err != nil {
					return err
				}
				entry.Date = logDate
				entry.Activities = activities
				entry.Breakdown = breakdown

				stored, unlocked, err := session.AppendLog(ctx, entry)
				if stored.PhaseID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2fh and %d problems on %s for %s\n",
					stored.HoursSpent, stored.ProblemsSolved, stored.Date.Format(time.DateOnly), stored.PhaseID)
				printUnlockSummary(cmd, unlocked, env.Config.Notifications.Console)
				printMetrics(cmd, session.Metrics())
				return err
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&entry.PhaseID, "phase", "", "Phase the session belongs to")
	flags.StringVar(&entry.TopicID, "topic", "", "Topic studied")
	flags.StringVar(&entry.ProjectID, "project", "", "Project worked on")
	flags.Float64Var(&entry.HoursSpent, "hours", 0, "Hours spent")
	flags.IntVar(&entry.ProblemsSolved, "problems", 0, "Problems solved")
	flags.StringSliceVar(&activities, "activity", nil, "Activity done, repeatable")
	flags.StringVar(&entry.KeyTakeaway, "takeaway", "", "Key takeaway of the session")
	flags.StringToIntVar(&breakdown, "breakdown", nil, "Minutes per category, e.g. reading=30,coding=45")
	flags.StringVar(&date, "date", "", "Date of the session (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("phase")
	return cmd
}

func newTopicCommand() *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "topic <topic id>",
		Short: "Mark a topic as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				phase, unlocked, err := session.SetTopicCompleted(ctx, args[0], done)
				return reportPhaseUpdate(cmd, env, session, phase, unlocked, err)
			})
		},
	}
	cmd.Flags().BoolVar(&done, "done", true, "Completion state to set, --done=false reopens the topic")
	return cmd
}

func newResourceCommand() *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "resource <resource id>",
		Short: "Mark a resource as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				phase, unlocked, err := session.SetResourceCompleted(ctx, args[0], done)
				return reportPhaseUpdate(cmd, env, session, phase, unlocked, err)
			})
		},
	}
	cmd.Flags().BoolVar(&done, "done", true, "Completion state to set, --done=false reopens the resource")
	return cmd
}

func newProjectCommand() *cobra.Command {
	status := ProjectStatusFlag(curriculum.ProjectStatusCompleted)

	cmd := &cobra.Command{
		Use:   "project <project id>",
		Short: "Set the status of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				phase, unlocked, err := session.SetProjectStatus(ctx, args[0], curriculum.ProjectStatus(status))
				return reportPhaseUpdate(cmd, env, session, phase, unlocked, err)
			})
		},
	}
	cmd.Flags().Var(&status, "status", "Project status. Options: not-started, in-progress, completed")
	return cmd
}

func reportPhaseUpdate(cmd *cobra.Command, env *bootstrap.Environment, session *engine.Session, phase curriculum.Phase, unlocked []achievement.Achievement, err error) error {
	if phase.ID == "" {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% complete (%s)\n", phase.Title, phase.Progress, phase.Status)
	printUnlockSummary(cmd, unlocked, env.Config.Notifications.Console)
	printMetrics(cmd, session.Metrics())
	return err
}

// printUnlockSummary lists unlocks when the console notifier did not already announce them.
func printUnlockSummary(cmd *cobra.Command, unlocked []achievement.Achievement, announced bool) {
	if announced || len(unlocked) == 0 {
		return
	}
	title := color.New(color.FgGreen, color.Bold)
	for _, a := range unlocked {
		fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s %s (+%d points)\n", a.Icon, title.Sprint(a.Title), a.Points)
	}
}
