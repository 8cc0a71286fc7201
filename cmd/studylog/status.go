package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/engine"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streak, points and phase progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				out := cmd.OutOrStdout()
				printMetrics(cmd, session.Metrics())
				fmt.Fprintln(out)
				for _, phase := range session.Phases() {
					fmt.Fprintf(out, "%-40s %s %3d%%  %s\n",
						phase.Title, progressBar(int(phase.Progress), 20), phase.Progress, phaseStatusColor(phase.Status).Sprint(phase.Status))
				}
				fmt.Fprintf(out, "\n%d achievements unlocked, %d available\n",
					countUnlocked(session), len(session.Available()))
				return nil
			})
		},
	}
}

func phaseStatusColor(status curriculum.PhaseStatus) *color.Color {
	switch status {
	case curriculum.PhaseStatusCompleted:
		return color.New(color.FgGreen)
	case curriculum.PhaseStatusInProgress:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

func progressBar(percent, width int) string {
	filled := min(max(percent*width/100, 0), width)
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

func countUnlocked(session *engine.Session) int {
	n := 0
	for _, a := range session.Achievements() {
		if a.Unlocked {
			n++
		}
	}
	return n
}
