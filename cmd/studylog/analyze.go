package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/statistics"
)

func newAnalyzeCommand() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show monthly/yearly statistics of study sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				writeStatistics(cmd, statistics.CalculateStatistics(session.DailyLogs(), year, month))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	return cmd
}

func writeStatistics(cmd *cobra.Command, result statistics.StatisticsResult) {
	out := cmd.OutOrStdout()
	if len(result.Periods) == 0 {
		fmt.Fprintln(out, "No study sessions found for the specified period.")
		return
	}

	fmt.Fprintln(out, "Study Statistics Report")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-10s  %8s  %11s  %8s  %8s  %6s\n", "Period", "Sessions", "Active days", "Hours", "Problems", "Topics")
	fmt.Fprintf(out, "%-10s  %8s  %11s  %8s  %8s  %6s\n", "------", "--------", "-----------", "-----", "--------", "------")
	for _, s := range result.Periods {
		fmt.Fprintf(out, "%-10s  %8d  %11d  %8.1f  %8d  %6d\n",
			s.Period, s.Sessions, s.ActiveDays, s.Hours, s.Problems, s.Topics)
	}

	fmt.Fprintln(out)
	a := result.Aggregate
	fmt.Fprintf(out, "%-10s  %8d  %11d  %8.1f  %8d  %6d\n",
		"Totals:", a.Sessions, a.ActiveDays, a.Hours, a.Problems, a.Topics)
}
