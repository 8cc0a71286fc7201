package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/report"
)

func newReportCommand() *cobra.Command {
	var opts report.Options

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown progress report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error {
				if opts.OutputDirectory == "" {
					opts.OutputDirectory = env.Config.Reports.OutputDirectory
				}
				paths, err := report.Write(session, env.Clock(), opts)
				for _, path := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}
				if err != nil {
					return fmt.Errorf("report.Write() > %w", err)
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputDirectory, "output", "", "Output directory, defaults to reports.output_directory")
	flags.StringVar(&opts.TemplatePath, "template", "", "Custom report template")
	flags.IntVar(&opts.RecentWindow, "days", report.DefaultRecentWindow, "Number of recent days to include")
	flags.BoolVar(&opts.PDF, "pdf", false, "Generate PDF output in addition to markdown")
	return cmd
}
