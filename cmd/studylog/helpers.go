package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// withEnvironment opens the configured store for fn and releases it afterwards.
func withEnvironment(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App, env *bootstrap.Environment) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app := bootstrap.New()
	defer func() {
		err = errors.Join(err, app.Close(context.Background()))
	}()

	env, err := bootstrap.OpenEnvironment(app, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.OpenEnvironment() > %w", err)
	}
	return fn(cmd.Context(), app, env)
}

// withSession is withEnvironment plus a loaded engine session. Persistence
// failures are reported as retryable.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, env *bootstrap.Environment, session *engine.Session) error) error {
	return withEnvironment(cmd, func(ctx context.Context, app *bootstrap.App, env *bootstrap.Environment) error {
		session, err := env.OpenSession(ctx, app, cmd.OutOrStdout())
		if err != nil {
			return reportRetryable(cmd, err)
		}
		err = fn(ctx, env, session)
		if session.Degraded() {
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(),
				"The database is unreachable. Changes were written to the local cache only and will not be synced back automatically.")
		}
		return reportRetryable(cmd, err)
	})
}

func reportRetryable(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, engine.ErrSaveFailed):
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "failed to save, try again")
	case errors.Is(err, engine.ErrLoadFailed):
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "failed to load your progress, try again")
	}
	return err
}

// parseDate reads a YYYY-MM-DD date in loc. An empty value is the zero time.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}

func printMetrics(cmd *cobra.Command, m metrics.UserMetrics) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Streak: %d days | Hours: %.1f | Problems: %d | Points: %d | Level: %s",
		m.CurrentStreak, m.TotalHours, m.TotalProblemsSolved, m.TotalPoints, color.New(color.Bold).Sprint(m.Level))
	if m.PointsToNextLevel > 0 {
		fmt.Fprintf(out, " (%d to next)", m.PointsToNextLevel)
	}
	fmt.Fprintln(out)
}
