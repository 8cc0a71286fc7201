// Package timer runs a countdown study session that records one daily log when it completes.
package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
)

// ErrAbandoned is returned when the session is cancelled before it completes.
var ErrAbandoned = errors.New("timer session abandoned")

// Appender records the finished session.
type Appender interface {
	AppendLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, []achievement.Achievement, error)
}

// Timer counts a study session down one tick at a time.
type Timer struct {
	duration time.Duration
	interval time.Duration
	onTick   func(remaining time.Duration)
}

type Option func(*Timer)

// WithInterval overrides the one-second tick.
func WithInterval(interval time.Duration) Option {
	return func(t *Timer) {
		t.interval = interval
	}
}

// WithTickHandler is called after every tick with the time left.
func WithTickHandler(fn func(remaining time.Duration)) Option {
	return func(t *Timer) {
		t.onTick = fn
	}
}

func New(duration time.Duration, opts ...Option) *Timer {
	t := &Timer{
		duration: duration,
		interval: time.Second,
		onTick:   func(time.Duration) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result is the log written on completion and what it unlocked.
type Result struct {
	Log      activity.DailyLog
	Unlocked []achievement.Achievement
}

// Run blocks until the countdown finishes, then appends entry with the
// session length as HoursSpent. Cancelling ctx first returns ErrAbandoned and
// writes nothing. When the log is stored but a later step fails, the stored
// log is returned along with the error.
func (t *Timer) Run(ctx context.Context, appender Appender, entry activity.DailyLog) (Result, error) {
	if t.duration <= 0 {
		return Result{}, fmt.Errorf("timer duration must be positive: %s", t.duration)
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	remaining := t.duration
	for remaining > 0 {
		select {
		case <-ctx.Done():
			slog.Default().Debug("timer abandoned",
				"remaining", remaining,
			)
			return Result{}, ErrAbandoned
		case <-ticker.C:
			remaining -= t.interval
			if remaining < 0 {
				remaining = 0
			}
			t.onTick(remaining)
		}
	}

	entry.HoursSpent = hoursSpent(t.duration)
	stored, unlocked, err := appender.AppendLog(context.WithoutCancel(ctx), entry)
	result := Result{Log: stored, Unlocked: unlocked}
	if err != nil {
		return result, fmt.Errorf("append timer log: %w", err)
	}
	return result, nil
}

func hoursSpent(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
