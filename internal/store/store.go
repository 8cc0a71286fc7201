// Package store defines the persistence port of the progress engine and its
// MySQL, YAML and fallback adapters.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store

// Store is everything the engine needs from persistence.
type Store interface {
	LoadPhases(ctx context.Context) ([]curriculum.Phase, error)
	LoadDailyLogs(ctx context.Context) ([]activity.DailyLog, error)
	LoadAchievements(ctx context.Context) ([]achievement.Achievement, error)
	LoadUserMetrics(ctx context.Context) (metrics.UserMetrics, error)

	// AppendDailyLog assigns the log an ID and returns the stored form.
	AppendDailyLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, error)
	// SetTopicCompleted, SetResourceCompleted and SetProjectStatus return the
	// updated phase with recomputed progress.
	SetTopicCompleted(ctx context.Context, topicID string, completed bool) (curriculum.Phase, error)
	SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (curriculum.Phase, error)
	SetProjectStatus(ctx context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, error)

	RecordUnlock(ctx context.Context, achievementID string, date time.Time) (achievement.Achievement, error)
	RetireAchievement(ctx context.Context, achievementID string) error
	CreateAchievement(ctx context.Context, a achievement.Achievement) error
	// ResetAchievements relocks every achievement and removes the ones
	// that are not part of the default catalog.
	ResetAchievements(ctx context.Context) error

	// RecomputeUserMetrics recalculates and stores the metrics from the stored logs and achievements.
	RecomputeUserMetrics(ctx context.Context) (metrics.UserMetrics, error)
}

// Snapshot is the full state held by a Store.
type Snapshot struct {
	Phases       []curriculum.Phase
	DailyLogs    []activity.DailyLog
	Achievements []achievement.Achievement
	UserMetrics  metrics.UserMetrics
}

// LoadSnapshot loads every collection from s.
func LoadSnapshot(ctx context.Context, s Store) (Snapshot, error) {
	phases, err := s.LoadPhases(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load phases: %w", err)
	}
	logs, err := s.LoadDailyLogs(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load daily logs: %w", err)
	}
	achievements, err := s.LoadAchievements(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load achievements: %w", err)
	}
	userMetrics, err := s.LoadUserMetrics(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load user metrics: %w", err)
	}
	return Snapshot{
		Phases:       phases,
		DailyLogs:    logs,
		Achievements: achievements,
		UserMetrics:  userMetrics,
	}, nil
}

// Clock returns the current time in the learner's location.
type Clock func() time.Time

// NewClock returns a Clock reading the wall clock in loc.
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

var (
	_ Store = (*DBStore)(nil)
	_ Cache = (*YAMLStore)(nil)
	_ Store = (*FallbackStore)(nil)
)
