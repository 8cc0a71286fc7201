package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// userMetricsRowID is the single row of the user_metrics table.
const userMetricsRowID = 1

// DBStore implements Store on MySQL.
type DBStore struct {
	db           *sqlx.DB
	phases       curriculum.Repository
	logs         activity.Repository
	achievements achievement.Repository
	clock        Clock
}

// NewDBStore creates a DBStore backed by the MySQL repositories.
func NewDBStore(db *sqlx.DB, clock Clock) *DBStore {
	return &DBStore{
		db:           db,
		phases:       curriculum.NewDBRepository(db),
		logs:         activity.NewDBRepository(db),
		achievements: achievement.NewDBRepository(db),
		clock:        clock,
	}
}

// LoadPhases returns every phase with its children.
func (s *DBStore) LoadPhases(ctx context.Context) ([]curriculum.Phase, error) {
	return s.phases.FindAll(ctx)
}

// LoadDailyLogs returns every daily log.
func (s *DBStore) LoadDailyLogs(ctx context.Context) ([]activity.DailyLog, error) {
	return s.logs.FindAll(ctx)
}

// LoadAchievements returns every achievement.
func (s *DBStore) LoadAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	return s.achievements.FindAll(ctx)
}

// LoadUserMetrics returns the stored metrics, or the zero metrics at Bronze when none were stored yet.
func (s *DBStore) LoadUserMetrics(ctx context.Context) (metrics.UserMetrics, error) {
	var m metrics.UserMetrics
	err := s.db.GetContext(ctx, &m,
		`SELECT current_streak, total_hours, total_problems_solved, total_points, level, points_to_next_level, updated_at
		FROM user_metrics WHERE id = ?`, userMetricsRowID)
	if errors.Is(err, sql.ErrNoRows) {
		level, toNext := metrics.LevelFor(0)
		return metrics.UserMetrics{Level: level, PointsToNextLevel: toNext}, nil
	}
	if err != nil {
		return metrics.UserMetrics{}, fmt.Errorf("load user metrics: %w", err)
	}
	return m, nil
}

// AppendDailyLog inserts the log and returns it with its assigned ID.
func (s *DBStore) AppendDailyLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, error) {
	if err := s.logs.Create(ctx, &log); err != nil {
		return activity.DailyLog{}, err
	}
	return log, nil
}

// SetTopicCompleted toggles a topic.
func (s *DBStore) SetTopicCompleted(ctx context.Context, topicID string, completed bool) (curriculum.Phase, error) {
	return derefPhase(s.phases.SetTopicCompleted(ctx, topicID, completed))
}

// SetResourceCompleted toggles a resource.
func (s *DBStore) SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (curriculum.Phase, error) {
	return derefPhase(s.phases.SetResourceCompleted(ctx, resourceID, completed))
}

// SetProjectStatus changes a project's status.
func (s *DBStore) SetProjectStatus(ctx context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, error) {
	return derefPhase(s.phases.SetProjectStatus(ctx, projectID, status))
}

func derefPhase(p *curriculum.Phase, err error) (curriculum.Phase, error) {
	if err != nil {
		return curriculum.Phase{}, err
	}
	return *p, nil
}

// RecordUnlock unlocks an achievement on date.
func (s *DBStore) RecordUnlock(ctx context.Context, achievementID string, date time.Time) (achievement.Achievement, error) {
	a, err := s.achievements.RecordUnlock(ctx, achievementID, date)
	if err != nil {
		return achievement.Achievement{}, err
	}
	return *a, nil
}

// RetireAchievement removes an achievement from the pool.
func (s *DBStore) RetireAchievement(ctx context.Context, achievementID string) error {
	return s.achievements.Retire(ctx, achievementID)
}

// CreateAchievement stores a synthesized achievement.
func (s *DBStore) CreateAchievement(ctx context.Context, a achievement.Achievement) error {
	return s.achievements.Create(ctx, &a)
}

// ResetAchievements relocks the catalog and deletes synthesized achievements.
func (s *DBStore) ResetAchievements(ctx context.Context) error {
	return s.achievements.Reset(ctx)
}

// RecomputeUserMetrics derives the metrics from the stored rows and saves them.
func (s *DBStore) RecomputeUserMetrics(ctx context.Context) (metrics.UserMetrics, error) {
	logs, err := s.logs.FindAll(ctx)
	if err != nil {
		return metrics.UserMetrics{}, err
	}
	achievements, err := s.achievements.FindAll(ctx)
	if err != nil {
		return metrics.UserMetrics{}, err
	}

	m := metrics.Compute(logs, achievements, s.clock())
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_metrics (id, current_streak, total_hours, total_problems_solved, total_points, level, points_to_next_level, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE current_streak = VALUES(current_streak), total_hours = VALUES(total_hours),
		total_problems_solved = VALUES(total_problems_solved), total_points = VALUES(total_points),
		level = VALUES(level), points_to_next_level = VALUES(points_to_next_level), updated_at = VALUES(updated_at)`,
		userMetricsRowID, m.CurrentStreak, m.TotalHours, m.TotalProblemsSolved, m.TotalPoints,
		string(m.Level), m.PointsToNextLevel, m.UpdatedAt.UTC()); err != nil {
		return metrics.UserMetrics{}, fmt.Errorf("save user metrics: %w", err)
	}
	return m, nil
}
