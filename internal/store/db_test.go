package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
	mock_achievement "github.com/at-ishikawa/studylog/internal/mocks/achievement"
	mock_activity "github.com/at-ishikawa/studylog/internal/mocks/activity"
	mock_curriculum "github.com/at-ishikawa/studylog/internal/mocks/curriculum"
)

type dbStoreMocks struct {
	sql          sqlmock.Sqlmock
	phases       *mock_curriculum.MockRepository
	logs         *mock_activity.MockRepository
	achievements *mock_achievement.MockRepository
}

func newTestDBStore(t *testing.T) (*DBStore, dbStoreMocks) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	m := dbStoreMocks{
		sql:          sqlMock,
		phases:       mock_curriculum.NewMockRepository(ctrl),
		logs:         mock_activity.NewMockRepository(ctrl),
		achievements: mock_achievement.NewMockRepository(ctrl),
	}
	s := &DBStore{
		db:           sqlx.NewDb(db, "mysql"),
		phases:       m.phases,
		logs:         m.logs,
		achievements: m.achievements,
		clock:        fixedClock,
	}
	return s, m
}

func TestDBStore_AppendDailyLog(t *testing.T) {
	s, m := newTestDBStore(t)
	m.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *activity.DailyLog) error {
		l.ID = 7
		return nil
	})

	got, err := s.AppendDailyLog(context.Background(), activity.DailyLog{PhaseID: "phase-1", HoursSpent: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "phase-1", got.PhaseID)
}

func TestDBStore_SetTopicCompleted(t *testing.T) {
	s, m := newTestDBStore(t)
	m.phases.EXPECT().SetTopicCompleted(gomock.Any(), "topic-1", true).
		Return(&curriculum.Phase{ID: "phase-1", Progress: 25}, nil)
	m.phases.EXPECT().SetProjectStatus(gomock.Any(), "project-404", curriculum.ProjectStatusCompleted).
		Return(nil, curriculum.ErrNotFound)

	got, err := s.SetTopicCompleted(context.Background(), "topic-1", true)
	require.NoError(t, err)
	assert.Equal(t, curriculum.Percent(25), got.Progress)

	_, err = s.SetProjectStatus(context.Background(), "project-404", curriculum.ProjectStatusCompleted)
	assert.ErrorIs(t, err, curriculum.ErrNotFound)
}

func TestDBStore_LoadUserMetrics(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      metrics.UserMetrics
	}{
		{
			name: "stored row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM user_metrics WHERE id = \\?").WithArgs(1).WillReturnRows(
					sqlmock.NewRows([]string{"current_streak", "total_hours", "total_problems_solved", "total_points", "level", "points_to_next_level", "updated_at"}).
						AddRow(3, 12.5, 9, 600, "Silver", 901, fixedNow))
			},
			want: metrics.UserMetrics{CurrentStreak: 3, TotalHours: 12.5, TotalProblemsSolved: 9, TotalPoints: 600, Level: metrics.LevelSilver, PointsToNextLevel: 901, UpdatedAt: fixedNow},
		},
		{
			name: "no row yet",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM user_metrics").WillReturnError(sql.ErrNoRows)
			},
			want: metrics.UserMetrics{Level: metrics.LevelBronze, PointsToNextLevel: 501},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestDBStore(t)
			tt.setupMock(m.sql)

			got, err := s.LoadUserMetrics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, m.sql.ExpectationsWereMet())
		})
	}
}

func TestDBStore_RecomputeUserMetrics(t *testing.T) {
	s, m := newTestDBStore(t)
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	m.logs.EXPECT().FindAll(gomock.Any()).Return([]activity.DailyLog{
		{Date: day, HoursSpent: 10.5, ProblemsSolved: 3},
		{Date: day.AddDate(0, 0, -1), HoursSpent: 1},
	}, nil)
	m.achievements.EXPECT().FindAll(gomock.Any()).Return([]achievement.Achievement{
		{ID: "hours-10", Points: 50, Unlocked: true, UnlockedDate: &day},
		{ID: "hours-25", Points: 100},
	}, nil)
	m.sql.ExpectExec("INSERT INTO user_metrics (.+) ON DUPLICATE KEY UPDATE").
		WithArgs(1, 2, 11.5, 3, 50, "Bronze", 451, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := s.RecomputeUserMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 50, got.TotalPoints)
	assert.NoError(t, m.sql.ExpectationsWereMet())
}

func TestDBStore_RecordUnlock(t *testing.T) {
	s, m := newTestDBStore(t)
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	m.achievements.EXPECT().RecordUnlock(gomock.Any(), "hours-10", day).
		Return(&achievement.Achievement{ID: "hours-10", Unlocked: true, UnlockedDate: &day}, nil)
	m.achievements.EXPECT().Retire(gomock.Any(), "hours-10").Return(nil)
	m.achievements.EXPECT().Reset(gomock.Any()).Return(nil)

	got, err := s.RecordUnlock(context.Background(), "hours-10", day)
	require.NoError(t, err)
	assert.True(t, got.Unlocked)
	require.NoError(t, s.RetireAchievement(context.Background(), "hours-10"))
	require.NoError(t, s.ResetAchievements(context.Background()))
}
