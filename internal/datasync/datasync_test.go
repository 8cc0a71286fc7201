package datasync

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

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
	"github.com/at-ishikawa/studylog/internal/store"
)

var now = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

func logAt(day int, hour int) activity.DailyLog {
	return activity.DailyLog{
		Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		PhaseID:    "phase-1",
		HoursSpent: 1,
		CreatedAt:  time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC),
	}
}

func TestPlan(t *testing.T) {
	existing := store.Snapshot{
		Phases:       []curriculum.Phase{{ID: "phase-1"}},
		Achievements: []achievement.Achievement{{ID: "first-log"}},
		DailyLogs:    []activity.DailyLog{logAt(10, 9)},
	}
	incoming := store.Snapshot{
		Phases:       []curriculum.Phase{{ID: "phase-1"}, {ID: "phase-2", Title: "Backend"}, {ID: "phase-2"}},
		Achievements: []achievement.Achievement{{ID: "first-log"}, {ID: "hours-10"}},
		DailyLogs:    []activity.DailyLog{logAt(10, 9), logAt(10, 21), logAt(11, 9)},
	}

	var buf bytes.Buffer
	missing, result := Plan(existing, incoming, &buf)

	assert.Equal(t, ImportResult{
		PhasesNew: 1, PhasesSkipped: 2,
		AchievementsNew: 1, AchievementsSkipped: 1,
		LogsNew: 2, LogsSkipped: 1,
	}, result)
	assert.Equal(t, []curriculum.Phase{{ID: "phase-2", Title: "Backend"}}, missing.Phases)
	assert.Equal(t, []achievement.Achievement{{ID: "hours-10"}}, missing.Achievements)
	assert.Equal(t, []activity.DailyLog{logAt(10, 21), logAt(11, 9)}, missing.DailyLogs)
	assert.Contains(t, buf.String(), "[NEW]  phase phase-2 (Backend)")
	assert.Contains(t, buf.String(), "[SKIP]  phase phase-1")
	assert.Contains(t, buf.String(), "[NEW]  2 daily logs")
}

func TestImporter_Import(t *testing.T) {
	incoming := store.Snapshot{
		Phases:       []curriculum.Phase{{ID: "phase-1"}, {ID: "phase-2"}},
		Achievements: []achievement.Achievement{{ID: "first-log", Points: 10}},
		DailyLogs:    []activity.DailyLog{{ID: 7, Date: now, PhaseID: "phase-1", CreatedAt: now}},
	}

	tests := []struct {
		name     string
		incoming store.Snapshot
		opts     ImportOptions
		setup    func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository)
		want     *ImportResult
		wantErr  string
	}{
		{
			name:     "inserts only missing rows",
			incoming: incoming,
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return([]curriculum.Phase{{ID: "phase-1"}}, nil)
				achievements.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				logs.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				phases.EXPECT().BatchCreate(gomock.Any(), []curriculum.Phase{{ID: "phase-2"}}).Return(nil)
				achievements.EXPECT().BatchCreate(gomock.Any(), []achievement.Achievement{{ID: "first-log", Points: 10}}).Return(nil)
				logs.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, log *activity.DailyLog) error {
						assert.Equal(t, int64(0), log.ID)
						log.ID = 1
						return nil
					})
			},
			want: &ImportResult{PhasesNew: 1, PhasesSkipped: 1, AchievementsNew: 1, LogsNew: 1},
		},
		{
			name:     "dry run writes nothing",
			incoming: store.Snapshot{Phases: []curriculum.Phase{{ID: "phase-1"}}},
			opts:     ImportOptions{DryRun: true},
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				achievements.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
			},
			want: &ImportResult{PhasesNew: 1},
		},
		{
			name:     "find error",
			incoming: incoming,
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: "phaseRepo.FindAll() > connection refused",
		},
		{
			name:     "batch create error",
			incoming: store.Snapshot{Achievements: []achievement.Achievement{{ID: "first-log"}}},
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				achievements.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				phases.EXPECT().BatchCreate(gomock.Any(), gomock.Nil()).Return(nil)
				achievements.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).Return(errors.New("duplicate entry"))
			},
			wantErr: "achievementRepo.BatchCreate() > duplicate entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			phases := mock_curriculum.NewMockRepository(ctrl)
			logs := mock_activity.NewMockRepository(ctrl)
			achievements := mock_achievement.NewMockRepository(ctrl)
			tt.setup(phases, logs, achievements)

			got, err := NewImporter(phases, logs, achievements, io.Discard).Import(context.Background(), tt.incoming, tt.opts)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportYAML(t *testing.T) {
	ctx := context.Background()
	target := store.NewYAMLStore(t.TempDir(), func() time.Time { return now })
	first := logAt(10, 9)
	first.ID = 4
	require.NoError(t, target.SaveSnapshot(ctx, store.Snapshot{
		Phases:    []curriculum.Phase{{ID: "phase-1", Topics: []curriculum.Topic{{ID: "t1", PhaseID: "phase-1"}}}},
		DailyLogs: []activity.DailyLog{first},
	}))

	incoming := store.Snapshot{
		Phases:       []curriculum.Phase{{ID: "phase-1"}, {ID: "phase-2"}},
		Achievements: []achievement.Achievement{{ID: "first-log", Points: 10, IsActive: true, IsDefault: true}},
		DailyLogs:    []activity.DailyLog{logAt(11, 9)},
	}

	t.Run("dry run", func(t *testing.T) {
		got, err := ImportYAML(ctx, target, incoming, ImportOptions{DryRun: true}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 1, got.PhasesNew)

		phases, err := target.LoadPhases(ctx)
		require.NoError(t, err)
		assert.Len(t, phases, 1)
	})

	t.Run("merge", func(t *testing.T) {
		got, err := ImportYAML(ctx, target, incoming, ImportOptions{}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, &ImportResult{PhasesNew: 1, PhasesSkipped: 1, AchievementsNew: 1, LogsNew: 1}, got)

		snapshot, err := store.LoadSnapshot(ctx, target)
		require.NoError(t, err)
		require.Len(t, snapshot.Phases, 2)
		assert.Len(t, snapshot.Phases[0].Topics, 1)
		require.Len(t, snapshot.DailyLogs, 2)
		assert.Equal(t, int64(5), snapshot.DailyLogs[1].ID)
		require.Len(t, snapshot.Achievements, 1)
		assert.Equal(t, 2.0, snapshot.UserMetrics.TotalHours)
	})

	t.Run("second merge is a no-op", func(t *testing.T) {
		got, err := ImportYAML(ctx, target, incoming, ImportOptions{}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, &ImportResult{PhasesSkipped: 2, AchievementsSkipped: 1, LogsSkipped: 1}, got)
	})
}

func TestExporter_Export(t *testing.T) {
	unlocked := now
	tests := []struct {
		name    string
		setup   func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository)
		want    store.Snapshot
		wantErr string
	}{
		{
			name: "reads every table",
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return([]curriculum.Phase{{ID: "phase-1"}}, nil)
				logs.EXPECT().FindAll(gomock.Any()).Return([]activity.DailyLog{logAt(12, 9)}, nil)
				achievements.EXPECT().FindAll(gomock.Any()).Return([]achievement.Achievement{
					{ID: "first-log", Points: 10, Unlocked: true, UnlockedDate: &unlocked},
				}, nil)
			},
			want: store.Snapshot{
				Phases:       []curriculum.Phase{{ID: "phase-1"}},
				DailyLogs:    []activity.DailyLog{logAt(12, 9)},
				Achievements: []achievement.Achievement{{ID: "first-log", Points: 10, Unlocked: true, UnlockedDate: &unlocked}},
				UserMetrics: metrics.UserMetrics{
					CurrentStreak: 1, TotalHours: 1, TotalPoints: 10,
					Level: metrics.LevelBronze, PointsToNextLevel: 491, UpdatedAt: now,
				},
			},
		},
		{
			name: "log error",
			setup: func(phases *mock_curriculum.MockRepository, logs *mock_activity.MockRepository, achievements *mock_achievement.MockRepository) {
				phases.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				logs.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantErr: "logRepo.FindAll() > timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			phases := mock_curriculum.NewMockRepository(ctrl)
			logs := mock_activity.NewMockRepository(ctrl)
			achievements := mock_achievement.NewMockRepository(ctrl)
			tt.setup(phases, logs, achievements)

			got, err := NewExporter(phases, logs, achievements).Export(context.Background(), now)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
