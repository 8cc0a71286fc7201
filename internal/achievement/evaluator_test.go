package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// Wednesday
var evalDay = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func locked(id string, points int) Achievement {
	return Achievement{ID: id, Title: id, Points: points, IsActive: true, IsDefault: true}
}

func factsFor(logs []activity.DailyLog, phases []curriculum.Phase, unlocked []Achievement) Facts {
	today := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	return Facts{
		Metrics: metrics.Compute(logs, unlocked, today),
		Logs:    logs,
		Phases:  phases,
		Today:   today,
	}
}

func logAt(day time.Time, hours float64, createdHour int) activity.DailyLog {
	return activity.DailyLog{
		Date:       day,
		PhaseID:    "phase-1",
		HoursSpent: hours,
		CreatedAt:  time.Date(day.Year(), day.Month(), day.Day(), createdHour, 0, 0, 0, time.UTC),
	}
}

func apply(achievements []Achievement, ids []string) []Achievement {
	out := append([]Achievement(nil), achievements...)
	for _, id := range ids {
		if i, ok := Find(out, id); ok {
			out[i].Unlock(evalDay)
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	completePhase := curriculum.Phase{
		ID: "phase-1", Order: 1,
		Topics:   []curriculum.Topic{{ID: "t1", Completed: true}},
		Projects: []curriculum.Project{{ID: "p1", Status: curriculum.ProjectStatusCompleted}},
	}
	openPhase := curriculum.Phase{
		ID: "phase-2", Order: 2,
		Topics: []curriculum.Topic{{ID: "t2"}},
	}

	tests := []struct {
		name         string
		logs         []activity.DailyLog
		phases       []curriculum.Phase
		achievements []Achievement
		want         []string
	}{
		{
			name:         "hours threshold crossed by a single log",
			logs:         []activity.DailyLog{logAt(evalDay, 10.5, 12)},
			achievements: []Achievement{locked("hours-10", 50), locked("hours-25", 100), locked("first-log", 10)},
			want:         []string{"first-log", "hours-10"},
		},
		{
			name: "already unlocked achievements are skipped",
			logs: []activity.DailyLog{logAt(evalDay, 10.5, 12)},
			achievements: []Achievement{
				func() Achievement { a := locked("first-log", 10); a.Unlock(evalDay); return a }(),
				locked("hours-10", 50),
			},
			want: []string{"hours-10"},
		},
		{
			name:         "ids missing from the collection are ignored",
			logs:         []activity.DailyLog{logAt(evalDay, 1, 12)},
			achievements: []Achievement{locked("unknown-rule", 10)},
			want:         nil,
		},
		{
			name: "manual achievements are never evaluated",
			logs: []activity.DailyLog{logAt(evalDay, 1, 12)},
			achievements: []Achievement{
				func() Achievement { a := locked("first-log", 10); a.Manual = true; return a }(),
				locked("open-source-contribution", 100),
			},
			want: nil,
		},
		{
			name: "inactive achievements are skipped",
			logs: []activity.DailyLog{logAt(evalDay, 10.5, 12)},
			achievements: []Achievement{
				func() Achievement { a := locked("first-log", 10); a.IsActive = false; return a }(),
				locked("hours-10", 50),
			},
			want: []string{"hours-10"},
		},
		{
			name:         "point milestones include points unlocked in the same pass",
			logs:         []activity.DailyLog{logAt(evalDay, 1, 12)},
			achievements: []Achievement{locked("points-500", 50), locked("first-log", 100), locked("points-100", 400)},
			want:         []string{"first-log", "points-100", "points-500"},
		},
		{
			name:         "phase completion follows phase order",
			phases:       []curriculum.Phase{openPhase, completePhase},
			achievements: []Achievement{locked("phase-1-complete", 100), locked("phase-2-complete", 100), locked("all-phases-complete", 500), locked("project-1", 50), locked("topic-1", 10)},
			want:         []string{"project-1", "phase-1-complete", "topic-1"},
		},
		{
			name:         "a phase with no topics and no projects never completes",
			phases:       []curriculum.Phase{{ID: "empty", Order: 1}},
			achievements: []Achievement{locked("phase-1-complete", 100), locked("all-phases-complete", 500), locked("all-topics", 100)},
			want:         nil,
		},
		{
			name:   "resources count towards resource milestones",
			phases: []curriculum.Phase{{ID: "phase-1", Order: 1, Topics: []curriculum.Topic{{ID: "t1", Resources: []curriculum.Resource{{ID: "r1", Completed: true}}}}}},
			achievements: []Achievement{
				locked("resource-1", 10), locked("resource-10", 50),
			},
			want: []string{"resource-1"},
		},
		{
			name: "temporal patterns",
			logs: []activity.DailyLog{
				logAt(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), 4, 6),
				logAt(evalDay, 1, 23),
			},
			achievements: []Achievement{locked("early-bird", 25), locked("night-owl", 25), locked("weekend-warrior", 25), locked("marathon-session", 50)},
			want:         []string{"early-bird", "night-owl", "weekend-warrior", "marathon-session"},
		},
		{
			name: "perfect week needs seven consecutive dates",
			logs: func() []activity.DailyLog {
				var logs []activity.DailyLog
				for i := range 7 {
					logs = append(logs, logAt(evalDay.AddDate(0, 0, -i-3), 1, 12))
				}
				return logs
			}(),
			achievements: []Achievement{locked("perfect-week", 100), locked("week-logger", 50), locked("streak-3", 30)},
			want:         []string{"week-logger", "perfect-week"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(factsFor(tt.logs, tt.phases, tt.achievements), tt.achievements)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_IsIdempotent(t *testing.T) {
	logs := []activity.DailyLog{logAt(evalDay, 12, 12), logAt(evalDay.AddDate(0, 0, -1), 1, 12)}
	achievements := []Achievement{
		locked("first-log", 100), locked("hours-10", 50), locked("points-100", 25), locked("streak-3", 30),
	}

	first := Evaluate(factsFor(logs, nil, achievements), achievements)
	require.Equal(t, []string{"first-log", "hours-10", "points-100"}, first)

	achievements = apply(achievements, first)
	pointsAfterFirst := metrics.TotalPoints(achievements)

	second := Evaluate(factsFor(logs, nil, achievements), achievements)
	assert.Empty(t, second)
	assert.Equal(t, pointsAfterFirst, metrics.TotalPoints(apply(achievements, second)))
	for _, a := range achievements[:3] {
		assert.True(t, a.Unlocked, a.ID)
	}
}

func TestEvaluate_ReadsLogTimesInTheLearnersLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 23:30 UTC is 08:30 the next morning in Tokyo.
	l := activity.DailyLog{
		Date:       evalDay,
		PhaseID:    "phase-1",
		HoursSpent: 1,
		CreatedAt:  time.Date(2025, 3, 11, 23, 30, 0, 0, time.UTC),
	}
	achievements := []Achievement{locked("night-owl", 25), locked("early-bird", 25)}
	facts := Facts{Logs: []activity.DailyLog{l}, Today: time.Date(2025, 3, 12, 9, 0, 0, 0, tokyo)}

	assert.Empty(t, Evaluate(facts, achievements))
}

func TestRules_HaveUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range Rules() {
		assert.False(t, seen[rule.ID], "duplicate rule %s", rule.ID)
		seen[rule.ID] = true
	}
	for _, id := range ManualIDs {
		assert.False(t, seen[id], "manual achievement %s must not have a rule", id)
	}
	assert.True(t, seen["week-streak"])
	assert.True(t, seen["consistency-king"])
}
