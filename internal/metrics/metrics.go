// Package metrics derives streaks, totals, points and levels from study logs.
package metrics

import (
	"sort"
	"time"

	"github.com/at-ishikawa/studylog/internal/activity"
)

// UserMetrics is the derived summary of a learner's activity.
type UserMetrics struct {
	CurrentStreak       int       `db:"current_streak" yaml:"current_streak" json:"current_streak"`
	TotalHours          float64   `db:"total_hours" yaml:"total_hours" json:"total_hours"`
	TotalProblemsSolved int       `db:"total_problems_solved" yaml:"total_problems_solved" json:"total_problems_solved"`
	TotalPoints         int       `db:"total_points" yaml:"total_points" json:"total_points"`
	Level               Level     `db:"level" yaml:"level" json:"level"`
	PointsToNextLevel   int       `db:"points_to_next_level" yaml:"points_to_next_level" json:"points_to_next_level"`
	UpdatedAt           time.Time `db:"updated_at" yaml:"updated_at" json:"updated_at"`
}

// Scorable is anything that contributes points once it has been earned.
type Scorable interface {
	EarnedPoints() int
}

// Day returns the civil date of t as midnight UTC.
// The calendar fields are read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func logDays(logs []activity.DailyLog) map[time.Time]struct{} {
	days := make(map[time.Time]struct{}, len(logs))
	for _, l := range logs {
		days[Day(l.Date)] = struct{}{}
	}
	return days
}

// Streak counts consecutive calendar days ending at today that have at least one log.
func Streak(logs []activity.DailyLog, today time.Time) int {
	days := logDays(logs)
	streak := 0
	for day := Day(today); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

// LongestRun returns the length of the longest run of consecutive calendar days with a log.
func LongestRun(logs []activity.DailyLog) int {
	days := logDays(logs)
	if len(days) == 0 {
		return 0
	}
	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, 1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// Totals sums hours and solved problems across all logs.
func Totals(logs []activity.DailyLog) (hours float64, problems int) {
	for _, l := range logs {
		hours += l.HoursSpent
		problems += l.ProblemsSolved
	}
	return hours, problems
}

// TotalPoints sums the points of earned items.
func TotalPoints[S Scorable](items []S) int {
	total := 0
	for _, item := range items {
		total += item.EarnedPoints()
	}
	return total
}

// Compute assembles UserMetrics for the given evaluation day.
func Compute[S Scorable](logs []activity.DailyLog, items []S, today time.Time) UserMetrics {
	hours, problems := Totals(logs)
	points := TotalPoints(items)
	level, toNext := LevelFor(points)
	return UserMetrics{
		CurrentStreak:       Streak(logs, today),
		TotalHours:          hours,
		TotalProblemsSolved: problems,
		TotalPoints:         points,
		Level:               level,
		PointsToNextLevel:   toNext,
		UpdatedAt:           today,
	}
}
