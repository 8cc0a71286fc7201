package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/studylog/internal/activity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateStatistics(t *testing.T) {
	logs := []activity.DailyLog{
		{Date: day(2025, 1, 3), TopicID: "arrays", HoursSpent: 1.5, ProblemsSolved: 2},
		{Date: day(2025, 1, 3), TopicID: "trees", HoursSpent: 0.5},
		{Date: day(2025, 1, 10), TopicID: "arrays", HoursSpent: 2, ProblemsSolved: 1},
		{Date: day(2025, 2, 1), HoursSpent: 1},
		{Date: day(2024, 12, 31), TopicID: "arrays", HoursSpent: 3, ProblemsSolved: 4},
		{HoursSpent: 10},
	}

	tests := []struct {
		name  string
		year  int
		month int
		want  StatisticsResult
	}{
		{
			name: "no filter",
			want: StatisticsResult{
				Periods: []StudyStatistics{
					{Period: "2025-02", Sessions: 1, ActiveDays: 1, Hours: 1},
					{Period: "2025-01", Sessions: 3, ActiveDays: 2, Hours: 4, Problems: 3, Topics: 2},
					{Period: "2024-12", Sessions: 1, ActiveDays: 1, Hours: 3, Problems: 4, Topics: 1},
				},
				Aggregate: AggregateStatistics{Sessions: 5, ActiveDays: 4, Hours: 8, Problems: 7, Topics: 2},
			},
		},
		{
			name: "year filter",
			year: 2025,
			want: StatisticsResult{
				Periods: []StudyStatistics{
					{Period: "2025-02", Sessions: 1, ActiveDays: 1, Hours: 1},
					{Period: "2025-01", Sessions: 3, ActiveDays: 2, Hours: 4, Problems: 3, Topics: 2},
				},
				Aggregate: AggregateStatistics{Sessions: 4, ActiveDays: 3, Hours: 5, Problems: 3, Topics: 2},
			},
		},
		{
			name:  "month filter",
			year:  2025,
			month: 2,
			want: StatisticsResult{
				Periods:   []StudyStatistics{{Period: "2025-02", Sessions: 1, ActiveDays: 1, Hours: 1}},
				Aggregate: AggregateStatistics{Sessions: 1, ActiveDays: 1, Hours: 1},
			},
		},
		{
			name: "no matching logs",
			year: 2023,
			want: StatisticsResult{
				Periods: []StudyStatistics{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatistics(logs, tt.year, tt.month)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name                  string
		logYear, logMonth     int
		filterYear, filterMon int
		want                  bool
	}{
		{name: "no filter", logYear: 2025, logMonth: 1, want: true},
		{name: "same year", logYear: 2025, logMonth: 1, filterYear: 2025, want: true},
		{name: "other year", logYear: 2024, logMonth: 1, filterYear: 2025, want: false},
		{name: "same month", logYear: 2025, logMonth: 3, filterYear: 2025, filterMon: 3, want: true},
		{name: "other month", logYear: 2025, logMonth: 4, filterYear: 2025, filterMon: 3, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesFilter(tt.logYear, tt.logMonth, tt.filterYear, tt.filterMon))
		})
	}
}
