// Package statistics aggregates daily study logs per month.
package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/studylog/internal/activity"
)

// StudyStatistics holds statistics for a time period
type StudyStatistics struct {
	Period     string // "2025-01"
	Sessions   int
	ActiveDays int
	Hours      float64
	Problems   int
	Topics     int // Unique topics studied in the period
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	Sessions   int
	ActiveDays int
	Hours      float64
	Problems   int
	Topics     int // Unique topics, deduplicated across periods
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []StudyStatistics
	Aggregate AggregateStatistics
}

type periodData struct {
	sessions int
	hours    float64
	problems int
	days     map[string]struct{}
	topics   map[string]struct{}
}

// CalculateStatistics calculates monthly statistics from daily logs.
// It accepts optional year and month filters (0 means no filter).
func CalculateStatistics(logs []activity.DailyLog, year, month int) StatisticsResult {
	stats := make(map[string]*periodData)
	globalDays := make(map[string]struct{})
	globalTopics := make(map[string]struct{})

	for _, log := range logs {
		if log.Date.IsZero() {
			continue
		}
		if !matchesFilter(log.Date.Year(), int(log.Date.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", log.Date.Year(), int(log.Date.Month()))
		data := ensurePeriodExists(stats, period)
		day := log.Date.Format("2006-01-02")

		data.sessions++
		data.hours += log.HoursSpent
		data.problems += log.ProblemsSolved
		data.days[day] = struct{}{}
		globalDays[day] = struct{}{}
		if log.TopicID != "" {
			data.topics[log.TopicID] = struct{}{}
			globalTopics[log.TopicID] = struct{}{}
		}
	}

	return buildResult(stats, globalDays, globalTopics)
}

func ensurePeriodExists(stats map[string]*periodData, period string) *periodData {
	if stats[period] == nil {
		stats[period] = &periodData{
			days:   make(map[string]struct{}),
			topics: make(map[string]struct{}),
		}
	}
	return stats[period]
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func buildResult(stats map[string]*periodData, globalDays, globalTopics map[string]struct{}) StatisticsResult {
	periods := make([]StudyStatistics, 0, len(stats))

	var aggregate AggregateStatistics
	for period, data := range stats {
		periods = append(periods, StudyStatistics{
			Period:     period,
			Sessions:   data.sessions,
			ActiveDays: len(data.days),
			Hours:      data.hours,
			Problems:   data.problems,
			Topics:     len(data.topics),
		})
		aggregate.Sessions += data.sessions
		aggregate.Hours += data.hours
		aggregate.Problems += data.problems
	}
	aggregate.ActiveDays = len(globalDays)
	aggregate.Topics = len(globalTopics)

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}
