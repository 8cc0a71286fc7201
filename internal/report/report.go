// Package report writes a markdown progress report and optionally converts it to PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/assets"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
	"github.com/at-ishikawa/studylog/internal/pdf"
)

// DefaultRecentWindow is how many days of logs the report lists.
const DefaultRecentWindow = 7

// Source is the progress state a report is built from.
type Source interface {
	Phases() []curriculum.Phase
	DailyLogs() []activity.DailyLog
	Achievements() []achievement.Achievement
	Available() []achievement.Achievement
	Metrics() metrics.UserMetrics
}

// Build converts the current state into template data.
func Build(src Source, today time.Time, recentWindow int) assets.ProgressReport {
	if recentWindow < 1 {
		recentWindow = DefaultRecentWindow
	}
	m := src.Metrics()
	logs := src.DailyLogs()
	phases := src.Phases()
	all := src.Achievements()

	phaseTitles := make(map[string]string, len(phases))
	reportPhases := make([]assets.ReportPhase, 0, len(phases))
	for _, p := range phases {
		phaseTitles[p.ID] = p.Title
		reportPhases = append(reportPhases, assets.ReportPhase{
			Title:             p.Title,
			Status:            string(p.Status),
			Progress:          int(p.Progress),
			CompletedTopics:   p.CompletedTopics(),
			TotalTopics:       len(p.Topics),
			CompletedProjects: p.CompletedProjects(),
			TotalProjects:     len(p.Projects),
		})
	}

	var unlocked []assets.ReportAchievement
	for _, a := range all {
		if a.Unlocked {
			unlocked = append(unlocked, toReportAchievement(a))
		}
	}
	// Undated unlocks sort last.
	sort.SliceStable(unlocked, func(i, j int) bool {
		di, dj := unlocked[i].UnlockedDate, unlocked[j].UnlockedDate
		if di == nil || dj == nil {
			return di != nil && dj == nil
		}
		return di.Before(*dj)
	})

	var available []assets.ReportAchievement
	for _, a := range src.Available() {
		available = append(available, toReportAchievement(a))
	}

	since := metrics.Day(today).AddDate(0, 0, -(recentWindow - 1))
	var recent []assets.ReportLog
	for _, l := range logs {
		if metrics.Day(l.Date).Before(since) {
			continue
		}
		phase := phaseTitles[l.PhaseID]
		if phase == "" {
			phase = l.PhaseID
		}
		recent = append(recent, assets.ReportLog{
			Date:           metrics.Day(l.Date),
			Phase:          phase,
			HoursSpent:     l.HoursSpent,
			ProblemsSolved: l.ProblemsSolved,
			KeyTakeaway:    l.KeyTakeaway,
		})
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.Before(recent[j].Date)
	})

	return assets.ProgressReport{
		GeneratedAt: metrics.Day(today),
		Summary: assets.ReportSummary{
			CurrentStreak:       m.CurrentStreak,
			LongestStreak:       metrics.LongestRun(logs),
			TotalHours:          m.TotalHours,
			TotalProblemsSolved: m.TotalProblemsSolved,
			TotalPoints:         m.TotalPoints,
			Level:               string(m.Level),
			PointsToNextLevel:   m.PointsToNextLevel,
			UnlockedCount:       len(unlocked),
			AchievementCount:    len(all),
		},
		Phases:       reportPhases,
		Unlocked:     unlocked,
		Available:    available,
		RecentLogs:   recent,
		RecentWindow: recentWindow,
	}
}

func toReportAchievement(a achievement.Achievement) assets.ReportAchievement {
	return assets.ReportAchievement{
		Icon:         a.Icon,
		Title:        a.Title,
		Description:  a.Description,
		Points:       a.Points,
		UnlockedDate: a.UnlockedDate,
	}
}

// Options controls where and how the report is written.
type Options struct {
	OutputDirectory string
	TemplatePath    string
	RecentWindow    int
	PDF             bool
}

// Write renders the report into OutputDirectory as report-YYYY-MM-DD.md and
// returns the written paths, markdown first.
func Write(src Source, today time.Time, opts Options) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDirectory, err)
	}

	markdownPath := filepath.Join(opts.OutputDirectory, "report-"+metrics.Day(today).Format(time.DateOnly)+".md")
	output, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = output.Close()
	}()

	data := Build(src, today, opts.RecentWindow)
	if err := assets.WriteProgressReport(output, opts.TemplatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteProgressReport(%s) > %w", markdownPath, err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", markdownPath, err)
	}

	paths := []string{markdownPath}
	if !opts.PDF {
		return paths, nil
	}
	pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
	}
	return append(paths, pdfPath), nil
}
