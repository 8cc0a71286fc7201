package assets

import (
	"fmt"
	"io"
	"time"
)

// ProgressReport is the data rendered into the progress report template.
type ProgressReport struct {
	GeneratedAt  time.Time
	Summary      ReportSummary
	Phases       []ReportPhase
	Unlocked     []ReportAchievement
	Available    []ReportAchievement
	RecentLogs   []ReportLog
	RecentWindow int
}

type ReportSummary struct {
	CurrentStreak       int
	LongestStreak       int
	TotalHours          float64
	TotalProblemsSolved int
	TotalPoints         int
	Level               string
	PointsToNextLevel   int
	UnlockedCount       int
	AchievementCount    int
}

type ReportPhase struct {
	Title             string
	Status            string
	Progress          int
	CompletedTopics   int
	TotalTopics       int
	CompletedProjects int
	TotalProjects     int
}

type ReportAchievement struct {
	Icon         string
	Title        string
	Description  string
	Points       int
	UnlockedDate *time.Time
}

type ReportLog struct {
	Date           time.Time
	Phase          string
	HoursSpent     float64
	ProblemsSolved int
	KeyTakeaway    string
}

func WriteProgressReport(output io.Writer, templatePath string, templateData ProgressReport) error {
	tmpl, err := ParseProgressReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseProgressReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
