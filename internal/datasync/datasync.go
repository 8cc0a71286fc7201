// Package datasync copies curriculum, achievements and daily logs between the
// YAML files and the database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
	"github.com/at-ishikawa/studylog/internal/store"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	PhasesNew           int
	PhasesSkipped       int
	AchievementsNew     int
	AchievementsSkipped int
	LogsNew             int
	LogsSkipped         int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Plan returns the part of incoming that existing does not have yet. Phases
// and achievements match by ID; daily logs match by date and creation time.
func Plan(existing, incoming store.Snapshot, writer io.Writer) (store.Snapshot, ImportResult) {
	var result ImportResult
	var missing store.Snapshot

	phaseIDs := make(map[string]bool, len(existing.Phases))
	for _, p := range existing.Phases {
		phaseIDs[p.ID] = true
	}
	for _, p := range incoming.Phases {
		if phaseIDs[p.ID] {
			fmt.Fprintf(writer, "  [SKIP]  phase %s\n", p.ID)
			result.PhasesSkipped++
			continue
		}
		phaseIDs[p.ID] = true
		fmt.Fprintf(writer, "  [NEW]  phase %s (%s)\n", p.ID, p.Title)
		missing.Phases = append(missing.Phases, p)
		result.PhasesNew++
	}

	achievementIDs := make(map[string]bool, len(existing.Achievements))
	for _, a := range existing.Achievements {
		achievementIDs[a.ID] = true
	}
	for _, a := range incoming.Achievements {
		if achievementIDs[a.ID] {
			result.AchievementsSkipped++
			continue
		}
		achievementIDs[a.ID] = true
		fmt.Fprintf(writer, "  [NEW]  achievement %s (%s)\n", a.ID, a.Title)
		missing.Achievements = append(missing.Achievements, a)
		result.AchievementsNew++
	}

	type logKey struct {
		date      time.Time
		createdAt int64
	}
	keyOf := func(l activity.DailyLog) logKey {
		return logKey{date: metrics.Day(l.Date), createdAt: l.CreatedAt.UnixMilli()}
	}
	logKeys := make(map[logKey]bool, len(existing.DailyLogs))
	for _, l := range existing.DailyLogs {
		logKeys[keyOf(l)] = true
	}
	for _, l := range incoming.DailyLogs {
		key := keyOf(l)
		if logKeys[key] {
			result.LogsSkipped++
			continue
		}
		logKeys[key] = true
		missing.DailyLogs = append(missing.DailyLogs, l)
		result.LogsNew++
	}
	if result.LogsNew > 0 {
		fmt.Fprintf(writer, "  [NEW]  %d daily logs\n", result.LogsNew)
	}

	return missing, result
}

// Importer writes seed data or a YAML snapshot into the database.
type Importer struct {
	phaseRepo       curriculum.Repository
	logRepo         activity.Repository
	achievementRepo achievement.Repository
	writer          io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(phaseRepo curriculum.Repository, logRepo activity.Repository, achievementRepo achievement.Repository, writer io.Writer) *Importer {
	return &Importer{
		phaseRepo:       phaseRepo,
		logRepo:         logRepo,
		achievementRepo: achievementRepo,
		writer:          writer,
	}
}

// Import inserts everything in incoming that the database does not have.
// Existing rows are never updated.
func (imp *Importer) Import(ctx context.Context, incoming store.Snapshot, opts ImportOptions) (*ImportResult, error) {
	var existing store.Snapshot
	var err error
	if existing.Phases, err = imp.phaseRepo.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("phaseRepo.FindAll() > %w", err)
	}
	if existing.Achievements, err = imp.achievementRepo.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("achievementRepo.FindAll() > %w", err)
	}
	if len(incoming.DailyLogs) > 0 {
		if existing.DailyLogs, err = imp.logRepo.FindAll(ctx); err != nil {
			return nil, fmt.Errorf("logRepo.FindAll() > %w", err)
		}
	}

	missing, result := Plan(existing, incoming, imp.writer)
	if opts.DryRun {
		return &result, nil
	}

	if err := imp.phaseRepo.BatchCreate(ctx, missing.Phases); err != nil {
		return nil, fmt.Errorf("phaseRepo.BatchCreate() > %w", err)
	}
	if err := imp.achievementRepo.BatchCreate(ctx, missing.Achievements); err != nil {
		return nil, fmt.Errorf("achievementRepo.BatchCreate() > %w", err)
	}
	for i := range missing.DailyLogs {
		log := missing.DailyLogs[i]
		log.ID = 0
		if err := imp.logRepo.Create(ctx, &log); err != nil {
			return nil, fmt.Errorf("logRepo.Create(%s) > %w", log.Date.Format(time.DateOnly), err)
		}
	}
	return &result, nil
}

// SnapshotWriter persists a whole snapshot, such as the YAML store.
type SnapshotWriter interface {
	store.Store
	SaveSnapshot(ctx context.Context, snapshot store.Snapshot) error
}

// ImportYAML merges incoming into a file-backed store.
func ImportYAML(ctx context.Context, target SnapshotWriter, incoming store.Snapshot, opts ImportOptions, writer io.Writer) (*ImportResult, error) {
	existing, err := store.LoadSnapshot(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("store.LoadSnapshot() > %w", err)
	}
	missing, result := Plan(existing, incoming, writer)
	if opts.DryRun {
		return &result, nil
	}

	merged := existing
	merged.Phases = append(merged.Phases, missing.Phases...)
	merged.Achievements = append(merged.Achievements, missing.Achievements...)
	nextID := int64(0)
	for _, l := range merged.DailyLogs {
		nextID = max(nextID, l.ID)
	}
	for _, l := range missing.DailyLogs {
		nextID++
		l.ID = nextID
		merged.DailyLogs = append(merged.DailyLogs, l)
	}
	if err := target.SaveSnapshot(ctx, merged); err != nil {
		return nil, fmt.Errorf("SaveSnapshot() > %w", err)
	}
	if _, err := target.RecomputeUserMetrics(ctx); err != nil {
		return nil, fmt.Errorf("RecomputeUserMetrics() > %w", err)
	}
	return &result, nil
}

// Exporter reads the database into a snapshot.
type Exporter struct {
	phaseRepo       curriculum.Repository
	logRepo         activity.Repository
	achievementRepo achievement.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(phaseRepo curriculum.Repository, logRepo activity.Repository, achievementRepo achievement.Repository) *Exporter {
	return &Exporter{
		phaseRepo:       phaseRepo,
		logRepo:         logRepo,
		achievementRepo: achievementRepo,
	}
}

// Export reads all data from the database and derives the metrics for today.
func (e *Exporter) Export(ctx context.Context, today time.Time) (store.Snapshot, error) {
	phases, err := e.phaseRepo.FindAll(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("phaseRepo.FindAll() > %w", err)
	}

	logs, err := e.logRepo.FindAll(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("logRepo.FindAll() > %w", err)
	}

	achievements, err := e.achievementRepo.FindAll(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("achievementRepo.FindAll() > %w", err)
	}

	return store.Snapshot{
		Phases:       phases,
		DailyLogs:    logs,
		Achievements: achievements,
		UserMetrics:  metrics.Compute(logs, achievements, today),
	}, nil
}
