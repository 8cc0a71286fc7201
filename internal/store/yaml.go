package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

const (
	phasesFile       = "phases.yml"
	dailyLogsFile    = "daily_logs.yml"
	achievementsFile = "achievements.yml"
	userMetricsFile  = "user_metrics.yml"
)

// ErrDuplicateAchievement is returned when an achievement with the same ID already exists.
var ErrDuplicateAchievement = errors.New("achievement already exists")

// YAMLStore implements Store on a directory of YAML files.
// A missing file reads as an empty collection.
type YAMLStore struct {
	dir   string
	clock Clock
	mu    sync.Mutex
}

// NewYAMLStore creates a YAMLStore rooted at dir.
func NewYAMLStore(dir string, clock Clock) *YAMLStore {
	return &YAMLStore{dir: dir, clock: clock}
}

// Dir returns the directory the files are written to.
func (s *YAMLStore) Dir() string {
	return s.dir
}

func readYAMLFile[T any](path string) (T, error) {
	var result T
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return result, fmt.Errorf("yaml.NewDecoder().Decode(%s)> %w", path, err)
	}
	return result, nil
}

func writeYAMLFile(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", tmp, err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (s *YAMLStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *YAMLStore) loadPhases() ([]curriculum.Phase, error) {
	phases, err := readYAMLFile[[]curriculum.Phase](s.path(phasesFile))
	if err != nil {
		return nil, err
	}
	curriculum.RecalculateAll(phases)
	return phases, nil
}

func (s *YAMLStore) loadDailyLogs() ([]activity.DailyLog, error) {
	return readYAMLFile[[]activity.DailyLog](s.path(dailyLogsFile))
}

func (s *YAMLStore) loadAchievements() ([]achievement.Achievement, error) {
	return readYAMLFile[[]achievement.Achievement](s.path(achievementsFile))
}

// LoadPhases reads phases.yml and recalculates progress.
func (s *YAMLStore) LoadPhases(_ context.Context) ([]curriculum.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPhases()
}

// LoadDailyLogs reads daily_logs.yml.
func (s *YAMLStore) LoadDailyLogs(_ context.Context) ([]activity.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadDailyLogs()
}

// LoadAchievements reads achievements.yml.
func (s *YAMLStore) LoadAchievements(_ context.Context) ([]achievement.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAchievements()
}

// LoadUserMetrics reads user_metrics.yml.
func (s *YAMLStore) LoadUserMetrics(_ context.Context) (metrics.UserMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := readYAMLFile[metrics.UserMetrics](s.path(userMetricsFile))
	if err != nil {
		return metrics.UserMetrics{}, err
	}
	if m.Level == "" {
		m.Level, m.PointsToNextLevel = metrics.LevelFor(m.TotalPoints)
	}
	return m, nil
}

// AppendDailyLog appends the log with the next free ID.
func (s *YAMLStore) AppendDailyLog(_ context.Context, log activity.DailyLog) (activity.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.loadDailyLogs()
	if err != nil {
		return activity.DailyLog{}, err
	}
	var maxID int64
	for _, l := range logs {
		maxID = max(maxID, l.ID)
	}
	log.ID = maxID + 1
	logs = append(logs, log)
	if err := writeYAMLFile(s.path(dailyLogsFile), logs); err != nil {
		return activity.DailyLog{}, err
	}
	return log, nil
}

// PutDailyLog stores a log that already has an ID, replacing any log with the same ID.
func (s *YAMLStore) PutDailyLog(_ context.Context, log activity.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.loadDailyLogs()
	if err != nil {
		return err
	}
	replaced := false
	for i := range logs {
		if logs[i].ID == log.ID {
			logs[i] = log
			replaced = true
		}
	}
	if !replaced {
		logs = append(logs, log)
	}
	return writeYAMLFile(s.path(dailyLogsFile), logs)
}

func (s *YAMLStore) updatePhases(update func(phases []curriculum.Phase) (int, error)) (curriculum.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	phases, err := s.loadPhases()
	if err != nil {
		return curriculum.Phase{}, err
	}
	i, err := update(phases)
	if err != nil {
		return curriculum.Phase{}, err
	}
	phases[i].Recalculate()
	if err := writeYAMLFile(s.path(phasesFile), phases); err != nil {
		return curriculum.Phase{}, err
	}
	return phases[i], nil
}

// SetTopicCompleted toggles a topic.
func (s *YAMLStore) SetTopicCompleted(_ context.Context, topicID string, completed bool) (curriculum.Phase, error) {
	return s.updatePhases(func(phases []curriculum.Phase) (int, error) {
		pi, ti, ok := curriculum.FindTopic(phases, topicID)
		if !ok {
			return 0, fmt.Errorf("topic %s: %w", topicID, curriculum.ErrNotFound)
		}
		phases[pi].Topics[ti].Completed = completed
		return pi, nil
	})
}

// SetResourceCompleted toggles a resource.
func (s *YAMLStore) SetResourceCompleted(_ context.Context, resourceID string, completed bool) (curriculum.Phase, error) {
	return s.updatePhases(func(phases []curriculum.Phase) (int, error) {
		pi, ti, ri, ok := curriculum.FindResource(phases, resourceID)
		if !ok {
			return 0, fmt.Errorf("resource %s: %w", resourceID, curriculum.ErrNotFound)
		}
		phases[pi].Topics[ti].Resources[ri].Completed = completed
		return pi, nil
	})
}

// SetProjectStatus changes a project's status.
func (s *YAMLStore) SetProjectStatus(_ context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, error) {
	return s.updatePhases(func(phases []curriculum.Phase) (int, error) {
		pi, pj, ok := curriculum.FindProject(phases, projectID)
		if !ok {
			return 0, fmt.Errorf("project %s: %w", projectID, curriculum.ErrNotFound)
		}
		phases[pi].Projects[pj].Status = status
		return pi, nil
	})
}

// PutPhase replaces the stored phase with the same ID, or appends it.
func (s *YAMLStore) PutPhase(_ context.Context, phase curriculum.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	phases, err := s.loadPhases()
	if err != nil {
		return err
	}
	replaced := false
	for i := range phases {
		if phases[i].ID == phase.ID {
			phases[i] = phase
			replaced = true
		}
	}
	if !replaced {
		phases = append(phases, phase)
	}
	return writeYAMLFile(s.path(phasesFile), phases)
}

func (s *YAMLStore) updateAchievements(update func([]achievement.Achievement) ([]achievement.Achievement, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	achievements, err := s.loadAchievements()
	if err != nil {
		return err
	}
	updated, err := update(achievements)
	if err != nil {
		return err
	}
	return writeYAMLFile(s.path(achievementsFile), updated)
}

// RecordUnlock unlocks an achievement. An already unlocked achievement keeps its date.
func (s *YAMLStore) RecordUnlock(_ context.Context, achievementID string, date time.Time) (achievement.Achievement, error) {
	var unlocked achievement.Achievement
	err := s.updateAchievements(func(achievements []achievement.Achievement) ([]achievement.Achievement, error) {
		i, ok := achievement.Find(achievements, achievementID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", achievementID, achievement.ErrNotFound)
		}
		if !achievements[i].Unlocked {
			achievements[i].Unlock(date)
		}
		unlocked = achievements[i]
		return achievements, nil
	})
	if err != nil {
		return achievement.Achievement{}, err
	}
	return unlocked, nil
}

// PutAchievement replaces the stored achievement with the same ID, or appends it.
func (s *YAMLStore) PutAchievement(_ context.Context, a achievement.Achievement) error {
	return s.updateAchievements(func(achievements []achievement.Achievement) ([]achievement.Achievement, error) {
		if i, ok := achievement.Find(achievements, a.ID); ok {
			achievements[i] = a
			return achievements, nil
		}
		return append(achievements, a), nil
	})
}

// RetireAchievement removes an achievement from the pool.
func (s *YAMLStore) RetireAchievement(_ context.Context, achievementID string) error {
	return s.updateAchievements(func(achievements []achievement.Achievement) ([]achievement.Achievement, error) {
		i, ok := achievement.Find(achievements, achievementID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", achievementID, achievement.ErrNotFound)
		}
		achievements[i].IsActive = false
		return achievements, nil
	})
}

// CreateAchievement appends a new achievement.
func (s *YAMLStore) CreateAchievement(_ context.Context, a achievement.Achievement) error {
	return s.updateAchievements(func(achievements []achievement.Achievement) ([]achievement.Achievement, error) {
		if _, ok := achievement.Find(achievements, a.ID); ok {
			return nil, fmt.Errorf("%s: %w", a.ID, ErrDuplicateAchievement)
		}
		return append(achievements, a), nil
	})
}

// ResetAchievements relocks the catalog and drops synthesized achievements.
func (s *YAMLStore) ResetAchievements(_ context.Context) error {
	return s.updateAchievements(func(achievements []achievement.Achievement) ([]achievement.Achievement, error) {
		return achievement.Reset(achievements, achievement.DefaultIDs(achievements)), nil
	})
}

// RecomputeUserMetrics derives the metrics from the stored logs and achievements and saves them.
func (s *YAMLStore) RecomputeUserMetrics(_ context.Context) (metrics.UserMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.loadDailyLogs()
	if err != nil {
		return metrics.UserMetrics{}, err
	}
	achievements, err := s.loadAchievements()
	if err != nil {
		return metrics.UserMetrics{}, err
	}
	m := metrics.Compute(logs, achievements, s.clock())
	if err := writeYAMLFile(s.path(userMetricsFile), m); err != nil {
		return metrics.UserMetrics{}, err
	}
	return m, nil
}

// SavePhases overwrites phases.yml.
func (s *YAMLStore) SavePhases(_ context.Context, phases []curriculum.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeYAMLFile(s.path(phasesFile), emptyIfNil(phases))
}

// SaveDailyLogs overwrites daily_logs.yml.
func (s *YAMLStore) SaveDailyLogs(_ context.Context, logs []activity.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeYAMLFile(s.path(dailyLogsFile), emptyIfNil(logs))
}

// SaveAchievements overwrites achievements.yml.
func (s *YAMLStore) SaveAchievements(_ context.Context, achievements []achievement.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeYAMLFile(s.path(achievementsFile), emptyIfNil(achievements))
}

// SaveUserMetrics overwrites user_metrics.yml.
func (s *YAMLStore) SaveUserMetrics(_ context.Context, m metrics.UserMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeYAMLFile(s.path(userMetricsFile), m)
}

// SaveSnapshot overwrites every file with the snapshot.
func (s *YAMLStore) SaveSnapshot(_ context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := []struct {
		name string
		data any
	}{
		{phasesFile, emptyIfNil(snapshot.Phases)},
		{dailyLogsFile, emptyIfNil(snapshot.DailyLogs)},
		{achievementsFile, emptyIfNil(snapshot.Achievements)},
		{userMetricsFile, snapshot.UserMetrics},
	}
	for _, f := range files {
		if err := writeYAMLFile(s.path(f.name), f.data); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
