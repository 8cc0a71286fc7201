// Package engine keeps the learner's session state and turns every mutation
// into recomputed metrics, achievement unlocks and events.
//
// A Session is not safe for concurrent use. Hosts that accept overlapping
// requests must serialize calls.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
	"github.com/at-ishikawa/studylog/internal/store"
)

var (
	// ErrSaveFailed wraps persistence failures of mutations. The in-memory state is unchanged.
	ErrSaveFailed = errors.New("failed to save")
	// ErrLoadFailed wraps persistence failures while loading state.
	ErrLoadFailed = errors.New("failed to load")
	// ErrAchievementNotFound is returned for unknown achievement IDs.
	ErrAchievementNotFound = errors.New("achievement not found")
	// ErrResetNotConfirmed is returned when Reset is called without confirmation.
	ErrResetNotConfirmed = errors.New("reset must be confirmed")
)

// Session owns the phases, logs, achievements and metrics of one learner.
type Session struct {
	store store.Store
	pool  *achievement.Pool
	clock store.Clock
	bus   bus

	phases       []curriculum.Phase
	logs         []activity.DailyLog
	achievements []achievement.Achievement
	metrics      metrics.UserMetrics
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for "today" and log timestamps.
func WithClock(clock store.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithPool sets the achievement pool used by Replenish.
func WithPool(pool *achievement.Pool) Option {
	return func(s *Session) { s.pool = pool }
}

// Open loads the session state from st.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Session, error) {
	s := &Session{
		store: st,
		pool:  achievement.NewPool(achievement.DefaultPoolFloor),
		clock: store.NewClock(time.Local),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory state with the stored one.
// On failure the previous state is kept.
func (s *Session) Reload(ctx context.Context) error {
	snapshot, err := store.LoadSnapshot(ctx, s.store)
	if err != nil {
		slog.Default().Error("failed to load session", "error", err)
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	curriculum.RecalculateAll(snapshot.Phases)
	s.phases = snapshot.Phases
	s.logs = snapshot.DailyLogs
	s.achievements = snapshot.Achievements
	s.metrics = snapshot.UserMetrics
	s.refreshMetrics()
	return nil
}

// Subscribe registers h for every future event.
func (s *Session) Subscribe(h Handler) {
	s.bus.subscribe(h)
}

// Phases returns a copy of the phases.
func (s *Session) Phases() []curriculum.Phase {
	return append([]curriculum.Phase(nil), s.phases...)
}

// DailyLogs returns a copy of the logs.
func (s *Session) DailyLogs() []activity.DailyLog {
	return append([]activity.DailyLog(nil), s.logs...)
}

// Achievements returns a copy of every achievement.
func (s *Session) Achievements() []achievement.Achievement {
	return append([]achievement.Achievement(nil), s.achievements...)
}

// Available returns the achievements that are active and still locked.
func (s *Session) Available() []achievement.Achievement {
	return achievement.FilterAvailable(s.achievements)
}

// Metrics returns the current metrics.
func (s *Session) Metrics() metrics.UserMetrics {
	return s.metrics
}

// Degraded reports whether the store is serving from its local cache.
func (s *Session) Degraded() bool {
	d, ok := s.store.(interface{ Degraded() bool })
	return ok && d.Degraded()
}

func (s *Session) now() time.Time {
	return s.clock()
}

func (s *Session) refreshMetrics() {
	s.metrics = metrics.Compute(s.logs, s.achievements, s.now())
}

func saveFailed(operation string, err error) error {
	slog.Default().Error("failed to save",
		"operation", operation,
		"error", err,
	)
	return fmt.Errorf("%s: %w: %w", operation, ErrSaveFailed, err)
}

// AppendLog stores a new daily log and evaluates achievements.
// A zero Date defaults to today and a zero CreatedAt to now.
// It returns the stored log and the achievements it unlocked.
func (s *Session) AppendLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, []achievement.Achievement, error) {
	now := s.now()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}
	if log.Date.IsZero() {
		log.Date = now
	}
	log.Date = metrics.Day(log.Date)
	if err := log.Validate(); err != nil {
		return activity.DailyLog{}, nil, err
	}

	stored, err := s.store.AppendDailyLog(ctx, log)
	if err != nil {
		return activity.DailyLog{}, nil, saveFailed("append daily log", err)
	}
	s.logs = append(s.logs, stored)

	unlocked, err := s.evaluate(ctx)
	s.syncMetrics(ctx)
	return stored, unlocked, err
}

// SetTopicCompleted toggles a topic and evaluates achievements.
func (s *Session) SetTopicCompleted(ctx context.Context, topicID string, completed bool) (curriculum.Phase, []achievement.Achievement, error) {
	return s.updatePhase(ctx, "set topic completed", func(ctx context.Context) (curriculum.Phase, error) {
		return s.store.SetTopicCompleted(ctx, topicID, completed)
	})
}

// SetResourceCompleted toggles a resource and evaluates achievements.
func (s *Session) SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (curriculum.Phase, []achievement.Achievement, error) {
	return s.updatePhase(ctx, "set resource completed", func(ctx context.Context) (curriculum.Phase, error) {
		return s.store.SetResourceCompleted(ctx, resourceID, completed)
	})
}

// SetProjectStatus changes a project's status and evaluates achievements.
func (s *Session) SetProjectStatus(ctx context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, []achievement.Achievement, error) {
	if _, err := curriculum.ParseProjectStatus(string(status)); err != nil {
		return curriculum.Phase{}, nil, err
	}
	return s.updatePhase(ctx, "set project status", func(ctx context.Context) (curriculum.Phase, error) {
		return s.store.SetProjectStatus(ctx, projectID, status)
	})
}

func (s *Session) updatePhase(
	ctx context.Context,
	operation string,
	update func(ctx context.Context) (curriculum.Phase, error),
) (curriculum.Phase, []achievement.Achievement, error) {
	phase, err := update(ctx)
	if errors.Is(err, curriculum.ErrNotFound) {
		return curriculum.Phase{}, nil, fmt.Errorf("%s: %w", operation, err)
	}
	if err != nil {
		return curriculum.Phase{}, nil, saveFailed(operation, err)
	}
	phase.Recalculate()
	s.replacePhase(phase)

	unlocked, err := s.evaluate(ctx)
	if len(unlocked) > 0 {
		s.syncMetrics(ctx)
	} else {
		s.refreshMetrics()
		s.publishMetrics()
	}
	return phase, unlocked, err
}

func (s *Session) replacePhase(phase curriculum.Phase) {
	for i := range s.phases {
		if s.phases[i].ID == phase.ID {
			s.phases[i] = phase
			return
		}
	}
	s.phases = append(s.phases, phase)
}

// MarkComplete unlocks an achievement the engine cannot observe and retires it
// from the pool. Completing an already unlocked achievement is a no-op.
func (s *Session) MarkComplete(ctx context.Context, id string) (achievement.Achievement, []achievement.Achievement, error) {
	i, ok := achievement.Find(s.achievements, id)
	if !ok {
		return achievement.Achievement{}, nil, fmt.Errorf("%s: %w", id, ErrAchievementNotFound)
	}
	if s.achievements[i].Unlocked {
		return s.achievements[i], nil, nil
	}

	today := metrics.Day(s.now())
	unlocked, err := s.store.RecordUnlock(ctx, id, today)
	if err != nil {
		return s.achievements[i], nil, saveFailed("record unlock", err)
	}
	unlocked.Unlocked = true
	s.achievements[i] = unlocked

	if err := s.store.RetireAchievement(ctx, id); err != nil {
		s.refreshMetrics()
		s.publishUnlocked(unlocked)
		return unlocked, nil, saveFailed("retire achievement", err)
	}
	s.achievements[i].IsActive = false
	completed := s.achievements[i]
	s.refreshMetrics()
	s.publishUnlocked(completed)

	cascaded, err := s.evaluate(ctx)
	s.syncMetrics(ctx)
	return completed, cascaded, err
}

// Replenish synthesizes one achievement when the pool is below its floor.
// It returns false when the pool did not need it.
func (s *Session) Replenish(ctx context.Context) (achievement.Achievement, bool, error) {
	created, ok := s.pool.Replenish(s.achievements)
	if !ok {
		return achievement.Achievement{}, false, nil
	}
	if err := s.store.CreateAchievement(ctx, created); err != nil {
		return achievement.Achievement{}, false, saveFailed("create achievement", err)
	}
	s.achievements = append(s.achievements, created)
	return created, true, nil
}

// ResetOptions confirms a destructive Reset.
type ResetOptions struct {
	Confirmed bool
}

// Reset relocks every achievement and removes synthesized ones.
func (s *Session) Reset(ctx context.Context, opts ResetOptions) error {
	if !opts.Confirmed {
		return ErrResetNotConfirmed
	}
	if err := s.store.ResetAchievements(ctx); err != nil {
		return saveFailed("reset achievements", err)
	}

	reloaded, err := s.store.LoadAchievements(ctx)
	if err != nil {
		slog.Default().Warn("failed to reload achievements after reset, resetting in memory",
			"error", err,
		)
		reloaded = achievement.Reset(s.achievements, achievement.DefaultIDs(s.achievements))
	}
	s.achievements = reloaded
	s.syncMetrics(ctx)
	return nil
}

func (s *Session) facts() achievement.Facts {
	now := s.now()
	return achievement.Facts{
		Metrics: metrics.Compute(s.logs, s.achievements, now),
		Logs:    s.logs,
		Phases:  s.phases,
		Today:   now,
	}
}

// evaluate runs the rules and commits every newly satisfied achievement.
func (s *Session) evaluate(ctx context.Context) ([]achievement.Achievement, error) {
	ids := achievement.Evaluate(s.facts(), s.achievements)
	return s.commitUnlocks(ctx, ids)
}

// commitUnlocks persists unlocks in order. A failed unlock stays locked in
// memory so the next evaluation retries it.
func (s *Session) commitUnlocks(ctx context.Context, ids []string) ([]achievement.Achievement, error) {
	today := metrics.Day(s.now())
	var unlocked []achievement.Achievement
	var errs []error
	for _, id := range ids {
		i, ok := achievement.Find(s.achievements, id)
		if !ok || s.achievements[i].Unlocked {
			continue
		}
		a, err := s.store.RecordUnlock(ctx, id, today)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		a.Unlocked = true
		s.achievements[i] = a
		s.refreshMetrics()
		s.publishUnlocked(a)
		unlocked = append(unlocked, a)
	}

	if len(unlocked) > 1 {
		s.bus.publish(Event{
			Type:         EventAchievementsUnlocked,
			Achievements: append([]achievement.Achievement(nil), unlocked...),
			Metrics:      s.metrics,
		})
	}
	if len(errs) > 0 {
		return unlocked, saveFailed("record unlock", errors.Join(errs...))
	}
	return unlocked, nil
}

func (s *Session) publishUnlocked(a achievement.Achievement) {
	s.bus.publish(Event{
		Type:         EventAchievementUnlocked,
		Achievements: []achievement.Achievement{a},
		Metrics:      s.metrics,
	})
}

func (s *Session) publishMetrics() {
	s.bus.publish(Event{Type: EventMetricsUpdated, Metrics: s.metrics})
}

// syncMetrics asks the store for the authoritative metrics and publishes them.
// When the store cannot answer, the locally computed metrics are used.
func (s *Session) syncMetrics(ctx context.Context) {
	m, err := s.store.RecomputeUserMetrics(ctx)
	if err != nil {
		slog.Default().Warn("failed to recompute user metrics in the store, using local values",
			"error", err,
		)
		s.refreshMetrics()
	} else {
		s.metrics = m
	}
	s.publishMetrics()
}
