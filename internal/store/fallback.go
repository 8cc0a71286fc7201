package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// Cache is the last-known-good copy a FallbackStore reads from and writes to
// when the primary store is unreachable.
type Cache interface {
	Store
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	SavePhases(ctx context.Context, phases []curriculum.Phase) error
	SaveDailyLogs(ctx context.Context, logs []activity.DailyLog) error
	SaveAchievements(ctx context.Context, achievements []achievement.Achievement) error
	SaveUserMetrics(ctx context.Context, m metrics.UserMetrics) error
	PutPhase(ctx context.Context, phase curriculum.Phase) error
	PutDailyLog(ctx context.Context, log activity.DailyLog) error
	PutAchievement(ctx context.Context, a achievement.Achievement) error
}

// FallbackStore tries the primary store with retries and falls back to the cache.
// Successful primary calls are mirrored into the cache. Writes made while
// degraded only reach the cache and are not replayed to the primary.
type FallbackStore struct {
	primary  Store
	cache    Cache
	attempts uint
	delay    time.Duration

	mu       sync.Mutex
	degraded bool
}

// NewFallbackStore creates a FallbackStore. attempts below 1 is treated as 1.
func NewFallbackStore(primary Store, cache Cache, attempts uint, delay time.Duration) *FallbackStore {
	if attempts < 1 {
		attempts = 1
	}
	return &FallbackStore{
		primary:  primary,
		cache:    cache,
		attempts: attempts,
		delay:    delay,
	}
}

// Degraded reports whether the most recent call was served by the cache.
func (s *FallbackStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *FallbackStore) setDegraded(degraded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded = degraded
}

// isDomainError reports errors that come from the request rather than from connectivity.
// They are returned as is, without retrying or falling back.
func isDomainError(err error) bool {
	var validationErr *activity.ValidationError
	return errors.Is(err, curriculum.ErrNotFound) ||
		errors.Is(err, achievement.ErrNotFound) ||
		errors.Is(err, ErrDuplicateAchievement) ||
		errors.As(err, &validationErr)
}

func call[T any](
	ctx context.Context,
	s *FallbackStore,
	operation string,
	onPrimary func(ctx context.Context, st Store) (T, error),
	mirror func(ctx context.Context, result T) error,
	onCache func(ctx context.Context, c Cache) (T, error),
) (T, error) {
	var result T
	var domainErr error
	err := retry.Do(
		func() error {
			r, err := onPrimary(ctx, s.primary)
			if err != nil {
				if isDomainError(err) {
					domainErr = err
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		s.setDegraded(false)
		if mirror != nil {
			if mirrorErr := mirror(ctx, result); mirrorErr != nil {
				slog.Default().Warn("failed to update local cache",
					"operation", operation,
					"error", mirrorErr,
				)
			}
		}
		return result, nil
	}
	if domainErr != nil {
		s.setDegraded(false)
		return result, domainErr
	}

	slog.Default().Warn("primary store unavailable, using local cache",
		"operation", operation,
		"attempts", s.attempts,
		"error", err,
	)
	s.setDegraded(true)
	cached, cacheErr := onCache(ctx, s.cache)
	if cacheErr != nil {
		return cached, fmt.Errorf("%s: primary: %v: cache: %w", operation, err, cacheErr)
	}
	return cached, nil
}

func (s *FallbackStore) warnUnsyncedWrite(operation string) {
	if s.Degraded() {
		slog.Default().Warn("write stored in the local cache only and will not be synced to the primary store",
			"operation", operation,
		)
	}
}

// LoadPhases loads phases and refreshes the cached copy.
func (s *FallbackStore) LoadPhases(ctx context.Context) ([]curriculum.Phase, error) {
	return call(ctx, s, "load phases",
		func(ctx context.Context, st Store) ([]curriculum.Phase, error) { return st.LoadPhases(ctx) },
		s.cache.SavePhases,
		func(ctx context.Context, c Cache) ([]curriculum.Phase, error) { return c.LoadPhases(ctx) },
	)
}

// LoadDailyLogs loads logs and refreshes the cached copy.
func (s *FallbackStore) LoadDailyLogs(ctx context.Context) ([]activity.DailyLog, error) {
	return call(ctx, s, "load daily logs",
		func(ctx context.Context, st Store) ([]activity.DailyLog, error) { return st.LoadDailyLogs(ctx) },
		s.cache.SaveDailyLogs,
		func(ctx context.Context, c Cache) ([]activity.DailyLog, error) { return c.LoadDailyLogs(ctx) },
	)
}

// LoadAchievements loads achievements and refreshes the cached copy.
func (s *FallbackStore) LoadAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	return call(ctx, s, "load achievements",
		func(ctx context.Context, st Store) ([]achievement.Achievement, error) {
			return st.LoadAchievements(ctx)
		},
		s.cache.SaveAchievements,
		func(ctx context.Context, c Cache) ([]achievement.Achievement, error) { return c.LoadAchievements(ctx) },
	)
}

// LoadUserMetrics loads metrics and refreshes the cached copy.
func (s *FallbackStore) LoadUserMetrics(ctx context.Context) (metrics.UserMetrics, error) {
	return call(ctx, s, "load user metrics",
		func(ctx context.Context, st Store) (metrics.UserMetrics, error) { return st.LoadUserMetrics(ctx) },
		s.cache.SaveUserMetrics,
		func(ctx context.Context, c Cache) (metrics.UserMetrics, error) { return c.LoadUserMetrics(ctx) },
	)
}

// AppendDailyLog appends a log.
func (s *FallbackStore) AppendDailyLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, error) {
	stored, err := call(ctx, s, "append daily log",
		func(ctx context.Context, st Store) (activity.DailyLog, error) { return st.AppendDailyLog(ctx, log) },
		s.cache.PutDailyLog,
		func(ctx context.Context, c Cache) (activity.DailyLog, error) { return c.AppendDailyLog(ctx, log) },
	)
	s.warnUnsyncedWrite("append daily log")
	return stored, err
}

// SetTopicCompleted toggles a topic.
func (s *FallbackStore) SetTopicCompleted(ctx context.Context, topicID string, completed bool) (curriculum.Phase, error) {
	phase, err := call(ctx, s, "set topic completed",
		func(ctx context.Context, st Store) (curriculum.Phase, error) {
			return st.SetTopicCompleted(ctx, topicID, completed)
		},
		s.cache.PutPhase,
		func(ctx context.Context, c Cache) (curriculum.Phase, error) {
			return c.SetTopicCompleted(ctx, topicID, completed)
		},
	)
	s.warnUnsyncedWrite("set topic completed")
	return phase, err
}

// SetResourceCompleted toggles a resource.
func (s *FallbackStore) SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (curriculum.Phase, error) {
	phase, err := call(ctx, s, "set resource completed",
		func(ctx context.Context, st Store) (curriculum.Phase, error) {
			return st.SetResourceCompleted(ctx, resourceID, completed)
		},
		s.cache.PutPhase,
		func(ctx context.Context, c Cache) (curriculum.Phase, error) {
			return c.SetResourceCompleted(ctx, resourceID, completed)
		},
	)
	s.warnUnsyncedWrite("set resource completed")
	return phase, err
}

// SetProjectStatus changes a project's status.
func (s *FallbackStore) SetProjectStatus(ctx context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, error) {
	phase, err := call(ctx, s, "set project status",
		func(ctx context.Context, st Store) (curriculum.Phase, error) {
			return st.SetProjectStatus(ctx, projectID, status)
		},
		s.cache.PutPhase,
		func(ctx context.Context, c Cache) (curriculum.Phase, error) {
			return c.SetProjectStatus(ctx, projectID, status)
		},
	)
	s.warnUnsyncedWrite("set project status")
	return phase, err
}

// RecordUnlock unlocks an achievement.
func (s *FallbackStore) RecordUnlock(ctx context.Context, achievementID string, date time.Time) (achievement.Achievement, error) {
	a, err := call(ctx, s, "record unlock",
		func(ctx context.Context, st Store) (achievement.Achievement, error) {
			return st.RecordUnlock(ctx, achievementID, date)
		},
		s.cache.PutAchievement,
		func(ctx context.Context, c Cache) (achievement.Achievement, error) {
			return c.RecordUnlock(ctx, achievementID, date)
		},
	)
	s.warnUnsyncedWrite("record unlock")
	return a, err
}

// callErr is call for operations without a result.
func callErr(
	ctx context.Context,
	s *FallbackStore,
	operation string,
	onPrimary func(ctx context.Context, st Store) error,
	mirror func(ctx context.Context) error,
	onCache func(ctx context.Context, c Cache) error,
) error {
	_, err := call(ctx, s, operation,
		func(ctx context.Context, st Store) (struct{}, error) { return struct{}{}, onPrimary(ctx, st) },
		func(ctx context.Context, _ struct{}) error { return mirror(ctx) },
		func(ctx context.Context, c Cache) (struct{}, error) { return struct{}{}, onCache(ctx, c) },
	)
	s.warnUnsyncedWrite(operation)
	return err
}

// RetireAchievement removes an achievement from the pool.
func (s *FallbackStore) RetireAchievement(ctx context.Context, achievementID string) error {
	return callErr(ctx, s, "retire achievement",
		func(ctx context.Context, st Store) error { return st.RetireAchievement(ctx, achievementID) },
		func(ctx context.Context) error { return s.cache.RetireAchievement(ctx, achievementID) },
		func(ctx context.Context, c Cache) error { return c.RetireAchievement(ctx, achievementID) },
	)
}

// CreateAchievement stores a synthesized achievement.
func (s *FallbackStore) CreateAchievement(ctx context.Context, a achievement.Achievement) error {
	return callErr(ctx, s, "create achievement",
		func(ctx context.Context, st Store) error { return st.CreateAchievement(ctx, a) },
		func(ctx context.Context) error { return s.cache.PutAchievement(ctx, a) },
		func(ctx context.Context, c Cache) error { return c.CreateAchievement(ctx, a) },
	)
}

// ResetAchievements relocks the catalog and drops synthesized achievements.
func (s *FallbackStore) ResetAchievements(ctx context.Context) error {
	return callErr(ctx, s, "reset achievements",
		func(ctx context.Context, st Store) error { return st.ResetAchievements(ctx) },
		s.cache.ResetAchievements,
		func(ctx context.Context, c Cache) error { return c.ResetAchievements(ctx) },
	)
}

// RecomputeUserMetrics recalculates the metrics.
func (s *FallbackStore) RecomputeUserMetrics(ctx context.Context) (metrics.UserMetrics, error) {
	return call(ctx, s, "recompute user metrics",
		func(ctx context.Context, st Store) (metrics.UserMetrics, error) { return st.RecomputeUserMetrics(ctx) },
		s.cache.SaveUserMetrics,
		func(ctx context.Context, c Cache) (metrics.UserMetrics, error) { return c.RecomputeUserMetrics(ctx) },
	)
}
