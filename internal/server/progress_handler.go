package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// Engine is the session the handler serializes calls into.
type Engine interface {
	Phases() []curriculum.Phase
	DailyLogs() []activity.DailyLog
	Achievements() []achievement.Achievement
	Available() []achievement.Achievement
	Metrics() metrics.UserMetrics
	Degraded() bool
	AppendLog(ctx context.Context, log activity.DailyLog) (activity.DailyLog, []achievement.Achievement, error)
	SetTopicCompleted(ctx context.Context, topicID string, completed bool) (curriculum.Phase, []achievement.Achievement, error)
	SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (curriculum.Phase, []achievement.Achievement, error)
	SetProjectStatus(ctx context.Context, projectID string, status curriculum.ProjectStatus) (curriculum.Phase, []achievement.Achievement, error)
	MarkComplete(ctx context.Context, id string) (achievement.Achievement, []achievement.Achievement, error)
	Replenish(ctx context.Context) (achievement.Achievement, bool, error)
	Reset(ctx context.Context, opts engine.ResetOptions) error
}

// ProgressHandler serves the ProgressService. Calls into the engine are
// serialized with a mutex.
type ProgressHandler struct {
	mu        sync.Mutex
	engine    Engine
	validator *requestValidator
	location  *time.Location
}

// NewProgressHandler creates a ProgressHandler. Dates without a time zone are
// read in loc.
func NewProgressHandler(e Engine, loc *time.Location) (*ProgressHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &ProgressHandler{engine: e, validator: v, location: loc}, nil
}

type SnapshotResponse struct {
	Phases       []curriculum.Phase        `json:"phases"`
	DailyLogs    []activity.DailyLog       `json:"daily_logs"`
	Achievements []achievement.Achievement `json:"achievements"`
	Available    []achievement.Achievement `json:"available"`
	Metrics      metrics.UserMetrics       `json:"metrics"`
	Degraded     bool                      `json:"degraded"`
}

type MutationResponse struct {
	Log         *activity.DailyLog        `json:"log,omitempty"`
	Phase       *curriculum.Phase         `json:"phase,omitempty"`
	Achievement *achievement.Achievement  `json:"achievement,omitempty"`
	Unlocked    []achievement.Achievement `json:"unlocked"`
	Metrics     metrics.UserMetrics       `json:"metrics"`
}

type AppendLogRequest struct {
	Date           string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PhaseID        string         `json:"phase_id" validate:"required"`
	TopicID        string         `json:"topic_id"`
	ProjectID      string         `json:"project_id"`
	HoursSpent     float64        `json:"hours_spent" validate:"gte=0,lte=24"`
	ProblemsSolved int            `json:"problems_solved" validate:"gte=0"`
	Activities     []string       `json:"activities"`
	KeyTakeaway    string         `json:"key_takeaway"`
	Breakdown      map[string]int `json:"breakdown" validate:"dive,gte=0"`
}

type SetTopicCompletedRequest struct {
	TopicID   string `json:"topic_id" validate:"required"`
	Completed bool   `json:"completed"`
}

type SetResourceCompletedRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
	Completed  bool   `json:"completed"`
}

type SetProjectStatusRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=not-started in-progress completed"`
}

type MarkCompleteRequest struct {
	AchievementID string `json:"achievement_id" validate:"required"`
}

type ReplenishResponse struct {
	Replenished bool                     `json:"replenished"`
	Achievement *achievement.Achievement `json:"achievement,omitempty"`
}

type ResetAchievementsRequest struct {
	Confirmed bool `json:"confirmed"`
}

// GetSnapshot returns the whole session state.
func (h *ProgressHandler) GetSnapshot(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return encodeResponse(SnapshotResponse{
		Phases:       h.engine.Phases(),
		DailyLogs:    h.engine.DailyLogs(),
		Achievements: h.engine.Achievements(),
		Available:    h.engine.Available(),
		Metrics:      h.engine.Metrics(),
		Degraded:     h.engine.Degraded(),
	})
}

// AppendLog records a study session.
func (h *ProgressHandler) AppendLog(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[AppendLogRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}
	log := activity.DailyLog{
		PhaseID:        in.PhaseID,
		TopicID:        in.TopicID,
		ProjectID:      in.ProjectID,
		HoursSpent:     in.HoursSpent,
		ProblemsSolved: in.ProblemsSolved,
		Activities:     in.Activities,
		KeyTakeaway:    in.KeyTakeaway,
		Breakdown:      in.Breakdown,
	}
	if in.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, in.Date, h.location)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("parse date %q: %w", in.Date, err))
		}
		log.Date = date
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	stored, unlocked, err := h.engine.AppendLog(ctx, log)
	if err != nil && stored.ID == 0 {
		return nil, toConnectError("append log", err)
	}
	if err != nil {
		logPartialFailure("append log", err)
	}
	return encodeResponse(MutationResponse{Log: &stored, Unlocked: emptyIfNil(unlocked), Metrics: h.engine.Metrics()})
}

// SetTopicCompleted toggles a topic.
func (h *ProgressHandler) SetTopicCompleted(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[SetTopicCompletedRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}
	return h.updatePhase(ctx, "set topic completed", func(ctx context.Context) (curriculum.Phase, []achievement.Achievement, error) {
		return h.engine.SetTopicCompleted(ctx, in.TopicID, in.Completed)
	})
}

// SetResourceCompleted toggles a resource.
func (h *ProgressHandler) SetResourceCompleted(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[SetResourceCompletedRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}
	return h.updatePhase(ctx, "set resource completed", func(ctx context.Context) (curriculum.Phase, []achievement.Achievement, error) {
		return h.engine.SetResourceCompleted(ctx, in.ResourceID, in.Completed)
	})
}

// SetProjectStatus changes a project's status.
func (h *ProgressHandler) SetProjectStatus(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[SetProjectStatusRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}
	return h.updatePhase(ctx, "set project status", func(ctx context.Context) (curriculum.Phase, []achievement.Achievement, error) {
		return h.engine.SetProjectStatus(ctx, in.ProjectID, curriculum.ProjectStatus(in.Status))
	})
}

func (h *ProgressHandler) updatePhase(
	ctx context.Context,
	operation string,
	update func(ctx context.Context) (curriculum.Phase, []achievement.Achievement, error),
) (*connect.Response[structpb.Struct], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	phase, unlocked, err := update(ctx)
	if err != nil && phase.ID == "" {
		return nil, toConnectError(operation, err)
	}
	if err != nil {
		logPartialFailure(operation, err)
	}
	return encodeResponse(MutationResponse{Phase: &phase, Unlocked: emptyIfNil(unlocked), Metrics: h.engine.Metrics()})
}

// MarkComplete unlocks and retires an achievement.
func (h *ProgressHandler) MarkComplete(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[MarkCompleteRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	completed, cascaded, err := h.engine.MarkComplete(ctx, in.AchievementID)
	if err != nil && !completed.Unlocked {
		return nil, toConnectError("mark complete", err)
	}
	if err != nil {
		logPartialFailure("mark complete", err)
	}
	return encodeResponse(MutationResponse{Achievement: &completed, Unlocked: emptyIfNil(cascaded), Metrics: h.engine.Metrics()})
}

// Replenish tops the achievement pool up by one when it is below its floor.
func (h *ProgressHandler) Replenish(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	created, ok, err := h.engine.Replenish(ctx)
	if err != nil {
		return nil, toConnectError("replenish", err)
	}
	resp := ReplenishResponse{Replenished: ok}
	if ok {
		resp.Achievement = &created
	}
	return encodeResponse(resp)
}

// ResetAchievements relocks every achievement. The request must be confirmed.
func (h *ProgressHandler) ResetAchievements(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := decodeRequest[ResetAchievementsRequest](h.validator, req.Msg)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.engine.Reset(ctx, engine.ResetOptions{Confirmed: in.Confirmed}); err != nil {
		return nil, toConnectError("reset achievements", err)
	}
	return encodeResponse(SnapshotResponse{
		Phases:       h.engine.Phases(),
		DailyLogs:    h.engine.DailyLogs(),
		Achievements: h.engine.Achievements(),
		Available:    h.engine.Available(),
		Metrics:      h.engine.Metrics(),
		Degraded:     h.engine.Degraded(),
	})
}

// toConnectError maps engine errors onto Connect codes.
func toConnectError(operation string, err error) *connect.Error {
	var validationErr *activity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return badRequest(validationErr.Fields, nil)
	case errors.Is(err, curriculum.ErrInvalidProjectStatus):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, curriculum.ErrNotFound), errors.Is(err, engine.ErrAchievementNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, engine.ErrResetNotConfirmed):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, engine.ErrSaveFailed), errors.Is(err, engine.ErrLoadFailed):
		return connect.NewError(connect.CodeUnavailable, fmt.Errorf("%s: %w", operation, err))
	}
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", operation, err))
}

// logPartialFailure records an error after the primary change was stored,
// such as an unlock that could not be saved and will be retried.
func logPartialFailure(operation string, err error) {
	slog.Default().Warn("operation stored with follow-up failures",
		"operation", operation,
		"error", err,
	)
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
