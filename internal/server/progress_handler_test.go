package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/store"
)

var now = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return now }
	st := store.NewYAMLStore(t.TempDir(), clock)
	require.NoError(t, st.SaveSnapshot(ctx, store.Snapshot{
		Phases: []curriculum.Phase{{
			ID: "phase-1", Title: "Foundations", Order: 1,
			Topics:   []curriculum.Topic{{ID: "topic-1", PhaseID: "phase-1"}, {ID: "topic-2", PhaseID: "phase-1"}},
			Projects: []curriculum.Project{{ID: "project-1", PhaseID: "phase-1", Status: curriculum.ProjectStatusNotStarted}},
		}},
		Achievements: []achievement.Achievement{
			{ID: "first-log", Title: "First Step", Points: 10, IsActive: true, IsDefault: true},
			{ID: "topic-1", Title: "Topic Starter", Points: 15, IsActive: true, IsDefault: true},
			{ID: "mock-interview", Title: "Mock Interview", Points: 100, IsActive: true, IsDefault: true, Manual: true},
		},
	}))
	session, err := engine.Open(ctx, st, engine.WithClock(clock))
	require.NoError(t, err)

	handler, err := NewProgressHandler(session, time.UTC)
	require.NoError(t, err)
	path, h := NewProgressServiceHandler(handler)
	mux := http.NewServeMux()
	mux.Handle(path, h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, procedure string, fields map[string]any) (*structpb.Struct, error) {
	t.Helper()
	msg, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	client := connect.NewClient[structpb.Struct, structpb.Struct](srv.Client(), srv.URL+procedure)
	res, err := client.CallUnary(context.Background(), connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func TestProgressHandler_GetSnapshot(t *testing.T) {
	srv := newTestServer(t)

	got, err := call(t, srv, ProgressServiceGetSnapshotProcedure, nil)
	require.NoError(t, err)

	phases := got.Fields["phases"].GetListValue().GetValues()
	require.Len(t, phases, 1)
	assert.Equal(t, "Foundations", phases[0].GetStructValue().Fields["title"].GetStringValue())
	assert.Len(t, got.Fields["available"].GetListValue().GetValues(), 3)
	assert.Equal(t, "Bronze", got.Fields["metrics"].GetStructValue().Fields["level"].GetStringValue())
	assert.False(t, got.Fields["degraded"].GetBoolValue())
}

func TestProgressHandler_AppendLog_JSON(t *testing.T) {
	srv := newTestServer(t)

	body := `{"phase_id":"phase-1","hours_spent":2.5,"problems_solved":3,"date":"2025-03-12","activities":["two pointers"]}`
	res, err := srv.Client().Post(srv.URL+ProgressServiceAppendLogProcedure, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	content, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, res.StatusCode, string(content))

	var got struct {
		Log      activity.DailyLog         `json:"log"`
		Unlocked []achievement.Achievement `json:"unlocked"`
		Metrics  struct {
			TotalHours  float64 `json:"total_hours"`
			TotalPoints int     `json:"total_points"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, int64(1), got.Log.ID)
	assert.Equal(t, []string{"two pointers"}, []string(got.Log.Activities))
	require.Len(t, got.Unlocked, 1)
	assert.Equal(t, "first-log", got.Unlocked[0].ID)
	assert.Equal(t, 2.5, got.Metrics.TotalHours)
	assert.Equal(t, 10, got.Metrics.TotalPoints)
}

func TestProgressHandler_Mutations(t *testing.T) {
	tests := []struct {
		name      string
		procedure string
		fields    map[string]any
		wantCode  connect.Code
		check     func(t *testing.T, got *structpb.Struct)
	}{
		{
			name:      "topic completion unlocks topic-1",
			procedure: ProgressServiceSetTopicCompletedProcedure,
			fields:    map[string]any{"topic_id": "topic-1", "completed": true},
			check: func(t *testing.T, got *structpb.Struct) {
				assert.Equal(t, 25.0, got.Fields["phase"].GetStructValue().Fields["progress"].GetNumberValue())
				unlocked := got.Fields["unlocked"].GetListValue().GetValues()
				require.Len(t, unlocked, 1)
				assert.Equal(t, "topic-1", unlocked[0].GetStructValue().Fields["id"].GetStringValue())
			},
		},
		{
			name:      "project status",
			procedure: ProgressServiceSetProjectStatusProcedure,
			fields:    map[string]any{"project_id": "project-1", "status": "completed"},
			check: func(t *testing.T, got *structpb.Struct) {
				assert.Equal(t, 50.0, got.Fields["phase"].GetStructValue().Fields["progress"].GetNumberValue())
			},
		},
		{
			name:      "unknown project",
			procedure: ProgressServiceSetProjectStatusProcedure,
			fields:    map[string]any{"project_id": "nope", "status": "completed"},
			wantCode:  connect.CodeNotFound,
		},
		{
			name:      "invalid project status",
			procedure: ProgressServiceSetProjectStatusProcedure,
			fields:    map[string]any{"project_id": "project-1", "status": "done"},
			wantCode:  connect.CodeInvalidArgument,
		},
		{
			name:      "unknown resource",
			procedure: ProgressServiceSetResourceCompletedProcedure,
			fields:    map[string]any{"resource_id": "nope", "completed": true},
			wantCode:  connect.CodeNotFound,
		},
		{
			name:      "mark complete",
			procedure: ProgressServiceMarkCompleteProcedure,
			fields:    map[string]any{"achievement_id": "mock-interview"},
			check: func(t *testing.T, got *structpb.Struct) {
				a := got.Fields["achievement"].GetStructValue()
				assert.True(t, a.Fields["unlocked"].GetBoolValue())
				assert.False(t, a.Fields["is_active"].GetBoolValue())
				assert.Equal(t, 100.0, got.Fields["metrics"].GetStructValue().Fields["total_points"].GetNumberValue())
			},
		},
		{
			name:      "mark complete unknown",
			procedure: ProgressServiceMarkCompleteProcedure,
			fields:    map[string]any{"achievement_id": "nope"},
			wantCode:  connect.CodeNotFound,
		},
		{
			name:      "replenish below the floor",
			procedure: ProgressServiceReplenishProcedure,
			check: func(t *testing.T, got *structpb.Struct) {
				assert.True(t, got.Fields["replenished"].GetBoolValue())
				assert.True(t, strings.HasPrefix(
					got.Fields["achievement"].GetStructValue().Fields["id"].GetStringValue(), achievement.GeneratedIDPrefix))
			},
		},
		{
			name:      "reset without confirmation",
			procedure: ProgressServiceResetAchievementsProcedure,
			wantCode:  connect.CodeFailedPrecondition,
		},
		{
			name:      "reset",
			procedure: ProgressServiceResetAchievementsProcedure,
			fields:    map[string]any{"confirmed": true},
			check: func(t *testing.T, got *structpb.Struct) {
				assert.Len(t, got.Fields["achievements"].GetListValue().GetValues(), 3)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			got, err := call(t, srv, tt.procedure, tt.fields)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestProgressHandler_AppendLog_Validation(t *testing.T) {
	srv := newTestServer(t)

	_, err := call(t, srv, ProgressServiceAppendLogProcedure, map[string]any{
		"hours_spent": -1,
		"date":        "12/03/2025",
	})
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr))
	require.Len(t, connectErr.Details(), 1)
	detail, err := connectErr.Details()[0].Value()
	require.NoError(t, err)
	badRequest, ok := detail.(*errdetails.BadRequest)
	require.True(t, ok)

	var fields []string
	for _, v := range badRequest.GetFieldViolations() {
		fields = append(fields, v.GetField())
	}
	assert.ElementsMatch(t, []string{"date", "phase_id", "hours_spent"}, fields)
}

type failingEngine struct {
	Engine
	err error
}

func (f failingEngine) AppendLog(context.Context, activity.DailyLog) (activity.DailyLog, []achievement.Achievement, error) {
	return activity.DailyLog{}, nil, f.err
}

func (f failingEngine) Replenish(context.Context) (achievement.Achievement, bool, error) {
	return achievement.Achievement{}, false, f.err
}

func TestProgressHandler_StoreFailure(t *testing.T) {
	saveErr := fmt.Errorf("append daily log: %w: %w", engine.ErrSaveFailed, errors.New("connection refused"))
	handler, err := NewProgressHandler(failingEngine{err: saveErr}, time.UTC)
	require.NoError(t, err)

	msg, err := structpb.NewStruct(map[string]any{"phase_id": "phase-1", "hours_spent": 1})
	require.NoError(t, err)
	_, err = handler.AppendLog(context.Background(), connect.NewRequest(msg))
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))

	_, err = handler.Replenish(context.Background(), connect.NewRequest(&structpb.Struct{}))
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{name: "validation", err: activity.DailyLog{}.Validate(), want: connect.CodeInvalidArgument},
		{name: "project status", err: func() error { _, err := curriculum.ParseProjectStatus("x"); return err }(), want: connect.CodeInvalidArgument},
		{name: "curriculum not found", err: fmt.Errorf("set topic: %w", curriculum.ErrNotFound), want: connect.CodeNotFound},
		{name: "achievement not found", err: engine.ErrAchievementNotFound, want: connect.CodeNotFound},
		{name: "reset not confirmed", err: engine.ErrResetNotConfirmed, want: connect.CodeFailedPrecondition},
		{name: "load failed", err: fmt.Errorf("%w: timeout", engine.ErrLoadFailed), want: connect.CodeUnavailable},
		{name: "unknown", err: errors.New("boom"), want: connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toConnectError("op", tt.err).Code())
		})
	}
}
