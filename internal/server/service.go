// Package server provides the Connect RPC ProgressService over an engine session.
package server

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProgressServiceName is the fully-qualified name of the ProgressService.
const ProgressServiceName = "studylog.v1.ProgressService"

// Procedure paths of the ProgressService.
const (
	ProgressServiceGetSnapshotProcedure          = "/" + ProgressServiceName + "/GetSnapshot"
	ProgressServiceAppendLogProcedure            = "/" + ProgressServiceName + "/AppendLog"
	ProgressServiceSetTopicCompletedProcedure    = "/" + ProgressServiceName + "/SetTopicCompleted"
	ProgressServiceSetResourceCompletedProcedure = "/" + ProgressServiceName + "/SetResourceCompleted"
	ProgressServiceSetProjectStatusProcedure     = "/" + ProgressServiceName + "/SetProjectStatus"
	ProgressServiceMarkCompleteProcedure         = "/" + ProgressServiceName + "/MarkComplete"
	ProgressServiceReplenishProcedure            = "/" + ProgressServiceName + "/Replenish"
	ProgressServiceResetAchievementsProcedure    = "/" + ProgressServiceName + "/ResetAchievements"
)

type unaryFunc = func(context.Context, *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error)

// NewProgressServiceHandler builds an HTTP handler serving every procedure of h.
// It returns the path to mount the handler on.
func NewProgressServiceHandler(h *ProgressHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	procedures := []struct {
		path string
		fn   unaryFunc
	}{
		{ProgressServiceGetSnapshotProcedure, h.GetSnapshot},
		{ProgressServiceAppendLogProcedure, h.AppendLog},
		{ProgressServiceSetTopicCompletedProcedure, h.SetTopicCompleted},
		{ProgressServiceSetResourceCompletedProcedure, h.SetResourceCompleted},
		{ProgressServiceSetProjectStatusProcedure, h.SetProjectStatus},
		{ProgressServiceMarkCompleteProcedure, h.MarkComplete},
		{ProgressServiceReplenishProcedure, h.Replenish},
		{ProgressServiceResetAchievementsProcedure, h.ResetAchievements},
	}

	mux := http.NewServeMux()
	for _, p := range procedures {
		mux.Handle(p.path, connect.NewUnaryHandler(p.path, p.fn, opts...))
	}
	return "/" + ProgressServiceName + "/", mux
}
