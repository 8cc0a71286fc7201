package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/studylog/internal/curriculum"
)

func TestProjectStatusFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    ProjectStatusFlag
		wantErr bool
	}{
		{name: "not started", value: "not-started", want: ProjectStatusFlag(curriculum.ProjectStatusNotStarted)},
		{name: "in progress", value: "in-progress", want: ProjectStatusFlag(curriculum.ProjectStatusInProgress)},
		{name: "completed", value: "completed", want: ProjectStatusFlag(curriculum.ProjectStatusCompleted)},
		{name: "invalid value", value: "done", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag ProjectStatusFlag
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, curriculum.ErrInvalidProjectStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, flag)
		})
	}
}

func TestProjectStatusFlag_String(t *testing.T) {
	var nilFlag *ProjectStatusFlag
	assert.Equal(t, "", nilFlag.String())

	flag := ProjectStatusFlag(curriculum.ProjectStatusInProgress)
	assert.Equal(t, "in-progress", flag.String())
	assert.Equal(t, "ProjectStatus", flag.Type())
}

func TestNewProjectCommand(t *testing.T) {
	cmd := newProjectCommand()

	assert.Equal(t, "project <project id>", cmd.Use)
	statusFlag := cmd.Flags().Lookup("status")
	assert.NotNil(t, statusFlag)
	assert.Equal(t, "completed", statusFlag.DefValue)
}

func TestParseDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty", value: ""},
		{name: "date", value: "2025-03-04", want: time.Date(2025, 3, 4, 0, 0, 0, 0, tokyo)},
		{name: "invalid", value: "03/04/2025", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value, tokyo)
			if tt.wantErr {
				assert.ErrorContains(t, err, "expected YYYY-MM-DD")
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{percent: 0, want: "----------"},
		{percent: 50, want: "#####-----"},
		{percent: 100, want: "##########"},
		{percent: 120, want: "##########"},
		{percent: -5, want: "----------"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progressBar(tt.percent, 10), "percent %d", tt.percent)
	}
}
