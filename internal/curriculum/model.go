// Package curriculum provides phases, topics, resources and projects, and
// derives each phase's completion percentage.
package curriculum

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PhaseStatus string

const (
	PhaseStatusUpcoming   PhaseStatus = "upcoming"
	PhaseStatusInProgress PhaseStatus = "in-progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not-started"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// ErrInvalidProjectStatus is returned for a status outside ProjectStatus values.
var ErrInvalidProjectStatus = errors.New("invalid project status")

// ParseProjectStatus converts user input into a ProjectStatus.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch status := ProjectStatus(s); status {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("%w %q: expected not-started, in-progress or completed", ErrInvalidProjectStatus, s)
}

type Phase struct {
	ID                string      `db:"id" yaml:"id" json:"id"`
	Title             string      `db:"title" yaml:"title" json:"title"`
	Description       string      `db:"description" yaml:"description" json:"description"`
	StartDate         *time.Time  `db:"start_date" yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate           *time.Time  `db:"end_date" yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Weeks             int         `db:"weeks" yaml:"weeks" json:"weeks"`
	Progress          Percent     `db:"progress" yaml:"progress" json:"progress"`
	Status            PhaseStatus `db:"status" yaml:"status" json:"status"`
	LeetcodeTarget    int         `db:"leetcode_target" yaml:"leetcode_target" json:"leetcode_target"`
	LeetcodeCompleted int         `db:"leetcode_completed" yaml:"leetcode_completed" json:"leetcode_completed"`
	Order             int         `db:"sort_order" yaml:"order" json:"order"`
	Topics            []Topic     `db:"-" yaml:"topics" json:"topics"`
	Projects          []Project   `db:"-" yaml:"projects" json:"projects"`
}

type Topic struct {
	ID          string     `db:"id" yaml:"id" json:"id"`
	PhaseID     string     `db:"phase_id" yaml:"phase_id" json:"phase_id"`
	Name        string     `db:"name" yaml:"name" json:"name"`
	Description string     `db:"description" yaml:"description" json:"description"`
	Completed   bool       `db:"completed" yaml:"completed" json:"completed"`
	Order       int        `db:"sort_order" yaml:"order" json:"order"`
	Resources   []Resource `db:"-" yaml:"resources,omitempty" json:"resources,omitempty"`
}

type Resource struct {
	ID        string `db:"id" yaml:"id" json:"id"`
	TopicID   string `db:"topic_id" yaml:"topic_id" json:"topic_id"`
	Title     string `db:"title" yaml:"title" json:"title"`
	URL       string `db:"url" yaml:"url,omitempty" json:"url,omitempty"`
	Type      string `db:"type" yaml:"type,omitempty" json:"type,omitempty"`
	Completed bool   `db:"completed" yaml:"completed" json:"completed"`
	Order     int    `db:"sort_order" yaml:"order" json:"order"`
}

type Project struct {
	ID           string        `db:"id" yaml:"id" json:"id"`
	PhaseID      string        `db:"phase_id" yaml:"phase_id" json:"phase_id"`
	Name         string        `db:"name" yaml:"name" json:"name"`
	Description  string        `db:"description" yaml:"description" json:"description"`
	Status       ProjectStatus `db:"status" yaml:"status" json:"status"`
	Technologies Technologies  `db:"technologies" yaml:"technologies,omitempty" json:"technologies,omitempty"`
	IsCustom     bool          `db:"is_custom" yaml:"is_custom" json:"is_custom"`
	Order        int           `db:"sort_order" yaml:"order" json:"order"`
}

// Technologies is stored as a JSON array column.
type Technologies []string

// Value implements driver.Valuer.
func (t Technologies) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(technologies) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Technologies) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported technologies column type %T", src)
	}
	if err := json.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("json.Unmarshal(technologies) > %w", err)
	}
	return nil
}
