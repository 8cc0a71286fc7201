// Package activity provides the daily study log model and its MySQL repository.
package activity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DailyLog is one entry of the study log. It is never updated once appended.
type DailyLog struct {
	ID             int64           `db:"id" yaml:"id" json:"id"`
	Date           time.Time       `db:"log_date" yaml:"date" validate:"required" json:"date"`
	PhaseID        string          `db:"phase_id" yaml:"phase_id" validate:"required" json:"phase_id"`
	TopicID        string          `db:"topic_id" yaml:"topic_id,omitempty" json:"topic_id,omitempty"`
	ProjectID      string          `db:"project_id" yaml:"project_id,omitempty" json:"project_id,omitempty"`
	HoursSpent     float64         `db:"hours_spent" yaml:"hours_spent" validate:"gte=0" json:"hours_spent"`
	ProblemsSolved int             `db:"problems_solved" yaml:"problems_solved" validate:"gte=0" json:"problems_solved"`
	Activities     StringList      `db:"activities" yaml:"activities,omitempty" json:"activities,omitempty"`
	KeyTakeaway    string          `db:"key_takeaway" yaml:"key_takeaway,omitempty" json:"key_takeaway,omitempty"`
	Breakdown      MinuteBreakdown `db:"breakdown" yaml:"breakdown,omitempty" validate:"dive,gte=0" json:"breakdown,omitempty"`
	CreatedAt      time.Time       `db:"created_at" yaml:"created_at" json:"created_at"`
}

var validate = validator.New()

// Validate checks the user-supplied fields before the log is stored.
func (l DailyLog) Validate() error {
	if err := validate.Struct(l); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{Fields: validationErrors}
		}
		return fmt.Errorf("validate daily log: %w", err)
	}
	return nil
}

// ValidationError lists the fields of a DailyLog that failed validation.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid daily log: %s", e.Fields.Error())
}

// StringList is stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(activities) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// MinuteBreakdown maps a category (e.g. "reading", "coding") to minutes spent.
type MinuteBreakdown map[string]int

// Value implements driver.Valuer.
func (b MinuteBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	out, err := json.Marshal(map[string]int(b))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(breakdown) > %w", err)
	}
	return string(out), nil
}

// Scan implements sql.Scanner.
func (b *MinuteBreakdown) Scan(src any) error {
	return scanJSON(src, b)
}

func scanJSON(src any, dest any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	return nil
}
