// Package achievement holds the achievement catalog, the rules that unlock it
// and the pool that keeps enough of it available.
package achievement

import (
	"time"
)

// Category groups achievements for display.
type Category string

const (
	CategoryDaily     Category = "daily"
	CategoryStreak    Category = "streak"
	CategoryLeetcode  Category = "leetcode"
	CategoryProject   Category = "project"
	CategoryPhase     Category = "phase"
	CategoryTime      Category = "time"
	CategoryProgress  Category = "progress"
	CategoryMilestone Category = "milestone"
	CategorySpecial   Category = "special"
	CategorySocial    Category = "social"
)

// Achievement is a point-valued milestone that is unlocked at most once until a reset.
type Achievement struct {
	ID           string     `db:"id" yaml:"id" json:"id"`
	Title        string     `db:"title" yaml:"title" json:"title"`
	Description  string     `db:"description" yaml:"description" json:"description"`
	Icon         string     `db:"icon" yaml:"icon" json:"icon"`
	Category     Category   `db:"category" yaml:"category" json:"category"`
	Points       int        `db:"points" yaml:"points" json:"points"`
	Requirement  string     `db:"requirement" yaml:"requirement" json:"requirement"`
	Unlocked     bool       `db:"unlocked" yaml:"unlocked" json:"unlocked"`
	UnlockedDate *time.Time `db:"unlocked_date" yaml:"unlocked_date,omitempty" json:"unlocked_date,omitempty"`
	IsActive     bool       `db:"is_active" yaml:"is_active" json:"is_active"`
	Order        int        `db:"sort_order" yaml:"order" json:"order"`
	IsDefault    bool       `db:"is_default" yaml:"is_default" json:"is_default"`
	Manual       bool       `db:"manual" yaml:"manual" json:"manual"`
}

// EarnedPoints returns the points once the achievement is unlocked.
func (a Achievement) EarnedPoints() int {
	if !a.Unlocked {
		return 0
	}
	return a.Points
}

// Available reports whether the achievement is in the pool.
func (a Achievement) Available() bool {
	return a.IsActive && !a.Unlocked
}

// Unlock marks the achievement unlocked on the given day.
func (a *Achievement) Unlock(day time.Time) {
	a.Unlocked = true
	a.UnlockedDate = &day
}

// Find returns the index of the achievement with the ID.
func Find(achievements []Achievement, id string) (int, bool) {
	for i, a := range achievements {
		if a.ID == id {
			return i, true
		}
	}
	return -1, false
}

// AvailableCount counts achievements that are active and still locked.
func AvailableCount(achievements []Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.Available() {
			n++
		}
	}
	return n
}

// FilterAvailable returns the achievements in the pool, in their original order.
func FilterAvailable(achievements []Achievement) []Achievement {
	var available []Achievement
	for _, a := range achievements {
		if a.Available() {
			available = append(available, a)
		}
	}
	return available
}
