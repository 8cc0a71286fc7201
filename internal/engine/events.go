package engine

import (
	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// EventType names an engine event.
type EventType string

const (
	EventAchievementUnlocked  EventType = "achievement_unlocked"
	EventAchievementsUnlocked EventType = "achievements_unlocked"
	EventMetricsUpdated       EventType = "metrics_updated"
)

// Event is published to subscribers after a state change.
type Event struct {
	Type EventType `json:"type"`
	// Achievements holds one entry for EventAchievementUnlocked and the
	// whole batch for EventAchievementsUnlocked.
	Achievements []achievement.Achievement `json:"achievements,omitempty"`
	Metrics      metrics.UserMetrics       `json:"metrics"`
}

// Handler receives events synchronously, in publish order.
type Handler interface {
	Handle(event Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(event Event)

// Handle calls f.
func (f HandlerFunc) Handle(event Event) {
	f(event)
}

type bus struct {
	handlers []Handler
}

func (b *bus) subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

func (b *bus) publish(event Event) {
	for _, h := range b.handlers {
		h.Handle(event)
	}
}
