// Package notify delivers engine events to the terminal, a webhook and Redis.
package notify

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studylog/internal/engine"
)

// Console prints unlock celebrations to a terminal.
type Console struct {
	w      io.Writer
	title  *color.Color
	points *color.Color
	banner *color.Color
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:      w,
		title:  color.New(color.FgGreen, color.Bold),
		points: color.New(color.FgYellow),
		banner: color.New(color.FgMagenta, color.Bold),
	}
}

// Handle implements engine.Handler.
func (c *Console) Handle(event engine.Event) {
	switch event.Type {
	case engine.EventAchievementUnlocked:
		for _, a := range event.Achievements {
			_, _ = fmt.Fprintf(c.w, "%s Achievement unlocked: %s %s\n",
				a.Icon, c.title.Sprint(a.Title), c.points.Sprintf("(+%d points)", a.Points))
		}
	case engine.EventAchievementsUnlocked:
		total := 0
		for _, a := range event.Achievements {
			total += a.Points
		}
		_, _ = c.banner.Fprintf(c.w, "%d achievements unlocked at once, +%d points. Level: %s\n",
			len(event.Achievements), total, event.Metrics.Level)
	}
}
