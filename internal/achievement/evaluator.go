package achievement

import (
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// Evaluate returns the IDs of locked achievements whose rules now hold, in
// catalog order. It does not modify its inputs.
//
// Manual and retired (inactive) achievements, and IDs absent from
// achievements, are skipped. Point
// milestones see the points of achievements unlocked earlier in the same call,
// so evaluating the result again yields nothing new.
func Evaluate(facts Facts, achievements []Achievement) []string {
	byID := make(map[string]Achievement, len(achievements))
	for _, a := range achievements {
		byID[a.ID] = a
	}
	facts.Metrics.TotalPoints = metrics.TotalPoints(achievements)

	unlocking := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, rule := range catalog {
			a, ok := byID[rule.ID]
			if !ok || a.Unlocked || a.Manual || !a.IsActive || unlocking[rule.ID] {
				continue
			}
			if !rule.Check(facts) {
				continue
			}
			unlocking[rule.ID] = true
			facts.Metrics.TotalPoints += a.Points
			changed = true
		}
	}

	var ids []string
	for _, rule := range catalog {
		if unlocking[rule.ID] {
			ids = append(ids, rule.ID)
		}
	}
	return ids
}
