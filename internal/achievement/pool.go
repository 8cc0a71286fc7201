package achievement

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// DefaultPoolFloor is the number of available achievements below which the pool is replenished.
const DefaultPoolFloor = 5

// GeneratedIDPrefix marks achievements synthesized by the pool.
const GeneratedIDPrefix = "generated-"

// Pool synthesizes achievements from Templates when too few are available.
type Pool struct {
	floor     int
	rng       *rand.Rand
	newID     func() string
	templates []Template
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithRand sets the random source used to pick templates.
func WithRand(rng *rand.Rand) PoolOption {
	return func(p *Pool) { p.rng = rng }
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(newID func() string) PoolOption {
	return func(p *Pool) { p.newID = newID }
}

// WithTemplates overrides the template library.
func WithTemplates(templates []Template) PoolOption {
	return func(p *Pool) { p.templates = templates }
}

// NewPool creates a Pool with the floor. A floor below 1 falls back to DefaultPoolFloor.
func NewPool(floor int, opts ...PoolOption) *Pool {
	if floor < 1 {
		floor = DefaultPoolFloor
	}
	p := &Pool{
		floor:     floor,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:     func() string { return GeneratedIDPrefix + uuid.NewString() },
		templates: Templates,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Floor returns the configured floor.
func (p *Pool) Floor() int {
	return p.floor
}

// NeedsReplenish reports whether fewer than the floor are available.
func (p *Pool) NeedsReplenish(achievements []Achievement) bool {
	return AvailableCount(achievements) < p.floor
}

// Replenish synthesizes exactly one achievement when the pool is below its floor.
// It returns false when nothing was needed. The input is not modified.
func (p *Pool) Replenish(achievements []Achievement) (Achievement, bool) {
	if !p.NeedsReplenish(achievements) || len(p.templates) == 0 {
		return Achievement{}, false
	}

	used := make(map[string]bool, len(achievements))
	maxOrder := 0
	for _, a := range achievements {
		used[a.Title] = true
		maxOrder = max(maxOrder, a.Order)
	}

	var unused []Template
	for _, t := range p.templates {
		if !used[t.Title] {
			unused = append(unused, t)
		}
	}

	var title, description string
	var tmpl Template
	if len(unused) > 0 {
		tmpl = unused[p.rng.IntN(len(unused))]
		title, description = tmpl.Title, tmpl.Description
	} else {
		tmpl = p.templates[p.rng.IntN(len(p.templates))]
		for n := 2; ; n++ {
			title = fmt.Sprintf("%s %d", tmpl.Title, n)
			if !used[title] {
				description = fmt.Sprintf("%s (%d)", tmpl.Description, n)
				break
			}
		}
	}

	return Achievement{
		ID:          p.newID(),
		Title:       title,
		Description: description,
		Icon:        tmpl.Icon,
		Category:    tmpl.Category,
		Points:      tmpl.Points,
		Requirement: description,
		IsActive:    true,
		Order:       maxOrder + 1,
	}, true
}

// Reset relocks and reactivates every achievement and drops those whose ID
// is not in defaultIDs. The input is not modified.
func Reset(achievements []Achievement, defaultIDs map[string]bool) []Achievement {
	reset := make([]Achievement, 0, len(achievements))
	for _, a := range achievements {
		if !defaultIDs[a.ID] {
			continue
		}
		a.Unlocked = false
		a.UnlockedDate = nil
		a.IsActive = true
		reset = append(reset, a)
	}
	return reset
}

// DefaultIDs returns the set of IDs flagged as part of the default catalog.
func DefaultIDs(achievements []Achievement) map[string]bool {
	ids := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		if a.IsDefault {
			ids[a.ID] = true
		}
	}
	return ids
}
