// Package ai decides what an enemy does when its attack gauge fills.
package ai

import (
	"log/slog"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/skill"
)

const (
	// MediumPriorityChance is the chance to pick a medium-priority skill
	// when no high-priority skill is ready.
	MediumPriorityChance = 0.6
	// AnySkillChance is the fallback chance to pick any ready skill.
	AnySkillChance = 0.3
)

// Actor is the AI view of an enemy.
type Actor struct {
	Name         string
	Skills       []skill.Definition
	Cooldowns    map[string]float64 // remaining seconds per skill id
	Telegraphing bool               // another skill is mid-windup
}

// Decision is the selected action. Zero value means basic attack.
type Decision struct {
	Skill *skill.Definition
}

// Basic reports whether the decision is a basic attack.
func (d Decision) Basic() bool {
	return d.Skill == nil
}

// Selector — взвешенный случайный выбор навыка врага.
type Selector struct {
	rng combat.Rand
}

// NewSelector creates a selector drawing from rng.
func NewSelector(rng combat.Rand) *Selector {
	return &Selector{rng: rng}
}

// Choose returns the action for a.
//
// High-priority skills always win; otherwise medium priority with 60% chance,
// otherwise any ready skill with 30% chance, otherwise a basic attack.
func (s *Selector) Choose(a Actor) Decision {
	if len(a.Skills) == 0 || a.Telegraphing {
		return Decision{}
	}

	var ready, high, medium []skill.Definition
	for _, def := range a.Skills {
		if a.Cooldowns[def.ID] > 0 {
			continue
		}
		ready = append(ready, def)
		switch def.Priority {
		case skill.PriorityHigh:
			high = append(high, def)
		case skill.PriorityMedium:
			medium = append(medium, def)
		}
	}
	if len(ready) == 0 {
		return Decision{}
	}

	var picked *skill.Definition
	switch {
	case len(high) > 0:
		picked = s.pick(high)
	case len(medium) > 0 && combat.Chance(s.rng, MediumPriorityChance):
		picked = s.pick(medium)
	case combat.Chance(s.rng, AnySkillChance):
		picked = s.pick(ready)
	default:
		return Decision{}
	}

	slog.Debug("enemy skill selected", "enemy", a.Name, "skill", picked.ID)
	return Decision{Skill: picked}
}

func (s *Selector) pick(defs []skill.Definition) *skill.Definition {
	d := defs[combat.Pick(s.rng, len(defs))]
	return &d
}
