// Package skill is the static catalog of player and enemy active abilities.
package skill

import (
	"slices"

	"github.com/udisondev/elderdeep/internal/model"
)

// Effect is the kind of result a skill produces.
type Effect int

const (
	EffectDamage Effect = iota
	EffectBuff
)

// DamageType selects which defense formula applies.
type DamageType int

const (
	Physical DamageType = iota
	Magical
)

func (d DamageType) String() string {
	if d == Magical {
		return "magical"
	}
	return "physical"
}

// Stat is the attribute a skill scales from.
type Stat string

const (
	StatSTR Stat = "STR"
	StatDEX Stat = "DEX"
	StatINT Stat = "INT"
	StatVIT Stat = "VIT"
	StatAP  Stat = "AP"
)

// Priority ranks enemy skills for the AI selector.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Definition is an immutable skill description.
type Definition struct {
	ID          string
	Name        string
	Description string

	Cost     int     // MP
	Cooldown float64 // seconds
	Scaling  Stat

	// BasePower is flat damage added to the scaling power.
	BasePower int
	Effect    Effect
	Damage    DamageType

	Status       model.StatusID
	StatusChance float64
	CritBonus    float64

	// Recovery scales the caster's next attack cooldown (player skills).
	Recovery float64

	// Enemy-only fields.
	Priority  Priority
	Windup    float64 // seconds, 0 = engine default
	Telegraph string
}

// Damaging reports whether the skill deals damage.
func (d Definition) Damaging() bool {
	return d.Effect == EffectDamage
}

// Player returns a player skill by id.
func Player(id string) (Definition, bool) {
	return find(playerSkills, id)
}

// Enemy returns an enemy skill by id.
func Enemy(id string) (Definition, bool) {
	return find(enemySkills, id)
}

// PlayerSkills lists every player skill.
func PlayerSkills() []Definition {
	return slices.Clone(playerSkills)
}

// EnemySkills resolves ids to definitions, skipping unknown ids.
func EnemySkills(ids []string) []Definition {
	out := make([]Definition, 0, len(ids))
	for _, id := range ids {
		if d, ok := Enemy(id); ok {
			out = append(out, d)
		}
	}
	return out
}

func find(defs []Definition, id string) (Definition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
