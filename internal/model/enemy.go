package model

import (
	"maps"
	"slices"
)

// EnemyTemplate is the static stat block an encounter is built from.
// Battles always work on a Clone so templates stay untouched.
type EnemyTemplate struct {
	ID          string
	Name        string
	Level       int
	MaxHP       int
	AttackPower int
	Defense     int
	GoldReward  int
	XPReward    int

	AttackCooldown float64 // seconds between basic attacks
	AttackSpeed    float64 // divides AttackCooldown, 0 means 1

	Skills      []string
	Resistances Resistances
	Elite       bool

	// Boss names a scripted phase machine, empty for regular enemies.
	Boss     string
	Intro    []string
	MusicKey string
}

// Clone returns a deep copy.
func (t *EnemyTemplate) Clone() *EnemyTemplate {
	c := *t
	c.Skills = slices.Clone(t.Skills)
	c.Intro = slices.Clone(t.Intro)
	c.Resistances = t.Resistances.Clone()
	return &c
}

// BaseCooldown returns the effective basic attack interval, never below 0.8s.
func (t *EnemyTemplate) BaseCooldown() float64 {
	speed := t.AttackSpeed
	if speed <= 0 {
		speed = 1
	}
	return max(0.8, t.AttackCooldown/speed)
}

// Enemy is a live opponent in a battle session.
type Enemy struct {
	Combatant

	Template *EnemyTemplate

	// SkillCooldowns holds remaining seconds per skill id; absent means ready.
	SkillCooldowns map[string]float64
}

// NewEnemy builds a full-health enemy from a private copy of t.
func NewEnemy(t *EnemyTemplate) *Enemy {
	tpl := t.Clone()
	return &Enemy{
		Combatant: Combatant{
			ID:            tpl.ID,
			Name:          tpl.Name,
			Level:         tpl.Level,
			HP:            tpl.MaxHP,
			MaxHP:         tpl.MaxHP,
			AttackPower:   tpl.AttackPower,
			Defense:       tpl.Defense,
			Resistances:   tpl.Resistances.Clone(),
			IncomingScale: 1,
			Cooldown: Cooldown{
				Base:   tpl.BaseCooldown(),
				Factor: 1,
			},
		},
		Template:       tpl,
		SkillCooldowns: make(map[string]float64),
	}
}

// SkillReady reports whether the skill's cooldown has elapsed.
func (e *Enemy) SkillReady(id string) bool {
	return e.SkillCooldowns[id] <= 0
}

// CooldownsSnapshot returns a copy of the skill cooldown map.
func (e *Enemy) CooldownsSnapshot() map[string]float64 {
	return maps.Clone(e.SkillCooldowns)
}
