package model

import (
	"math"
	"slices"
)

// StatusID identifies a status effect definition (poison, burn, stun...).
type StatusID string

// StatusInstance — активный экземпляр статуса на сущности.
// Only one instance per StatusID may exist on a combatant.
type StatusInstance struct {
	ID        StatusID
	Remaining float64 // seconds
	NextTick  float64 // seconds until the periodic effect fires, 0 = not periodic
}

// Resistances declares which statuses a combatant ignores outright and which
// it shortens. Resist coefficients outside [0,1] are ignored.
type Resistances struct {
	Immune []StatusID
	Resist map[StatusID]float64
}

// IsImmune reports whether the status is blocked entirely.
func (r Resistances) IsImmune(id StatusID) bool {
	return slices.Contains(r.Immune, id)
}

// Coefficient returns the duration coefficient for id and whether one applies.
func (r Resistances) Coefficient(id StatusID) (float64, bool) {
	c, ok := r.Resist[id]
	if !ok || c < 0 || c > 1 {
		return 0, false
	}
	return c, true
}

// Clone returns a deep copy.
func (r Resistances) Clone() Resistances {
	out := Resistances{Immune: slices.Clone(r.Immune)}
	if r.Resist != nil {
		out.Resist = make(map[StatusID]float64, len(r.Resist))
		for k, v := range r.Resist {
			out.Resist[k] = v
		}
	}
	return out
}

// Cooldown is an attack gauge that fills from 0 to Max.
// Max is Base scaled by Factor (slow raises Factor above 1).
type Cooldown struct {
	Current float64
	Base    float64
	Factor  float64
}

// Max returns the effective gauge length.
func (c Cooldown) Max() float64 {
	if c.Factor <= 0 {
		return c.Base
	}
	return c.Base * c.Factor
}

// Ready reports whether the gauge is full.
func (c Cooldown) Ready() bool {
	return c.Current >= c.Max()
}

// Advance fills the gauge by dt, clamped to [0, limit].
func (c *Cooldown) Advance(dt, limit float64) {
	c.Current = clampFloat(c.Current+dt, 0, limit)
}

// Clamp keeps Current within [0, Max].
func (c *Cooldown) Clamp() {
	c.Current = clampFloat(c.Current, 0, c.Max())
}

// Combatant — общая часть игрока и врага в бою.
type Combatant struct {
	ID    string
	Name  string
	Level int

	HP    int
	MaxHP int

	AttackPower int
	MagicPower  int
	Defense     int

	Cooldown    Cooldown
	Statuses    []*StatusInstance
	Resistances Resistances

	// Transient flags driven by status hooks.
	Stunned     bool
	BleedStacks int

	// IncomingScale multiplies damage taken from hits (guard buff). 0 means 1.
	IncomingScale float64
}

// Alive reports whether HP is above zero.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// LoseHP removes raw HP (periodic damage, bleed bonus) and returns the amount lost.
func (c *Combatant) LoseHP(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP = clampInt(c.HP-amount, 0, c.MaxHP)
	return before - c.HP
}

// TakeHit applies an attack's damage after the incoming damage scale.
// Returns the HP actually lost.
func (c *Combatant) TakeHit(amount int) int {
	if c.IncomingScale > 0 && c.IncomingScale != 1 {
		scaled := roundHalfUp(float64(amount) * c.IncomingScale)
		if scaled < 1 {
			scaled = 1
		}
		amount = scaled
	}
	return c.LoseHP(amount)
}

// Heal restores HP up to MaxHP.
func (c *Combatant) Heal(amount int) {
	c.HP = clampInt(c.HP+amount, 0, c.MaxHP)
}

// Status returns the active instance of id, or nil.
func (c *Combatant) Status(id StatusID) *StatusInstance {
	for _, s := range c.Statuses {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// HasStatus reports whether an instance of id is active.
func (c *Combatant) HasStatus(id StatusID) bool {
	return c.Status(id) != nil
}

// ResetBattleState drops every transient combat effect.
func (c *Combatant) ResetBattleState() {
	c.Statuses = nil
	c.Stunned = false
	c.BleedStacks = 0
	c.IncomingScale = 1
	c.Cooldown.Factor = 1
	c.Cooldown.Clamp()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundHalfUp rounds .5 towards +Inf, the way the game's balance tables expect.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
