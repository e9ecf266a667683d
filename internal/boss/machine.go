package boss

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/status"
)

// Arena is the battle session as seen by a boss script.
type Arena interface {
	Player() *model.Player
	Boss() *model.Enemy

	Log(text string, tag event.Tag)
	Cue(c event.Cue)
	Warn()
	SetHazardFast(on bool)

	ApplyStatus(target *model.Combatant, id model.StatusID) bool
	// StrikePlayer deals dmg to the player and reports whether they survived.
	StrikePlayer(dmg int, kind event.DamageKind) bool
}

// Machine tracks one boss fight. Not safe for concurrent use; the battle
// engine owns it.
type Machine struct {
	script *Script
	rng    combat.Rand

	phase int // -1 until the first evaluation
	state State

	mechanic  Mechanic
	remaining float64
	trigger   Timer

	timers [timerCount]float64

	// acted is set when the player attacks during a windup.
	acted bool
}

// New creates a machine for script.
func New(script *Script, rng combat.Rand) *Machine {
	m := &Machine{script: script, rng: rng, phase: -1}
	for t, v := range script.TimerStart {
		m.timers[t] = v
	}
	return m
}

// Phase returns the current phase index, 0 before the first evaluation.
func (m *Machine) Phase() int {
	return max(0, m.phase)
}

// State returns the windup state.
func (m *Machine) State() State {
	return m.state
}

// Windup returns the mechanic being wound up and its remaining seconds.
func (m *Machine) Windup() (Mechanic, float64) {
	if m.state != StateWindingUp {
		return MechanicNone, 0
	}
	return m.mechanic, m.remaining
}

// Timer returns the accrued seconds of t.
func (m *Machine) Timer(t Timer) float64 {
	return m.timers[t]
}

// PlayerActed records a player attack. Only counts during a windup.
func (m *Machine) PlayerActed() {
	if m.state == StateWindingUp {
		m.acted = true
	}
}

// EvaluatePhase moves the fight to the phase matching the boss's HP.
// Phases are entered in order and never left. Returns true on a transition.
func (m *Machine) EvaluatePhase(a Arena) bool {
	boss := a.Boss()
	target := m.targetPhase(boss.HP, boss.MaxHP)
	if target <= m.phase {
		return false
	}
	for p := m.phase + 1; p <= target; p++ {
		m.enter(a, p)
	}
	return true
}

func (m *Machine) targetPhase(hp, maxHP int) int {
	target := 0
	for i, ph := range m.script.Phases {
		if i == 0 || ph.BelowPct <= 0 {
			continue
		}
		if hp*100 < maxHP*ph.BelowPct {
			target = i
		}
	}
	return target
}

func (m *Machine) enter(a Arena, idx int) {
	m.phase = idx
	ph := m.script.Phases[idx]
	boss := a.Boss()

	if tpl := boss.Template; tpl != nil {
		if ph.AttackMult > 0 {
			boss.AttackPower = combat.Round(float64(tpl.AttackPower) * ph.AttackMult)
		}
		if ph.DefenseMult > 0 {
			boss.Defense = combat.Round(float64(tpl.Defense) * ph.DefenseMult)
		}
	}
	if ph.AttackCooldown > 0 {
		boss.Cooldown.Base = ph.AttackCooldown
		boss.Cooldown.Clamp()
	}

	a.Log(ph.Announcement, event.TagBoss)
	if ph.HazardFast {
		a.SetHazardFast(true)
	}
	if ph.Flash {
		a.Warn()
	}

	slog.Info("boss phase entered",
		"boss", boss.ID,
		"phase", idx,
		"name", ph.Name,
		"hp", boss.HP)
}

// Update advances the fight by dt. Returns false when the player died.
func (m *Machine) Update(a Arena, dt float64) bool {
	boss := a.Boss()
	if !boss.Alive() {
		return true
	}
	m.EvaluatePhase(a)

	if m.state != StateWindingUp && !m.bite(a, dt) {
		return false
	}

	for i := range m.timers {
		m.timers[i] += dt
	}

	if m.state == StateWindingUp {
		m.remaining -= dt
		if m.remaining > 0 {
			return true
		}
		return m.resolve(a)
	}

	m.startWindup(a)
	return true
}

func (m *Machine) bite(a Arena, dt float64) bool {
	boss := a.Boss()
	boss.Cooldown.Advance(dt, boss.Cooldown.Max())
	if !boss.Cooldown.Ready() {
		return true
	}
	boss.Cooldown.Current = 0

	if boss.Stunned {
		a.Log(fmt.Sprintf("%s is stunned and cannot act.", boss.Name), event.TagStatus)
		return true
	}

	dmg := m.strike(a, biteShape)
	a.Log("The Wyrm bites through the smoke.", event.TagDamage)
	return a.StrikePlayer(dmg, event.DamageNormal)
}

func (m *Machine) startWindup(a Arena) {
	for _, tr := range m.script.Triggers {
		if tr.Phase != m.Phase() || m.timers[tr.Timer] < tr.At || len(tr.Variants) == 0 {
			continue
		}
		v := tr.Variants[combat.Pick(m.rng, len(tr.Variants))]

		m.state = StateWindingUp
		m.mechanic = v.Mechanic
		m.remaining = v.Windup
		m.trigger = tr.Timer
		m.acted = false

		a.Log(v.Text, event.TagBoss)
		a.Cue(event.CueSpecial)
		if v.Mechanic == ElderRupture {
			a.Warn()
		}
		slog.Debug("boss windup started", "mechanic", v.Mechanic, "windup", v.Windup)
		return
	}
}

func (m *Machine) resolve(a Arena) bool {
	mech := m.mechanic
	m.state = StateResolving
	defer func() {
		m.state = StateIdle
		m.mechanic = MechanicNone
		m.remaining = 0
		m.timers[m.trigger] = 0
		m.acted = false
	}()

	player := a.Player()
	boss := a.Boss()

	switch mech {
	case Burrow:
		if !m.acted {
			a.Log("You hold your ground. The burrow strike misses!", event.TagBoss)
			a.ApplyStatus(&boss.Combatant, status.Stagger)
			return true
		}
		dmg := m.strike(a, burrowShape)
		a.Log("Burrow Strike lands with a thunderous snap!", event.TagDamage)
		return a.StrikePlayer(dmg, event.DamageNormal)

	case FireBreath, Firewall:
		a.ApplyStatus(&player.Combatant, status.Burn)
		a.Log("Flames billow from the Deep.", event.TagBoss)
		return player.Alive()

	case Heatwave:
		dmg := m.strike(a, heatShape)
		a.Log("Heatwave scorches the arena!", event.TagDamage)
		return a.StrikePlayer(dmg, event.DamageNormal)

	case ElderRupture:
		if boss.HasStatus(status.Stagger) {
			a.Log("You interrupt the Elder Rupture! The ground settles.", event.TagBoss)
			return true
		}
		dmg := m.strike(a, ruptureShape)
		a.Warn()
		a.Log("ELDER RUPTURE sunders the cavern!", event.TagCrit)
		return a.StrikePlayer(dmg, event.DamageCrit)
	}
	return true
}

// CounterOnCrit answers a player crit in the counter phase.
// Returns false when the counter killed the player.
func (m *Machine) CounterOnCrit(a Arena) bool {
	if m.Phase() < m.script.CounterPhase || !a.Boss().Alive() {
		return true
	}
	dmg := m.strike(a, counterShape)
	a.Log("The Wyrm counters your exposed strike!", event.TagBoss)
	return a.StrikePlayer(dmg, event.DamageNormal)
}

func (m *Machine) strike(a Arena, s strikeShape) int {
	return combat.Strike(m.rng, &a.Boss().Combatant, &a.Player().Combatant, s.ap, s.def, s.spread)
}
