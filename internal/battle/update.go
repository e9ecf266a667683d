package battle

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/elderdeep/internal/ai"
	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
)

// Update advances the active battle by dt seconds.
//
// Order: statuses, zone tick, MP regen, skill cooldowns, telegraph,
// attack gauges, death check, enemy actions, auto attack, render.
func (e *Engine) Update(dt float64) {
	if !e.Active() {
		return
	}
	p := e.player()
	if p == nil {
		slog.Error("battle update without player", "session", e.session.ID)
		return
	}
	s := e.session
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = min(dt, e.cfg.MaxFrameDelta)
	s.Elapsed += dt
	s.SinceAction += dt

	env := e.arena()
	status.Tick(env, &p.Combatant, dt)
	for _, en := range s.Enemies {
		if en.Alive() {
			status.Tick(env, &en.Combatant, dt)
		}
	}

	s.hooks.OnTick(env, dt)

	s.mpAccum += e.cfg.MPRegenPerSecond * dt
	if whole := math.Floor(s.mpAccum); whole >= 1 {
		p.RestoreMP(int(whole))
		s.mpAccum -= whole
	}

	tickCooldowns(s.SkillCooldowns, dt)
	for _, en := range s.Enemies {
		tickCooldowns(en.SkillCooldowns, dt)
	}

	if s.Telegraph != nil {
		s.Telegraph.Remaining -= dt
		if s.Telegraph.Remaining <= 0 {
			e.resolveTelegraph()
		}
	}

	e.advancePlayerGauge(dt)
	if s.Mode != ModeBoss {
		for _, en := range s.Enemies {
			if en.Alive() {
				en.Cooldown.Advance(dt, en.Cooldown.Max())
			}
		}
	}

	if e.checkEnd() {
		return
	}

	switch s.Mode {
	case ModeBoss:
		if !s.Boss.Update(env, dt) {
			e.end(OutcomeDefeat)
			return
		}
	case ModeGroup:
		e.updateGroup()
	default:
		e.updateSingle()
	}
	if e.checkEnd() {
		return
	}

	if e.cfg.AutoAttack && e.playerReady() && !p.Stunned {
		e.BasicAttack()
		if !e.Active() {
			return
		}
	}

	e.render()
}

func tickCooldowns(m map[string]float64, dt float64) {
	for id, cd := range m {
		if cd-dt <= 0 {
			delete(m, id)
			continue
		}
		m[id] = cd - dt
	}
}

// advancePlayerGauge fills the player's gauge. A pending recovery factor
// stretches or shrinks the time to full and resets once the gauge is full.
func (e *Engine) advancePlayerGauge(dt float64) {
	p := e.player()
	s := e.session
	r := s.recovery
	if r <= 0 {
		r = 1
	}
	p.Cooldown.Advance(dt/r, p.Cooldown.Max())
	if p.Cooldown.Ready() {
		s.recovery = 1
	}
}

func (e *Engine) playerReady() bool {
	p := e.player()
	return p != nil && p.Alive() && p.Cooldown.Ready()
}

// checkEnd ends the battle when one side is down.
func (e *Engine) checkEnd() bool {
	p := e.player()
	switch {
	case !p.Alive():
		e.end(OutcomeDefeat)
	case e.session.AllDefeated():
		e.end(OutcomeVictory)
	default:
		return false
	}
	return true
}

func (e *Engine) actor(en *model.Enemy) ai.Actor {
	return ai.Actor{
		Name:         en.Name,
		Skills:       skill.EnemySkills(en.Template.Skills),
		Cooldowns:    en.SkillCooldowns,
		Telegraphing: e.session.Telegraph != nil,
	}
}

// updateSingle lets the lone enemy act once its gauge is full. Skills are
// telegraphed first; nothing else starts while a windup is pending.
func (e *Engine) updateSingle() {
	s := e.session
	en := s.Enemies[0]
	if !en.Alive() || s.Telegraph != nil || !en.Cooldown.Ready() {
		return
	}
	en.Cooldown.Current = 0

	if en.Stunned {
		e.log(fmt.Sprintf("%s is stunned and cannot act.", en.Name), event.TagStatus)
		return
	}

	d := e.selector.Choose(e.actor(en))
	if d.Basic() {
		e.enemyAttack(en)
		return
	}

	windup := d.Skill.Windup
	if windup <= 0 {
		windup = e.cfg.TelegraphWindup
	}
	s.Telegraph = &Telegraph{Enemy: en, Skill: *d.Skill, Remaining: windup}
	text := fmt.Sprintf("%s begins to use %s!", en.Name, d.Skill.Name)
	if d.Skill.Telegraph != "" {
		text = fmt.Sprintf(d.Skill.Telegraph, en.Name)
	}
	e.log(text, event.TagInfo)
	e.cue(event.CueSpecial)
	slog.Debug("enemy telegraph", "enemy", en.ID, "skill", d.Skill.ID, "windup", windup)
}

func (e *Engine) resolveTelegraph() {
	s := e.session
	t := s.Telegraph
	s.Telegraph = nil
	if !t.Enemy.Alive() || !e.player().Alive() {
		return
	}
	if t.Enemy.Stunned {
		e.log(fmt.Sprintf("%s's %s fizzles.", t.Enemy.Name, t.Skill.Name), event.TagStatus)
		return
	}
	e.enemySkill(t.Enemy, t.Skill)
}

// updateGroup runs every ready enemy. Group skills resolve immediately.
func (e *Engine) updateGroup() {
	s := e.session
	p := e.player()
	for _, en := range s.Enemies {
		if !en.Alive() || !en.Cooldown.Ready() {
			continue
		}
		en.Cooldown.Current = 0

		if en.Stunned {
			e.log(fmt.Sprintf("%s is stunned and cannot act.", en.Name), event.TagStatus)
			continue
		}

		if d := e.selector.Choose(e.actor(en)); d.Basic() {
			e.enemyAttack(en)
		} else {
			e.enemySkill(en, *d.Skill)
		}
		if !p.Alive() {
			return
		}
	}
	e.retarget()
}

// retarget moves the active target off a dead enemy.
func (e *Engine) retarget() {
	s := e.session
	if s.Mode != ModeGroup || s.TargetEnemy() != nil {
		return
	}
	next := s.nextAlive()
	if next < 0 {
		return
	}
	s.Target = next
	e.log(fmt.Sprintf("Target switched to %s.", s.Enemies[next].Name), event.TagInfo)
}

func (e *Engine) enemyAttack(en *model.Enemy) {
	p := e.player()
	dmg, blocked := combat.EnemyAttack(e.rng, &en.Combatant, &p.Combatant)

	kind, tag := event.DamageNormal, event.TagDamage
	if blocked {
		kind, tag = event.DamageBlock, event.TagInfo
	}
	lost := e.strikePlayer(dmg, kind)

	text := fmt.Sprintf("%s strikes %s for %d.", en.Name, p.Name, lost)
	if blocked {
		text += " (BLOCK)"
	}
	e.log(text, tag)
}

func (e *Engine) enemySkill(en *model.Enemy, def skill.Definition) {
	p := e.player()
	en.SkillCooldowns[def.ID] = def.Cooldown

	if def.Damaging() {
		dmg := combat.EnemySkillDamage(e.rng, &en.Combatant, def, &p.Combatant, e.cfg.EnemySkillDamageCap)
		lost := e.strikePlayer(dmg, event.DamageNormal)
		e.log(fmt.Sprintf("%s uses %s for %d damage!", en.Name, def.Name, lost), event.TagDamage)
		e.cue(event.CueSpecial)
	} else {
		e.log(fmt.Sprintf("%s uses %s.", en.Name, def.Name), event.TagInfo)
	}

	if def.Status != "" && p.Alive() && combat.Chance(e.rng, def.StatusChance) {
		e.applyStatus(&p.Combatant, def.Status)
	}
}
