package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
)

// BasicAttack strikes the active target when the player's gauge is full.
func (e *Engine) BasicAttack() {
	p, target, ok := e.actionTarget()
	if !ok {
		return
	}
	s := e.session

	hit := combat.BasicAttack(e.rng, p, s.Mods, &target.Combatant, e.momentumRatio())
	e.playerActed()

	lost := target.TakeHit(hit.Damage)
	s.DamageDealt += lost
	kind, tag := event.DamageNormal, event.TagDamage
	text := fmt.Sprintf("%s attacks %s for %d.", p.Name, target.Name, lost)
	if hit.Crit {
		kind, tag = event.DamageCrit, event.TagCrit
		text += " (CRIT!)"
	}
	e.presenter.FloatingDamage(target.Name, lost, kind)
	e.cue(event.CueAttack)
	if hit.Crit {
		e.cue(event.CueCrit)
	}
	e.log(text, tag)

	if target.BleedStacks > 0 && target.Alive() {
		bonus := target.LoseHP(target.BleedStacks * status.BleedBonusPerStack)
		s.DamageDealt += bonus
		e.log(fmt.Sprintf("Bleed deals %d bonus damage!", bonus), event.TagStatus)
	}

	if target.Alive() {
		e.weaponOnHit(p, target)
	}
	e.addMomentum(combat.MomentumGain(p.WeaponClass()) * mult(s.Mods.MomentumGainMultiplier))

	if hit.Crit && !e.bossCounter() {
		return
	}
	e.afterPlayerHit(target)
}

// weaponOnHit rolls the weapon's on-hit status, heavy stagger and the
// ranged interrupt.
func (e *Engine) weaponOnHit(p *model.Player, target *model.Enemy) {
	w := p.Weapon
	if w == nil {
		return
	}
	if w.OnHit != "" && combat.Chance(e.rng, combat.OnHitStatusChance) {
		e.applyStatus(&target.Combatant, w.OnHit)
	}
	switch w.Class {
	case model.WeaponHeavy:
		if combat.Chance(e.rng, combat.HeavyStaggerChance) {
			e.applyStatus(&target.Combatant, status.Stagger)
		}
	case model.WeaponRanged:
		cd := &target.Cooldown
		if cd.Max()-cd.Current < combat.InterruptWindow && combat.Chance(e.rng, combat.InterruptChance) {
			cd.Current = max(0, cd.Current-combat.InterruptPushback)
			e.log("Your shot disrupts the enemy attack timing!", event.TagStatus)
		}
	}
}

// UseSkill casts a player skill. Unknown ids, missing MP and cooldowns are
// declined with an informational log line.
func (e *Engine) UseSkill(id string) {
	if !e.Active() {
		return
	}
	def, ok := skill.Player(id)
	if !ok {
		slog.Debug("unknown player skill", "skill", id)
		e.log(fmt.Sprintf("Unknown skill: %s.", id), event.TagInfo)
		return
	}
	p, target, ok := e.actionTarget()
	if !ok {
		return
	}
	s := e.session

	if cd := s.SkillCooldowns[id]; cd > 0 {
		e.log(fmt.Sprintf("%s is on cooldown (%.1fs).", def.Name, cd), event.TagInfo)
		return
	}
	if !p.SpendMP(combat.SkillCost(def, s.Mods)) {
		e.log(fmt.Sprintf("Not enough MP for %s.", def.Name), event.TagInfo)
		return
	}

	s.SkillCooldowns[id] = combat.SkillCooldown(def, s.Mods)
	e.playerActed()
	s.recovery = combat.RecoveryFactor(def, s.Mods)
	e.cue(event.CueSkill)

	if !def.Damaging() {
		e.log(fmt.Sprintf("%s uses %s.", p.Name, def.Name), event.TagInfo)
		if def.Status != "" {
			e.applyStatus(&p.Combatant, def.Status)
		}
		return
	}

	hit := combat.SkillDamage(e.rng, p, s.Mods, def, &target.Combatant, e.momentumRatio())
	lost := target.TakeHit(hit.Damage)
	s.DamageDealt += lost
	kind, tag := event.DamageNormal, event.TagDamage
	text := fmt.Sprintf("%s uses %s for %d damage!", p.Name, def.Name, lost)
	if hit.Crit {
		kind, tag = event.DamageCrit, event.TagCrit
		text += " (CRIT!)"
	}
	e.presenter.FloatingDamage(target.Name, lost, kind)
	e.log(text, tag)

	e.addMomentum(combat.SkillMomentumGain * mult(s.Mods.MomentumGainMultiplier))
	if def.Status != "" && target.Alive() && combat.Chance(e.rng, combat.StatusChance(def, s.Mods)) {
		e.applyStatus(&target.Combatant, def.Status)
	}

	if hit.Crit && !e.bossCounter() {
		return
	}
	e.afterPlayerHit(target)
}

// AttemptFlee rolls the flee chance. Success ends the battle without rewards.
func (e *Engine) AttemptFlee() {
	if !e.Active() {
		return
	}
	if !combat.Chance(e.rng, e.cfg.FleeChance) {
		e.log("You failed to run!", event.TagDamage)
		return
	}
	e.log("You manage to run away!", event.TagInfo)
	e.end(OutcomeFled)
}

// SetGroupTarget selects the active target of a group battle.
func (e *Engine) SetGroupTarget(i int) {
	if !e.Active() {
		return
	}
	s := e.session
	if s.Mode != ModeGroup || i < 0 || i >= len(s.Enemies) || !s.Enemies[i].Alive() {
		return
	}
	if s.Target == i {
		return
	}
	s.Target = i
	e.log(fmt.Sprintf("Target set to %s.", s.Enemies[i].Name), event.TagInfo)
}

// actionTarget checks the shared preconditions of player actions.
func (e *Engine) actionTarget() (*model.Player, *model.Enemy, bool) {
	if !e.Active() {
		return nil, nil, false
	}
	p := e.player()
	if p == nil || !p.Alive() {
		return nil, nil, false
	}
	if p.Stunned {
		e.log(fmt.Sprintf("%s is stunned and cannot act.", p.Name), event.TagStatus)
		return nil, nil, false
	}
	if !e.playerReady() {
		return nil, nil, false
	}
	target := e.session.TargetEnemy()
	if target == nil {
		return nil, nil, false
	}
	return p, target, true
}

// playerActed restarts the player's gauge and tells the boss script.
func (e *Engine) playerActed() {
	s := e.session
	e.player().Cooldown.Current = 0
	s.recovery = 1
	s.SinceAction = 0
	if s.Boss != nil {
		s.Boss.PlayerActed()
	}
}

// bossCounter lets the boss answer a crit. Returns false when the player
// died and the battle ended.
func (e *Engine) bossCounter() bool {
	s := e.session
	if s.Boss == nil {
		return true
	}
	if s.Boss.CounterOnCrit(e.arena()) {
		return true
	}
	e.end(OutcomeDefeat)
	return false
}

func (e *Engine) afterPlayerHit(target *model.Enemy) {
	if target.Alive() {
		return
	}
	e.log(fmt.Sprintf("%s defeated.", target.Name), event.TagVictory)
	if e.session.AllDefeated() {
		e.end(OutcomeVictory)
		return
	}
	e.retarget()
}

func mult(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
