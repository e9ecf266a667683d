package main

import (
	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/boss"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
)

type actionKind int

const (
	actWait actionKind = iota
	actAttack
	actSkill
	actFlee
)

type action struct {
	kind   actionKind
	skill  string
	target int // group target to select first, -1 keeps the current one
}

// bot plays the player side of the simulation.
type bot struct {
	fleeBelow float64 // HP fraction, boss battles never flee
	rotation  map[model.Class][]string
}

func newBot() *bot {
	return &bot{
		fleeBelow: 0.15,
		rotation: map[model.Class][]string{
			model.ClassWarrior: {skill.PowerStrike, skill.QuickJab},
			model.ClassMage:    {skill.ArcaneBolt},
			model.ClassRogue:   {skill.QuickJab, skill.PowerStrike},
		},
	}
}

// act picks and performs one action. Must run on the loop goroutine.
func (b *bot) act(e *battle.Engine, class model.Class) {
	a := b.decide(e.View(), class)
	if a.target >= 0 {
		e.SetGroupTarget(a.target)
	}
	switch a.kind {
	case actAttack:
		e.BasicAttack()
	case actSkill:
		e.UseSkill(a.skill)
	case actFlee:
		e.AttemptFlee()
	}
}

func (b *bot) decide(v battle.View, class model.Class) action {
	a := action{kind: actWait, target: -1}
	if !v.Active || v.Player.MaxHP == 0 {
		return a
	}
	if v.Player.CooldownMax <= 0 || v.Player.Cooldown < v.Player.CooldownMax {
		return a
	}

	if v.Mode == battle.ModeGroup {
		if t := weakest(v.Enemies); t >= 0 && t != v.Target {
			a.target = t
		}
	}

	if v.Mode != battle.ModeBoss && float64(v.Player.HP) < b.fleeBelow*float64(v.Player.MaxHP) {
		a.kind = actFlee
		return a
	}

	// any action during a burrow windup turns the dodge into a hit
	if v.BossMechanic == boss.Burrow {
		return a
	}

	threatened := v.Telegraph != nil || v.BossWindup > 0
	if threatened && !hasStatus(v.Player, status.Guard) && b.ready(v, skill.GuardingStance) {
		a.kind, a.skill = actSkill, skill.GuardingStance
		return a
	}

	for _, id := range b.rotation[class] {
		if b.ready(v, id) {
			a.kind, a.skill = actSkill, id
			return a
		}
	}

	a.kind = actAttack
	return a
}

func (b *bot) ready(v battle.View, id string) bool {
	def, ok := skill.Player(id)
	return ok && v.Skills[id] <= 0 && v.MP >= def.Cost
}

// weakest returns the living enemy with the least HP, -1 when none.
func weakest(enemies []battle.CombatantView) int {
	idx := -1
	for i, en := range enemies {
		if en.HP <= 0 {
			continue
		}
		if idx < 0 || en.HP < enemies[idx].HP {
			idx = i
		}
	}
	return idx
}

func hasStatus(c battle.CombatantView, id model.StatusID) bool {
	for _, s := range c.Statuses {
		if s.ID == id {
			return true
		}
	}
	return false
}
