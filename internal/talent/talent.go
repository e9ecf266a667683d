// Package talent folds class and race talents into battle modifiers.
package talent

import (
	"slices"

	"github.com/udisondev/elderdeep/internal/model"
)

// Kind groups talents for display.
type Kind string

const (
	KindStat          Kind = "stat"
	KindCooldown      Kind = "cooldown"
	KindSkillModifier Kind = "skill_modifier"
)

// Requirements gate learning a talent.
type Requirements struct {
	MinLevel int
	Talents  []string
}

// Effect is what a learned talent contributes. Zero multipliers are neutral.
type Effect struct {
	AttackMultiplier       float64
	MagicMultiplier        float64
	DefenseMultiplier      float64
	HPMultiplier           float64
	BaseCooldownMultiplier float64

	SkillCooldownMultiplier     float64
	PowerStrikeDamageMultiplier float64
	FireboltDamageMultiplier    float64
	QuickJabCooldownMultiplier  float64
	MomentumDamageMultiplier    float64
	MomentumCritBonusMultiplier float64
	MomentumGainMultiplier      float64

	CritChanceBonus        float64
	SkillCostReduction     float64
	SkillCooldownReduction float64
	SkillStatusChanceBonus float64

	// Flat is added to the base attributes.
	Flat model.Stats
}

// Talent is one node of a class or race tree.
type Talent struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Requires    Requirements
	MaxRank     int
	Effect      Effect
}

// For returns the class and race trees of a character.
func For(class model.Class, race model.Race) (classTree, raceTree []Talent) {
	return slices.Clone(classTalents[class]), slices.Clone(raceTalents[race])
}

// Lookup finds a talent available to class or race.
func Lookup(class model.Class, race model.Race, id string) (Talent, bool) {
	for _, tree := range [][]Talent{classTalents[class], raceTalents[race]} {
		for _, t := range tree {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Talent{}, false
}

// RequirementsMet reports whether a character of level with the learned
// talents may take t.
func RequirementsMet(t Talent, level int, learned []string) bool {
	if t.Requires.MinLevel > 0 && level < t.Requires.MinLevel {
		return false
	}
	for _, id := range t.Requires.Talents {
		if !slices.Contains(learned, id) {
			return false
		}
	}
	return true
}

// Fold accumulates learned talents into modifiers and flat attribute
// bonuses. Unknown ids are skipped.
func Fold(class model.Class, race model.Race, learned []string) (model.Modifiers, model.Stats) {
	mods := model.DefaultModifiers()
	var flat model.Stats

	for _, id := range learned {
		t, ok := Lookup(class, race, id)
		if !ok {
			continue
		}
		e := t.Effect
		mods.AttackMultiplier *= factor(e.AttackMultiplier)
		mods.MagicMultiplier *= factor(e.MagicMultiplier)
		mods.DefenseMultiplier *= factor(e.DefenseMultiplier)
		mods.HPMultiplier *= factor(e.HPMultiplier)
		mods.BaseCooldownMultiplier *= factor(e.BaseCooldownMultiplier)
		mods.SkillCooldownMultiplier *= factor(e.SkillCooldownMultiplier)
		mods.PowerStrikeDamageMultiplier *= factor(e.PowerStrikeDamageMultiplier)
		mods.FireboltDamageMultiplier *= factor(e.FireboltDamageMultiplier)
		mods.QuickJabCooldownMultiplier *= factor(e.QuickJabCooldownMultiplier)
		mods.MomentumDamageMultiplier *= factor(e.MomentumDamageMultiplier)
		mods.MomentumCritBonusMultiplier *= factor(e.MomentumCritBonusMultiplier)
		mods.MomentumGainMultiplier *= factor(e.MomentumGainMultiplier)

		mods.CritChanceBonus += e.CritChanceBonus
		mods.SkillCostReduction += e.SkillCostReduction
		mods.SkillCooldownReduction += e.SkillCooldownReduction
		mods.SkillStatusChanceBonus += e.SkillStatusChanceBonus

		flat = flat.Add(e.Flat)
	}
	return mods, flat
}

func factor(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
