package talent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elderdeep/internal/model"
)

func TestFold_Neutral(t *testing.T) {
	mods, flat := Fold(model.ClassWarrior, model.RaceHuman, nil)
	assert.Equal(t, model.DefaultModifiers(), mods)
	assert.Equal(t, model.Stats{}, flat)
}

func TestFold(t *testing.T) {
	tests := []struct {
		name    string
		class   model.Class
		race    model.Race
		learned []string
		check   func(t *testing.T, m model.Modifiers, flat model.Stats)
	}{
		{
			name:    "warrior stacks multipliers",
			class:   model.ClassWarrior,
			race:    model.RaceBeast,
			learned: []string{"war_heavy_blows", "rac_feral_might", "war_sturdy_armor"},
			check: func(t *testing.T, m model.Modifiers, _ model.Stats) {
				assert.InDelta(t, 1.12*1.1, m.AttackMultiplier, 1e-9)
				assert.InDelta(t, 1.10, m.DefenseMultiplier, 1e-9)
				assert.InDelta(t, 1.05, m.HPMultiplier, 1e-9)
				assert.InDelta(t, 1.0, m.MagicMultiplier, 1e-9)
			},
		},
		{
			name:    "human flat attributes",
			class:   model.ClassMage,
			race:    model.RaceHuman,
			learned: []string{"rac_adaptable", "mag_mana_flow"},
			check: func(t *testing.T, m model.Modifiers, flat model.Stats) {
				assert.Equal(t, model.Stats{Strength: 1, Dexterity: 1, Intelligence: 1, Vitality: 1}, flat)
				assert.InDelta(t, 0.95, m.SkillCooldownMultiplier, 1e-9)
			},
		},
		{
			name:    "rogue crit bonuses add",
			class:   model.ClassRogue,
			race:    model.RaceBug,
			learned: []string{"rog_backstabber", "rac_swarm_instinct", "rog_jab_mastery", "rog_quick_hands"},
			check: func(t *testing.T, m model.Modifiers, flat model.Stats) {
				assert.InDelta(t, 0.10, m.CritChanceBonus, 1e-9)
				assert.InDelta(t, 0.85, m.QuickJabCooldownMultiplier, 1e-9)
				assert.InDelta(t, 0.92, m.BaseCooldownMultiplier, 1e-9)
				assert.Equal(t, 1, flat.Dexterity)
			},
		},
		{
			name:    "other class talents ignored",
			class:   model.ClassMage,
			race:    model.RaceElf,
			learned: []string{"war_heavy_blows", "unknown"},
			check: func(t *testing.T, m model.Modifiers, flat model.Stats) {
				assert.Equal(t, model.DefaultModifiers(), m)
				assert.Equal(t, model.Stats{}, flat)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods, flat := Fold(tt.class, tt.race, tt.learned)
			tt.check(t, mods, flat)
		})
	}
}

func TestRequirementsMet(t *testing.T) {
	sturdy, ok := Lookup(model.ClassWarrior, model.RaceHuman, "war_sturdy_armor")
	require.True(t, ok)

	assert.False(t, RequirementsMet(sturdy, 2, []string{"war_heavy_blows"}), "level too low")
	assert.False(t, RequirementsMet(sturdy, 3, nil), "missing prerequisite")
	assert.True(t, RequirementsMet(sturdy, 3, []string{"war_heavy_blows"}))

	adaptable, ok := Lookup(model.ClassWarrior, model.RaceHuman, "rac_adaptable")
	require.True(t, ok)
	assert.True(t, RequirementsMet(adaptable, 1, nil))
}

func TestFor(t *testing.T) {
	cls, race := For(model.ClassRogue, model.RaceElf)
	assert.Len(t, cls, 3)
	require.Len(t, race, 1)
	assert.Equal(t, "rac_elven_grace", race[0].ID)

	cls[0].Name = "mutated"
	again, _ := For(model.ClassRogue, model.RaceElf)
	assert.Equal(t, "Quick Hands", again[0].Name)
}
