package talent

import "github.com/udisondev/elderdeep/internal/model"

var classTalents = map[model.Class][]Talent{
	model.ClassWarrior: {
		{
			ID: "war_heavy_blows", Name: "Heavy Blows", Kind: KindStat,
			Description: "Increase physical damage dealt.",
			Requires:    Requirements{MinLevel: 2},
			MaxRank:     1,
			Effect:      Effect{AttackMultiplier: 1.12},
		},
		{
			ID: "war_sturdy_armor", Name: "Sturdy Armor", Kind: KindStat,
			Description: "Increase defense and max HP slightly.",
			Requires:    Requirements{MinLevel: 3, Talents: []string{"war_heavy_blows"}},
			MaxRank:     1,
			Effect:      Effect{DefenseMultiplier: 1.10, HPMultiplier: 1.05},
		},
		{
			ID: "war_power_mastery", Name: "Power Mastery", Kind: KindSkillModifier,
			Description: "Power Strike deals more damage.",
			Requires:    Requirements{MinLevel: 4, Talents: []string{"war_heavy_blows"}},
			MaxRank:     1,
			Effect:      Effect{PowerStrikeDamageMultiplier: 1.25},
		},
	},
	model.ClassMage: {
		{
			ID: "mag_arcane_focus", Name: "Arcane Focus", Kind: KindStat,
			Description: "Increase magical damage.",
			Requires:    Requirements{MinLevel: 2},
			MaxRank:     1,
			Effect:      Effect{MagicMultiplier: 1.15},
		},
		{
			ID: "mag_mana_flow", Name: "Mana Flow", Kind: KindCooldown,
			Description: "Slightly reduce skill cooldowns.",
			Requires:    Requirements{MinLevel: 3, Talents: []string{"mag_arcane_focus"}},
			MaxRank:     1,
			Effect:      Effect{SkillCooldownMultiplier: 0.95},
		},
		{
			ID: "mag_fire_mastery", Name: "Fire Mastery", Kind: KindSkillModifier,
			Description: "Arcane Bolt deals increased damage.",
			Requires:    Requirements{MinLevel: 4, Talents: []string{"mag_arcane_focus"}},
			MaxRank:     1,
			Effect:      Effect{FireboltDamageMultiplier: 1.30},
		},
	},
	model.ClassRogue: {
		{
			ID: "rog_quick_hands", Name: "Quick Hands", Kind: KindCooldown,
			Description: "Faster attacks overall.",
			Requires:    Requirements{MinLevel: 2},
			MaxRank:     1,
			Effect:      Effect{BaseCooldownMultiplier: 0.92},
		},
		{
			ID: "rog_backstabber", Name: "Backstabber", Kind: KindSkillModifier,
			Description: "Increase crit chance slightly.",
			Requires:    Requirements{MinLevel: 3, Talents: []string{"rog_quick_hands"}},
			MaxRank:     1,
			Effect:      Effect{CritChanceBonus: 0.05},
		},
		{
			ID: "rog_jab_mastery", Name: "Jab Mastery", Kind: KindSkillModifier,
			Description: "Quick Jab recovers even faster.",
			Requires:    Requirements{MinLevel: 4, Talents: []string{"rog_quick_hands"}},
			MaxRank:     1,
			Effect:      Effect{QuickJabCooldownMultiplier: 0.85},
		},
	},
}

var raceTalents = map[model.Race][]Talent{
	model.RaceHuman: {{
		ID: "rac_adaptable", Name: "Adaptable", Kind: KindStat,
		Description: "Small boost to all attributes.",
		MaxRank:     1,
		Effect:      Effect{Flat: model.Stats{Strength: 1, Dexterity: 1, Intelligence: 1, Vitality: 1}},
	}},
	model.RaceBeast: {{
		ID: "rac_feral_might", Name: "Feral Might", Kind: KindStat,
		Description: "Increase STR-based damage.",
		MaxRank:     1,
		Effect:      Effect{AttackMultiplier: 1.1},
	}},
	model.RaceElf: {{
		ID: "rac_elven_grace", Name: "Elven Grace", Kind: KindStat,
		Description: "Increase INT and modest cooldown bonus.",
		MaxRank:     1,
		Effect:      Effect{Flat: model.Stats{Intelligence: 1}, BaseCooldownMultiplier: 0.97},
	}},
	model.RaceBug: {{
		ID: "rac_swarm_instinct", Name: "Swarm Instinct", Kind: KindSkillModifier,
		Description: "Increase DEX and crit chance.",
		MaxRank:     1,
		Effect:      Effect{Flat: model.Stats{Dexterity: 1}, CritChanceBonus: 0.05},
	}},
}
