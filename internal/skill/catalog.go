package skill

import "github.com/udisondev/elderdeep/internal/status"

// Player skill ids.
const (
	PowerStrike    = "power_strike"
	QuickJab       = "quick_jab"
	ArcaneBolt     = "arcane_bolt"
	GuardingStance = "guarding_stance"
)

var playerSkills = []Definition{
	{
		ID:           PowerStrike,
		Name:         "Power Strike",
		Description:  "A heavy blow dealing increased physical damage.",
		Cost:         15,
		Cooldown:     8,
		Scaling:      StatSTR,
		BasePower:    14,
		Effect:       EffectDamage,
		Damage:       Physical,
		Status:       status.Stagger,
		StatusChance: 0.25,
		CritBonus:    0.05,
		Recovery:     1.25,
	},
	{
		ID:          QuickJab,
		Name:        "Quick Jab",
		Description: "A rapid strike with low damage but short cooldown.",
		Cost:        8,
		Cooldown:    3.5,
		Scaling:     StatDEX,
		BasePower:   4,
		Effect:      EffectDamage,
		Damage:      Physical,
		CritBonus:   0.10,
		Recovery:    0.55,
	},
	{
		ID:           ArcaneBolt,
		Name:         "Arcane Bolt",
		Description:  "A magical projectile that can burn the target.",
		Cost:         20,
		Cooldown:     6,
		Scaling:      StatINT,
		BasePower:    12,
		Effect:       EffectDamage,
		Damage:       Magical,
		Status:       status.Burn,
		StatusChance: 0.35,
		CritBonus:    0.03,
		Recovery:     1,
	},
	{
		ID:          GuardingStance,
		Name:        "Guarding Stance",
		Description: "Halve incoming damage for a short time.",
		Cost:        12,
		Cooldown:    15,
		Scaling:     StatVIT,
		Effect:      EffectBuff,
		Status:      status.Guard,
		Recovery:    1,
	},
}

// Enemy skill ids.
const (
	TailSmash  = "tail_smash"
	VenomSpit  = "venom_spit"
	ShadowBolt = "shadow_bolt"
	EmberLash  = "ember_lash"
	StoneSlam  = "stone_slam"
	ThornSnare = "thorn_snare"
	Rend       = "rend"
)

var enemySkills = []Definition{
	{
		ID: TailSmash, Name: "Tail Smash",
		Cooldown: 9, Scaling: StatAP, BasePower: 30,
		Damage: Physical, Status: status.Stagger, StatusChance: 0.3,
		Priority: PriorityHigh, Windup: 1.6,
		Telegraph: "%s coils its tail. Tail Smash incoming!",
	},
	{
		ID: StoneSlam, Name: "Stone Slam",
		Cooldown: 10, Scaling: StatAP, BasePower: 10,
		Damage: Physical, Status: status.Stun, StatusChance: 0.25,
		Priority: PriorityHigh, Windup: 1.4,
		Telegraph: "%s raises its fists overhead!",
	},
	{
		ID: VenomSpit, Name: "Venom Spit",
		Cooldown: 8, Scaling: StatAP, BasePower: 4,
		Damage: Physical, Status: status.Poison, StatusChance: 0.5,
		Priority: PriorityMedium,
		Telegraph: "%s gathers venom.",
	},
	{
		ID: ShadowBolt, Name: "Shadow Bolt",
		Cooldown: 7, Scaling: StatAP, BasePower: 10,
		Damage: Magical, Status: status.Slow, StatusChance: 0.3,
		Priority: PriorityMedium,
		Telegraph: "%s draws shadows together.",
	},
	{
		ID: EmberLash, Name: "Ember Lash",
		Cooldown: 6, Scaling: StatAP, BasePower: 8,
		Damage: Magical, Status: status.Burn, StatusChance: 0.4,
		Priority: PriorityMedium,
		Telegraph: "%s crackles with heat.",
	},
	{
		ID: ThornSnare, Name: "Thorn Snare",
		Cooldown: 9, Scaling: StatAP, BasePower: 3,
		Damage: Physical, Status: status.Slow, StatusChance: 0.6,
		Priority: PriorityLow,
		Telegraph: "Thorns stir around %s.",
	},
	{
		ID: Rend, Name: "Rend",
		Cooldown: 7, Scaling: StatAP, BasePower: 5,
		Damage: Physical, Status: status.Bleed, StatusChance: 0.5,
		Priority: PriorityLow,
		Telegraph: "%s bares its claws.",
	},
}
