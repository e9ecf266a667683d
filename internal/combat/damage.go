// Package combat holds the damage, crit and momentum formulas shared by
// basic attacks, player skills and enemy skills.
package combat

import (
	"math"

	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
)

const (
	BaseCritChance = 0.05
	CritMultiplier = 1.5

	// MomentumCritCoefficient converts momentum ratio into crit chance.
	MomentumCritCoefficient = 0.1
	// SkillMomentumDamageCoefficient converts momentum ratio into skill bonus damage.
	SkillMomentumDamageCoefficient = 0.25
	// SkillMomentumGain is momentum granted by a damaging skill.
	SkillMomentumGain = 10

	magicWeaponIntScale = 1.2
	damageVariance      = 2

	// Enemy skill balance multipliers.
	physicalSkillBalance = 0.9
	magicalSkillBalance  = 0.85
	magicAttackFraction  = 0.6

	blockThreshold  = 2
	blockChance     = 0.5
	blockMultiplier = 0.5

	minSkillCooldown = 0.5
)

// Ranged interrupt tuning.
const (
	InterruptWindow   = 0.5
	InterruptChance   = 0.5
	InterruptPushback = 0.6
)

// On-hit chances for basic attacks.
const (
	OnHitStatusChance  = 0.35
	HeavyStaggerChance = 0.25
)

// Hit is the result of a player attack roll.
type Hit struct {
	Damage int
	Crit   bool
}

// MomentumScale returns how strongly momentum boosts basic attacks per weapon class.
func MomentumScale(class model.WeaponClass) float64 {
	switch class {
	case model.WeaponHeavy:
		return 0.6
	case model.WeaponLight:
		return 0.3
	case model.WeaponMagic:
		return 0.4
	case model.WeaponRanged:
		return 0.25
	default:
		return 0.2
	}
}

// MomentumGain returns momentum granted by a basic attack per weapon class.
func MomentumGain(class model.WeaponClass) float64 {
	switch class {
	case model.WeaponLight:
		return 18
	case model.WeaponHeavy:
		return 10
	case model.WeaponMagic:
		return 14
	case model.WeaponRanged:
		return 13
	default:
		return 12
	}
}

// CritChance sums base, weapon, skill, modifier and momentum crit chance.
func CritChance(p *model.Player, mods model.Modifiers, skillBonus, ratio float64) float64 {
	c := BaseCritChance + skillBonus + mods.CritChanceBonus +
		ratio*MomentumCritCoefficient*mult(mods.MomentumCritBonusMultiplier)
	if p.Weapon != nil {
		c += p.Weapon.CritChance
	}
	return c
}

// BasicAttack rolls a player basic attack against target.
// ratio is current momentum over its maximum.
func BasicAttack(r Rand, p *model.Player, mods model.Modifiers, target *model.Combatant, ratio float64) Hit {
	class := p.WeaponClass()

	stat := max(1, p.AttackPower-target.Defense)
	if class == model.WeaponMagic {
		stat += Round(float64(p.Stats().Intelligence) * magicWeaponIntScale)
	}
	weaponBase := 0
	if p.Weapon != nil {
		weaponBase = p.Weapon.BaseDamage
	}

	raw := max(1, Round(float64(stat+weaponBase)*mult(mods.AttackMultiplier)))
	raw = Round(float64(raw) * (1 + ratio*MomentumScale(class)*mult(mods.MomentumDamageMultiplier)))

	crit := Chance(r, CritChance(p, mods, 0, ratio))
	if crit {
		raw = Round(float64(raw) * CritMultiplier)
	}
	return Hit{Damage: max(1, raw+Variance(r, damageVariance)), Crit: crit}
}

// SkillDamage rolls a damaging player skill against target.
func SkillDamage(r Rand, p *model.Player, mods model.Modifiers, def skill.Definition, target *model.Combatant, ratio float64) Hit {
	power := float64(p.AttackPower)
	defense := float64(target.Defense)
	m := mult(mods.AttackMultiplier)
	if def.Damage == skill.Magical {
		power = float64(p.MagicPower)
		defense *= 0.5
		m = mult(mods.MagicMultiplier)
	}
	switch def.ID {
	case skill.PowerStrike:
		m *= mult(mods.PowerStrikeDamageMultiplier)
	case skill.ArcaneBolt:
		m *= mult(mods.FireboltDamageMultiplier)
	}

	raw := max(1, Round((power+float64(def.BasePower)-defense)*m))
	raw += Round(float64(raw) * ratio * SkillMomentumDamageCoefficient * mult(mods.MomentumDamageMultiplier))

	crit := Chance(r, CritChance(p, mods, def.CritBonus, ratio))
	if crit {
		raw = Round(float64(raw) * CritMultiplier)
	}
	return Hit{Damage: max(1, raw+Variance(r, damageVariance)), Crit: crit}
}

// SkillCost returns the MP cost after talent reductions.
func SkillCost(def skill.Definition, mods model.Modifiers) int {
	return max(0, def.Cost-Round(mods.SkillCostReduction))
}

// SkillCooldown returns the cooldown entry a used skill starts with.
func SkillCooldown(def skill.Definition, mods model.Modifiers) float64 {
	return max(minSkillCooldown, def.Cooldown*mult(mods.SkillCooldownMultiplier)-mods.SkillCooldownReduction)
}

// RecoveryFactor returns the multiplier applied to the player's next attack
// cooldown after using def.
func RecoveryFactor(def skill.Definition, mods model.Modifiers) float64 {
	f := mult(def.Recovery)
	if def.ID == skill.QuickJab {
		f *= mult(mods.QuickJabCooldownMultiplier)
	}
	return f
}

// StatusChance returns the skill's status application chance with talent bonus.
func StatusChance(def skill.Definition, mods model.Modifiers) float64 {
	if def.Status == "" {
		return 0
	}
	return def.StatusChance + mods.SkillStatusChanceBonus
}

// EnemySkillDamage rolls an enemy skill against target, capped at
// capFraction of the target's max HP.
func EnemySkillDamage(r Rand, attacker *model.Combatant, def skill.Definition, target *model.Combatant, capFraction float64) int {
	ap := float64(attacker.AttackPower)
	base := float64(def.BasePower)
	defense := float64(target.Defense)

	var raw float64
	if def.Damage == skill.Magical {
		raw = (ap*magicAttackFraction + base - defense*0.5) * magicalSkillBalance
	} else {
		raw = (ap + base - defense) * physicalSkillBalance
	}
	dmg := max(1, Round(raw)+Variance(r, damageVariance))
	return CapDamage(dmg, target.MaxHP, capFraction)
}

// CapDamage clamps dmg to fraction of maxHP. fraction <= 0 disables the cap.
func CapDamage(dmg, maxHP int, fraction float64) int {
	if fraction <= 0 {
		return dmg
	}
	limit := max(1, int(math.Floor(float64(maxHP)*fraction)))
	return min(dmg, limit)
}

// EnemyAttack rolls a regular enemy basic attack. Weak rolls may be blocked
// for half damage.
func EnemyAttack(r Rand, attacker, target *model.Combatant) (dmg int, blocked bool) {
	raw := max(1, attacker.AttackPower-target.Defense)
	dmg = max(1, raw+Variance(r, damageVariance))
	if dmg <= blockThreshold && Chance(r, blockChance) {
		return max(1, Round(float64(dmg)*blockMultiplier)), true
	}
	return dmg, false
}

// Strike rolls a scripted attack: round(AP*apScale - DEF*defScale) +/- spread, at least 1.
func Strike(r Rand, attacker, target *model.Combatant, apScale, defScale float64, spread int) int {
	raw := Round(float64(attacker.AttackPower)*apScale - float64(target.Defense)*defScale)
	return max(1, raw+Variance(r, spread))
}
