package model

// Modifiers are combat tuning values folded from talents.
// Multiplicative fields default to 1, additive fields default to 0.
type Modifiers struct {
	AttackMultiplier            float64
	MagicMultiplier             float64
	DefenseMultiplier           float64
	HPMultiplier                float64
	BaseCooldownMultiplier      float64
	SkillCooldownMultiplier     float64
	PowerStrikeDamageMultiplier float64
	FireboltDamageMultiplier    float64
	QuickJabCooldownMultiplier  float64
	MomentumDamageMultiplier    float64
	MomentumCritBonusMultiplier float64
	MomentumGainMultiplier      float64

	CritChanceBonus        float64
	SkillCostReduction     float64
	SkillCooldownReduction float64 // seconds
	SkillStatusChanceBonus float64
}

// DefaultModifiers returns neutral modifiers.
func DefaultModifiers() Modifiers {
	return Modifiers{
		AttackMultiplier:            1,
		MagicMultiplier:             1,
		DefenseMultiplier:           1,
		HPMultiplier:                1,
		BaseCooldownMultiplier:      1,
		SkillCooldownMultiplier:     1,
		PowerStrikeDamageMultiplier: 1,
		FireboltDamageMultiplier:    1,
		QuickJabCooldownMultiplier:  1,
		MomentumDamageMultiplier:    1,
		MomentumCritBonusMultiplier: 1,
		MomentumGainMultiplier:      1,
	}
}
