package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MomentumReset selects per battle mode whether a hit on the player resets momentum.
type MomentumReset struct {
	Single bool `yaml:"single"`
	Group  bool `yaml:"group"`
	Boss   bool `yaml:"boss"`
}

// Battle holds battle engine tuning.
type Battle struct {
	// Frame
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // seconds, guards against long pauses

	// Momentum
	MomentumMax        float64       `yaml:"momentum_max"`
	MomentumResetOnHit MomentumReset `yaml:"momentum_reset_on_hit"`

	// Resources
	MPRegenPerSecond float64 `yaml:"mp_regen_per_second"`
	VictoryMPRestore float64 `yaml:"victory_mp_restore"` // fraction of max MP

	// Outcomes
	DefeatGoldPenalty int     `yaml:"defeat_gold_penalty"`
	DefeatHPRestore   float64 `yaml:"defeat_hp_restore"` // fraction of max HP
	FleeChance        float64 `yaml:"flee_chance"`

	// Enemies
	TelegraphWindup     float64 `yaml:"telegraph_windup"`       // seconds, for skills without own windup
	EnemySkillDamageCap float64 `yaml:"enemy_skill_damage_cap"` // fraction of target max HP
	EnemyCooldownStart  float64 `yaml:"enemy_cooldown_start"`   // single enemy gauge fraction at start
	EnemySkillPrecharge float64 `yaml:"enemy_skill_precharge"`  // skill cooldown fraction already elapsed at start

	// AutoAttack fires the player's basic attack whenever the gauge is full.
	AutoAttack bool `yaml:"auto_attack"`

	// GroupZone is the zone group battles use when none is given.
	GroupZone string `yaml:"group_zone"`
}

// DefaultBattle returns Battle tuning with the stock balance.
func DefaultBattle() Battle {
	return Battle{
		MaxFrameDelta: 0.1,
		MomentumMax:   100,
		MomentumResetOnHit: MomentumReset{
			Single: true,
			Group:  true,
			Boss:   true,
		},
		MPRegenPerSecond:    0.5,
		VictoryMPRestore:    0.25,
		DefeatGoldPenalty:   5,
		DefeatHPRestore:     0.3,
		FleeChance:          0.5,
		TelegraphWindup:     1.2,
		EnemySkillDamageCap: 0.4,
		EnemyCooldownStart:  0.5,
		EnemySkillPrecharge: 0.6,
		GroupZone:           "portal",
	}
}

// Validate checks value ranges.
func (b Battle) Validate() error {
	switch {
	case b.MaxFrameDelta <= 0:
		return fmt.Errorf("max_frame_delta must be positive, got %v", b.MaxFrameDelta)
	case b.MomentumMax <= 0:
		return fmt.Errorf("momentum_max must be positive, got %v", b.MomentumMax)
	case b.MPRegenPerSecond < 0:
		return fmt.Errorf("mp_regen_per_second must not be negative, got %v", b.MPRegenPerSecond)
	case !fraction(b.VictoryMPRestore):
		return fmt.Errorf("victory_mp_restore must be within [0,1], got %v", b.VictoryMPRestore)
	case b.DefeatGoldPenalty < 0:
		return fmt.Errorf("defeat_gold_penalty must not be negative, got %d", b.DefeatGoldPenalty)
	case !fraction(b.DefeatHPRestore):
		return fmt.Errorf("defeat_hp_restore must be within [0,1], got %v", b.DefeatHPRestore)
	case !fraction(b.FleeChance):
		return fmt.Errorf("flee_chance must be within [0,1], got %v", b.FleeChance)
	case b.TelegraphWindup < 0:
		return fmt.Errorf("telegraph_windup must not be negative, got %v", b.TelegraphWindup)
	case b.EnemySkillDamageCap <= 0 || b.EnemySkillDamageCap > 1:
		return fmt.Errorf("enemy_skill_damage_cap must be within (0,1], got %v", b.EnemySkillDamageCap)
	case !fraction(b.EnemyCooldownStart):
		return fmt.Errorf("enemy_cooldown_start must be within [0,1], got %v", b.EnemyCooldownStart)
	case !fraction(b.EnemySkillPrecharge):
		return fmt.Errorf("enemy_skill_precharge must be within [0,1], got %v", b.EnemySkillPrecharge)
	}
	return nil
}

// LoadBattle loads battle tuning from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattle(path string) (Battle, error) {
	cfg := DefaultBattle()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultBattle(), fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func fraction(v float64) bool {
	return v >= 0 && v <= 1
}
