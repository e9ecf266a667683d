package model

import "maps"

// Class is the player's combat class.
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
	ClassRogue   Class = "Rogue"
)

// Race is the player's race.
type Race string

const (
	RaceHuman  Race = "Human"
	RaceBeast  Race = "Beast"
	RaceElf    Race = "Elf"
	RaceBug    Race = "Bug"
	RaceUndead Race = "Undead"
)

// WeaponClass drives momentum scaling and on-hit behavior of basic attacks.
type WeaponClass string

const (
	WeaponUnarmed WeaponClass = ""
	WeaponLight   WeaponClass = "light"
	WeaponHeavy   WeaponClass = "heavy"
	WeaponMagic   WeaponClass = "magic"
	WeaponRanged  WeaponClass = "ranged"
)

// Stats are the four primary attributes.
type Stats struct {
	Strength     int `yaml:"str"`
	Dexterity    int `yaml:"dex"`
	Intelligence int `yaml:"int"`
	Vitality     int `yaml:"vit"`
}

// Add returns the component-wise sum.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Strength:     s.Strength + o.Strength,
		Dexterity:    s.Dexterity + o.Dexterity,
		Intelligence: s.Intelligence + o.Intelligence,
		Vitality:     s.Vitality + o.Vitality,
	}
}

// Weapon is an equippable weapon.
type Weapon struct {
	ID               string
	Name             string
	Class            WeaponClass
	Price            int
	AttackBonus      int
	MagicBonus       int
	BaseDamage       int
	CritChance       float64
	CooldownModifier float64 // seconds added to the base attack cooldown
	OnHit            StatusID
	ElfOnly          bool
}

// Armor is an equippable body armor.
type Armor struct {
	ID           string
	Name         string
	Price        int
	DefenseBonus int
}

// Player — персонаж игрока: боевые статы плюс прогрессия.
type Player struct {
	Combatant

	Class Class
	Race  Race

	MP    int
	MaxMP int

	// Base holds allocated attributes; Bonus holds flat talent bonuses.
	Base  Stats
	Bonus Stats

	XP           int
	XPToNext     int
	TalentPoints int
	Talents      []string

	Gold      int
	Weapon    *Weapon
	Armor     *Armor
	Inventory []string
	Flags     map[string]bool

	// Modifiers is folded from talents and read-only for the battle engine.
	Modifiers Modifiers
}

// Stats returns effective attributes.
func (p *Player) Stats() Stats {
	return p.Base.Add(p.Bonus)
}

// Flag reports whether a progression flag is set.
func (p *Player) Flag(name string) bool {
	return p.Flags[name]
}

// SetFlag sets a progression flag.
func (p *Player) SetFlag(name string) {
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	p.Flags[name] = true
}

// ClearFlag removes a progression flag.
func (p *Player) ClearFlag(name string) {
	delete(p.Flags, name)
}

// FlagsSnapshot returns a copy of the flag set.
func (p *Player) FlagsSnapshot() map[string]bool {
	return maps.Clone(p.Flags)
}

// SpendMP deducts cost when affordable.
func (p *Player) SpendMP(cost int) bool {
	if cost < 0 || p.MP < cost {
		return false
	}
	p.MP -= cost
	return true
}

// RestoreMP adds MP up to MaxMP.
func (p *Player) RestoreMP(amount int) {
	p.MP = clampInt(p.MP+amount, 0, p.MaxMP)
}

// WeaponClass returns the equipped weapon's class, unarmed when none.
func (p *Player) WeaponClass() WeaponClass {
	if p.Weapon == nil {
		return WeaponUnarmed
	}
	return p.Weapon.Class
}

// BaseAttackCooldown computes the player's basic attack cooldown from class,
// race, weapon and the talent multiplier. Never below 1s.
func (p *Player) BaseAttackCooldown() float64 {
	cd := 2.0
	switch p.Class {
	case ClassRogue:
		cd = 1.6
	case ClassMage:
		cd = 1.9
	}
	switch p.Race {
	case RaceBug:
		cd -= 0.05
	case RaceElf:
		cd -= 0.03
	}
	if p.Weapon != nil {
		cd += p.Weapon.CooldownModifier
	}
	if m := p.Modifiers.BaseCooldownMultiplier; m > 0 {
		cd *= m
	}
	return max(1.0, cd)
}
