package status

import "github.com/udisondev/elderdeep/internal/model"

// Status ids.
const (
	Poison  model.StatusID = "poison"
	Burn    model.StatusID = "burn"
	Stun    model.StatusID = "stun"
	Bleed   model.StatusID = "bleed"
	Stagger model.StatusID = "stagger"
	Slow    model.StatusID = "slow"
	Guard   model.StatusID = "guard"
)

const (
	poisonDamage = 5
	burnDamage   = 7

	// BleedBonusPerStack is extra basic-attack damage per bleed stack.
	BleedBonusPerStack = 3

	slowFactor  = 1.25
	guardFactor = 0.5
)

func init() {
	Register(&Definition{
		ID: Poison, Name: "Poison", Duration: 8, TickInterval: 2,
		OnTick: func(c *model.Combatant) { c.LoseHP(poisonDamage) },
	})
	Register(&Definition{
		ID: Burn, Name: "Burn", Duration: 6, TickInterval: 1.5,
		OnTick: func(c *model.Combatant) { c.LoseHP(burnDamage) },
	})
	Register(&Definition{
		ID: Stun, Name: "Stun", Duration: 2.5,
		OnApply:  func(c *model.Combatant) { c.Stunned = true },
		OnExpire: func(c *model.Combatant) { c.Stunned = false },
	})

	// Bleed keeps a single instance; every application adds a stack and
	// each expiry sheds one, re-arming while stacks remain.
	Register(&Definition{
		ID: Bleed, Name: "Bleed", Duration: 6,
		OnApply:   func(c *model.Combatant) { c.BleedStacks++ },
		OnRefresh: func(c *model.Combatant) { c.BleedStacks++ },
		OnExpire: func(c *model.Combatant) {
			if c.BleedStacks > 0 {
				c.BleedStacks--
			}
		},
		Rearm: func(c *model.Combatant) bool { return c.BleedStacks > 0 },
	})

	Register(&Definition{
		ID: Stagger, Name: "Stagger", Duration: 1.8,
		OnApply:   func(c *model.Combatant) { c.Cooldown.Current = 0 },
		OnRefresh: func(c *model.Combatant) { c.Cooldown.Current = 0 },
	})
	Register(&Definition{
		ID: Slow, Name: "Slow", Duration: 5,
		OnApply: func(c *model.Combatant) { c.Cooldown.Factor = slowFactor },
		OnExpire: func(c *model.Combatant) {
			c.Cooldown.Factor = 1
			c.Cooldown.Clamp()
		},
	})
	Register(&Definition{
		ID: Guard, Name: "Guarding Stance", Duration: 5,
		OnApply:  func(c *model.Combatant) { c.IncomingScale = guardFactor },
		OnExpire: func(c *model.Combatant) { c.IncomingScale = 1 },
	})
}
