package boss

// ElderWyrm returns the script of The Wyrm of Elder Deep.
func ElderWyrm() *Script {
	return &Script{
		Key: "elder_wyrm",
		Phases: []Phase{
			{
				Name:           "burrow_and_strike",
				AttackCooldown: 3.0,
				AttackMult:     1.15,
				DefenseMult:    1.0,
				Announcement:   "The Wyrm prowls beneath the rock…",
			},
			{
				Name:           "molten_core",
				BelowPct:       70,
				AttackCooldown: 2.4,
				AttackMult:     1.2,
				DefenseMult:    1.05,
				Announcement:   "Molten Core Awakens — flames lick the arena.",
				HazardFast:     true,
			},
			{
				Name:           "ancient_fury",
				BelowPct:       35,
				AttackCooldown: 2.0,
				AttackMult:     1.3,
				DefenseMult:    1.1,
				Announcement:   "Ancient Fury! The Deep itself trembles.",
				Flash:          true,
			},
		},
		Triggers: []Trigger{
			{Phase: 0, Timer: TimerBurrow, At: 11, Variants: []Variant{
				{Mechanic: Burrow, Windup: 1.5, Text: "The Wyrm burrows. Wait for the strike!"},
			}},
			{Phase: 1, Timer: TimerFire, At: 9, Variants: []Variant{
				{Mechanic: FireBreath, Windup: 1.2, Text: "The Wyrm inhales. Fire Breath!"},
				{Mechanic: Firewall, Windup: 0.8, Text: "The Wyrm inhales. Firewall!"},
			}},
			{Phase: 1, Timer: TimerBurrow, At: 12, Variants: []Variant{
				{Mechanic: Heatwave, Windup: 0.6, Text: "Air distorts. Heatwave building…"},
			}},
			{Phase: 2, Timer: TimerRupture, At: 14, Variants: []Variant{
				{Mechanic: ElderRupture, Windup: 2.2, Text: "The earth screams. Elder Rupture charging!"},
			}},
		},
		TimerStart:   map[Timer]float64{TimerRupture: 8},
		CounterPhase: 2,
	}
}

// Strike shapes: round(AP*ap - DEF*def) +/- spread.
type strikeShape struct {
	ap, def float64
	spread  int
}

var (
	biteShape    = strikeShape{ap: 1, def: 1, spread: 3}
	burrowShape  = strikeShape{ap: 1.6, def: 0.4, spread: 4}
	heatShape    = strikeShape{ap: 0.6, def: 0.3, spread: 2}
	ruptureShape = strikeShape{ap: 2.8, def: 0.4, spread: 6}
	counterShape = strikeShape{ap: 0.6, def: 0.3, spread: 2}
)
