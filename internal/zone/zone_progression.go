package zone

import (
	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/status"
)

// Flags consumed by zone hooks.
const (
	FlagTorchOil     = "buff_torch_oil"
	FlagEtherCoating = "buff_ether_coating"
	FlagFlameguard   = "buff_flameguard"
	FlagGroveResist  = "grove_resist"
)

const (
	forestMomentumGain = 1.15
	cavernCritPenalty  = 0.05

	groveResist = 0.75

	ruinsStaggerScale = 0.5
	etherStaggerScale = 0.75
	hazardPeriod      = 4.0
	hazardPeriodFast  = 2.5
	hazardBurnChance  = 0.4
)

// heatproofArmor protects from the depths burn hazard.
var heatproofArmor = []string{"ember_scale_mail", "molten_scale_carapace"}

func newForest() *Zone {
	return &Zone{
		Key:              Forest,
		Name:             "Elderbrook Forest",
		Description:      "Early game training grounds; agile creatures reward building momentum.",
		RecommendedLevel: 1,
		Pool:             Forest,
		Loot: Loot{
			Weapons:     []string{"forest_thorn_blade"},
			Armor:       []string{"bark_tunic"},
			Consumables: []string{"forest_elixir"},
			Components:  []string{"forest_resin"},
		},
		Entry: Requirements{MinLevel: 1},
		Hooks: forestHooks{},
	}
}

// forestHooks boosts momentum gain for the battle.
type forestHooks struct{ NopHooks }

func (forestHooks) OnBattleStart(a Arena) {
	m := a.Modifiers()
	m.MomentumGainMultiplier = neutral(m.MomentumGainMultiplier) * forestMomentumGain
}

func newCave() *Zone {
	return &Zone{
		Key:              Cave,
		Name:             "The Hollow Cave",
		Description:      "Dim tunnels with slow, armored foes. Darkness dampens crit chance unless countered.",
		RecommendedLevel: 4,
		Pool:             Cave,
		Loot: Loot{
			Weapons:     []string{"echo_hammer"},
			Armor:       []string{"stone_shell"},
			Consumables: []string{"torch_oil"},
			Components:  []string{"luminescent_shard"},
		},
		Entry: Requirements{MinLevel: 4, Quest: "cull_slimes"},
		Hooks: caveHooks{},
	}
}

// caveHooks: darkness lowers crit chance unless torch oil is active.
// Torch oil lasts one battle.
type caveHooks struct{ NopHooks }

func (caveHooks) OnBattleStart(a Arena) {
	if a.Player().Flag(FlagTorchOil) {
		return
	}
	a.Modifiers().CritChanceBonus -= cavernCritPenalty
}

func (caveHooks) OnBattleEnd(a Arena) {
	a.Player().ClearFlag(FlagTorchOil)
}

func newGrove() *Zone {
	return &Zone{
		Key:              Grove,
		Name:             "The Elven Grove",
		Description:      "Mystical glade of elemental spirits and thorn guardians; mixed magical resistances.",
		RecommendedLevel: 5,
		Pool:             Grove,
		Loot: Loot{
			Weapons:     []string{"grove_wand"},
			Armor:       []string{"living_vine_wrap"},
			Consumables: []string{"sprite_draught"},
			Components:  []string{"arcane_pollen"},
		},
		Entry: Requirements{MinLevel: 5, Quest: "aid_the_elves"},
		Hooks: groveHooks{},
	}
}

// groveHooks grants minor burn and poison resistance for the battle.
type groveHooks struct{ NopHooks }

func (groveHooks) OnBattleStart(a Arena) {
	p := a.Player()
	p.SetFlag(FlagGroveResist)

	saved := p.Resistances.Clone()
	a.Zone().savedResist = &saved

	if p.Resistances.Resist == nil {
		p.Resistances.Resist = make(map[model.StatusID]float64, 2)
	}
	for _, id := range []model.StatusID{status.Burn, status.Poison} {
		if c, ok := p.Resistances.Coefficient(id); !ok || c > groveResist {
			p.Resistances.Resist[id] = groveResist
		}
	}
}

func (groveHooks) OnBattleEnd(a Arena) {
	p := a.Player()
	p.ClearFlag(FlagGroveResist)
	if st := a.Zone(); st.savedResist != nil {
		p.Resistances = *st.savedResist
		st.savedResist = nil
	}
}

func newRuins() *Zone {
	return &Zone{
		Key:              Ruins,
		Name:             "The Ruined Battlements",
		Description:      "Weathered stone constructs with high stagger resistance and spectral defenders.",
		RecommendedLevel: 7,
		Pool:             Ruins,
		Loot: Loot{
			Weapons:     []string{"ruin_pike"},
			Armor:       []string{"ancient_plate"},
			Consumables: []string{"ether_coating"},
			Components:  []string{"runed_fragment"},
		},
		Entry: Requirements{MinLevel: 7, Quest: "cave_menace", Item: "luminescent_shard"},
		Hooks: ruinsHooks{},
	}
}

// ruinsHooks: stone constructs shrug off stagger. Ether coating softens it.
type ruinsHooks struct{ NopHooks }

func (ruinsHooks) OnBattleStart(a Arena) {
	scale := ruinsStaggerScale
	if a.Player().Flag(FlagEtherCoating) {
		scale = etherStaggerScale
	}
	a.Zone().StaggerScale = scale
}

func (ruinsHooks) OnBattleEnd(a Arena) {
	a.Zone().StaggerScale = 0
	a.Player().ClearFlag(FlagEtherCoating)
}

func newDepths(rng combat.Rand) *Zone {
	return &Zone{
		Key:              Depths,
		Name:             "The Wyrm's Depths",
		Description:      "Fiery chasms home to wyrmspawn and searing vents. Environmental burn hazards occur intermittently.",
		RecommendedLevel: 9,
		Pool:             Depths,
		Loot: Loot{
			Weapons:     []string{"wyrmfire_lance"},
			Armor:       []string{"ember_scale_mail"},
			Consumables: []string{"flameguard_potion"},
			Components:  []string{"molten_core"},
		},
		Entry: Requirements{MinLevel: 9, Quest: "ruins_cleanse", Item: "runed_fragment"},
		Hooks: &depthsHooks{rng: rng},
	}
}

// depthsHooks — периодический огненный хазард.
type depthsHooks struct {
	rng combat.Rand
}

func (h *depthsHooks) OnBattleStart(a Arena) {
	a.Zone().HazardTimer = 0
}

func (h *depthsHooks) OnTick(a Arena, dt float64) {
	st := a.Zone()
	st.HazardTimer += dt

	period := hazardPeriod
	if st.HazardFast {
		period = hazardPeriodFast
	}
	if st.HazardTimer < period {
		return
	}
	st.HazardTimer = 0

	p := a.Player()
	if heatproof(p) || !combat.Chance(h.rng, hazardBurnChance) {
		return
	}
	a.ApplyStatus(&p.Combatant, status.Burn)
}

func (h *depthsHooks) OnBattleEnd(a Arena) {
	st := a.Zone()
	st.HazardTimer = 0
	st.HazardFast = false
	a.Player().ClearFlag(FlagFlameguard)
}

func heatproof(p *model.Player) bool {
	if p.Flag(FlagFlameguard) {
		return true
	}
	if p.Armor == nil {
		return false
	}
	for _, id := range heatproofArmor {
		if p.Armor.ID == id {
			return true
		}
	}
	return false
}

// newPortal is the arena group battles are fought in. It has no hooks and
// is not part of the progression order.
func newPortal() *Zone {
	return &Zone{
		Key:         Portal,
		Name:        "Rift Portal",
		Description: "A tear in the world that spills out several foes at once.",
		Pool:        Portal,
		Entry:       Requirements{MinLevel: 1},
		Hooks:       NopHooks{},
	}
}

func neutral(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
