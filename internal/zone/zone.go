// Package zone describes world zones: progression gating, enemy pools and
// the environmental hooks a battle runs in.
package zone

import (
	"slices"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
)

// Zone keys.
const (
	Forest = "forest"
	Cave   = "cave"
	Grove  = "grove"
	Ruins  = "ruins"
	Depths = "depths"
	Portal = "portal"
)

// State is the per-battle zone scratch space, owned by the battle session.
type State struct {
	// StaggerScale multiplies stagger durations, 0 means unchanged.
	StaggerScale float64

	HazardTimer float64
	HazardFast  bool

	savedResist *model.Resistances
}

// Arena is the battle session as seen by zone hooks.
type Arena interface {
	Player() *model.Player
	// Modifiers returns the session's copy of the player's modifiers.
	Modifiers() *model.Modifiers
	Zone() *State
	ApplyStatus(target *model.Combatant, id model.StatusID) bool
	Log(text string, tag event.Tag)
}

// Hooks are the environment callbacks of a zone.
type Hooks interface {
	OnBattleStart(a Arena)
	OnTick(a Arena, dt float64)
	OnBattleEnd(a Arena)
}

// NopHooks does nothing.
type NopHooks struct{}

func (NopHooks) OnBattleStart(Arena)   {}
func (NopHooks) OnTick(Arena, float64) {}
func (NopHooks) OnBattleEnd(Arena)     {}

// Requirements gate zone entry.
type Requirements struct {
	MinLevel int
	Quest    string // completed quest id
	Item     string // carried or equipped item id
}

// Loot lists zone-specific drops.
type Loot struct {
	Weapons     []string
	Armor       []string
	Consumables []string
	Components  []string
}

// Zone is a world area.
type Zone struct {
	Key              string
	Name             string
	Description      string
	RecommendedLevel int
	Pool             string
	Loot             Loot
	Entry            Requirements
	Hooks            Hooks
}

// QuestLog reports completed quests.
type QuestLog interface {
	Completed(id string) bool
}

// Catalog holds every zone and the progression order.
type Catalog struct {
	zones map[string]*Zone
	order []string
}

// NewCatalog builds the zone catalog. rng drives hazard rolls.
func NewCatalog(rng combat.Rand) *Catalog {
	c := &Catalog{zones: make(map[string]*Zone)}
	for _, z := range []*Zone{
		newForest(),
		newCave(),
		newGrove(),
		newRuins(),
		newDepths(rng),
	} {
		c.zones[z.Key] = z
		c.order = append(c.order, z.Key)
	}
	c.zones[Portal] = newPortal()
	return c
}

// Get returns the zone for key.
func (c *Catalog) Get(key string) (*Zone, bool) {
	z, ok := c.zones[key]
	return z, ok
}

// Hooks returns the hooks of key, NopHooks for unknown keys.
func (c *Catalog) Hooks(key string) Hooks {
	if z, ok := c.zones[key]; ok && z.Hooks != nil {
		return z.Hooks
	}
	return NopHooks{}
}

// List returns progression zones in order.
func (c *Catalog) List() []*Zone {
	out := make([]*Zone, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.zones[k])
	}
	return out
}

// Next returns the zone after key in progression order.
func (c *Catalog) Next(key string) (string, bool) {
	i := slices.Index(c.order, key)
	if i < 0 || i+1 >= len(c.order) {
		return "", false
	}
	return c.order[i+1], true
}

// CanEnter reports whether p meets the entry requirements of key.
func (c *Catalog) CanEnter(key string, p *model.Player, quests QuestLog) bool {
	z, ok := c.zones[key]
	if !ok || p == nil {
		return false
	}
	req := z.Entry
	if p.Level < max(1, req.MinLevel) {
		return false
	}
	if req.Quest != "" && (quests == nil || !quests.Completed(req.Quest)) {
		return false
	}
	return req.Item == "" || hasItem(p, req.Item)
}

// UpdateUnlocks opens zones in order while requirements are met and stops
// at the first locked zone.
func (c *Catalog) UpdateUnlocks(unlocked []string, p *model.Player, quests QuestLog) []string {
	if len(unlocked) == 0 {
		unlocked = []string{Forest}
	}
	for _, k := range c.order {
		if slices.Contains(unlocked, k) {
			continue
		}
		if !c.CanEnter(k, p, quests) {
			break
		}
		unlocked = append(unlocked, k)
	}
	return unlocked
}

func hasItem(p *model.Player, id string) bool {
	if slices.Contains(p.Inventory, id) {
		return true
	}
	if p.Weapon != nil && p.Weapon.ID == id {
		return true
	}
	return p.Armor != nil && p.Armor.ID == id
}
