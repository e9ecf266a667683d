package data

import (
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/status"
)

// ItemKind classifies catalog entries.
type ItemKind string

const (
	KindWeapon     ItemKind = "weapon"
	KindArmor      ItemKind = "armor"
	KindConsumable ItemKind = "consumable"
	KindComponent  ItemKind = "component"
)

// Item is a catalog entry of any kind. Weapons and armor carry their
// equipment stats in Weapon/Armor.
type Item struct {
	ID     string
	Name   string
	Kind   ItemKind
	Price  int
	Effect string

	// Flag is the one-battle buff flag a consumable sets on use.
	Flag string

	Weapon *model.Weapon
	Armor  *model.Armor
}

var weapons = []model.Weapon{
	{ID: "w_stick", Name: "Wooden Stick", Class: model.WeaponLight, Price: 15, AttackBonus: 2, BaseDamage: 2},
	{ID: "w_dagger", Name: "Rusty Dagger", Class: model.WeaponLight, Price: 40, AttackBonus: 5, BaseDamage: 4, CritChance: 0.05, CooldownModifier: -0.05},
	{ID: "w_staff", Name: "Apprentice Staff", Class: model.WeaponMagic, Price: 60, AttackBonus: 3, MagicBonus: 3, BaseDamage: 3, CritChance: 0.02},
	{ID: "w_sword", Name: "Iron Sword", Class: model.WeaponHeavy, Price: 120, AttackBonus: 10, BaseDamage: 8, CooldownModifier: -0.08},
	{ID: "elven_shortbow", Name: "Elven Shortbow", Class: model.WeaponRanged, AttackBonus: 4, BaseDamage: 5, CritChance: 0.03, CooldownModifier: -0.03, ElfOnly: true},
	{ID: "wyrm_fang_blade", Name: "Wyrm Fang Blade", Class: model.WeaponHeavy, AttackBonus: 18, BaseDamage: 14, CritChance: 0.02, CooldownModifier: -0.06, OnHit: status.Bleed},
	{ID: "relic_arc_staff", Name: "Relic Arc Staff", Class: model.WeaponMagic, Price: 650, AttackBonus: 10, MagicBonus: 20, BaseDamage: 12, CritChance: 0.04, CooldownModifier: -0.04, OnHit: status.Burn},
	{ID: "relic_shadow_dagger", Name: "Relic Shadow Dagger", Class: model.WeaponLight, Price: 620, AttackBonus: 14, BaseDamage: 11, CritChance: 0.08, CooldownModifier: -0.12, OnHit: status.Poison},
	{ID: "forest_thorn_blade", Name: "Thorn Blade", Class: model.WeaponLight, Price: 90, AttackBonus: 8, BaseDamage: 6, CritChance: 0.04, CooldownModifier: -0.06, OnHit: status.Bleed},
	{ID: "echo_hammer", Name: "Echo Hammer", Class: model.WeaponHeavy, Price: 160, AttackBonus: 16, BaseDamage: 10, CritChance: 0.02, CooldownModifier: 0.10},
	{ID: "grove_wand", Name: "Grove Wand", Class: model.WeaponMagic, Price: 210, AttackBonus: 6, MagicBonus: 12, BaseDamage: 9, CritChance: 0.05, CooldownModifier: -0.05, OnHit: status.Burn},
	{ID: "ruin_pike", Name: "Runed Pike", Class: model.WeaponHeavy, Price: 300, AttackBonus: 20, BaseDamage: 14, CritChance: 0.03, OnHit: status.Stagger},
	{ID: "wyrmfire_lance", Name: "Wyrmfire Lance", Class: model.WeaponHeavy, Price: 500, AttackBonus: 26, MagicBonus: 8, BaseDamage: 18, CritChance: 0.04, CooldownModifier: 0.05, OnHit: status.Burn},
	{ID: "elder_wyrmfang_blade", Name: "Elder Wyrmfang Blade", Class: model.WeaponHeavy, AttackBonus: 30, BaseDamage: 24, CritChance: 0.06, CooldownModifier: -0.05, OnHit: status.Stagger},
}

var armors = []model.Armor{
	{ID: "a_cloth", Name: "Cloth Robe", Price: 30, DefenseBonus: 2},
	{ID: "a_leather", Name: "Leather Vest", Price: 70, DefenseBonus: 5},
	{ID: "a_chain", Name: "Chainmail", Price: 150, DefenseBonus: 10},
	{ID: "wyrm_scale_armor", Name: "Wyrm Scale Armor", DefenseBonus: 16},
	{ID: "relic_mystic_robes", Name: "Relic Mystic Robes", Price: 600, DefenseBonus: 12},
	{ID: "bark_tunic", Name: "Bark Tunic", Price: 85, DefenseBonus: 6},
	{ID: "stone_shell", Name: "Stone Shell", Price: 170, DefenseBonus: 12},
	{ID: "living_vine_wrap", Name: "Living Vine Wrap", Price: 230, DefenseBonus: 14},
	{ID: "ancient_plate", Name: "Ancient Plate", Price: 320, DefenseBonus: 18},
	{ID: "ember_scale_mail", Name: "Ember Scale Mail", Price: 480, DefenseBonus: 22},
	{ID: "molten_scale_carapace", Name: "Molten Scale Carapace", DefenseBonus: 28},
}

var consumables = []Item{
	{ID: "forest_elixir", Name: "Forest Elixir", Price: 40, Effect: "Boost momentum gain next battle", Flag: "buff_forest_elixir"},
	{ID: "torch_oil", Name: "Torch Oil", Price: 55, Effect: "Negate cave darkness crit penalty for one battle", Flag: "buff_torch_oil"},
	{ID: "sprite_draught", Name: "Sprite Draught", Price: 70, Effect: "Regenerate small MP after battle", Flag: "buff_sprite_draught"},
	{ID: "ether_coating", Name: "Ether Coating", Price: 90, Effect: "Reduce stagger resistance penalty in Ruins", Flag: "buff_ether_coating"},
	{ID: "flameguard_potion", Name: "Flameguard Potion", Price: 120, Effect: "Protects against burn hazards in Depths for one battle", Flag: "buff_flameguard"},
	{ID: "ember_charm", Name: "Ember Charm", Effect: "A forged charm that wards the Depths heat (one battle).", Flag: "buff_flameguard"},
}

var components = []Item{
	{ID: "forest_resin", Name: "Forest Resin", Price: 12},
	{ID: "luminescent_shard", Name: "Luminescent Shard", Price: 24},
	{ID: "arcane_pollen", Name: "Arcane Pollen", Price: 30},
	{ID: "runed_fragment", Name: "Runed Fragment", Price: 42},
	{ID: "molten_core", Name: "Molten Core", Price: 60},
	{ID: "elder_molten_core", Name: "Elder Molten Core"},
}

// itemIndex is built once from the tables above.
var itemIndex = buildItemIndex()

func buildItemIndex() map[string]Item {
	idx := make(map[string]Item, len(weapons)+len(armors)+len(consumables)+len(components))
	for i := range weapons {
		w := &weapons[i]
		idx[w.ID] = Item{ID: w.ID, Name: w.Name, Kind: KindWeapon, Price: w.Price, Weapon: w}
	}
	for i := range armors {
		a := &armors[i]
		idx[a.ID] = Item{ID: a.ID, Name: a.Name, Kind: KindArmor, Price: a.Price, Armor: a}
	}
	for _, c := range consumables {
		c.Kind = KindConsumable
		idx[c.ID] = c
	}
	for _, c := range components {
		c.Kind = KindComponent
		idx[c.ID] = c
	}
	return idx
}

// GetItem returns the catalog entry for id.
// Weapon and Armor point into the catalog and must not be mutated; use
// GetWeapon/GetArmor for an equippable copy.
func GetItem(id string) (Item, bool) {
	it, ok := itemIndex[id]
	return it, ok
}

// GetWeapon returns a copy of the weapon id.
func GetWeapon(id string) (*model.Weapon, bool) {
	it, ok := itemIndex[id]
	if !ok || it.Weapon == nil {
		return nil, false
	}
	w := *it.Weapon
	return &w, true
}

// GetArmor returns a copy of the armor id.
func GetArmor(id string) (*model.Armor, bool) {
	it, ok := itemIndex[id]
	if !ok || it.Armor == nil {
		return nil, false
	}
	a := *it.Armor
	return &a, true
}
