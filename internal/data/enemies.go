package data

import (
	"strings"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
	"github.com/udisondev/elderdeep/internal/zone"
)

// base — строка таблицы врагов зоны до масштабирования.
type base struct {
	id, name    string
	level       int
	hp, ap, def int
	gold, xp    int
	cd, speed   float64
	skills      []string
}

// scaling holds per-level growth above the base level.
type scaling struct {
	hp, ap, def float64
	elite       float64
}

type pool struct {
	enemies []base
	scale   scaling
}

// Elite upgrade multipliers.
const (
	eliteHP      = 1.25
	eliteAP      = 1.22
	eliteDef     = 1.2
	eliteRewards = 1.5
	EliteSuffix  = "_elite"
)

var pools = map[string]pool{
	zone.Forest: {
		scale: scaling{hp: 0.12, ap: 0.08, def: 0.06, elite: 0.10},
		enemies: []base{
			{"forest_slime", "Forest Slime", 1, 28, 6, 1, 6, 12, 2.4, 1.0, nil},
			{"rabid_squirrel", "Rabid Squirrel", 2, 32, 7, 2, 8, 16, 2.0, 1.2, []string{skill.Rend}},
			{"bandit", "Bandit", 3, 40, 10, 3, 12, 22, 2.2, 1.0, nil},
			{"wolf", "Grey Wolf", 4, 44, 12, 3, 12, 26, 1.9, 1.1, []string{skill.Rend}},
			{"spriggan", "Lesser Spriggan", 5, 52, 14, 4, 16, 30, 2.3, 1.0, []string{skill.ThornSnare}},
			{"bee", "Giant Bee", 2, 30, 8, 2, 8, 15, 1.8, 1.25, []string{skill.VenomSpit}},
		},
	},
	zone.Cave: {
		scale: scaling{hp: 0.14, ap: 0.1, def: 0.07, elite: 0.10},
		enemies: []base{
			{"cave_bat", "Cave Bat", 3, 38, 11, 3, 18, 34, 1.5, 1.15, nil},
			{"stone_beetle", "Stone Beetle", 4, 70, 14, 6, 22, 40, 2.4, 1.0, []string{skill.StoneSlam}},
			{"goblin_miner", "Goblin Miner", 5, 80, 16, 5, 26, 48, 2.1, 1.05, []string{skill.Rend}},
			{"cave_troll", "Cave Troll", 6, 130, 26, 8, 40, 70, 3.0, 0.95, []string{skill.StoneSlam}},
		},
	},
	zone.Grove: {
		scale: scaling{hp: 0.13, ap: 0.09, def: 0.065, elite: 0.10},
		enemies: []base{
			{"corrupted_sprite", "Corrupted Sprite", 4, 42, 13, 3, 20, 36, 1.7, 1.15, []string{skill.ShadowBolt}},
			{"thorn_guardian", "Thorn Guardian", 5, 95, 18, 6, 30, 52, 2.5, 1.0, []string{skill.ThornSnare}},
			{"wayward_ranger", "Wayward Ranger", 6, 110, 22, 7, 38, 68, 2.0, 1.1, []string{skill.VenomSpit}},
		},
	},
	zone.Ruins: {
		scale: scaling{hp: 0.15, ap: 0.11, def: 0.075, elite: 0.10},
		enemies: []base{
			{"ruins_specter", "Ruins Specter", 7, 140, 24, 9, 55, 110, 2.2, 1.05, []string{skill.ShadowBolt}},
			{"ancient_construct", "Ancient Construct", 8, 190, 30, 12, 70, 140, 2.6, 1.0, []string{skill.StoneSlam}},
			{"ruins_champion", "Ruins Champion", 9, 240, 34, 14, 85, 170, 2.4, 1.05, []string{skill.Rend}},
		},
	},
	zone.Depths: {
		scale: scaling{hp: 0.16, ap: 0.12, def: 0.08, elite: 0.08},
		enemies: []base{
			{"depths_wyrmspawn", "Wyrmspawn", 9, 260, 38, 16, 95, 190, 2.6, 1.0, []string{skill.EmberLash}},
			{"depths_magma_serpent", "Magma Serpent", 10, 300, 42, 18, 110, 220, 2.4, 1.05, []string{skill.EmberLash, skill.VenomSpit}},
			{"depths_lava_wisp", "Lava Wisp", 11, 240, 40, 15, 105, 210, 1.8, 1.2, []string{skill.EmberLash}},
		},
	},
	// Portal enemies come in groups and never roll elite.
	zone.Portal: {
		scale: scaling{hp: 0.12, ap: 0.09, def: 0.065},
		enemies: []base{
			{"shadow_imp", "Shadow Imp", 9, 120, 28, 10, 40, 90, 1.9, 1.1, []string{skill.EmberLash}},
			{"void_shade", "Void Shade", 10, 150, 30, 11, 48, 105, 2.1, 1.05, []string{skill.ShadowBolt}},
			{"abyssal_eye", "Abyssal Eye", 11, 170, 34, 12, 55, 120, 2.3, 1.0, []string{skill.ShadowBolt}},
		},
	},
}

// RandomEnemy rolls an enemy from the zone pool scaled around playerLevel.
// Returns false for zones without a pool.
func RandomEnemy(zoneKey string, playerLevel int, rng combat.Rand) (*model.EnemyTemplate, bool) {
	p, ok := pools[zoneKey]
	if !ok || len(p.enemies) == 0 {
		return nil, false
	}
	t := p.roll(playerLevel, rng)
	if combat.Chance(rng, p.scale.elite) {
		t = Elite(t)
	}
	return t, true
}

// PortalGroup rolls two or three Shadow Portal enemies.
func PortalGroup(playerLevel int, rng combat.Rand) []*model.EnemyTemplate {
	p := pools[zone.Portal]
	n := 2 + rng.IntN(2)
	group := make([]*model.EnemyTemplate, 0, n)
	for range n {
		group = append(group, p.roll(playerLevel, rng))
	}
	return group
}

// NamedEnemy scales the zone enemy id around playerLevel. An id with the
// elite suffix returns the elite variant.
func NamedEnemy(zoneKey, id string, playerLevel int, rng combat.Rand) (*model.EnemyTemplate, bool) {
	p, ok := pools[zoneKey]
	if !ok {
		return nil, false
	}
	baseID, elite := strings.CutSuffix(id, EliteSuffix)
	for _, b := range p.enemies {
		if b.id != baseID {
			continue
		}
		t := p.scaled(b, playerLevel, rng)
		if elite {
			t = Elite(t)
		}
		return t, true
	}
	return nil, false
}

func (p pool) roll(playerLevel int, rng combat.Rand) *model.EnemyTemplate {
	return p.scaled(p.enemies[combat.Pick(rng, len(p.enemies))], playerLevel, rng)
}

func (p pool) scaled(b base, playerLevel int, rng combat.Rand) *model.EnemyTemplate {
	level := max(1, max(1, playerLevel)+rng.IntN(3)-1)
	delta := float64(level - b.level)

	return &model.EnemyTemplate{
		ID:             b.id,
		Name:           b.name,
		Level:          level,
		MaxHP:          combat.Round(float64(b.hp) * (1 + max(0, delta)*p.scale.hp)),
		AttackPower:    combat.Round(float64(b.ap) * (1 + delta*p.scale.ap)),
		Defense:        combat.Round(float64(b.def) * (1 + delta*p.scale.def)),
		GoldReward:     b.gold,
		XPReward:       b.xp,
		AttackCooldown: b.cd,
		AttackSpeed:    b.speed,
		Skills:         append([]string(nil), b.skills...),
	}
}

// Elite returns an upgraded copy of t: tougher, better paid, renamed.
func Elite(t *model.EnemyTemplate) *model.EnemyTemplate {
	e := t.Clone()
	e.ID += EliteSuffix
	e.Name = "Elite " + e.Name
	e.Elite = true
	e.MaxHP = combat.Round(float64(e.MaxHP) * eliteHP)
	e.AttackPower = combat.Round(float64(e.AttackPower) * eliteAP)
	e.Defense = combat.Round(float64(e.Defense) * eliteDef)
	e.GoldReward = combat.Round(float64(e.GoldReward) * eliteRewards)
	e.XPReward = combat.Round(float64(e.XPReward) * eliteRewards)
	return e
}

// Boss ids.
const (
	CaveWyrmID  = "boss_cave_wyrm"
	ElderWyrmID = "boss_elder_wyrm"
)

// CaveWyrm returns the Cave Wyrm template. Tail Smash is its telegraphed special.
func CaveWyrm() *model.EnemyTemplate {
	return &model.EnemyTemplate{
		ID:             CaveWyrmID,
		Name:           "Cave Wyrm",
		Level:          7,
		MaxHP:          300,
		AttackPower:    32,
		Defense:        10,
		GoldReward:     80,
		XPReward:       180,
		AttackCooldown: 2.8,
		AttackSpeed:    1,
		Skills:         []string{skill.TailSmash},
	}
}

// ElderWyrm returns The Wyrm of Elder Deep, driven by the elder_wyrm phase script.
func ElderWyrm() *model.EnemyTemplate {
	return &model.EnemyTemplate{
		ID:             ElderWyrmID,
		Name:           "The Wyrm of Elder Deep",
		Level:          12,
		MaxHP:          1200,
		AttackPower:    52,
		Defense:        20,
		GoldReward:     500,
		XPReward:       1200,
		AttackCooldown: 2.6,
		AttackSpeed:    1,
		Resistances: model.Resistances{
			Immune: []model.StatusID{status.Stun},
			Resist: map[model.StatusID]float64{
				status.Burn:    0.6,
				status.Poison:  0.7,
				status.Stagger: 0.6,
			},
		},
		Boss: "elder_wyrm",
		Intro: []string{
			"The earth splits. Heat breathes from below…",
			"The Wyrm of Elder Deep coils beneath the Wyrm’s Depths.",
			"“Elderbrook was not found — it was promised.”",
		},
		MusicKey: "elder_wyrm_theme",
	}
}
