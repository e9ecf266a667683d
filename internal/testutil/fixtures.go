package testutil

import "github.com/udisondev/elderdeep/internal/model"

// NewPlayer возвращает простого воина для боевых тестов:
// 100 HP, 50 MP, 20 attack, no defense, no weapon.
func NewPlayer() *model.Player {
	return &model.Player{
		Combatant: model.Combatant{
			ID:            "hero",
			Name:          "Hero",
			Level:         1,
			HP:            100,
			MaxHP:         100,
			AttackPower:   20,
			MagicPower:    12,
			IncomingScale: 1,
			Cooldown:      model.Cooldown{Base: 2, Factor: 1},
		},
		Class:     model.ClassWarrior,
		Race:      model.RaceHuman,
		MP:        50,
		MaxMP:     50,
		Base:      model.Stats{Strength: 5, Dexterity: 3, Intelligence: 3, Vitality: 7},
		Gold:      50,
		Flags:     map[string]bool{},
		Modifiers: model.DefaultModifiers(),
	}
}

// NewEnemyTemplate returns a plain enemy template with the given id.
func NewEnemyTemplate(id string) *model.EnemyTemplate {
	return &model.EnemyTemplate{
		ID:             id,
		Name:           id,
		Level:          1,
		MaxHP:          50,
		AttackPower:    10,
		Defense:        2,
		GoldReward:     6,
		XPReward:       12,
		AttackCooldown: 2,
		AttackSpeed:    1,
	}
}
