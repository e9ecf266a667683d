package main

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/gamestate"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/quest"
)

// setupPlayer creates the configured character. restore, when set, runs
// right after creation so saved flags and quests count for the level-ups
// and zone unlocks that follow.
func setupPlayer(state *gamestate.State, quests *quest.Tracker, pc config.PlayerConfig, restore func() error) (*model.Player, error) {
	p, err := state.Create(gamestate.Options{
		Name:      pc.Name,
		Class:     model.Class(pc.Class),
		Race:      model.Race(pc.Race),
		BonusStat: pc.BonusStat,
	})
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}

	if restore != nil {
		if err := restore(); err != nil {
			return nil, fmt.Errorf("restoring progress: %w", err)
		}
	}

	if pc.Level > 1 {
		state.LevelTo(pc.Level)
	}

	for _, id := range pc.Items {
		if !state.AddItem(id) {
			return nil, fmt.Errorf("adding item %q: %w", id, gamestate.ErrUnknownItem)
		}
	}
	for _, id := range []string{pc.Weapon, pc.Armor} {
		if id == "" {
			continue
		}
		if !state.AddItem(id) {
			return nil, fmt.Errorf("adding gear %q: %w", id, gamestate.ErrUnknownItem)
		}
		if err := state.Equip(id); err != nil {
			return nil, fmt.Errorf("equipping %q: %w", id, err)
		}
	}

	for _, id := range pc.Talents {
		if err := state.LearnTalent(id); err != nil {
			return nil, fmt.Errorf("learning talent %q: %w", id, err)
		}
	}

	for _, id := range pc.Quests {
		if quests.Completed(id) || quests.Active(id) {
			continue
		}
		if !quests.Accept(id) {
			slog.Warn("quest not accepted", "quest", id)
		}
	}

	slog.Info("player ready",
		"name", p.Name,
		"class", p.Class,
		"race", p.Race,
		"level", p.Level,
		"hp", p.MaxHP,
		"attack", p.AttackPower,
		"defense", p.Defense,
		"talent_points", p.TalentPoints)
	return p, nil
}
