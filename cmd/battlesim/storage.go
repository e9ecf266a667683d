package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/elderdeep/internal/db"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/quest"
)

// storage groups the repositories the simulator persists to.
type storage struct {
	db      *db.DB
	flags   *db.FlagRepository
	quests  *db.QuestRepository
	battles *db.BattleRepository
}

func openStorage(ctx context.Context, dsn string) (*storage, error) {
	version, err := db.RunMigrations(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied", "version", version)

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	pool := database.Pool()
	return &storage{
		db:      database,
		flags:   db.NewFlagRepository(pool),
		quests:  db.NewQuestRepository(pool),
		battles: db.NewBattleRepository(pool),
	}, nil
}

func (s *storage) Close() {
	s.db.Close()
}

// restore loads saved flags and quest progress into a fresh character.
func (s *storage) restore(ctx context.Context, player string, p *model.Player, quests *quest.Tracker) error {
	flags, err := s.flags.Load(ctx, player)
	if err != nil {
		return fmt.Errorf("loading flags: %w", err)
	}
	for flag := range flags {
		p.SetFlag(flag)
	}

	active, completed, err := s.quests.Load(ctx, player)
	if err != nil {
		return fmt.Errorf("loading quests: %w", err)
	}
	quests.Restore(active, completed)

	slog.Info("progress restored", "player", player, "flags", len(flags), "active_quests", len(active), "completed_quests", len(completed))
	return nil
}

// progress is a copy of persistent state taken on the loop goroutine.
type progress struct {
	flags     map[string]bool
	active    map[string]int
	completed []string
}

func (s *storage) save(ctx context.Context, player string, pr progress) error {
	if err := s.flags.Save(ctx, player, pr.flags); err != nil {
		return fmt.Errorf("saving flags: %w", err)
	}
	if err := s.quests.Save(ctx, player, pr.active, pr.completed); err != nil {
		return fmt.Errorf("saving quests: %w", err)
	}
	return nil
}
