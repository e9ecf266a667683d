package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/data"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/zone"
)

var (
	errBattleTimeout = errors.New("battle timed out")
	errGateClosed    = errors.New("encounter not available")
	errUnknownEnemy  = errors.New("unknown enemy")
)

const (
	caveWyrmMinLevel = 5
	caveWyrmQuest    = "cave_menace"
	elderWyrmQuest   = "elder_wyrm"
	elderWyrmFlag    = "boss_elder_wyrm_defeated"
)

// questView is the part of the quest log encounter gates read.
type questView interface {
	Active(id string) bool
	Completed(id string) bool
}

// runner plays the configured encounters one after another.
type runner struct {
	cfg   config.Sim
	w     *world
	rng   combat.Rand
	store *storage
	bot   *bot

	done  chan battle.Report
	tally map[battle.Outcome]int
}

func newRunner(cfg config.Sim, w *world, rng combat.Rand, store *storage) *runner {
	r := &runner{
		cfg:   cfg,
		w:     w,
		rng:   rng,
		store: store,
		bot:   newBot(),
		done:  make(chan battle.Report, 1),
		tally: make(map[battle.Outcome]int),
	}
	w.engine.OnOutcome(r.finished)
	return r
}

// finished runs on the loop goroutine.
func (r *runner) finished(rep battle.Report) {
	select {
	case r.done <- rep:
	default:
		slog.Warn("battle report not consumed", "session", rep.SessionID)
	}
}

func (r *runner) run(ctx context.Context) error {
	rounds := max(1, r.cfg.Rounds)
	for round := range rounds {
		for i, enc := range r.cfg.Encounters {
			if err := r.play(ctx, enc); err != nil {
				if errors.Is(err, errGateClosed) {
					slog.Info("encounter skipped", "round", round+1, "index", i, "reason", err)
					continue
				}
				return fmt.Errorf("round %d encounter %d: %w", round+1, i, err)
			}
		}
	}

	slog.Info("simulation finished",
		"victories", r.tally[battle.OutcomeVictory],
		"defeats", r.tally[battle.OutcomeDefeat],
		"fled", r.tally[battle.OutcomeFled])
	return nil
}

func (r *runner) play(ctx context.Context, enc config.Encounter) error {
	var startErr error
	if err := r.w.loop.Do(ctx, func() { startErr = r.start(enc) }); err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}

	rep, err := r.await(ctx)
	if err != nil {
		return err
	}
	r.tally[rep.Outcome]++
	slog.Info("battle finished",
		"session", rep.SessionID,
		"mode", rep.Mode,
		"outcome", rep.Outcome,
		"zone", rep.Zone,
		"gold", rep.Gold,
		"xp", rep.XP,
		"elapsed", rep.Elapsed)

	return r.persist(ctx)
}

// start begins the encounter. Must run on the loop goroutine.
func (r *runner) start(enc config.Encounter) error {
	p := r.w.state.Player()
	if p == nil {
		return fmt.Errorf("starting %s encounter: %w", enc.Kind, errGateClosed)
	}

	switch enc.Kind {
	case config.EncounterBoss:
		tpl, zoneKey, err := bossEncounter(enc.Enemy, p, r.w.quests, r.w.zones)
		if err != nil {
			return err
		}
		r.w.engine.StartBattle(tpl, zoneKey)

	case config.EncounterGroup:
		if enc.Zone != "" && !r.w.zones.CanEnter(enc.Zone, p, r.w.quests) {
			return fmt.Errorf("zone %s locked: %w", enc.Zone, errGateClosed)
		}
		tpls, err := r.group(enc, p.Level)
		if err != nil {
			return err
		}
		if enc.Zone == "" {
			r.w.engine.StartGroupBattle(tpls)
		} else {
			r.w.engine.StartGroupBattleIn(enc.Zone, tpls)
		}

	default:
		if !r.w.zones.CanEnter(enc.Zone, p, r.w.quests) {
			return fmt.Errorf("zone %s locked: %w", enc.Zone, errGateClosed)
		}
		tpl, err := r.enemy(enc.Zone, enc.Enemy, p.Level)
		if err != nil {
			return err
		}
		r.w.engine.StartBattle(tpl, enc.Zone)
	}

	if !r.w.engine.Active() {
		return fmt.Errorf("%s encounter did not start", enc.Kind)
	}
	return nil
}

func (r *runner) enemy(zoneKey, id string, level int) (*model.EnemyTemplate, error) {
	var (
		tpl *model.EnemyTemplate
		ok  bool
	)
	if id == "" {
		tpl, ok = data.RandomEnemy(zoneKey, level, r.rng)
	} else {
		tpl, ok = data.NamedEnemy(zoneKey, id, level, r.rng)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q in zone %q", errUnknownEnemy, id, zoneKey)
	}
	return tpl, nil
}

func (r *runner) group(enc config.Encounter, level int) ([]*model.EnemyTemplate, error) {
	if enc.Zone == "" || enc.Zone == zone.Portal {
		if enc.Enemy == "" && enc.Count == 0 {
			return data.PortalGroup(level, r.rng), nil
		}
	}

	zoneKey := enc.Zone
	if zoneKey == "" {
		zoneKey = zone.Portal
	}
	n := enc.Count
	if n <= 0 {
		n = 2 + r.rng.IntN(2)
	}
	tpls := make([]*model.EnemyTemplate, 0, n)
	for range n {
		tpl, err := r.enemy(zoneKey, enc.Enemy, level)
		if err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, nil
}

// bossEncounter resolves a boss id, empty meaning the Elder Wyrm, and
// checks its gate.
func bossEncounter(id string, p *model.Player, quests questView, zones *zone.Catalog) (*model.EnemyTemplate, string, error) {
	switch id {
	case data.CaveWyrmID:
		if p.Level < caveWyrmMinLevel {
			return nil, "", fmt.Errorf("cave wyrm needs level %d: %w", caveWyrmMinLevel, errGateClosed)
		}
		if !quests.Active(caveWyrmQuest) && !quests.Completed(caveWyrmQuest) {
			return nil, "", fmt.Errorf("cave wyrm needs quest %s: %w", caveWyrmQuest, errGateClosed)
		}
		return data.CaveWyrm(), zone.Cave, nil

	case "", data.ElderWyrmID:
		if p.Flag(elderWyrmFlag) {
			return nil, "", fmt.Errorf("elder wyrm already defeated: %w", errGateClosed)
		}
		if !zones.CanEnter(zone.Depths, p, quests) {
			return nil, "", fmt.Errorf("depths locked: %w", errGateClosed)
		}
		if !quests.Active(elderWyrmQuest) {
			return nil, "", fmt.Errorf("elder wyrm needs quest %s: %w", elderWyrmQuest, errGateClosed)
		}
		return data.ElderWyrm(), zone.Depths, nil
	}
	return nil, "", fmt.Errorf("%w: boss %q", errUnknownEnemy, id)
}

// await drives the bot until the running battle reports an outcome.
func (r *runner) await(ctx context.Context) (battle.Report, error) {
	interval := r.cfg.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	timeout := r.cfg.BattleTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	class := r.w.state.Player().Class
	for {
		select {
		case rep := <-r.done:
			return rep, nil
		case <-ticker.C:
			if err := r.w.loop.Do(ctx, func() { r.bot.act(r.w.engine, class) }); err != nil {
				return battle.Report{}, err
			}
		case <-deadline.C:
			return battle.Report{}, fmt.Errorf("%w after %s", errBattleTimeout, timeout)
		case <-ctx.Done():
			return battle.Report{}, ctx.Err()
		}
	}
}

// persist saves flags and quest progress after a battle.
func (r *runner) persist(ctx context.Context) error {
	if r.store == nil {
		return nil
	}

	var pr progress
	err := r.w.loop.Do(ctx, func() {
		pr.flags = r.w.state.Player().FlagsSnapshot()
		pr.active, pr.completed = r.w.quests.Snapshot()
	})
	if err != nil {
		return err
	}
	if err := r.store.save(ctx, r.cfg.Player.Name, pr); err != nil {
		slog.Error("saving progress", "player", r.cfg.Player.Name, "err", err)
	}
	return nil
}
