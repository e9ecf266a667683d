package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/data"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/testutil"
	"github.com/udisondev/elderdeep/internal/zone"
)

type questSet struct {
	active    map[string]bool
	completed map[string]bool
}

func (q questSet) Active(id string) bool    { return q.active[id] }
func (q questSet) Completed(id string) bool { return q.completed[id] }

func TestBossEncounter_CaveWyrm(t *testing.T) {
	t.Parallel()
	zones := zone.NewCatalog(testutil.NewRand())
	p := testutil.NewPlayer()
	quests := questSet{active: map[string]bool{}, completed: map[string]bool{}}

	p.Level = 4
	quests.active[caveWyrmQuest] = true
	_, _, err := bossEncounter(data.CaveWyrmID, p, quests, zones)
	assert.ErrorIs(t, err, errGateClosed, "level too low")

	p.Level = 5
	delete(quests.active, caveWyrmQuest)
	_, _, err = bossEncounter(data.CaveWyrmID, p, quests, zones)
	assert.ErrorIs(t, err, errGateClosed, "quest missing")

	quests.completed[caveWyrmQuest] = true
	tpl, zoneKey, err := bossEncounter(data.CaveWyrmID, p, quests, zones)
	require.NoError(t, err)
	assert.Equal(t, data.CaveWyrmID, tpl.ID)
	assert.Equal(t, zone.Cave, zoneKey)
}

func TestBossEncounter_ElderWyrm(t *testing.T) {
	t.Parallel()
	zones := zone.NewCatalog(testutil.NewRand())
	p := testutil.NewPlayer()
	p.Level = 9
	quests := questSet{
		active:    map[string]bool{elderWyrmQuest: true},
		completed: map[string]bool{"ruins_cleanse": true},
	}

	_, _, err := bossEncounter("", p, quests, zones)
	assert.ErrorIs(t, err, errGateClosed, "depths locked without the fragment")

	p.Inventory = append(p.Inventory, "runed_fragment")
	tpl, zoneKey, err := bossEncounter("", p, quests, zones)
	require.NoError(t, err)
	assert.Equal(t, data.ElderWyrmID, tpl.ID)
	assert.Equal(t, zone.Depths, zoneKey)

	delete(quests.active, elderWyrmQuest)
	_, _, err = bossEncounter(data.ElderWyrmID, p, quests, zones)
	assert.ErrorIs(t, err, errGateClosed, "quest not held")

	quests.active[elderWyrmQuest] = true
	p.SetFlag(elderWyrmFlag)
	_, _, err = bossEncounter(data.ElderWyrmID, p, quests, zones)
	assert.ErrorIs(t, err, errGateClosed, "already defeated")

	_, _, err = bossEncounter("dragon", p, quests, zones)
	assert.ErrorIs(t, err, errUnknownEnemy)
}

func TestRunner_PlaysEncounters(t *testing.T) {
	cfg := config.DefaultSim()
	cfg.Seed = 7
	cfg.FrameInterval = time.Millisecond
	cfg.FrameStep = 0.05
	cfg.BattleTimeout = 30 * time.Second
	cfg.Player.Level = 12
	cfg.Player.Weapon = "w_sword"
	cfg.Player.Armor = "a_chain"
	cfg.Encounters = []config.Encounter{
		{Kind: config.EncounterSingle, Zone: zone.Forest, Enemy: "wolf"},
		{Kind: config.EncounterBoss, Enemy: data.CaveWyrmID},
		{Kind: config.EncounterSingle, Zone: zone.Depths},
		{Kind: config.EncounterGroup},
	}

	ctx := testutil.ContextWithTimeout(t, time.Minute)
	w, err := newWorld(ctx, cfg, config.DefaultBattle(), nil)
	require.NoError(t, err)

	simCtx, stop := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(simCtx)
	g.Go(func() error { return ignoreCanceled(w.loop.Start(gctx)) })
	g.Go(func() error { return ignoreCanceled(w.sounds.Run(gctx)) })
	g.Go(func() error {
		defer stop()
		return w.runner.run(gctx)
	})
	require.NoError(t, g.Wait())

	played := 0
	for _, n := range w.runner.tally {
		played += n
	}
	assert.Equal(t, 2, played, "locked boss and zone are skipped")
	assert.Zero(t, w.runner.tally[battle.OutcomeAbandoned])
	assert.False(t, w.engine.Active())
}

func TestRunner_UnknownEnemy(t *testing.T) {
	cfg := config.DefaultSim()
	cfg.Seed = 3
	cfg.FrameInterval = time.Millisecond
	cfg.Encounters = []config.Encounter{{Kind: config.EncounterSingle, Zone: zone.Forest, Enemy: "unicorn"}}

	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	w, err := newWorld(ctx, cfg, config.DefaultBattle(), nil)
	require.NoError(t, err)

	simCtx, stop := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(simCtx)
	g.Go(func() error { return ignoreCanceled(w.loop.Start(gctx)) })
	g.Go(func() error {
		defer stop()
		return w.runner.run(gctx)
	})
	assert.ErrorIs(t, g.Wait(), errUnknownEnemy)
}

func TestSetupPlayer(t *testing.T) {
	t.Parallel()

	w, err := newWorld(context.Background(), config.Sim{
		Player: config.PlayerConfig{
			Name:    "Aria",
			Class:   string(model.ClassWarrior),
			Race:    string(model.RaceHuman),
			Level:   3,
			Weapon:  "w_sword",
			Armor:   "a_chain",
			Items:   []string{"torch_oil"},
			Talents: []string{"war_heavy_blows"},
			Quests:  []string{"cull_slimes", "slay_dragons"},
		},
	}, config.DefaultBattle(), nil)
	require.NoError(t, err)

	p := w.state.Player()
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, "w_sword", p.Weapon.ID)
	assert.Equal(t, "a_chain", p.Armor.ID)
	assert.Equal(t, []string{"torch_oil"}, p.Inventory)
	assert.InDelta(t, 1.12, p.Modifiers.AttackMultiplier, 1e-9)
	assert.True(t, w.quests.Active("cull_slimes"))
	assert.False(t, w.quests.Active("slay_dragons"))
}

func TestSetupPlayer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pc   config.PlayerConfig
	}{
		{name: "unknown class", pc: config.PlayerConfig{Class: "Bard"}},
		{name: "unknown item", pc: config.PlayerConfig{Items: []string{"mystery_box"}}},
		{name: "not equippable", pc: config.PlayerConfig{Weapon: "torch_oil"}},
		{name: "talent without points", pc: config.PlayerConfig{Talents: []string{"war_heavy_blows"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newWorld(context.Background(), config.Sim{Player: tt.pc}, config.DefaultBattle(), nil)
			assert.Error(t, err)
		})
	}
}
