package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/elderdeep/internal/audio"
	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/gamestate"
	"github.com/udisondev/elderdeep/internal/journal"
	"github.com/udisondev/elderdeep/internal/quest"
	"github.com/udisondev/elderdeep/internal/zone"
)

const SimConfigPath = "config/sim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := SimConfigPath
	if p := os.Getenv("ELDERDEEP_SIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading sim config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	tuning, err := config.LoadBattle(cfg.TuningPath)
	if err != nil {
		return fmt.Errorf("loading battle tuning: %w", err)
	}

	slog.Info("battle simulator starting",
		"player", cfg.Player.Name,
		"class", cfg.Player.Class,
		"encounters", len(cfg.Encounters),
		"rounds", cfg.Rounds,
		"seed", cfg.Seed)

	var store *storage
	if cfg.Database.Enabled {
		store, err = openStorage(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer store.Close()
	}

	w, err := newWorld(ctx, cfg, tuning, store)
	if err != nil {
		return err
	}

	simCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(simCtx)

	g.Go(func() error { return ignoreCanceled(w.loop.Start(gctx)) })
	g.Go(func() error { return ignoreCanceled(w.sounds.Run(gctx)) })

	if store != nil {
		j := journal.New(store.battles, cfg.Player.Name, 0)
		w.engine.OnOutcome(j.Record)
		g.Go(func() error { return ignoreCanceled(j.Run(gctx)) })
	}

	if cfg.WatchTuning {
		watcher, err := config.NewWatcher(cfg.TuningPath)
		if err != nil {
			return fmt.Errorf("watching battle tuning: %w", err)
		}
		g.Go(func() error { return ignoreCanceled(watcher.Run(gctx)) })
		g.Go(func() error { return ignoreCanceled(applyTuning(gctx, watcher, w)) })
	}

	g.Go(func() error {
		defer stop()
		return w.runner.run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("battle simulator stopped", "played", w.sounds.Played(), "dropped_cues", w.sounds.Dropped())
	return nil
}

// world holds the wired simulator.
type world struct {
	state  *gamestate.State
	quests *quest.Tracker
	zones  *zone.Catalog
	sounds *audio.Queue
	loop   *battle.Loop
	engine *battle.Engine
	runner *runner
}

func newWorld(ctx context.Context, cfg config.Sim, tuning config.Battle, store *storage) (*world, error) {
	rng := newRand(cfg.Seed)
	view := &presenter{}
	w := &world{
		zones:  zone.NewCatalog(rng),
		sounds: audio.NewQueue(audio.LogSink{}, cfg.AudioQueueSize),
		loop:   battle.NewLoop(cfg.FrameInterval, cfg.FrameStep),
	}
	w.state = gamestate.New(w.zones, view.Log, w.sounds)
	w.quests = quest.NewTracker(w.state, view.Log, w.sounds)
	w.state.SetQuests(w.quests)

	var restore func() error
	if store != nil {
		restore = func() error { return store.restore(ctx, cfg.Player.Name, w.state.Player(), w.quests) }
	}
	if _, err := setupPlayer(w.state, w.quests, cfg.Player, restore); err != nil {
		return nil, err
	}

	w.engine = battle.NewEngine(tuning, battle.Deps{
		Game:      w.state,
		Quests:    w.quests,
		Presenter: view,
		Audio:     w.sounds,
		Scheduler: w.loop,
		Zones:     w.zones,
		Rand:      rng,
	})
	w.runner = newRunner(cfg, w, rng, store)
	return w, nil
}

// applyTuning hands reloaded tuning to the engine on the loop goroutine.
func applyTuning(ctx context.Context, watcher *config.Watcher, w *world) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors():
			slog.Warn("battle tuning not reloaded", "err", err)
		case tuning := <-watcher.Updates():
			if err := w.loop.Do(ctx, func() { w.engine.SetConfig(tuning) }); err != nil {
				if errors.Is(err, battle.ErrLoopStopped) {
					return nil
				}
				return err
			}
		}
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
