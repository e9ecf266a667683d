package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads battle tuning when its YAML file changes.
// The parent directory is watched so editors that replace the file are seen too.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Battle
	errors  chan error
	once    sync.Once
}

// NewWatcher starts watching path. Call Run to process events.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		watcher: w,
		updates: make(chan Battle, 1),
		errors:  make(chan error, 1),
	}, nil
}

// Updates delivers freshly loaded tuning.
func (w *Watcher) Updates() <-chan Battle {
	return w.updates
}

// Errors delivers reload failures. Failed reloads keep the previous tuning.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Run processes file events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	slog.Info("tuning watcher started", "path", w.path)

	// Reload once writes settle: a save is often a truncate followed by a write.
	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			slog.Info("tuning watcher stopping")
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			debounce.Reset(reloadDebounce)
			pending = debounce.C

		case <-pending:
			pending = nil
			if err := w.reload(ctx); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err := w.publishErr(ctx, fmt.Errorf("watching %s: %w", w.path, err)); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) reload(ctx context.Context) error {
	cfg, err := LoadBattle(w.path)
	if err != nil {
		slog.Warn("tuning reload failed", "path", w.path, "err", err)
		return w.publishErr(ctx, err)
	}

	slog.Info("tuning reloaded", "path", w.path)
	select {
	case w.updates <- cfg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) publishErr(ctx context.Context, err error) error {
	select {
	case w.errors <- err:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
