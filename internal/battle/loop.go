package battle

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// ErrLoopStopped is returned by Do after the loop has exited.
var ErrLoopStopped = errors.New("battle loop stopped")

// Loop is a ticker-driven Scheduler. Frame callbacks and commands passed to
// Do all run on the goroutine executing Start, so the engine never sees
// concurrent calls.
type Loop struct {
	interval time.Duration
	step     float64 // fixed seconds per frame, 0 = wall clock

	mu      sync.Mutex
	frames  map[FrameID]func(dt float64)
	running map[FrameID]func(dt float64) // batch of the current tick
	nextID  FrameID

	cmds     chan func()
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewLoop creates a loop firing every interval. A positive step feeds frames
// a fixed dt instead of the measured one, which makes simulations
// reproducible.
func NewLoop(interval time.Duration, step float64) *Loop {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Loop{
		interval: interval,
		step:     step,
		frames:   make(map[FrameID]func(dt float64)),
		cmds:     make(chan func()),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// RequestFrame schedules fn for the next tick.
func (l *Loop) RequestFrame(fn func(dt float64)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.frames[l.nextID] = fn
	return l.nextID
}

// CancelFrame drops a pending frame. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	delete(l.frames, id)
	delete(l.running, id)
	l.mu.Unlock()
}

// Pending returns the number of scheduled frames.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	run := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.cmds <- run:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the loop (blocks until context is canceled or Stop is called).
func (l *Loop) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer close(l.done)

	slog.Info("battle loop started", "interval", l.interval, "step", l.step)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			slog.Info("battle loop stopping")
			return ctx.Err()

		case <-l.stopCh:
			slog.Info("battle loop stopped")
			return nil

		case fn := <-l.cmds:
			fn()

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if l.step > 0 {
				dt = l.step
			}
			l.tick(dt)
		}
	}
}

// Stop stops the loop.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// tick runs the frames scheduled before this tick in request order. Frames
// requested by callbacks wait for the next tick.
func (l *Loop) tick(dt float64) {
	l.mu.Lock()
	if len(l.frames) == 0 {
		l.mu.Unlock()
		return
	}
	l.running = l.frames
	l.frames = make(map[FrameID]func(dt float64))
	ids := slices.Sorted(maps.Keys(l.running))
	l.mu.Unlock()

	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.running[id]
		delete(l.running, id)
		l.mu.Unlock()
		if ok {
			fn(dt)
		}
	}
}
