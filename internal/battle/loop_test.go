package battle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/testutil"
	"github.com/udisondev/elderdeep/internal/zone"
)

func TestLoop_RequestCancel(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond, 0.05)
	a := l.RequestFrame(func(float64) {})
	b := l.RequestFrame(func(float64) {})
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, l.Pending())

	l.CancelFrame(a)
	l.CancelFrame(a)
	l.CancelFrame(999)
	assert.Equal(t, 1, l.Pending())
}

func TestLoop_TickOrder(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond, 0.05)
	var got []string
	var second FrameID
	l.RequestFrame(func(dt float64) {
		got = append(got, "first")
		assert.InDelta(t, 0.05, dt, 1e-9)
		l.CancelFrame(second)
		l.RequestFrame(func(float64) { got = append(got, "next") })
	})
	second = l.RequestFrame(func(float64) { got = append(got, "second") })

	l.tick(0.05)
	assert.Equal(t, []string{"first"}, got, "cancelled in the same batch")
	assert.Equal(t, 1, l.Pending())

	l.tick(0.05)
	assert.Equal(t, []string{"first", "next"}, got)
	assert.Zero(t, l.Pending())
}

func TestLoop_Do(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond, 0)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Start(ctx) }()

	var ran atomic.Bool
	require.NoError(t, l.Do(ctx, func() { ran.Store(true) }))
	assert.True(t, ran.Load())

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	err := l.Do(context.Background(), func() {})
	assert.True(t, errors.Is(err, ErrLoopStopped))
}

func TestLoop_Stop(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond, 0)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Start(context.Background()) }()

	l.Stop()
	l.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

// TestLoop_DrivesBattle runs a real battle on the ticker loop until it ends.
func TestLoop_DrivesBattle(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond, 0.1)
	f := newFixture(t, testutil.Seeded(3), func(c *config.Battle) { c.AutoAttack = true })
	f.engine.scheduler = l

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = l.Start(ctx) }()

	done := make(chan Report, 1)
	require.NoError(t, l.Do(ctx, func() {
		f.engine.OnOutcome(func(r Report) { done <- r })
		f.engine.StartBattle(wolf(), zone.Forest)
	}))

	select {
	case r := <-done:
		assert.Contains(t, []Outcome{OutcomeVictory, OutcomeDefeat}, r.Outcome)
		assert.Greater(t, r.Elapsed, 0.0)
	case <-ctx.Done():
		t.Fatal("battle did not finish")
	}

	require.NoError(t, l.Do(ctx, func() {
		assert.Zero(t, l.Pending(), "frame cancelled after the outcome")
	}))
}

type manualScheduler struct {
	next   FrameID
	frames map[FrameID]func(float64)
}

func (m *manualScheduler) RequestFrame(fn func(float64)) FrameID {
	if m.frames == nil {
		m.frames = make(map[FrameID]func(float64))
	}
	m.next++
	m.frames[m.next] = fn
	return m.next
}

func (m *manualScheduler) CancelFrame(id FrameID) { delete(m.frames, id) }

func TestStaleFrameIgnored(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	f := newFixture(t, testutil.NewRand())
	f.engine.scheduler = sched

	tpl := wolf()
	tpl.AttackCooldown = 100
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	require.Len(t, sched.frames, 1)
	stale := sched.frames[sched.next]

	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	assert.Len(t, sched.frames, 1, "abandoned session's frame cancelled")

	stale(0.1)
	assert.Zero(t, f.engine.Session().Elapsed)

	live := sched.frames[sched.next]
	delete(sched.frames, sched.next)
	live(0.1)
	assert.InDelta(t, 0.1, f.engine.Session().Elapsed, 1e-9)
	assert.Len(t, sched.frames, 1, "live frame re-requests itself")
}
