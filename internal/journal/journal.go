// Package journal writes finished battles to storage off the battle loop.
package journal

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/db"
)

const (
	defaultBufferSize = 128
	maxBatch          = 32
	flushTimeout      = 5 * time.Second
)

// Recorder stores battle records.
type Recorder interface {
	InsertBatch(ctx context.Context, recs []*db.BattleRecord) error
}

// Journal buffers reports and hands them to a Recorder in batches.
// Record is safe to call from the battle loop: it never blocks.
type Journal struct {
	player string
	rec    Recorder
	ch     chan *db.BattleRecord

	written atomic.Int64
	dropped atomic.Int64
}

// New creates a journal for player's battles.
func New(rec Recorder, player string, size int) *Journal {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Journal{
		player: player,
		rec:    rec,
		ch:     make(chan *db.BattleRecord, size),
	}
}

// Record queues a report. A full buffer drops it.
func (j *Journal) Record(r battle.Report) {
	select {
	case j.ch <- ToRecord(j.player, r):
	default:
		j.dropped.Add(1)
		slog.Warn("battle journal full, dropping record", "session", r.SessionID, "outcome", r.Outcome)
	}
}

func (j *Journal) Written() int64 { return j.written.Load() }
func (j *Journal) Dropped() int64 { return j.dropped.Load() }

// Run writes queued records until ctx is canceled, then flushes what is left.
func (j *Journal) Run(ctx context.Context) error {
	slog.Info("battle journal started", "player", j.player)

	batch := make([]*db.BattleRecord, 0, maxBatch)
	for {
		select {
		case rec := <-j.ch:
			batch = append(batch[:0], rec)
			for len(batch) < maxBatch && len(j.ch) > 0 {
				batch = append(batch, <-j.ch)
			}
			j.write(ctx, batch)

		case <-ctx.Done():
			j.flush(context.WithoutCancel(ctx))
			slog.Info("battle journal stopped", "written", j.Written(), "dropped", j.Dropped())
			return ctx.Err()
		}
	}
}

func (j *Journal) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	var rest []*db.BattleRecord
	for len(j.ch) > 0 {
		rest = append(rest, <-j.ch)
	}
	if len(rest) > 0 {
		j.write(ctx, rest)
	}
}

func (j *Journal) write(ctx context.Context, batch []*db.BattleRecord) {
	if err := j.rec.InsertBatch(ctx, batch); err != nil {
		slog.Error("writing battle records", "count", len(batch), "err", err)
		return
	}
	j.written.Add(int64(len(batch)))
}

// ToRecord converts an engine report into a storage row.
func ToRecord(player string, r battle.Report) *db.BattleRecord {
	phase := -1
	if r.Mode == battle.ModeBoss {
		phase = r.BossPhase
	}
	return &db.BattleRecord{
		ID:          r.SessionID,
		Player:      player,
		Mode:        r.Mode.String(),
		Outcome:     r.Outcome.String(),
		Zone:        r.Zone,
		Enemies:     append([]string(nil), r.Enemies...),
		Gold:        r.Gold,
		XP:          r.XP,
		Elapsed:     r.Elapsed,
		DamageDealt: r.DamageDealt,
		DamageTaken: r.DamageTaken,
		BossPhase:   phase,
		StartedAt:   r.StartedAt,
		EndedAt:     r.EndedAt,
	}
}
