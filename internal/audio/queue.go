// Package audio delivers fire-and-forget sound cues off the battle loop.
package audio

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/elderdeep/internal/event"
)

const defaultQueueSize = 64

// Sink plays cues. Implementations may block; the queue runs them on its own goroutine.
type Sink interface {
	Play(c event.Cue) error
}

// Queue buffers cues for a Sink.
// Play never blocks: a full queue drops the cue.
type Queue struct {
	sink    Sink
	ch      chan event.Cue
	dropped atomic.Int64
	played  atomic.Int64
}

// NewQueue creates a queue of size cues in front of sink.
func NewQueue(sink Sink, size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		sink: sink,
		ch:   make(chan event.Cue, size),
	}
}

// Play queues a cue without blocking.
func (q *Queue) Play(c event.Cue) {
	select {
	case q.ch <- c:
	default:
		if q.dropped.Add(1) == 1 {
			slog.Warn("audio queue full, dropping cues", "cue", c)
		}
	}
}

// Dropped returns how many cues were lost to a full queue.
func (q *Queue) Dropped() int64 { return q.dropped.Load() }

// Played returns how many cues reached the sink.
func (q *Queue) Played() int64 { return q.played.Load() }

// Run feeds queued cues to the sink until ctx is canceled.
// Sink errors are logged and never stop the queue.
func (q *Queue) Run(ctx context.Context) error {
	slog.Info("audio queue started", "capacity", cap(q.ch))
	defer slog.Info("audio queue stopped", "played", q.Played(), "dropped", q.Dropped())

	for {
		select {
		case c := <-q.ch:
			q.deliver(c)

			// drain what piled up while the sink was busy
			for range len(q.ch) {
				q.deliver(<-q.ch)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *Queue) deliver(c event.Cue) {
	if err := q.sink.Play(c); err != nil {
		slog.Warn("audio cue failed", "cue", c, "err", err)
		return
	}
	q.played.Add(1)
}

// LogSink writes cues to the debug log. Used when no audio device exists.
type LogSink struct{}

func (LogSink) Play(c event.Cue) error {
	slog.Debug("audio cue", "cue", c)
	return nil
}
