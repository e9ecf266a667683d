package testutil

import (
	"slices"
	"strings"

	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
)

// LogRecorder collects battle log lines.
type LogRecorder struct {
	Lines []event.Line
}

// Log implements the log sink used across the engine.
func (r *LogRecorder) Log(text string, tag event.Tag) {
	r.Lines = append(r.Lines, event.Line{Text: text, Tag: tag})
}

// Texts returns logged texts in order.
func (r *LogRecorder) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

// Count returns how many lines contain substr.
func (r *LogRecorder) Count(substr string) int {
	n := 0
	for _, l := range r.Lines {
		if strings.Contains(l.Text, substr) {
			n++
		}
	}
	return n
}

// Has reports whether any line contains substr.
func (r *LogRecorder) Has(substr string) bool {
	return slices.ContainsFunc(r.Lines, func(l event.Line) bool {
		return strings.Contains(l.Text, substr)
	})
}

// StatusEnv is a status.Env that records logs and returns fixed duration scales.
type StatusEnv struct {
	LogRecorder
	Scale map[model.StatusID]float64
}

func (e *StatusEnv) DurationScale(id model.StatusID) float64 {
	if s, ok := e.Scale[id]; ok {
		return s
	}
	return 1
}
