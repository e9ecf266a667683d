// Package quest tracks kill quests advanced by defeated enemies.
package quest

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
)

// Definition is a kill quest.
type Definition struct {
	ID          string
	Name        string
	Description string
	Target      string // enemy template id
	Count       int
	RewardGold  int
	RewardXP    int
	RewardItem  string
	Zone        string
	Giver       string
	Receiver    string
}

// Status of a quest on the board.
type Status string

const (
	StatusAvailable Status = "available"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Entry is a board row.
type Entry struct {
	Definition
	Status  Status
	Current int
}

// Game receives quest rewards.
type Game interface {
	Player() *model.Player
	GainXP(amount int)
	AddItem(id string) bool
}

// Audio plays the completion cue.
type Audio interface {
	Play(c event.Cue)
}

// Tracker holds active and completed quests of one character.
// Not safe for concurrent use; the battle loop goroutine owns it.
type Tracker struct {
	game  Game
	log   event.LogFunc
	audio Audio

	active    map[string]int
	completed []string
}

// NewTracker creates an empty tracker. log and audio may be nil.
func NewTracker(game Game, log event.LogFunc, audio Audio) *Tracker {
	if log == nil {
		log = func(string, event.Tag) {}
	}
	return &Tracker{
		game:   game,
		log:    log,
		audio:  audio,
		active: make(map[string]int),
	}
}

// Board lists every quest with its status.
func (t *Tracker) Board() []Entry {
	out := make([]Entry, 0, len(catalog))
	for _, d := range catalog {
		e := Entry{Definition: d, Status: StatusAvailable}
		if cur, ok := t.active[d.ID]; ok {
			e.Status = StatusActive
			e.Current = cur
		} else if t.Completed(d.ID) {
			e.Status = StatusCompleted
			e.Current = d.Count
		}
		out = append(out, e)
	}
	return out
}

// Accept starts a quest. Unknown, active and completed quests are refused.
func (t *Tracker) Accept(id string) bool {
	if _, ok := Lookup(id); !ok {
		return false
	}
	if t.Active(id) || t.Completed(id) {
		return false
	}
	t.active[id] = 0
	slog.Debug("quest accepted", "quest", id)
	return true
}

// Active reports whether id is in progress.
func (t *Tracker) Active(id string) bool {
	_, ok := t.active[id]
	return ok
}

// Completed reports whether id was finished.
func (t *Tracker) Completed(id string) bool {
	return slices.Contains(t.completed, id)
}

// Progress returns current and required kills of an active quest.
func (t *Tracker) Progress(id string) (current, required int, ok bool) {
	cur, ok := t.active[id]
	if !ok {
		return 0, 0, false
	}
	d, _ := Lookup(id)
	return cur, d.Count, true
}

// EnemyDefeated advances every active quest targeting enemyID.
// Elite variants count for their base enemy.
func (t *Tracker) EnemyDefeated(enemyID string) {
	target := strings.TrimSuffix(enemyID, "_elite")

	// deterministic order for log lines
	for _, d := range catalog {
		cur, ok := t.active[d.ID]
		if !ok || d.Target != target {
			continue
		}
		cur++
		t.active[d.ID] = cur
		t.log(fmt.Sprintf("Quest progress: %d/%d %s", cur, d.Count, d.Name), event.TagInfo)
		if cur >= d.Count {
			t.complete(d)
		}
	}
}

func (t *Tracker) complete(d Definition) {
	delete(t.active, d.ID)
	t.completed = append(t.completed, d.ID)

	if p := t.game.Player(); p != nil {
		p.Gold += d.RewardGold
	}
	t.game.GainXP(d.RewardXP)
	if d.RewardItem != "" {
		t.game.AddItem(d.RewardItem)
	}
	if t.audio != nil {
		t.audio.Play(event.CueQuestComplete)
	}

	t.log(fmt.Sprintf("Quest complete: %s! +%dg +%dXP", d.Name, d.RewardGold, d.RewardXP), event.TagVictory)
	if d.Giver != "" {
		t.log(fmt.Sprintf("(%s) \"Good work.\"", d.Giver), event.TagInfo)
	}
	if d.Receiver != "" && d.Receiver != d.Giver {
		t.log(fmt.Sprintf("(%s) \"Your reward.\"", d.Receiver), event.TagInfo)
	}
	slog.Info("quest completed", "quest", d.ID, "gold", d.RewardGold, "xp", d.RewardXP)
}

// Snapshot returns active progress and completed ids for persistence.
func (t *Tracker) Snapshot() (active map[string]int, completed []string) {
	active = make(map[string]int, len(t.active))
	for k, v := range t.active {
		active[k] = v
	}
	return active, slices.Clone(t.completed)
}

// Restore replaces tracker state. Unknown quest ids are dropped.
func (t *Tracker) Restore(active map[string]int, completed []string) {
	t.active = make(map[string]int, len(active))
	for id, cur := range active {
		if _, ok := Lookup(id); ok {
			t.active[id] = max(0, cur)
		}
	}
	t.completed = t.completed[:0]
	for _, id := range completed {
		if _, ok := Lookup(id); ok && !slices.Contains(t.completed, id) {
			t.completed = append(t.completed, id)
		}
	}
}
