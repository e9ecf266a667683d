// Package battle runs the semi-real-time battle loop: single, group and boss
// encounters driven by cooldown gauges and one Update step per frame.
package battle

import (
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/elderdeep/internal/boss"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/zone"
)

// Mode is the encounter kind of a session.
type Mode int

const (
	ModeSingle Mode = iota
	ModeGroup
	ModeBoss
)

func (m Mode) String() string {
	switch m {
	case ModeGroup:
		return "group"
	case ModeBoss:
		return "boss"
	default:
		return "single"
	}
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "none"
	}
}

// GameState provides the player and progression sinks.
type GameState interface {
	// Player returns the active character, nil when none was created.
	Player() *model.Player
	GainXP(amount int)
	AddItem(id string) bool
}

// QuestTracker is notified about every defeated enemy.
type QuestTracker interface {
	EnemyDefeated(enemyID string)
}

// Presenter receives everything the player sees.
type Presenter interface {
	Log(text string, tag event.Tag)
	FloatingDamage(target string, amount int, kind event.DamageKind)
	Warn()
	Render(v View)
	DeathScreen(s DeathSummary)
}

// Audio plays cues. Play must not block.
type Audio interface {
	Play(c event.Cue)
}

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler delivers frame callbacks with the elapsed seconds since the
// previous frame.
type Scheduler interface {
	RequestFrame(fn func(dt float64)) FrameID
	CancelFrame(id FrameID)
}

// ZoneProvider resolves environment hooks by zone key.
type ZoneProvider interface {
	Hooks(key string) zone.Hooks
}

// Report summarizes a finished session.
type Report struct {
	SessionID   uuid.UUID
	Mode        Mode
	Outcome     Outcome
	Zone        string
	Enemies     []string // template ids
	Gold        int      // gold delta, negative on defeat
	XP          int
	Elapsed     float64 // simulated seconds
	DamageDealt int
	DamageTaken int
	BossPhase   int
	StartedAt   time.Time
	EndedAt     time.Time
}

// DeathSummary is shown on defeat.
type DeathSummary struct {
	Enemies     []string
	Zone        string
	Level       int
	GoldLost    int
	Elapsed     float64
	DamageDealt int
	DamageTaken int
}

// StatusView is one active status as rendered.
type StatusView struct {
	ID        model.StatusID
	Remaining float64
}

// CombatantView is the rendered state of one side.
type CombatantView struct {
	Name        string
	HP          int
	MaxHP       int
	Cooldown    float64
	CooldownMax float64
	Statuses    []StatusView
}

// TelegraphView describes a pending enemy special.
type TelegraphView struct {
	Enemy     string
	Skill     string
	Remaining float64
}

// View is a render snapshot of the session.
type View struct {
	SessionID uuid.UUID
	Mode      Mode
	Active    bool
	Zone      string

	Player      CombatantView
	MP          int
	MaxMP       int
	Momentum    float64
	MomentumMax float64
	Skills      map[string]float64 // remaining cooldown per player skill

	Enemies   []CombatantView
	Target    int
	Telegraph *TelegraphView

	BossPhase    int
	BossMechanic boss.Mechanic // mechanic being wound up, MechanicNone otherwise
	BossWindup   float64
}

func combatantView(c *model.Combatant) CombatantView {
	v := CombatantView{
		Name:        c.Name,
		HP:          c.HP,
		MaxHP:       c.MaxHP,
		Cooldown:    c.Cooldown.Current,
		CooldownMax: c.Cooldown.Max(),
	}
	for _, s := range c.Statuses {
		v.Statuses = append(v.Statuses, StatusView{ID: s.ID, Remaining: s.Remaining})
	}
	return v
}
