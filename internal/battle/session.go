package battle

import (
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/elderdeep/internal/boss"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
	"github.com/udisondev/elderdeep/internal/zone"
)

// Telegraph is an enemy skill in its windup.
type Telegraph struct {
	Enemy     *model.Enemy
	Skill     skill.Definition
	Remaining float64
}

// Session — состояние одного боя. Живёт от старта до исхода.
type Session struct {
	ID      uuid.UUID
	Mode    Mode
	ZoneKey string

	Enemies []*model.Enemy
	Target  int

	Momentum       float64
	SkillCooldowns map[string]float64
	Telegraph      *Telegraph

	// Zone is zone-scoped scratch state; Mods is the battle-scoped copy of
	// the player's modifiers that zone hooks may adjust.
	Zone zone.State
	Mods model.Modifiers

	Boss *boss.Machine

	Elapsed     float64
	SinceAction float64
	DamageDealt int
	DamageTaken int
	StartedAt   time.Time
	Outcome     Outcome

	mpAccum  float64
	recovery float64 // temporary player gauge scale, 1 = neutral
	hooks    zone.Hooks
	gold     int
	xp       int
}

// TargetEnemy returns the active target, nil when none is alive.
func (s *Session) TargetEnemy() *model.Enemy {
	if s.Target < 0 || s.Target >= len(s.Enemies) {
		return nil
	}
	if en := s.Enemies[s.Target]; en.Alive() {
		return en
	}
	return nil
}

// AllDefeated reports whether every enemy is dead.
func (s *Session) AllDefeated() bool {
	for _, en := range s.Enemies {
		if en.Alive() {
			return false
		}
	}
	return true
}

// nextAlive returns the first living enemy index, or -1.
func (s *Session) nextAlive() int {
	for i, en := range s.Enemies {
		if en.Alive() {
			return i
		}
	}
	return -1
}

func (s *Session) enemyIDs() []string {
	ids := make([]string, len(s.Enemies))
	for i, en := range s.Enemies {
		ids[i] = en.Template.ID
	}
	return ids
}

func (s *Session) enemyNames() []string {
	names := make([]string, len(s.Enemies))
	for i, en := range s.Enemies {
		names[i] = en.Name
	}
	return names
}

// arena is the context handed to status, zone and boss code. It routes
// their effects back into the engine.
type arena struct {
	e *Engine
}

var (
	_ status.Env = arena{}
	_ zone.Arena = arena{}
	_ boss.Arena = arena{}
)

func (a arena) Log(text string, tag event.Tag) { a.e.log(text, tag) }
func (a arena) Cue(c event.Cue)                { a.e.cue(c) }
func (a arena) Warn()                          { a.e.presenter.Warn() }
func (a arena) Player() *model.Player          { return a.e.player() }
func (a arena) Modifiers() *model.Modifiers    { return &a.e.session.Mods }
func (a arena) Zone() *zone.State              { return &a.e.session.Zone }
func (a arena) Boss() *model.Enemy             { return a.e.session.Enemies[0] }
func (a arena) SetHazardFast(on bool)          { a.e.session.Zone.HazardFast = on }

func (a arena) DurationScale(id model.StatusID) float64 {
	if id == status.Stagger && a.e.session != nil && a.e.session.Zone.StaggerScale > 0 {
		return a.e.session.Zone.StaggerScale
	}
	return 1
}

func (a arena) ApplyStatus(target *model.Combatant, id model.StatusID) bool {
	return status.Apply(a, target, id)
}

func (a arena) StrikePlayer(dmg int, kind event.DamageKind) bool {
	a.e.strikePlayer(dmg, kind)
	p := a.e.player()
	return p != nil && p.Alive()
}
