package battle

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/looplab/fsm"

	"github.com/udisondev/elderdeep/internal/ai"
	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/status"
	"github.com/udisondev/elderdeep/internal/zone"
)

// Lifecycle states.
const (
	StateInactive = "inactive"
	StateActive   = "active"
	StateVictory  = "victory"
	StateDefeat   = "defeat"
	StateFled     = "fled"
)

const (
	evStart   = "start"
	evWin     = "win"
	evLose    = "lose"
	evFlee    = "flee"
	evAbandon = "abandon"
	evReset   = "reset"
)

// Deps are the engine's collaborators. Only Game is required.
type Deps struct {
	Game      GameState
	Quests    QuestTracker
	Presenter Presenter
	Audio     Audio
	Scheduler Scheduler
	Zones     ZoneProvider
	Rand      combat.Rand
}

// Engine — оркестратор боя. Не потокобезопасен: все вызовы должны идти
// из одной горутины (см. Loop).
type Engine struct {
	cfg     config.Battle
	pending *config.Battle

	game      GameState
	quests    QuestTracker
	presenter Presenter
	audio     Audio
	scheduler Scheduler
	zones     ZoneProvider
	rng       combat.Rand
	selector  *ai.Selector

	lifecycle *fsm.FSM
	session   *Session

	// generation invalidates frames requested for an earlier session.
	generation   uint64
	frame        FrameID
	framePending bool

	listeners []func(Report)
	last      *Report
}

// NewEngine creates an idle engine.
func NewEngine(cfg config.Battle, d Deps) *Engine {
	e := &Engine{
		cfg:       cfg,
		game:      d.Game,
		quests:    d.Quests,
		presenter: d.Presenter,
		audio:     d.Audio,
		scheduler: d.Scheduler,
		zones:     d.Zones,
		rng:       d.Rand,
	}
	if e.presenter == nil {
		e.presenter = nopPresenter{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	e.selector = ai.NewSelector(e.rng)
	e.lifecycle = newLifecycle()
	return e
}

func newLifecycle() *fsm.FSM {
	return fsm.NewFSM(
		StateInactive,
		fsm.Events{
			{Name: evStart, Src: []string{StateInactive}, Dst: StateActive},
			{Name: evWin, Src: []string{StateActive}, Dst: StateVictory},
			{Name: evLose, Src: []string{StateActive}, Dst: StateDefeat},
			{Name: evFlee, Src: []string{StateActive}, Dst: StateFled},
			{Name: evAbandon, Src: []string{StateActive}, Dst: StateInactive},
			{Name: evReset, Src: []string{StateVictory, StateDefeat, StateFled}, Dst: StateInactive},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				slog.Debug("battle lifecycle", "event", ev.Event, "from", ev.Src, "to", ev.Dst)
			},
		},
	)
}

func (e *Engine) transition(name string) {
	if err := e.lifecycle.Event(context.Background(), name); err != nil {
		slog.Error("battle lifecycle transition rejected", "event", name, "state", e.lifecycle.Current(), "err", err)
	}
}

// State returns the lifecycle state name.
func (e *Engine) State() string {
	return e.lifecycle.Current()
}

// Active reports whether a battle is in progress.
func (e *Engine) Active() bool {
	return e.session != nil && e.session.Outcome == OutcomeNone
}

// Session returns the current or most recent session.
func (e *Engine) Session() *Session {
	return e.session
}

// LastReport returns the report of the most recently finished session.
func (e *Engine) LastReport() (Report, bool) {
	if e.last == nil {
		return Report{}, false
	}
	return *e.last, true
}

// Config returns the tuning in effect.
func (e *Engine) Config() config.Battle {
	return e.cfg
}

// SetConfig replaces the tuning. While a battle runs the change is deferred
// until the next start.
func (e *Engine) SetConfig(cfg config.Battle) {
	if e.Active() {
		e.pending = &cfg
		slog.Debug("battle tuning deferred until next battle")
		return
	}
	e.cfg = cfg
	e.pending = nil
}

// OnOutcome registers a listener for finished sessions.
func (e *Engine) OnOutcome(fn func(Report)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) applyPendingConfig() {
	if e.pending != nil {
		e.cfg = *e.pending
		e.pending = nil
		slog.Info("battle tuning applied")
	}
}

func (e *Engine) player() *model.Player {
	if e.game == nil {
		return nil
	}
	return e.game.Player()
}

func (e *Engine) arena() arena {
	return arena{e: e}
}

func (e *Engine) log(text string, tag event.Tag) {
	e.presenter.Log(text, tag)
}

// cue plays an audio cue. A misbehaving sink never breaks the battle.
func (e *Engine) cue(c event.Cue) {
	if e.audio == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("audio cue failed", "cue", c, "panic", r)
		}
	}()
	e.audio.Play(c)
}

func (e *Engine) applyStatus(target *model.Combatant, id model.StatusID) bool {
	return status.Apply(e.arena(), target, id)
}

func (e *Engine) zoneHooks(key string) zone.Hooks {
	if e.zones == nil {
		return zone.NopHooks{}
	}
	return e.zones.Hooks(key)
}

// strikePlayer applies an enemy hit to the player and returns the HP lost.
func (e *Engine) strikePlayer(dmg int, kind event.DamageKind) int {
	p := e.player()
	s := e.session
	if p == nil || s == nil {
		return 0
	}
	lost := p.TakeHit(dmg)
	s.DamageTaken += lost
	e.presenter.FloatingDamage(p.Name, lost, kind)
	e.cue(event.CueHit)
	if kind == event.DamageBlock {
		e.cue(event.CueBlock)
	}
	if lost > 0 && e.resetsMomentum(s.Mode) {
		s.Momentum = 0
	}
	return lost
}

func (e *Engine) resetsMomentum(m Mode) bool {
	switch m {
	case ModeGroup:
		return e.cfg.MomentumResetOnHit.Group
	case ModeBoss:
		return e.cfg.MomentumResetOnHit.Boss
	default:
		return e.cfg.MomentumResetOnHit.Single
	}
}

func (e *Engine) addMomentum(amount float64) {
	s := e.session
	s.Momentum = min(e.cfg.MomentumMax, max(0, s.Momentum+amount))
}

func (e *Engine) momentumRatio() float64 {
	if e.cfg.MomentumMax <= 0 {
		return 0
	}
	return e.session.Momentum / e.cfg.MomentumMax
}

// requestFrame asks the scheduler for the next frame of the current session.
func (e *Engine) requestFrame() {
	if e.scheduler == nil {
		return
	}
	gen := e.generation
	e.frame = e.scheduler.RequestFrame(func(dt float64) {
		if gen != e.generation {
			return
		}
		e.framePending = false
		if !e.Active() {
			return
		}
		e.Update(dt)
		if e.Active() && gen == e.generation {
			e.requestFrame()
		}
	})
	e.framePending = true
}

func (e *Engine) cancelFrame() {
	if e.scheduler != nil && e.framePending {
		e.scheduler.CancelFrame(e.frame)
	}
	e.framePending = false
}

func (e *Engine) render() {
	if e.session == nil {
		return
	}
	e.presenter.Render(e.View())
}

// View builds a render snapshot of the current session.
func (e *Engine) View() View {
	s := e.session
	if s == nil {
		return View{}
	}
	v := View{
		SessionID:   s.ID,
		Mode:        s.Mode,
		Active:      e.Active(),
		Zone:        s.ZoneKey,
		Momentum:    s.Momentum,
		MomentumMax: e.cfg.MomentumMax,
		Target:      s.Target,
		Skills:      make(map[string]float64, len(s.SkillCooldowns)),
	}
	for id, cd := range s.SkillCooldowns {
		v.Skills[id] = cd
	}
	if p := e.player(); p != nil {
		v.Player = combatantView(&p.Combatant)
		v.MP, v.MaxMP = p.MP, p.MaxMP
	}
	for _, en := range s.Enemies {
		v.Enemies = append(v.Enemies, combatantView(&en.Combatant))
	}
	if t := s.Telegraph; t != nil {
		v.Telegraph = &TelegraphView{Enemy: t.Enemy.Name, Skill: t.Skill.Name, Remaining: t.Remaining}
	}
	if s.Boss != nil {
		v.BossPhase = s.Boss.Phase()
		v.BossMechanic, v.BossWindup = s.Boss.Windup()
	}
	return v
}

type nopPresenter struct{}

func (nopPresenter) Log(string, event.Tag)                        {}
func (nopPresenter) FloatingDamage(string, int, event.DamageKind) {}
func (nopPresenter) Warn()                                        {}
func (nopPresenter) Render(View)                                  {}
func (nopPresenter) DeathScreen(DeathSummary)                     {}
