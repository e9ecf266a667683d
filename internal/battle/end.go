package battle

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/status"
)

// bossReward is a one-time reward gated by a defeated flag.
type bossReward struct {
	Flag  string
	Items []string
	Flags []string
	Line  string
	Tag   event.Tag
}

var bossRewards = map[string]bossReward{
	"boss_cave_wyrm": {
		Flag:  "boss_cave_wyrm_defeated",
		Items: []string{"wyrm_fang_blade", "wyrm_scale_armor"},
		Line:  "You felled the Cave Wyrm! Its fang and scales seem valuable.",
		Tag:   event.TagInfo,
	},
	"boss_elder_wyrm": {
		Flag:  "boss_elder_wyrm_defeated",
		Items: []string{"elder_wyrmfang_blade", "molten_scale_carapace", "elder_molten_core"},
		Flags: []string{"title_elder_conqueror"},
		Line:  "Elder Deep falls silent. A new title is yours.",
		Tag:   event.TagBoss,
	},
}

// abandon ends a running session before a new one starts.
func (e *Engine) abandon() {
	if e.Active() {
		slog.Info("battle abandoned", "session", e.session.ID)
		e.end(OutcomeAbandoned)
	}
}

// end finishes the session exactly once.
func (e *Engine) end(outcome Outcome) {
	s := e.session
	if s == nil || s.Outcome != OutcomeNone {
		return
	}
	s.Outcome = outcome
	e.cancelFrame()
	e.generation++

	p := e.player()
	switch outcome {
	case OutcomeVictory:
		e.rewardVictory(s, p)
	case OutcomeDefeat:
		e.applyDefeat(s, p)
	}

	s.hooks.OnBattleEnd(e.arena())
	s.Telegraph = nil
	s.Momentum = 0
	status.Clear(&p.Combatant)
	p.ResetBattleState()

	if s.Mode == ModeBoss && s.Enemies[0].Template.MusicKey != "" {
		e.cue(event.CueBossMusicStop)
	}

	switch outcome {
	case OutcomeVictory:
		e.transition(evWin)
	case OutcomeDefeat:
		e.transition(evLose)
	case OutcomeFled:
		e.transition(evFlee)
	case OutcomeAbandoned:
		e.transition(evAbandon)
	}
	if outcome != OutcomeAbandoned {
		e.transition(evReset)
	}

	report := e.report(s)
	e.last = &report
	slog.Info("battle ended",
		"session", s.ID,
		"mode", s.Mode,
		"outcome", outcome,
		"elapsed", s.Elapsed,
		"gold", report.Gold,
		"xp", report.XP)

	e.render()
	for _, fn := range e.listeners {
		fn(report)
	}
}

func (e *Engine) rewardVictory(s *Session, p *model.Player) {
	for _, en := range s.Enemies {
		s.gold += en.Template.GoldReward
		s.xp += en.Template.XPReward
	}
	p.Gold += s.gold
	if e.game != nil {
		e.game.GainXP(s.xp)
	}

	if s.Mode == ModeGroup {
		e.log(fmt.Sprintf("Group defeated! +%d gold, +%d XP.", s.gold, s.xp), event.TagVictory)
	} else {
		e.log(fmt.Sprintf("Victory! +%d gold, +%d XP.", s.gold, s.xp), event.TagVictory)
	}
	e.cue(event.CueVictory)

	if e.quests != nil {
		for _, en := range s.Enemies {
			e.quests.EnemyDefeated(en.Template.ID)
		}
	}

	p.RestoreMP(int(math.Floor(float64(p.MaxMP) * e.cfg.VictoryMPRestore)))

	if s.Mode != ModeGroup {
		e.grantBossReward(p, s.Enemies[0].Template.ID)
	}
}

func (e *Engine) grantBossReward(p *model.Player, enemyID string) {
	r, ok := bossRewards[enemyID]
	if !ok {
		return
	}
	if !p.Flag(r.Flag) {
		p.SetFlag(r.Flag)
		for _, f := range r.Flags {
			p.SetFlag(f)
		}
		for _, id := range r.Items {
			if e.game == nil || !e.game.AddItem(id) {
				slog.Warn("boss reward item not granted", "item", id, "boss", enemyID)
			}
		}
		slog.Info("boss reward granted", "boss", enemyID, "items", len(r.Items))
	}
	e.log(r.Line, r.Tag)
}

func (e *Engine) applyDefeat(s *Session, p *model.Player) {
	e.cue(event.CueDefeat)
	e.log("Defeat… You limp back to town.", event.TagDefeat)

	lost := min(p.Gold, e.cfg.DefeatGoldPenalty)
	p.Gold -= lost
	s.gold = -lost
	p.HP = max(1, int(math.Floor(float64(p.MaxHP)*e.cfg.DefeatHPRestore)))

	e.presenter.DeathScreen(DeathSummary{
		Enemies:     s.enemyNames(),
		Zone:        s.ZoneKey,
		Level:       p.Level,
		GoldLost:    lost,
		Elapsed:     s.Elapsed,
		DamageDealt: s.DamageDealt,
		DamageTaken: s.DamageTaken,
	})
}

func (e *Engine) report(s *Session) Report {
	r := Report{
		SessionID:   s.ID,
		Mode:        s.Mode,
		Outcome:     s.Outcome,
		Zone:        s.ZoneKey,
		Enemies:     s.enemyIDs(),
		Gold:        s.gold,
		XP:          s.xp,
		Elapsed:     s.Elapsed,
		DamageDealt: s.DamageDealt,
		DamageTaken: s.DamageTaken,
		StartedAt:   s.StartedAt,
		EndedAt:     time.Now(),
	}
	if s.Boss != nil {
		r.BossPhase = s.Boss.Phase()
	}
	return r
}
