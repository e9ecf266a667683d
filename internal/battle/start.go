package battle

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/elderdeep/internal/boss"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
	"github.com/udisondev/elderdeep/internal/zone"
)

// StartBattle starts a single-enemy battle, or a boss battle when the
// template names a boss script. Returns false when nothing was started.
func (e *Engine) StartBattle(tpl *model.EnemyTemplate, zoneKey string) bool {
	p := e.player()
	if p == nil || tpl == nil {
		slog.Error("cannot start battle", "player", p != nil, "enemy", tpl != nil)
		return false
	}

	e.abandon()
	e.applyPendingConfig()

	mode := ModeSingle
	var machine *boss.Machine
	if tpl.Boss != "" {
		if script, ok := boss.Lookup(tpl.Boss); ok {
			mode = ModeBoss
			machine = boss.New(script, e.rng)
		} else {
			slog.Warn("unknown boss script, running as a regular enemy", "boss", tpl.Boss, "enemy", tpl.ID)
		}
	}

	en := e.spawn(tpl)
	en.Cooldown.Current = en.Cooldown.Max() * e.cfg.EnemyCooldownStart

	s := e.newSession(p, mode, zoneKey, []*model.Enemy{en})
	s.Boss = machine

	if mode == ModeBoss {
		for _, line := range tpl.Intro {
			e.log(line, event.TagBoss)
		}
		if tpl.MusicKey != "" {
			slog.Debug("boss music", "key", tpl.MusicKey)
			e.cue(event.CueBossMusicStart)
		}
	} else {
		e.log(fmt.Sprintf("A wild %s appears in the %s!", en.Name, zoneKey), event.TagInfo)
	}

	e.begin(s)
	return true
}

// StartGroupBattle starts a group battle in the configured group zone.
func (e *Engine) StartGroupBattle(tpls []*model.EnemyTemplate) bool {
	return e.StartGroupBattleIn(e.cfg.GroupZone, tpls)
}

// StartGroupBattleIn starts a group battle in zoneKey.
func (e *Engine) StartGroupBattleIn(zoneKey string, tpls []*model.EnemyTemplate) bool {
	p := e.player()
	if p == nil || len(tpls) == 0 {
		slog.Error("cannot start group battle", "player", p != nil, "enemies", len(tpls))
		return false
	}
	for i, tpl := range tpls {
		if tpl == nil {
			slog.Error("cannot start group battle: missing enemy", "index", i)
			return false
		}
	}

	e.abandon()
	e.applyPendingConfig()

	enemies := make([]*model.Enemy, 0, len(tpls))
	for _, tpl := range tpls {
		en := e.spawn(tpl)
		// Разбрасываем стартовые заряды, чтобы группа не била залпом.
		en.Cooldown.Current = en.Cooldown.Max() * e.rng.Float64()
		enemies = append(enemies, en)
	}

	s := e.newSession(p, ModeGroup, zoneKey, enemies)
	names := strings.Join(s.enemyNames(), ", ")
	if zoneKey == zone.Portal {
		e.log(fmt.Sprintf("A group emerges from the Shadow Portal! (%s)", names), event.TagInfo)
	} else {
		e.log(fmt.Sprintf("A group of foes surrounds you in the %s! (%s)", zoneKey, names), event.TagInfo)
	}

	e.begin(s)
	return true
}

// spawn builds a live enemy with pre-charged skill cooldowns.
func (e *Engine) spawn(tpl *model.EnemyTemplate) *model.Enemy {
	en := model.NewEnemy(tpl)
	for _, id := range tpl.Skills {
		def, ok := skill.Enemy(id)
		if !ok {
			slog.Warn("unknown enemy skill", "skill", id, "enemy", tpl.ID)
			continue
		}
		en.SkillCooldowns[id] = def.Cooldown * (1 - e.cfg.EnemySkillPrecharge)
	}
	return en
}

func (e *Engine) newSession(p *model.Player, mode Mode, zoneKey string, enemies []*model.Enemy) *Session {
	status.Clear(&p.Combatant)
	p.ResetBattleState()
	p.Cooldown = model.Cooldown{Base: p.BaseAttackCooldown(), Factor: 1}
	p.Cooldown.Current = p.Cooldown.Max()

	return &Session{
		ID:             uuid.New(),
		Mode:           mode,
		ZoneKey:        zoneKey,
		Enemies:        enemies,
		SkillCooldowns: make(map[string]float64),
		Mods:           p.Modifiers,
		StartedAt:      time.Now(),
		recovery:       1,
		hooks:          e.zoneHooks(zoneKey),
	}
}

// begin activates s: lifecycle, zone start hook, first frame.
func (e *Engine) begin(s *Session) {
	e.generation++
	e.session = s
	e.transition(evStart)

	s.hooks.OnBattleStart(e.arena())
	if s.Boss != nil {
		s.Boss.EvaluatePhase(e.arena())
	}

	slog.Info("battle started",
		"session", s.ID,
		"mode", s.Mode,
		"zone", s.ZoneKey,
		"enemies", len(s.Enemies))

	e.render()
	e.requestFrame()
}
