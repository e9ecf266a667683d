package main

import (
	"log/slog"

	"github.com/udisondev/elderdeep/internal/battle"
	"github.com/udisondev/elderdeep/internal/event"
)

// presenter prints the battle to the structured log.
type presenter struct {
	frames int
}

func (p *presenter) Log(text string, tag event.Tag) {
	slog.Info(text, "tag", tag)
}

func (p *presenter) FloatingDamage(target string, amount int, kind event.DamageKind) {
	slog.Debug("damage", "target", target, "amount", amount, "kind", kind)
}

func (p *presenter) Warn() {
	slog.Debug("screen shake")
}

func (p *presenter) Render(v battle.View) {
	p.frames++
	// раз в секунду при 60 fps
	if p.frames%60 != 0 {
		return
	}
	slog.Debug("frame",
		"session", v.SessionID,
		"hp", v.Player.HP,
		"mp", v.MP,
		"momentum", v.Momentum,
		"target", v.Target,
		"boss_phase", v.BossPhase)
}

func (p *presenter) DeathScreen(s battle.DeathSummary) {
	slog.Warn("player defeated",
		"enemies", s.Enemies,
		"zone", s.Zone,
		"level", s.Level,
		"gold_lost", s.GoldLost,
		"elapsed", s.Elapsed,
		"damage_dealt", s.DamageDealt,
		"damage_taken", s.DamageTaken)
}
