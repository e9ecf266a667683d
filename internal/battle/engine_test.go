package battle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elderdeep/internal/combat"
	"github.com/udisondev/elderdeep/internal/config"
	"github.com/udisondev/elderdeep/internal/data"
	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/status"
	"github.com/udisondev/elderdeep/internal/testutil"
	"github.com/udisondev/elderdeep/internal/zone"
)

type fakeGame struct {
	player *model.Player
	xp     int
	items  []string
}

func (g *fakeGame) Player() *model.Player { return g.player }
func (g *fakeGame) GainXP(amount int)     { g.xp += amount }

func (g *fakeGame) AddItem(id string) bool {
	g.items = append(g.items, id)
	return true
}

type recorder struct {
	testutil.LogRecorder
	floats  int
	warns   int
	renders int
	deaths  []DeathSummary
}

func (r *recorder) FloatingDamage(string, int, event.DamageKind) { r.floats++ }
func (r *recorder) Warn()                                        { r.warns++ }
func (r *recorder) Render(View)                                  { r.renders++ }
func (r *recorder) DeathScreen(s DeathSummary)                   { r.deaths = append(r.deaths, s) }

type cueRecorder struct {
	cues []event.Cue
}

func (a *cueRecorder) Play(c event.Cue) { a.cues = append(a.cues, c) }

type panicAudio struct{}

func (panicAudio) Play(event.Cue) { panic("speaker on fire") }

type questRecorder struct {
	ids []string
}

func (q *questRecorder) EnemyDefeated(id string) { q.ids = append(q.ids, id) }

type countingHooks struct {
	starts, ticks, ends int
}

func (h *countingHooks) OnBattleStart(zone.Arena)   { h.starts++ }
func (h *countingHooks) OnTick(zone.Arena, float64) { h.ticks++ }
func (h *countingHooks) OnBattleEnd(zone.Arena)     { h.ends++ }

type hookProvider struct {
	hooks *countingHooks
}

func (p hookProvider) Hooks(string) zone.Hooks { return p.hooks }

type fixture struct {
	engine *Engine
	game   *fakeGame
	view   *recorder
	audio  *cueRecorder
	quests *questRecorder
	hooks  *countingHooks
}

func (f *fixture) player() *model.Player { return f.game.player }

func newFixture(t *testing.T, rng combat.Rand, tune ...func(*config.Battle)) *fixture {
	t.Helper()
	cfg := config.DefaultBattle()
	for _, fn := range tune {
		fn(&cfg)
	}
	f := &fixture{
		game:   &fakeGame{player: testutil.NewPlayer()},
		view:   &recorder{},
		audio:  &cueRecorder{},
		quests: &questRecorder{},
		hooks:  &countingHooks{},
	}
	f.engine = NewEngine(cfg, Deps{
		Game:      f.game,
		Quests:    f.quests,
		Presenter: f.view,
		Audio:     f.audio,
		Zones:     hookProvider{hooks: f.hooks},
		Rand:      rng,
	})
	return f
}

func wolf() *model.EnemyTemplate {
	tpl := testutil.NewEnemyTemplate("wolf")
	tpl.Name = "Wolf"
	return tpl
}

func TestStartBattle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))

	s := f.engine.Session()
	require.NotNil(t, s)
	assert.Equal(t, StateActive, f.engine.State())
	assert.Equal(t, ModeSingle, s.Mode)
	assert.Zero(t, s.Momentum)
	assert.True(t, f.player().Cooldown.Ready(), "player starts ready")
	assert.InDelta(t, 1.0, s.Enemies[0].Cooldown.Current, 1e-9, "enemy starts at half gauge")
	assert.Equal(t, 1, f.hooks.starts)
	assert.True(t, f.view.Has("A wild Wolf appears in the forest!"))
	assert.NotZero(t, s.ID)
}

func TestStartBattle_MissingPayload(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	assert.False(t, f.engine.StartBattle(nil, zone.Forest))
	assert.False(t, f.engine.StartGroupBattle(nil))
	assert.False(t, f.engine.StartGroupBattle([]*model.EnemyTemplate{wolf(), nil}))
	assert.Nil(t, f.engine.Session())
	assert.Equal(t, StateInactive, f.engine.State())

	f.game.player = nil
	assert.False(t, f.engine.StartBattle(wolf(), zone.Forest))
	assert.Zero(t, f.hooks.starts)
}

func TestStartBattle_TemplateUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.Skills = []string{skill.VenomSpit}
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))

	en := f.engine.Session().Enemies[0]
	en.HP = 1
	en.Template.Skills[0] = "changed"
	assert.Equal(t, skill.VenomSpit, tpl.Skills[0])
	assert.Equal(t, 50, tpl.MaxHP)
	assert.InDelta(t, 8*0.4, en.SkillCooldowns[skill.VenomSpit], 1e-9, "skill cooldowns pre-charged by 60%")
}

func TestFleeChance(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.Seeded(7))
	const trials = 1000
	fled := 0
	for range trials {
		require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
		f.engine.AttemptFlee()
		if f.engine.Session().Outcome == OutcomeFled {
			fled++
		}
	}
	assert.InDelta(t, 0.5, float64(fled)/trials, 0.05)
	assert.Equal(t, 50, f.player().Gold, "fleeing never pays or costs gold")
}

func TestFlee_EndsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand().PushFloats(0.9, 0.1))
	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))

	f.engine.AttemptFlee()
	assert.True(t, f.engine.Active())
	assert.True(t, f.view.Has("You failed to run!"))

	f.engine.AttemptFlee()
	assert.False(t, f.engine.Active())
	assert.True(t, f.view.Has("You manage to run away!"))
	assert.Equal(t, StateInactive, f.engine.State())

	f.engine.AttemptFlee()
	f.engine.Update(0.05)
	f.engine.BasicAttack()
	assert.Equal(t, 1, f.hooks.ends)
	assert.Equal(t, 1, f.view.Count("You manage to run away!"))

	r, ok := f.engine.LastReport()
	require.True(t, ok)
	assert.Equal(t, OutcomeFled, r.Outcome)
	assert.Zero(t, r.Gold)
}

func TestZoneEndHook_Abandon(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	require.True(t, f.engine.StartBattle(wolf(), zone.Cave))
	require.True(t, f.engine.StartBattle(wolf(), zone.Cave))
	require.True(t, f.engine.StartGroupBattle([]*model.EnemyTemplate{wolf()}))

	assert.Equal(t, 3, f.hooks.starts)
	assert.Equal(t, 2, f.hooks.ends)
	r, ok := f.engine.LastReport()
	require.True(t, ok)
	assert.Equal(t, OutcomeAbandoned, r.Outcome)
	assert.Equal(t, StateActive, f.engine.State())
}

func TestMomentumResetOnHit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reset bool
		want  float64
	}{
		{"reset enabled", true, 0},
		{"reset disabled", false, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, testutil.NewRand(), func(c *config.Battle) {
				c.MomentumResetOnHit.Single = tt.reset
			})
			require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
			s := f.engine.Session()
			s.Momentum = 50
			en := s.Enemies[0]
			en.Cooldown.Current = en.Cooldown.Max()

			f.engine.Update(0.01)

			assert.Equal(t, 90, f.player().HP)
			assert.True(t, f.view.Has("Wolf strikes Hero for 10."))
			assert.InDelta(t, tt.want, s.Momentum, 1e-9)
		})
	}
}

func TestBasicAttack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.MaxHP = 200
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	s := f.engine.Session()

	f.engine.BasicAttack()
	assert.Equal(t, 182, s.Enemies[0].HP)
	assert.InDelta(t, 12, s.Momentum, 1e-9)
	assert.Zero(t, f.player().Cooldown.Current)
	assert.True(t, f.view.Has("Hero attacks Wolf for 18."))
	assert.Contains(t, f.audio.cues, event.CueAttack)

	// gauge empty: declined silently
	f.engine.BasicAttack()
	assert.Equal(t, 182, s.Enemies[0].HP)
}

func TestBasicAttack_BleedBonus(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.MaxHP = 200
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	en := f.engine.Session().Enemies[0]
	require.True(t, status.Apply(nil, &en.Combatant, status.Bleed))
	require.True(t, status.Apply(nil, &en.Combatant, status.Bleed))

	f.engine.BasicAttack()
	assert.Equal(t, 200-18-6, en.HP)
	assert.True(t, f.view.Has("Bleed deals 6 bonus damage!"))
}

func TestBasicAttack_StunnedPlayer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
	require.True(t, status.Apply(nil, &f.player().Combatant, status.Stun))

	f.engine.BasicAttack()
	assert.Equal(t, 50, f.engine.Session().Enemies[0].HP)
	assert.True(t, f.view.Has("Hero is stunned and cannot act."))
}

func TestUseSkill_Declined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		skillID string
		setup   func(f *fixture)
		wantLog string
	}{
		{
			name:    "unknown skill",
			skillID: "meteor",
			wantLog: "Unknown skill: meteor.",
		},
		{
			name:    "not enough MP",
			skillID: skill.PowerStrike,
			setup:   func(f *fixture) { f.player().MP = 3 },
			wantLog: "Not enough MP for Power Strike.",
		},
		{
			name:    "on cooldown",
			skillID: skill.PowerStrike,
			setup:   func(f *fixture) { f.engine.Session().SkillCooldowns[skill.PowerStrike] = 2.5 },
			wantLog: "Power Strike is on cooldown (2.5s).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, testutil.NewRand())
			require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
			if tt.setup != nil {
				tt.setup(f)
			}
			mp := f.player().MP

			f.engine.UseSkill(tt.skillID)

			assert.True(t, f.view.Has(tt.wantLog))
			assert.Equal(t, mp, f.player().MP)
			assert.Equal(t, 50, f.engine.Session().Enemies[0].HP)
			assert.True(t, f.player().Cooldown.Ready(), "declined skill keeps the gauge full")
		})
	}
}

func TestUseSkill_PowerStrike(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.MaxHP = 200
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	s := f.engine.Session()

	f.engine.UseSkill(skill.PowerStrike)

	// 20 AP + 14 base - 2 DEF
	assert.Equal(t, 200-32, s.Enemies[0].HP)
	assert.Equal(t, 35, f.player().MP)
	assert.InDelta(t, 8, s.SkillCooldowns[skill.PowerStrike], 1e-9)
	assert.InDelta(t, combat.SkillMomentumGain, s.Momentum, 1e-9)
	assert.True(t, f.view.Has("Hero uses Power Strike for 32 damage!"))
}

func TestUseSkill_GuardBuff(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))

	f.engine.UseSkill(skill.GuardingStance)

	p := f.player()
	assert.True(t, p.HasStatus(status.Guard))
	assert.InDelta(t, 0.5, p.IncomingScale, 1e-9)
	assert.Equal(t, 50, f.engine.Session().Enemies[0].HP)

	en := f.engine.Session().Enemies[0]
	en.Cooldown.Current = en.Cooldown.Max()
	f.engine.Update(0.01)
	assert.Equal(t, 95, p.HP, "guard halves the wolf's 10")
}

func TestRecoveryFactor(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.MaxHP = 500
	tpl.AttackCooldown = 100
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	s := f.engine.Session()
	p := f.player()

	f.engine.UseSkill(skill.QuickJab)
	assert.InDelta(t, 0.55, s.recovery, 1e-9)

	for range 10 {
		f.engine.Update(0.1)
	}
	assert.False(t, p.Cooldown.Ready(), "1.0s of a 1.1s recovery")

	for range 2 {
		f.engine.Update(0.1)
	}
	assert.True(t, p.Cooldown.Ready())
	assert.InDelta(t, 1, s.recovery, 1e-9)
	assert.LessOrEqual(t, p.Cooldown.Current, p.Cooldown.Max())
}

func TestUpdate_FrameDeltaCap(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.AttackCooldown = 100
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	s := f.engine.Session()

	f.engine.Update(5)
	assert.InDelta(t, 0.1, s.Elapsed, 1e-9)
	f.engine.Update(-1)
	assert.InDelta(t, 0.1, s.Elapsed, 1e-9)
}

func TestUpdate_NaNDeltaIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.AttackCooldown = 100
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	s := f.engine.Session()
	p := f.player()
	require.True(t, status.Apply(nil, &p.Combatant, status.Stun))
	p.Cooldown.Current = 0

	f.engine.Update(math.NaN())
	assert.Zero(t, s.Elapsed)
	assert.False(t, math.IsNaN(p.Cooldown.Current))

	for range 200 {
		f.engine.Update(0.05)
	}
	assert.InDelta(t, 10, s.Elapsed, 1e-6)
	assert.False(t, p.Stunned, "stun expires")
	assert.True(t, p.Cooldown.Ready(), "gauge refills after the bad frame")
	for _, en := range s.Enemies {
		assert.False(t, math.IsNaN(en.Cooldown.Current))
	}
}

func TestUpdate_MPRegen(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.AttackCooldown = 100
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	p := f.player()
	p.MP = 10

	for range 19 {
		f.engine.Update(0.1)
	}
	assert.Equal(t, 10, p.MP, "0.95 accumulated")
	f.engine.Update(0.1)
	f.engine.Update(0.1)
	assert.Equal(t, 11, p.MP)
}

func TestTelegraph(t *testing.T) {
	t.Parallel()

	newTelegraphed := func(t *testing.T) (*fixture, *model.Enemy) {
		f := newFixture(t, testutil.NewRand())
		tpl := wolf()
		tpl.Skills = []string{skill.TailSmash}
		require.True(t, f.engine.StartBattle(tpl, zone.Forest))
		en := f.engine.Session().Enemies[0]
		delete(en.SkillCooldowns, skill.TailSmash)
		en.Cooldown.Current = en.Cooldown.Max()

		f.engine.Update(0.01)
		require.NotNil(t, f.engine.Session().Telegraph)
		require.True(t, f.view.Has("Wolf coils its tail. Tail Smash incoming!"))
		return f, en
	}

	t.Run("resolves after windup", func(t *testing.T) {
		t.Parallel()

		f, en := newTelegraphed(t)
		for range 15 {
			f.engine.Update(0.1)
			en.Cooldown.Current = en.Cooldown.Max()
		}
		assert.NotNil(t, f.engine.Session().Telegraph, "1.5s of 1.6s windup")
		assert.Zero(t, f.view.Count("strikes"), "no basic attack during a windup")

		f.engine.Update(0.1)
		f.engine.Update(0.1)
		// (10 AP + 30) * 0.9
		assert.True(t, f.view.Has("Wolf uses Tail Smash for 36 damage!"))
		assert.InDelta(t, 9, en.SkillCooldowns[skill.TailSmash], 0.2)
	})

	t.Run("stunned enemy fizzles", func(t *testing.T) {
		t.Parallel()

		f, en := newTelegraphed(t)
		require.True(t, status.Apply(nil, &en.Combatant, status.Stun))
		for range 17 {
			f.engine.Update(0.1)
		}
		assert.True(t, f.view.Has("Wolf's Tail Smash fizzles."))
		assert.Nil(t, f.engine.Session().Telegraph)
		assert.Equal(t, 100, f.player().HP)
	})
}

func TestGroupRetarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	a, b, c := testutil.NewEnemyTemplate("a"), testutil.NewEnemyTemplate("b"), testutil.NewEnemyTemplate("c")
	a.MaxHP = 10
	require.True(t, f.engine.StartGroupBattleIn(zone.Portal, []*model.EnemyTemplate{a, b, c}))
	s := f.engine.Session()
	assert.Equal(t, ModeGroup, s.Mode)
	assert.True(t, f.view.Has("A group emerges from the Shadow Portal! (a, b, c)"))

	f.engine.BasicAttack()

	assert.False(t, s.Enemies[0].Alive())
	assert.Equal(t, 1, s.Target)
	assert.Equal(t, 1, f.view.Count("Target switched to b."))
	assert.True(t, f.engine.Active())

	f.engine.SetGroupTarget(0)
	assert.Equal(t, 1, s.Target, "dead enemies cannot be targeted")
	f.engine.SetGroupTarget(7)
	assert.Equal(t, 1, s.Target)
	f.engine.SetGroupTarget(2)
	assert.Equal(t, 2, s.Target)
	assert.True(t, f.view.Has("Target set to c."))
}

func TestGroupVictory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	a, b := testutil.NewEnemyTemplate("a"), testutil.NewEnemyTemplate("b_elite")
	a.MaxHP, b.MaxHP = 10, 10
	require.True(t, f.engine.StartGroupBattle([]*model.EnemyTemplate{a, b}))

	f.engine.BasicAttack()
	f.player().Cooldown.Current = f.player().Cooldown.Max()
	f.engine.BasicAttack()

	assert.False(t, f.engine.Active())
	assert.True(t, f.view.Has("Group defeated! +12 gold, +24 XP."))
	assert.Equal(t, 62, f.player().Gold)
	assert.Equal(t, 24, f.game.xp)
	assert.Equal(t, []string{"a", "b_elite"}, f.quests.ids)
}

func TestVictory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	tpl := wolf()
	tpl.MaxHP = 10
	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	p := f.player()
	p.MP = 10

	var reports []Report
	f.engine.OnOutcome(func(r Report) { reports = append(reports, r) })

	f.engine.BasicAttack()

	assert.False(t, f.engine.Active())
	assert.Equal(t, StateInactive, f.engine.State())
	assert.True(t, f.view.Has("Wolf defeated."))
	assert.True(t, f.view.Has("Victory! +6 gold, +12 XP."))
	assert.Equal(t, 56, p.Gold)
	assert.Equal(t, 12, f.game.xp)
	assert.Equal(t, 22, p.MP, "25% of max MP restored")
	assert.Equal(t, []string{"wolf"}, f.quests.ids)
	assert.Contains(t, f.audio.cues, event.CueVictory)
	assert.Equal(t, 1, f.hooks.ends)

	require.Len(t, reports, 1)
	assert.Equal(t, OutcomeVictory, reports[0].Outcome)
	assert.Equal(t, 6, reports[0].Gold)
	assert.Equal(t, 12, reports[0].XP)
	assert.Equal(t, []string{"wolf"}, reports[0].Enemies)
	assert.Equal(t, 10, reports[0].DamageDealt)
}

func TestDefeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gold     int
		wantGold int
		wantLost int
	}{
		{"penalty", 50, 45, 5},
		{"floored at zero", 3, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, testutil.NewRand())
			require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
			p := f.player()
			p.HP, p.Gold = 5, tt.gold
			en := f.engine.Session().Enemies[0]
			en.Cooldown.Current = en.Cooldown.Max()

			f.engine.Update(0.01)

			assert.False(t, f.engine.Active())
			assert.Equal(t, tt.wantGold, p.Gold)
			assert.Equal(t, 30, p.HP, "30% of max HP restored")
			require.Len(t, f.view.deaths, 1)
			assert.Equal(t, tt.wantLost, f.view.deaths[0].GoldLost)
			assert.Equal(t, []string{"Wolf"}, f.view.deaths[0].Enemies)
			assert.True(t, f.view.Has("Defeat… You limp back to town."))

			r, ok := f.engine.LastReport()
			require.True(t, ok)
			assert.Equal(t, OutcomeDefeat, r.Outcome)
			assert.Equal(t, -tt.wantLost, r.Gold)
		})
	}
}

func TestBossRewardsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	wyrm := func() *model.EnemyTemplate {
		tpl := testutil.NewEnemyTemplate("boss_elder_wyrm")
		tpl.Name = "Wyrm of Elder Deep"
		tpl.MaxHP = 10
		tpl.Boss = "elder_wyrm"
		tpl.Intro = []string{"The Deep stirs."}
		tpl.MusicKey = "elder_deep"
		return tpl
	}

	require.True(t, f.engine.StartBattle(wyrm(), "depths"))
	assert.Equal(t, ModeBoss, f.engine.Session().Mode)
	assert.True(t, f.view.Has("The Deep stirs."))
	assert.True(t, f.view.Has("The Wyrm prowls beneath the rock"))
	f.engine.BasicAttack()

	p := f.player()
	require.False(t, f.engine.Active())
	assert.True(t, p.Flag("boss_elder_wyrm_defeated"))
	assert.True(t, p.Flag("title_elder_conqueror"))
	assert.Len(t, f.game.items, 3)
	assert.Contains(t, f.audio.cues, event.CueBossMusicStart)
	assert.Contains(t, f.audio.cues, event.CueBossMusicStop)

	require.True(t, f.engine.StartBattle(wyrm(), "depths"))
	f.engine.BasicAttack()
	assert.Len(t, f.game.items, 3, "rewards are granted once")
	assert.Equal(t, 2, f.view.Count("Elder Deep falls silent."))
}

func TestAudioPanicRecovered(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	f.engine.audio = panicAudio{}
	tpl := wolf()
	tpl.MaxHP = 10

	require.True(t, f.engine.StartBattle(tpl, zone.Forest))
	assert.NotPanics(t, f.engine.BasicAttack)
	assert.Equal(t, OutcomeVictory, f.engine.Session().Outcome)
}

func TestSetConfig_DeferredWhileActive(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testutil.NewRand())
	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))

	cfg := config.DefaultBattle()
	cfg.FleeChance = 1
	f.engine.SetConfig(cfg)
	assert.InDelta(t, 0.5, f.engine.Config().FleeChance, 1e-9)

	require.True(t, f.engine.StartBattle(wolf(), zone.Forest))
	assert.InDelta(t, 1.0, f.engine.Config().FleeChance, 1e-9)
}

func TestInvariantsHold(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		f := newFixture(t, testutil.Seeded(seed), func(c *config.Battle) { c.AutoAttack = true })
		p := f.player()
		p.MaxHP, p.HP = 400, 400

		tpl := wolf()
		tpl.MaxHP = 120
		tpl.Skills = []string{skill.VenomSpit, skill.Rend, skill.ShadowBolt, skill.TailSmash}
		switch seed % 3 {
		case 0:
			require.True(t, f.engine.StartBattle(tpl, zone.Forest))
		case 1:
			require.True(t, f.engine.StartGroupBattle([]*model.EnemyTemplate{tpl, tpl, tpl}))
		case 2:
			wyrm := data.ElderWyrm()
			wyrm.MaxHP = 500
			require.True(t, f.engine.StartBattle(wyrm, zone.Depths))
			require.Equal(t, ModeBoss, f.engine.Session().Mode)
		}
		s := f.engine.Session()

		for frame := 0; frame < 3000 && f.engine.Active(); frame++ {
			if frame%7 == 0 {
				f.engine.UseSkill(skill.PowerStrike)
			}
			f.engine.Update(0.05)

			checkRange(t, "player hp", float64(p.HP), 0, float64(p.MaxHP))
			checkRange(t, "player mp", float64(p.MP), 0, float64(p.MaxMP))
			checkRange(t, "player gauge", p.Cooldown.Current, 0, p.Cooldown.Max())
			checkRange(t, "momentum", s.Momentum, 0, f.engine.Config().MomentumMax)
			for _, en := range s.Enemies {
				checkRange(t, "enemy hp", float64(en.HP), 0, float64(en.MaxHP))
				checkRange(t, "enemy gauge", en.Cooldown.Current, 0, en.Cooldown.Max())
			}
			if s.Telegraph != nil && s.Mode == ModeGroup {
				t.Fatalf("seed %d: group battles never telegraph", seed)
			}
		}
		assert.False(t, f.engine.Active(), "seed %d: battle should finish", seed)
		assert.Equal(t, 1, f.hooks.ends, "seed %d", seed)
	}
}

func checkRange(t *testing.T, what string, v, lo, hi float64) {
	t.Helper()
	if v < lo-1e-9 || v > hi+1e-9 {
		t.Fatalf("%s out of range: %v not in [%v, %v]", what, v, lo, hi)
	}
}
