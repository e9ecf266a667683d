package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elderdeep/internal/skill"
	"github.com/udisondev/elderdeep/internal/testutil"
)

func defs(t *testing.T, ids ...string) []skill.Definition {
	t.Helper()
	out := skill.EnemySkills(ids)
	require.Len(t, out, len(ids))
	return out
}

func TestChoose_NoSkillsAlwaysBasic(t *testing.T) {
	t.Parallel()
	for seed := range uint64(50) {
		s := NewSelector(testutil.Seeded(seed))
		for range 20 {
			assert.True(t, s.Choose(Actor{Name: "Slime"}).Basic())
		}
	}
}

func TestChoose_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		actor Actor
	}{
		{
			name:  "telegraphing",
			actor: Actor{Skills: defs(t, skill.TailSmash), Telegraphing: true},
		},
		{
			name: "all on cooldown",
			actor: Actor{
				Skills:    defs(t, skill.TailSmash, skill.VenomSpit),
				Cooldowns: map[string]float64{skill.TailSmash: 2, skill.VenomSpit: 0.1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(testutil.NewRand().PushFloats(0, 0, 0))
			assert.True(t, s.Choose(tt.actor).Basic())
		})
	}
}

func TestChoose_HighPriorityWins(t *testing.T) {
	t.Parallel()
	s := NewSelector(testutil.NewRand())
	d := s.Choose(Actor{Skills: defs(t, skill.VenomSpit, skill.TailSmash, skill.Rend)})

	require.False(t, d.Basic())
	assert.Equal(t, skill.TailSmash, d.Skill.ID)
}

func TestChoose_MediumAndFallback(t *testing.T) {
	t.Parallel()
	actor := Actor{Skills: defs(t, skill.Rend, skill.EmberLash)}

	// 0.5 < 0.6 picks medium
	d := NewSelector(testutil.NewRand().PushFloats(0.5)).Choose(actor)
	require.False(t, d.Basic())
	assert.Equal(t, skill.EmberLash, d.Skill.ID)

	// medium roll fails, any-skill roll succeeds
	r := testutil.NewRand().PushFloats(0.7, 0.1).PushInts(0)
	d = NewSelector(r).Choose(actor)
	require.False(t, d.Basic())
	assert.Equal(t, skill.Rend, d.Skill.ID)

	// both rolls fail
	d = NewSelector(testutil.NewRand().PushFloats(0.7, 0.5)).Choose(actor)
	assert.True(t, d.Basic())
}

func TestChoose_Distribution(t *testing.T) {
	t.Parallel()
	s := NewSelector(testutil.Seeded(1))

	lowOnly := Actor{Skills: defs(t, skill.Rend)}
	mediumOnly := Actor{Skills: defs(t, skill.VenomSpit)}

	const n = 20000
	lowHits, mediumHits := 0, 0
	for range n {
		if !s.Choose(lowOnly).Basic() {
			lowHits++
		}
		if !s.Choose(mediumOnly).Basic() {
			mediumHits++
		}
	}

	// low: 30%; medium: 60% + 40%*30% = 72%
	assert.InDelta(t, 0.30, float64(lowHits)/n, 0.02)
	assert.InDelta(t, 0.72, float64(mediumHits)/n, 0.02)
}

func TestChoose_UniformAmongHigh(t *testing.T) {
	t.Parallel()
	s := NewSelector(testutil.Seeded(9))
	actor := Actor{Skills: defs(t, skill.TailSmash, skill.StoneSlam)}

	counts := map[string]int{}
	for range 10000 {
		counts[s.Choose(actor).Skill.ID]++
	}
	assert.InDelta(t, 5000, counts[skill.TailSmash], 300)
	assert.InDelta(t, 5000, counts[skill.StoneSlam], 300)
}
