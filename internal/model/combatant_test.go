package model

import "testing"

func TestCombatant_LoseHP(t *testing.T) {
	tests := []struct {
		name     string
		hp       int
		amount   int
		wantHP   int
		wantLost int
	}{
		{name: "regular", hp: 50, amount: 20, wantHP: 30, wantLost: 20},
		{name: "overkill clamps to zero", hp: 10, amount: 25, wantHP: 0, wantLost: 10},
		{name: "negative ignored", hp: 10, amount: -5, wantHP: 10, wantLost: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Combatant{HP: tt.hp, MaxHP: 100}
			lost := c.LoseHP(tt.amount)
			if c.HP != tt.wantHP {
				t.Errorf("HP = %d, want %d", c.HP, tt.wantHP)
			}
			if lost != tt.wantLost {
				t.Errorf("lost = %d, want %d", lost, tt.wantLost)
			}
		})
	}
}

func TestCombatant_TakeHitScaled(t *testing.T) {
	c := &Combatant{HP: 100, MaxHP: 100, IncomingScale: 0.5}

	if lost := c.TakeHit(9); lost != 5 {
		t.Errorf("TakeHit(9) with half scale = %d, want 5", lost)
	}
	if lost := c.TakeHit(1); lost != 1 {
		t.Errorf("scaled hit must stay at least 1, got %d", lost)
	}

	c.IncomingScale = 0
	if lost := c.TakeHit(7); lost != 7 {
		t.Errorf("unset scale must not change damage, got %d", lost)
	}
}

func TestCombatant_Heal(t *testing.T) {
	c := &Combatant{HP: 90, MaxHP: 100}
	c.Heal(50)
	if c.HP != 100 {
		t.Errorf("HP = %d, want 100", c.HP)
	}
}

func TestCooldown(t *testing.T) {
	cd := Cooldown{Base: 2, Factor: 1}
	if cd.Ready() {
		t.Fatal("empty gauge must not be ready")
	}

	cd.Advance(1.5, cd.Max())
	cd.Advance(1.5, cd.Max())
	if cd.Current != 2 || !cd.Ready() {
		t.Errorf("gauge = %v, want full at 2", cd.Current)
	}

	cd.Factor = 1.25
	if cd.Max() != 2.5 {
		t.Errorf("Max() = %v, want 2.5", cd.Max())
	}
	if cd.Ready() {
		t.Error("slowed gauge must need more time")
	}

	cd.Current = 3
	cd.Clamp()
	if cd.Current != 2.5 {
		t.Errorf("Clamp() = %v, want 2.5", cd.Current)
	}

	if (Cooldown{Base: 3}).Max() != 3 {
		t.Error("zero factor must mean unscaled")
	}
}

func TestResistances(t *testing.T) {
	r := Resistances{
		Immune: []StatusID{"stun"},
		Resist: map[StatusID]float64{"burn": 0.6, "bad": 1.5},
	}

	if !r.IsImmune("stun") || r.IsImmune("burn") {
		t.Error("immunity lookup mismatch")
	}
	if c, ok := r.Coefficient("burn"); !ok || c != 0.6 {
		t.Errorf("Coefficient(burn) = %v, %v", c, ok)
	}
	if _, ok := r.Coefficient("bad"); ok {
		t.Error("coefficient above 1 must be ignored")
	}

	clone := r.Clone()
	clone.Resist["burn"] = 0.1
	clone.Immune[0] = "poison"
	if r.Resist["burn"] != 0.6 || r.Immune[0] != "stun" {
		t.Error("Clone must not share storage")
	}
}

func TestCombatant_ResetBattleState(t *testing.T) {
	c := &Combatant{
		Statuses:      []*StatusInstance{{ID: "burn", Remaining: 3}},
		Stunned:       true,
		BleedStacks:   2,
		IncomingScale: 0.5,
		Cooldown:      Cooldown{Current: 2.4, Base: 2, Factor: 1.25},
	}
	c.ResetBattleState()

	if len(c.Statuses) != 0 || c.Stunned || c.BleedStacks != 0 {
		t.Error("transient effects must be cleared")
	}
	if c.IncomingScale != 1 || c.Cooldown.Factor != 1 {
		t.Error("scales must be restored")
	}
	if c.Cooldown.Current != 2 {
		t.Errorf("gauge = %v, want clamped to 2", c.Cooldown.Current)
	}
}
