package model

import "testing"

func TestEnemyTemplate_BaseCooldown(t *testing.T) {
	tests := []struct {
		name  string
		cd    float64
		speed float64
		want  float64
	}{
		{name: "no speed", cd: 2.6, want: 2.6},
		{name: "fast", cd: 2, speed: 2, want: 1},
		{name: "floor", cd: 1, speed: 4, want: 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := &EnemyTemplate{AttackCooldown: tt.cd, AttackSpeed: tt.speed}
			if got := tpl.BaseCooldown(); got != tt.want {
				t.Errorf("BaseCooldown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEnemy_DoesNotShareTemplate(t *testing.T) {
	tpl := &EnemyTemplate{
		ID: "wolf", Name: "Wolf", MaxHP: 40, AttackPower: 9,
		AttackCooldown: 2, Skills: []string{"rend"},
		Resistances: Resistances{Resist: map[StatusID]float64{"bleed": 0.5}},
	}

	e := NewEnemy(tpl)
	if e.HP != 40 || e.MaxHP != 40 || e.Cooldown.Base != 2 {
		t.Fatalf("unexpected enemy %+v", e.Combatant)
	}

	e.Template.Skills[0] = "bite"
	e.Resistances.Resist["bleed"] = 0.9
	e.HP = 1
	if tpl.Skills[0] != "rend" || tpl.Resistances.Resist["bleed"] != 0.5 || tpl.MaxHP != 40 {
		t.Error("battle copy leaked into the template")
	}

	if !e.SkillReady("rend") {
		t.Error("unused skill must be ready")
	}
	e.SkillCooldowns["rend"] = 3
	snap := e.CooldownsSnapshot()
	snap["rend"] = 0
	if e.SkillReady("rend") {
		t.Error("snapshot must be a copy")
	}
}
