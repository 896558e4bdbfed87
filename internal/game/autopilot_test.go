package game

import (
	"testing"

	"github.com/samdwyer/bbq/internal/battle"
	"github.com/samdwyer/bbq/internal/combat"
)

func TestAutopilotChoose(t *testing.T) {
	ap := NewAutopilot(testCatalog.Abilities)

	healthy := func(id, ability string, mp int) battle.MemberView {
		return battle.MemberView{ID: id, AbilityID: ability, HP: 100, MaxHP: 100, MP: mp}
	}
	hurt := battle.MemberView{ID: "daichan", AbilityID: "tatakiwaru", HP: 10, MaxHP: 80}

	tests := []struct {
		name    string
		members []battle.MemberView
		actor   int
		broken  bool
		want    battle.Intent
	}{
		{"attack by default", []battle.MemberView{healthy("torikun", "zenryoku", 6)}, 0, false, battle.Attack()},
		{"spend spare MP", []battle.MemberView{healthy("torikun", "zenryoku", 20)}, 0, false, battle.Skill("zenryoku")},
		{"burst when broken", []battle.MemberView{healthy("torikun", "zenryoku", 5)}, 0, true, battle.Skill("zenryoku")},
		{"shield breaker", []battle.MemberView{healthy("daichan", "tatakiwaru", 6)}, 0, false, battle.Skill("tatakiwaru")},
		{"out of MP", []battle.MemberView{healthy("daichan", "tatakiwaru", 5)}, 0, false, battle.Attack()},
		{"healer heals", []battle.MemberView{healthy("taisa", "inoru", 30), hurt}, 0, false, battle.Skill("inoru")},
		{"potion when no healer MP", []battle.MemberView{healthy("taisa", "inoru", 2), hurt}, 0, false, battle.Item("potion").On("daichan")},
		{"dead allies ignored", []battle.MemberView{healthy("torikun", "zenryoku", 6), {ID: "x", HP: 0, MaxHP: 50}}, 0, false, battle.Attack()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := battle.View{Members: tt.members}
			v.Enemy.Shield = combat.ShieldView{Broken: tt.broken}
			if got := ap.Choose(v, tt.members[tt.actor]); got != tt.want {
				t.Errorf("Choose() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
