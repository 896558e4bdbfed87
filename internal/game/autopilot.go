package game

import (
	"github.com/samdwyer/bbq/internal/battle"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// Policy picks a command for the member whose turn it is.
type Policy interface {
	Choose(v battle.View, member battle.MemberView) battle.Intent
}

// Autopilot is a simple rule-based policy for headless play.
type Autopilot struct {
	Abilities *gamedata.AbilityRegistry
	// HealBelow is the HP fraction under which an ally gets healed.
	HealBelow float64
	// HealItem is used when the member has no healing ability to spare.
	HealItem string
}

// NewAutopilot returns an autopilot with default thresholds.
func NewAutopilot(abilities *gamedata.AbilityRegistry) *Autopilot {
	return &Autopilot{Abilities: abilities, HealBelow: 0.3, HealItem: "potion"}
}

// Choose heals a badly hurt ally first, then spends MP on the member's
// ability when it pays off, and otherwise attacks.
func (a *Autopilot) Choose(v battle.View, m battle.MemberView) battle.Intent {
	ab := a.Abilities.GetByID(m.AbilityID)
	affordable := ab != nil && m.MP >= ab.MPCost

	if hurt, ok := a.mostHurt(v); ok {
		if affordable && ab.EffectType == gamedata.EffectHealHP {
			return battle.Skill(ab.ID)
		}
		if a.HealItem != "" {
			return battle.Item(a.HealItem).On(hurt.ID)
		}
	}

	if affordable && ab.EffectType.IsOffensive() {
		shield := v.Enemy.Shield
		switch {
		case shield.Broken:
			return battle.Skill(ab.ID)
		case ab.ShieldDamage > 0:
			return battle.Skill(ab.ID)
		case m.MP >= 2*ab.MPCost:
			return battle.Skill(ab.ID)
		}
	}
	return battle.Attack()
}

func (a *Autopilot) mostHurt(v battle.View) (battle.MemberView, bool) {
	var pick battle.MemberView
	found := false
	lowest := a.HealBelow
	for _, m := range v.Members {
		if m.HP <= 0 || m.MaxHP == 0 {
			continue
		}
		if frac := float64(m.HP) / float64(m.MaxHP); frac < lowest {
			lowest = frac
			pick = m
			found = true
		}
	}
	return pick, found
}
