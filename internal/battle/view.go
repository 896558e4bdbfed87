package battle

import (
	"github.com/samdwyer/bbq/internal/entity"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// MemberView is the read model of one party member.
type MemberView struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	WeaponType gamedata.DamageType `json:"weaponType"`
	AbilityID  string              `json:"abilityId"`
	HP         int                 `json:"hp"`
	MaxHP      int                 `json:"maxHp"`
	MP         int                 `json:"mp"`
	MaxMP      int                 `json:"maxMp"`
	Level      int                 `json:"level"`
	ATB        float64             `json:"atb"`
	Gauge      string              `json:"gauge"`
	Defending  bool                `json:"defending"`
	Acted      bool                `json:"acted"`
}

// View is a point-in-time read model of the whole battle.
type View struct {
	SessionID  string           `json:"sessionId"`
	Phase      string           `json:"phase"`
	Turn       int              `json:"turn"`
	Tick       int              `json:"tick"`
	ActiveID   string           `json:"activeId,omitempty"`
	Members    []MemberView     `json:"members"`
	Enemy      entity.EnemyView `json:"enemy"`
	EnemyATB   float64          `json:"enemyAtb"`
	EnemyGauge string           `json:"enemyGauge"`
}

// View returns the current read model.
func (s *Session) View() View {
	v := View{
		SessionID:  s.id,
		Phase:      s.Phase().String(),
		Turn:       s.sched.Turn(),
		Tick:       s.sched.Tick(),
		Members:    make([]MemberView, len(s.party.Members)),
		Enemy:      s.enemy.View(),
		EnemyATB:   s.sched.ATBPercent(EnemySlot),
		EnemyGauge: s.sched.State(EnemySlot).String(),
	}
	if m := s.Active(); m != nil {
		v.ActiveID = m.ID
	} else if s.active == EnemySlot {
		v.ActiveID = s.enemy.ID
	}
	for i, m := range s.party.Members {
		v.Members[i] = MemberView{
			ID:         m.ID,
			Name:       m.Name,
			WeaponType: m.WeaponType,
			AbilityID:  m.AbilityID,
			HP:         m.HP,
			MaxHP:      m.MaxHP,
			MP:         m.MP,
			MaxMP:      m.MaxMP,
			Level:      m.Level,
			ATB:        s.sched.ATBPercent(i),
			Gauge:      s.sched.State(i).String(),
			Defending:  m.Defending,
			Acted:      s.sched.Acted(i),
		}
	}
	return v
}
