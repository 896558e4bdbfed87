package battle

import (
	"github.com/google/uuid"

	"github.com/samdwyer/bbq/internal/combat"
	"github.com/samdwyer/bbq/internal/entity"
)

// EventKind identifies what happened.
type EventKind string

// Event kinds.
const (
	EventBattleStart    EventKind = "battle_start"
	EventTurnStart      EventKind = "turn_start"
	EventAttack         EventKind = "attack"
	EventSkill          EventKind = "skill"
	EventItem           EventKind = "item"
	EventDefend         EventKind = "defend"
	EventEscape         EventKind = "escape"
	EventEnemyAttack    EventKind = "enemy_attack"
	EventEnemyStunned   EventKind = "enemy_stunned"
	EventEnemyRecovered EventKind = "enemy_recovered"
	EventRoundEnd       EventKind = "round_end"
	EventBattleEnd      EventKind = "battle_end"
)

// EffectKind is what an effect did to its target.
type EffectKind string

// Effect kinds.
const (
	EffectDamage EffectKind = "damage"
	EffectHealHP EffectKind = "heal_hp"
	EffectHealMP EffectKind = "heal_mp"
)

// Effect is the result of an action on one target.
type Effect struct {
	TargetID    string     `json:"targetId"`
	Kind        EffectKind `json:"kind"`
	Magnitude   int        `json:"magnitude"`
	IsCritical  bool       `json:"isCritical,omitempty"`
	ResultingHP int        `json:"resultingHp"`
	ResultingMP int        `json:"resultingMp"`
	Died        bool       `json:"died,omitempty"`
}

// Event carries everything a presentation layer needs to animate one step
// without redoing any combat math.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Turn      int       `json:"turn"`
	Tick      int       `json:"tick"`
	ActorID   string    `json:"actorId,omitempty"`
	AbilityID string    `json:"abilityId,omitempty"`
	ItemID    string    `json:"itemId,omitempty"`
	Effects   []Effect  `json:"effects,omitempty"`
	MPSpent   int       `json:"mpSpent,omitempty"`

	IsWeaknessHit    bool               `json:"isWeaknessHit,omitempty"`
	WeaknessRevealed bool               `json:"weaknessRevealed,omitempty"`
	ShieldLost       int                `json:"shieldLost,omitempty"`
	IsShieldBroken   bool               `json:"isShieldBroken,omitempty"`
	Shield           *combat.ShieldView `json:"shield,omitempty"`
	Enemy            *entity.EnemyView  `json:"enemy,omitempty"`

	Escaped bool    `json:"escaped,omitempty"`
	Outcome Outcome `json:"outcome,omitempty"`
	Message string  `json:"message"`
}

func newEvent(kind EventKind, turn, tick int) *Event {
	return &Event{
		ID:   uuid.NewString(),
		Kind: kind,
		Turn: turn,
		Tick: tick,
	}
}

// Target returns the first effect's target, or "" when there is none.
func (e *Event) Target() string {
	if len(e.Effects) == 0 {
		return ""
	}
	return e.Effects[0].TargetID
}

// TotalMagnitude sums the magnitude of all effects.
func (e *Event) TotalMagnitude() int {
	total := 0
	for _, fx := range e.Effects {
		total += fx.Magnitude
	}
	return total
}

func (e *Event) anyCritical() bool {
	for _, fx := range e.Effects {
		if fx.IsCritical {
			return true
		}
	}
	return false
}
