package entity

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bbq/internal/combat"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// Enemy is the single opponent of an encounter. It is created fresh from a
// template for every battle and discarded afterwards.
type Enemy struct {
	Def       *gamedata.EnemyDef // Template this enemy was spawned from
	ID        string
	Name      string
	SpriteKey string
	HP, MaxHP int
	Attack    int
	Defense   int
	Speed     int
	ExpReward int
	Shield    *combat.Shield
}

// NewEnemy spawns an enemy from a template. The template is never mutated.
func NewEnemy(def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Def:       def,
		ID:        def.ID,
		Name:      def.Name,
		SpriteKey: def.SpriteKey,
		HP:        def.HP,
		MaxHP:     def.HP,
		Attack:    def.Attack,
		Defense:   def.Defense,
		Speed:     def.Speed,
		ExpReward: def.ExpReward,
		Shield:    combat.NewShield(def.Shield, def.Weaknesses),
	}
}

// Color returns the tcell tint for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorWhite
}

// IsBroken reports whether the enemy's shield is broken.
func (e *Enemy) IsBroken() bool { return e.Shield.IsBroken() }

// EnemyView is the presentation read model of the enemy.
type EnemyView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	SpriteKey string            `json:"spriteKey"`
	Color     string            `json:"color"`
	Tint      tcell.Color       `json:"-"`
	HP        int               `json:"hp"`
	MaxHP     int               `json:"maxHp"`
	Shield    combat.ShieldView `json:"shield"`
}

// View returns the read model.
func (e *Enemy) View() EnemyView {
	return EnemyView{
		ID:        e.ID,
		Name:      e.Name,
		SpriteKey: e.SpriteKey,
		Color:     fmt.Sprintf("#%06x", e.Color().Hex()),
		Tint:      e.Color(),
		HP:        e.HP,
		MaxHP:     e.MaxHP,
		Shield:    e.Shield.View(),
	}
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetID returns the enemy's unique identifier.
func (e *Enemy) GetID() string { return e.ID }

// GetName returns the enemy's display name.
func (e *Enemy) GetName() string { return e.Name }

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// GetMaxHP returns maximum HP.
func (e *Enemy) GetMaxHP() int { return e.MaxHP }

// GetMP returns 0. Enemies have no MP.
func (e *Enemy) GetMP() int { return 0 }

// GetMaxMP returns 0. Enemies have no MP.
func (e *Enemy) GetMaxMP() int { return 0 }

// GetAttack returns attack stat.
func (e *Enemy) GetAttack() int { return e.Attack }

// GetDefense returns defense stat.
func (e *Enemy) GetDefense() int { return e.Defense }

// GetSpeed returns the ATB fill speed.
func (e *Enemy) GetSpeed() int { return e.Speed }

// IsDefending returns false. Enemies never defend.
func (e *Enemy) IsDefending() bool { return false }

// SpendMP always fails since enemies have no MP.
func (e *Enemy) SpendMP(int) bool { return false }

// RestoreMP restores nothing since enemies have no MP.
func (e *Enemy) RestoreMP(int) int { return 0 }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int { return takeDamage(&e.HP, amount) }

// Heal restores HP and returns actual amount healed.
func (e *Enemy) Heal(amount int) int {
	if !e.IsAlive() {
		return 0
	}
	return restore(&e.HP, e.MaxHP, amount)
}

// Ensure Enemy implements combat.Combatant
var _ combat.Combatant = (*Enemy)(nil)
