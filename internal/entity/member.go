// Package entity provides the battle participants: party members and the
// encounter enemy.
package entity

import (
	"github.com/samdwyer/bbq/internal/combat"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// Member is the battle working copy of one party character. The enduring
// record lives in the party store and is copied in and out around a battle.
type Member struct {
	ID              string              // Character id (e.g., "torikun")
	Name            string              // Display name
	SpriteKey       string              // Opaque to the battle core
	BattleSpriteKey string              // Opaque to the battle core
	WeaponType      gamedata.DamageType // Damage type of basic attacks
	AbilityID       string              // The one ability this member can use

	HP, MaxHP int
	MP, MaxMP int
	Attack    int
	Defense   int
	Speed     int
	Level     int
	EXP       int

	Defending bool
}

// NewMember creates a working copy from a character definition and the
// character's current stats.
func NewMember(def *gamedata.CharacterDef, stats gamedata.Stats) *Member {
	m := &Member{
		ID:              def.ID,
		Name:            def.Name,
		SpriteKey:       def.SpriteKey,
		BattleSpriteKey: def.BattleSpriteKey,
		WeaponType:      def.DefaultWeapon,
		AbilityID:       def.AbilityID,
	}
	m.SetStats(stats)
	return m
}

// SetStats overwrites the member's numbers, clamping HP and MP into range.
func (m *Member) SetStats(s gamedata.Stats) {
	m.MaxHP = s.MaxHP
	m.MaxMP = s.MaxMP
	m.HP = clamp(s.HP, 0, s.MaxHP)
	m.MP = clamp(s.MP, 0, s.MaxMP)
	m.Attack = s.Attack
	m.Defense = s.Defense
	m.Speed = s.Speed
	m.Level = s.Level
	m.EXP = s.EXP
}

// Stats returns the member's numbers as a stat record.
func (m *Member) Stats() gamedata.Stats {
	return gamedata.Stats{
		HP:      m.HP,
		MaxHP:   m.MaxHP,
		MP:      m.MP,
		MaxMP:   m.MaxMP,
		Attack:  m.Attack,
		Defense: m.Defense,
		Speed:   m.Speed,
		Level:   m.Level,
		EXP:     m.EXP,
	}
}

// Clone returns an independent copy.
func (m *Member) Clone() *Member {
	c := *m
	return &c
}

// SetDefending sets or clears the defend stance.
func (m *Member) SetDefending(on bool) { m.Defending = on }

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetID returns the character id.
func (m *Member) GetID() string { return m.ID }

// GetName returns the member's name.
func (m *Member) GetName() string { return m.Name }

// IsAlive returns true if the member has HP remaining.
func (m *Member) IsAlive() bool { return m.HP > 0 }

// GetHP returns current HP.
func (m *Member) GetHP() int { return m.HP }

// GetMaxHP returns maximum HP.
func (m *Member) GetMaxHP() int { return m.MaxHP }

// GetMP returns current MP.
func (m *Member) GetMP() int { return m.MP }

// GetMaxMP returns maximum MP.
func (m *Member) GetMaxMP() int { return m.MaxMP }

// GetAttack returns attack stat.
func (m *Member) GetAttack() int { return m.Attack }

// GetDefense returns defense stat.
func (m *Member) GetDefense() int { return m.Defense }

// GetSpeed returns speed stat.
func (m *Member) GetSpeed() int { return m.Speed }

// IsDefending reports whether the member is in the defend stance.
func (m *Member) IsDefending() bool { return m.Defending }

// TakeDamage reduces HP and returns actual damage taken.
func (m *Member) TakeDamage(amount int) int {
	actual := takeDamage(&m.HP, amount)
	if m.HP == 0 {
		m.Defending = false
	}
	return actual
}

// Heal restores HP and returns actual amount healed. The dead cannot be healed.
func (m *Member) Heal(amount int) int {
	if !m.IsAlive() {
		return 0
	}
	return restore(&m.HP, m.MaxHP, amount)
}

// SpendMP reduces MP and returns false if insufficient.
func (m *Member) SpendMP(amount int) bool {
	if amount < 0 || m.MP < amount {
		return false
	}
	m.MP -= amount
	return true
}

// RestoreMP restores MP and returns actual amount restored.
func (m *Member) RestoreMP(amount int) int {
	if !m.IsAlive() {
		return 0
	}
	return restore(&m.MP, m.MaxMP, amount)
}

// Ensure Member implements combat.Combatant
var _ combat.Combatant = (*Member)(nil)

func takeDamage(hp *int, amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > *hp {
		actual = *hp
	}
	*hp -= actual
	return actual
}

func restore(cur *int, max, amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if *cur+actual > max {
		actual = max - *cur
	}
	if actual < 0 {
		actual = 0
	}
	*cur += actual
	return actual
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
