// Package combat provides the battle math: the combatant contract, the
// damage and heal resolver, and the per-enemy shield/break tracker.
package combat

// Combatant is the interface for any entity that can participate in battle.
// Both party members and the encounter enemy implement this interface.
type Combatant interface {
	// Identity
	GetID() string
	GetName() string
	IsAlive() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetMP() int
	GetMaxMP() int
	GetAttack() int
	GetDefense() int
	GetSpeed() int
	IsDefending() bool

	// Mutations
	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed
	SpendMP(amount int) bool   // Returns false if insufficient MP
	RestoreMP(amount int) int  // Returns actual amount restored
}

// Rand is the single random source a battle draws from. *math/rand.Rand
// satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
