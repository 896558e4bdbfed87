package combat

import "math"

// Damage formula constants.
const (
	JitterMin          = 0.9
	JitterSpan         = 0.2
	WeaknessMultiplier = 1.3
	CriticalRate       = 0.15
	CriticalMultiplier = 1.5
	BreakMultiplier    = 2.0
	MinDamage          = 1
)

// DamageOptions carries the modifiers for a single damage roll.
type DamageOptions struct {
	// Weakness is true when the attack type matches an enemy weakness,
	// whether already revealed or revealed by this hit.
	Weakness bool
	// Power is an extra multiplier from the ability. Zero means 1.0.
	Power float64
	// ForceCritical skips the critical roll and always applies it.
	ForceCritical bool
	// TargetBroken doubles the damage.
	TargetBroken bool
	// TargetDefending halves the damage.
	TargetDefending bool
}

// DamageResult is the outcome of a damage roll. The caller applies it.
type DamageResult struct {
	Magnitude  int
	IsCritical bool
}

// Resolve computes damage from attacker power and defender defense.
// Each multiplication step is floored. The result is never below MinDamage.
func Resolve(rng Rand, attackerPower, defenderDefense int, opts DamageOptions) DamageResult {
	dmg := float64(attackerPower - defenderDefense/2)

	dmg = math.Floor(dmg * jitter(rng))

	if opts.Power != 0 && opts.Power != 1 {
		dmg = math.Floor(dmg * opts.Power)
	}

	if opts.Weakness {
		dmg = math.Floor(dmg * WeaknessMultiplier)
	}

	critical := opts.ForceCritical || rng.Float64() < CriticalRate
	if critical {
		dmg = math.Floor(dmg * CriticalMultiplier)
	}

	if opts.TargetBroken {
		dmg = math.Floor(dmg * BreakMultiplier)
	}

	if opts.TargetDefending {
		dmg = math.Floor(dmg / 2)
	}

	magnitude := int(dmg)
	if magnitude < MinDamage {
		magnitude = MinDamage
	}
	return DamageResult{Magnitude: magnitude, IsCritical: critical}
}

// ResolveHeal applies the same jitter to a flat heal amount. Defense,
// criticals and break do not apply.
func ResolveHeal(rng Rand, base int) int {
	if base <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * jitter(rng)))
}

// jitter returns a uniform factor in [0.9, 1.1].
func jitter(rng Rand) float64 {
	return JitterMin + rng.Float64()*JitterSpan
}
