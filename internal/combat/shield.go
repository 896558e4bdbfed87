package combat

import (
	"strconv"
	"strings"

	"github.com/samdwyer/bbq/internal/gamedata"
)

// RecoveryTurns is how many turns a break lasts. An enemy broken on turn T
// is stunned on turns T and T+1 and recovers on T+2.
const RecoveryTurns = 2

// BrokenLabel is shown in place of the shield count while broken.
const BrokenLabel = "BROKEN"

// ShieldPhase is the break state of an enemy.
type ShieldPhase int

const (
	// ShieldGuarded - shield is up, weakness hits wear it down
	ShieldGuarded ShieldPhase = iota
	// ShieldBroken - shield is depleted, the enemy is stunned and takes double damage
	ShieldBroken
)

// String returns a human-readable phase name.
func (p ShieldPhase) String() string {
	switch p {
	case ShieldGuarded:
		return "guarded"
	case ShieldBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Recovery is the outcome of TickRecovery.
type Recovery int

const (
	// RecoveryNone - the enemy was not broken and acts normally
	RecoveryNone Recovery = iota
	// RecoveryStunned - still broken, the turn is skipped
	RecoveryStunned
	// RecoveryRestored - the break ended this turn and the shield refilled; the turn is still skipped
	RecoveryRestored
)

// ShieldHit describes what one hit did to the shield.
type ShieldHit struct {
	Weakness      bool // The hit matched a weakness
	NewlyRevealed bool // The matched weakness was hidden until now
	ShieldLost    int  // Points actually removed
	BrokeNow      bool // This hit depleted the shield
}

// Shield tracks shield points, weakness reveals and the break cycle for one enemy.
type Shield struct {
	current        int
	max            int
	weaknesses     []gamedata.DamageType
	revealed       []bool
	broken         bool
	breakStartTurn int
}

// NewShield creates a full shield with all weaknesses hidden.
func NewShield(max int, weaknesses []gamedata.DamageType) *Shield {
	if max < 0 {
		max = 0
	}
	w := make([]gamedata.DamageType, len(weaknesses))
	copy(w, weaknesses)
	return &Shield{
		current:    max,
		max:        max,
		weaknesses: w,
		revealed:   make([]bool, len(w)),
	}
}

// Current returns the remaining shield points.
func (s *Shield) Current() int { return s.current }

// Max returns the shield capacity.
func (s *Shield) Max() int { return s.max }

// IsBroken reports whether the enemy is in the Broken phase.
func (s *Shield) IsBroken() bool { return s.broken }

// BreakStartTurn returns the turn on which the current break began.
func (s *Shield) BreakStartTurn() int { return s.breakStartTurn }

// Phase returns the current break phase.
func (s *Shield) Phase() ShieldPhase {
	if s.broken {
		return ShieldBroken
	}
	return ShieldGuarded
}

// Weakness returns the index of damageType in the weakness list.
func (s *Shield) Weakness(damageType gamedata.DamageType) (int, bool) {
	if damageType == "" {
		return -1, false
	}
	for i, w := range s.weaknesses {
		if w == damageType {
			return i, true
		}
	}
	return -1, false
}

// Revealed returns a copy of the per-weakness reveal flags.
func (s *Shield) Revealed() []bool {
	out := make([]bool, len(s.revealed))
	copy(out, s.revealed)
	return out
}

// RegisterWeaknessHit records a hit of damageType. A matching weakness is
// revealed and, unless the enemy is already broken, costs one shield point.
// Reaching zero breaks the enemy at currentTurn.
func (s *Shield) RegisterWeaknessHit(damageType gamedata.DamageType, currentTurn int) ShieldHit {
	idx, ok := s.Weakness(damageType)
	if !ok {
		return ShieldHit{}
	}
	hit := ShieldHit{Weakness: true, NewlyRevealed: !s.revealed[idx]}
	s.revealed[idx] = true

	lost, broke := s.drain(1, currentTurn)
	hit.ShieldLost = lost
	hit.BrokeNow = broke
	return hit
}

// ApplyShieldDamage removes amount shield points regardless of weakness.
// It has no effect while broken.
func (s *Shield) ApplyShieldDamage(amount, currentTurn int) ShieldHit {
	lost, broke := s.drain(amount, currentTurn)
	return ShieldHit{ShieldLost: lost, BrokeNow: broke}
}

func (s *Shield) drain(amount, currentTurn int) (lost int, broke bool) {
	if s.broken || amount <= 0 || s.current == 0 {
		return 0, false
	}
	lost = amount
	if lost > s.current {
		lost = s.current
	}
	s.current -= lost
	if s.current == 0 {
		s.broken = true
		s.breakStartTurn = currentTurn
		broke = true
	}
	return lost, broke
}

// TickRecovery is called once at the start of each enemy turn. While broken
// the turn is skipped; once currentTurn reaches breakStartTurn+RecoveryTurns
// the break ends and the shield is restored to max.
func (s *Shield) TickRecovery(currentTurn int) Recovery {
	if !s.broken {
		return RecoveryNone
	}
	if currentTurn >= s.breakStartTurn+RecoveryTurns {
		s.broken = false
		s.current = s.max
		return RecoveryRestored
	}
	return RecoveryStunned
}

// WeaknessIcon is one entry of the weakness row shown above the enemy.
type WeaknessIcon struct {
	Type     gamedata.DamageType `json:"type,omitempty"`
	Revealed bool                `json:"revealed"`
	Glyph    string              `json:"glyph"`
}

// ShieldView is the presentation read model of a shield.
type ShieldView struct {
	Label      string         `json:"label"`
	Current    int            `json:"current"`
	Max        int            `json:"max"`
	Broken     bool           `json:"broken"`
	Weaknesses []WeaknessIcon `json:"weaknesses"`
}

// View returns the read model. Hidden weaknesses carry no type.
func (s *Shield) View() ShieldView {
	v := ShieldView{
		Label:      strconv.Itoa(s.current),
		Current:    s.current,
		Max:        s.max,
		Broken:     s.broken,
		Weaknesses: make([]WeaknessIcon, len(s.weaknesses)),
	}
	if s.broken {
		v.Label = BrokenLabel
	}
	for i, w := range s.weaknesses {
		if s.revealed[i] {
			v.Weaknesses[i] = WeaknessIcon{Type: w, Revealed: true, Glyph: w.Glyph()}
		} else {
			v.Weaknesses[i] = WeaknessIcon{Glyph: "?"}
		}
	}
	return v
}

// WeaknessRow formats the weakness icons, e.g. "[剣] [?]".
func (v ShieldView) WeaknessRow() string {
	parts := make([]string, len(v.Weaknesses))
	for i, w := range v.Weaknesses {
		parts[i] = "[" + w.Glyph + "]"
	}
	return strings.Join(parts, " ")
}
