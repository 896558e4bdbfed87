package battle

import (
	"github.com/samdwyer/bbq/internal/combat"
)

// ATB gauges are integer centi-units: MaxATB is a full gauge of 100.
const (
	MaxATB      = 10000
	BaseFill    = 30 // 0.3 per tick
	SeedMin     = 30 // initial gauge lower bound, whole units
	SeedMax     = 70 // initial gauge upper bound, whole units
	atbPerPoint = 100
)

// FillRate returns the per-tick gain in centi-units for a speed stat.
// Equivalent to 0.3 + speed/100 whole units.
func FillRate(speed int) int {
	r := BaseFill + speed
	if r < 0 {
		return 0
	}
	return r
}

// GaugeState is the per-combatant scheduling state.
type GaugeState int

const (
	// GaugeCharging - the gauge is filling, or full but already acted this round
	GaugeCharging GaugeState = iota
	// GaugeReady - full and eligible to act
	GaugeReady
	// GaugeActing - currently taking a turn
	GaugeActing
	// GaugeDown - dead, permanently out of the schedule
	GaugeDown
)

// String returns a human-readable state name.
func (g GaugeState) String() string {
	switch g {
	case GaugeCharging:
		return "charging"
	case GaugeReady:
		return "ready"
	case GaugeActing:
		return "acting"
	case GaugeDown:
		return "down"
	default:
		return "unknown"
	}
}

// EnemySlot is the actor index reported for the enemy.
const EnemySlot = -1

type gauge struct {
	atb     int
	stamp   int
	stamped bool
	acted   bool
	acting  bool
}

// Scheduler is the ATB turn scheduler for one party and one enemy. It is
// not safe for concurrent use; the owning session serializes access.
type Scheduler struct {
	party   []combat.Combatant
	enemy   combat.Combatant
	members []gauge
	foe     gauge
	tick    int
	turn    int
}

// NewScheduler creates a scheduler at tick 0, turn 1, with empty gauges.
func NewScheduler(party []combat.Combatant, enemy combat.Combatant) *Scheduler {
	return &Scheduler{
		party:   party,
		enemy:   enemy,
		members: make([]gauge, len(party)),
		turn:    1,
	}
}

// Seed sets every living combatant's gauge to a uniform whole value in
// [SeedMin, SeedMax], party first in index order, then the enemy.
func (s *Scheduler) Seed(rng combat.Rand) {
	span := SeedMax - SeedMin + 1
	for i, c := range s.party {
		if !c.IsAlive() {
			s.members[i] = gauge{}
			continue
		}
		s.members[i] = gauge{atb: (SeedMin + rng.Intn(span)) * atbPerPoint}
	}
	if s.enemy.IsAlive() {
		s.foe = gauge{atb: (SeedMin + rng.Intn(span)) * atbPerPoint}
	}
}

// Advance runs one simulation step. Every living combatant below max gains
// FillRate(speed), clamped; a gauge that reaches max is stamped with the
// current tick.
func (s *Scheduler) Advance() {
	s.tick++
	for i, c := range s.party {
		s.fill(&s.members[i], c)
	}
	s.fill(&s.foe, s.enemy)
}

func (s *Scheduler) fill(g *gauge, c combat.Combatant) {
	if !c.IsAlive() {
		*g = gauge{acted: g.acted}
		return
	}
	if g.atb >= MaxATB {
		return
	}
	g.atb += FillRate(c.GetSpeed())
	if g.atb >= MaxATB {
		g.atb = MaxATB
		g.stamp = s.tick
		g.stamped = true
	}
}

// RemoveDead zeroes the gauge of any combatant that has died. A death can
// close the round; the return value reports that.
func (s *Scheduler) RemoveDead() bool {
	for i, c := range s.party {
		if !c.IsAlive() {
			s.members[i].atb = 0
			s.members[i].stamped = false
			s.members[i].acting = false
		}
	}
	if !s.enemy.IsAlive() {
		s.foe = gauge{}
	}
	return s.checkRound()
}

// NextActor returns who acts next. Ready party members go first, ordered
// by fill stamp and then party index; the enemy acts only when no party
// member is ready. Nothing is returned while someone is acting.
func (s *Scheduler) NextActor() (int, bool) {
	if s.busy() {
		return 0, false
	}
	best := -1
	for i := range s.party {
		if s.State(i) != GaugeReady {
			continue
		}
		if best < 0 || s.members[i].stamp < s.members[best].stamp {
			best = i
		}
	}
	if best >= 0 {
		return best, true
	}
	if s.State(EnemySlot) == GaugeReady {
		return EnemySlot, true
	}
	return 0, false
}

func (s *Scheduler) busy() bool {
	if s.foe.acting {
		return true
	}
	for _, g := range s.members {
		if g.acting {
			return true
		}
	}
	return false
}

// BeginTurn marks slot as acting. The enemy's gauge empties immediately;
// a party member keeps a full gauge until EndTurn so a rejected command
// costs nothing.
func (s *Scheduler) BeginTurn(slot int) {
	if slot == EnemySlot {
		s.foe.acting = true
		s.foe.atb = 0
		s.foe.stamped = false
		return
	}
	s.members[slot].acting = true
}

// EndTurn empties the actor's gauge and, for a party member, counts the
// action toward the round. It returns true when this closed a round.
func (s *Scheduler) EndTurn(slot int) bool {
	if slot == EnemySlot {
		s.foe = gauge{}
		return false
	}
	g := &s.members[slot]
	g.acting = false
	g.atb = 0
	g.stamped = false
	g.acted = true
	return s.checkRound()
}

// checkRound closes the round once every living member has acted. Members
// already at max are re-stamped with the current tick so they stay
// eligible without waiting for another step.
func (s *Scheduler) checkRound() bool {
	living := 0
	for i, c := range s.party {
		if !c.IsAlive() {
			continue
		}
		living++
		if !s.members[i].acted {
			return false
		}
	}
	if living == 0 {
		return false
	}
	s.turn++
	for i, c := range s.party {
		g := &s.members[i]
		g.acted = false
		if c.IsAlive() && g.atb >= MaxATB {
			g.stamp = s.tick
			g.stamped = true
		}
	}
	return true
}

// State returns the scheduling state of slot.
func (s *Scheduler) State(slot int) GaugeState {
	c, g := s.slot(slot)
	switch {
	case !c.IsAlive():
		return GaugeDown
	case g.acting:
		return GaugeActing
	case g.atb >= MaxATB && !g.acted:
		return GaugeReady
	default:
		return GaugeCharging
	}
}

func (s *Scheduler) slot(slot int) (combat.Combatant, *gauge) {
	if slot == EnemySlot {
		return s.enemy, &s.foe
	}
	return s.party[slot], &s.members[slot]
}

// ATB returns the gauge of slot in centi-units.
func (s *Scheduler) ATB(slot int) int {
	_, g := s.slot(slot)
	return g.atb
}

// ATBPercent returns the gauge of slot as 0..100.
func (s *Scheduler) ATBPercent(slot int) float64 {
	return float64(s.ATB(slot)) / atbPerPoint
}

// Acted reports whether the member at slot has acted this round.
func (s *Scheduler) Acted(slot int) bool {
	if slot == EnemySlot {
		return false
	}
	return s.members[slot].acted
}

// FillStamp returns the tick at which slot last filled.
func (s *Scheduler) FillStamp(slot int) (int, bool) {
	_, g := s.slot(slot)
	return g.stamp, g.stamped
}

// Tick returns the number of simulation steps run.
func (s *Scheduler) Tick() int { return s.tick }

// Turn returns the round counter, starting at 1.
func (s *Scheduler) Turn() int { return s.turn }
