package battle

import (
	"context"
	"fmt"

	"github.com/samdwyer/bbq/internal/combat"
)

// enemyTurn runs the enemy's whole turn and leaves the session Executing.
// A broken enemy only ticks its recovery; otherwise it strikes a random
// living member with a plain attack.
func (s *Session) enemyTurn(ctx context.Context) (*Event, error) {
	if err := s.transition(ctx, eventEnemyTurn); err != nil {
		return nil, err
	}
	s.sched.BeginTurn(EnemySlot)
	s.active = EnemySlot

	var ev *Event
	switch s.enemy.Shield.TickRecovery(s.sched.Turn()) {
	case combat.RecoveryStunned:
		ev = s.newEvent(EventEnemyStunned)
		ev.Message = fmt.Sprintf("%s is stunned...", s.enemy.Name)
	case combat.RecoveryRestored:
		ev = s.newEvent(EventEnemyRecovered)
		ev.Message = fmt.Sprintf("%s regained its footing!", s.enemy.Name)
	default:
		ev = s.enemyAttack()
	}
	ev.ActorID = s.enemy.ID
	ev.Shield = s.shieldView()

	s.endTurn(ctx, EnemySlot, ev)
	return ev, nil
}

func (s *Session) enemyAttack() *Event {
	ev := s.newEvent(EventEnemyAttack)

	living := s.party.Living()
	target := living[s.rng.Intn(len(living))]
	res := combat.Resolve(s.rng, s.enemy.Attack, target.Defense, combat.DamageOptions{
		TargetDefending: target.Defending,
	})
	dealt := target.TakeDamage(res.Magnitude)

	ev.Effects = append(ev.Effects, Effect{
		TargetID:    target.ID,
		Kind:        EffectDamage,
		Magnitude:   dealt,
		IsCritical:  res.IsCritical,
		ResultingHP: target.HP,
		ResultingMP: target.MP,
		Died:        !target.IsAlive(),
	})
	ev.Message = fmt.Sprintf("%s attacks %s for %d damage!", s.enemy.Name, target.Name, dealt)
	if !target.IsAlive() {
		ev.Message += fmt.Sprintf(" %s falls.", target.Name)
	}
	return ev
}
