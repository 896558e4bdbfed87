package battle

import (
	"context"
	"fmt"

	"github.com/samdwyer/bbq/internal/combat"
	"github.com/samdwyer/bbq/internal/entity"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// action is a validated command waiting to execute.
type action struct {
	intent  Intent
	ability *gamedata.AbilityDef
	item    *gamedata.ItemDef
}

func (a *action) needsTarget() bool {
	switch {
	case a.ability != nil:
		return a.ability.NeedsTarget()
	case a.item != nil:
		return a.item.NeedsTarget()
	default:
		return false
	}
}

// Submit answers the active member's turn. Commands aimed at a single ally
// without a TargetID move the session to target selection and return a nil
// event. A rejected command changes nothing and the member keeps the turn.
func (s *Session) Submit(ctx context.Context, in Intent) (*Event, error) {
	if err := s.expect(eventAct); err != nil {
		return nil, err
	}
	actor := s.party.Members[s.active]

	act, err := s.prepare(actor, in)
	if err != nil {
		return nil, err
	}

	if !act.needsTarget() {
		return s.execute(ctx, eventAct, act, nil)
	}
	if in.TargetID == "" {
		if err := s.transition(ctx, eventOpenTarget); err != nil {
			return nil, err
		}
		s.pending = act
		return nil, nil
	}
	target, err := s.allyTarget(in.TargetID)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, eventAct, act, target)
}

// SelectTarget picks the ally for the pending command and executes it. A
// dead or unknown ally is rejected and selection stays open.
func (s *Session) SelectTarget(ctx context.Context, targetID string) (*Event, error) {
	if err := s.expect(eventConfirm); err != nil {
		return nil, err
	}
	target, err := s.allyTarget(targetID)
	if err != nil {
		return nil, err
	}
	act := s.pending
	act.intent.TargetID = targetID
	ev, err := s.execute(ctx, eventConfirm, act, target)
	if err == nil {
		s.pending = nil
	}
	return ev, err
}

// CancelTargetSelection backs out to the command list.
func (s *Session) CancelTargetSelection() error {
	if err := s.expect(eventCancel); err != nil {
		return err
	}
	if err := s.transition(context.Background(), eventCancel); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// Pending returns the command awaiting a target.
func (s *Session) Pending() (Intent, bool) {
	if s.pending == nil {
		return Intent{}, false
	}
	return s.pending.intent, true
}

// prepare validates a command without touching any state.
func (s *Session) prepare(actor *entity.Member, in Intent) (*action, error) {
	act := &action{intent: in}
	switch in.Kind {
	case ActionAttack, ActionDefend, ActionEscape:
	case ActionSkill:
		ab := s.abilities.GetByID(in.AbilityID)
		if ab == nil {
			return nil, fmt.Errorf("skill %q: %w", in.AbilityID, ErrUnknownAbility)
		}
		if ab.ID != actor.AbilityID {
			return nil, fmt.Errorf("%s cannot use %s: %w", actor.Name, ab.Name, ErrAbilityUnavailable)
		}
		if actor.MP < ab.MPCost {
			return nil, fmt.Errorf("%s needs %d MP, %s has %d: %w", ab.Name, ab.MPCost, actor.Name, actor.MP, ErrInsufficientMP)
		}
		act.ability = ab
	case ActionItem:
		it := s.items.GetByID(in.ItemID)
		if it == nil {
			return nil, fmt.Errorf("item %q: %w", in.ItemID, ErrUnknownItem)
		}
		act.item = it
	default:
		return nil, fmt.Errorf("action %q: %w", in.Kind, ErrUnknownAction)
	}
	return act, nil
}

func (s *Session) allyTarget(id string) (*entity.Member, error) {
	idx := s.party.Index(id)
	if idx < 0 {
		return nil, fmt.Errorf("ally %q: %w", id, ErrInvalidTarget)
	}
	m := s.party.Members[idx]
	if !m.IsAlive() {
		return nil, fmt.Errorf("%s is down: %w", m.Name, ErrInvalidTarget)
	}
	return m, nil
}

// execute fires event to move to Executing and resolves a validated command.
func (s *Session) execute(ctx context.Context, event string, act *action, target *entity.Member) (*Event, error) {
	if err := s.transition(ctx, event); err != nil {
		return nil, err
	}
	actor := s.party.Members[s.active]

	var ev *Event
	switch act.intent.Kind {
	case ActionAttack:
		ev = s.attack(actor)
	case ActionSkill:
		ev = s.skill(actor, act.ability, target)
	case ActionItem:
		ev = s.useItem(actor, act.item, target)
	case ActionDefend:
		ev = s.defend(actor)
	case ActionEscape:
		ev = s.escape(actor)
	}

	s.endTurn(ctx, s.active, ev)
	return ev, nil
}

func (s *Session) attack(actor *entity.Member) *Event {
	ev := s.newEvent(EventAttack)
	ev.ActorID = actor.ID

	hit := s.enemy.Shield.RegisterWeaknessHit(actor.WeaponType, s.sched.Turn())
	res := combat.Resolve(s.rng, actor.Attack, s.enemy.Defense, combat.DamageOptions{
		Weakness:     hit.Weakness,
		TargetBroken: s.enemy.IsBroken(),
	})
	s.recordShield(ev, hit)
	fx := s.damageEnemy(res)
	ev.Effects = append(ev.Effects, fx)
	ev.Message = fmt.Sprintf("%s attacks! %s takes %d damage.", actor.Name, s.enemy.Name, fx.Magnitude)
	return ev
}

func (s *Session) skill(actor *entity.Member, ab *gamedata.AbilityDef, target *entity.Member) *Event {
	ev := s.newEvent(EventSkill)
	ev.ActorID = actor.ID
	ev.AbilityID = ab.ID
	actor.SpendMP(ab.MPCost)
	ev.MPSpent = ab.MPCost

	switch ab.EffectType {
	case gamedata.EffectHealHP, gamedata.EffectHealMP:
		for _, m := range s.allyScope(ab.TargetScope, actor, target) {
			amount := combat.ResolveHeal(s.rng, int(ab.Power))
			ev.Effects = append(ev.Effects, restoreMember(m, ab.EffectType, amount))
		}
		ev.Message = fmt.Sprintf("%s uses %s!", actor.Name, ab.Name)
		return ev
	}

	var hit combat.ShieldHit
	if ab.DamageType != "" {
		hit = s.enemy.Shield.RegisterWeaknessHit(ab.DamageType, s.sched.Turn())
	}
	res := combat.Resolve(s.rng, actor.Attack, s.enemy.Defense, combat.DamageOptions{
		Weakness:      hit.Weakness,
		Power:         ab.PowerMultiplier(),
		ForceCritical: ab.IsCritical,
		TargetBroken:  s.enemy.IsBroken(),
	})
	fx := s.damageEnemy(res)
	ev.Effects = append(ev.Effects, fx)

	if ab.ShieldDamage > 0 {
		extra := s.enemy.Shield.ApplyShieldDamage(ab.ShieldDamage, s.sched.Turn())
		hit.ShieldLost += extra.ShieldLost
		hit.BrokeNow = hit.BrokeNow || extra.BrokeNow
	}
	s.recordShield(ev, hit)
	ev.Message = fmt.Sprintf("%s uses %s! %s takes %d damage.", actor.Name, ab.Name, s.enemy.Name, fx.Magnitude)
	return ev
}

func (s *Session) useItem(actor *entity.Member, it *gamedata.ItemDef, target *entity.Member) *Event {
	ev := s.newEvent(EventItem)
	ev.ActorID = actor.ID
	ev.ItemID = it.ID
	for _, m := range s.allyScope(it.TargetScope, actor, target) {
		ev.Effects = append(ev.Effects, restoreMember(m, it.EffectType, it.EffectValue))
	}
	ev.Message = fmt.Sprintf("%s uses %s!", actor.Name, it.Name)
	return ev
}

func (s *Session) defend(actor *entity.Member) *Event {
	actor.SetDefending(true)
	ev := s.newEvent(EventDefend)
	ev.ActorID = actor.ID
	ev.Message = fmt.Sprintf("%s is defending.", actor.Name)
	return ev
}

func (s *Session) escape(actor *entity.Member) *Event {
	ev := s.newEvent(EventEscape)
	ev.ActorID = actor.ID
	ev.Escaped = s.rng.Intn(100) < EscapeChance
	if ev.Escaped {
		s.outcome = OutcomeEscaped
		ev.Message = fmt.Sprintf("%s leads the party away!", actor.Name)
	} else {
		ev.Message = "Couldn't escape!"
	}
	return ev
}

// allyScope returns who a supportive effect lands on.
func (s *Session) allyScope(scope gamedata.TargetScope, actor, target *entity.Member) []*entity.Member {
	switch {
	case scope == gamedata.TargetAllAllies:
		return s.party.Living()
	case target != nil:
		return []*entity.Member{target}
	default:
		return []*entity.Member{actor}
	}
}

func restoreMember(m *entity.Member, kind gamedata.EffectType, amount int) Effect {
	fx := Effect{TargetID: m.ID}
	if kind == gamedata.EffectHealMP {
		fx.Kind = EffectHealMP
		fx.Magnitude = m.RestoreMP(amount)
	} else {
		fx.Kind = EffectHealHP
		fx.Magnitude = m.Heal(amount)
	}
	fx.ResultingHP = m.HP
	fx.ResultingMP = m.MP
	return fx
}

func (s *Session) damageEnemy(res combat.DamageResult) Effect {
	dealt := s.enemy.TakeDamage(res.Magnitude)
	return Effect{
		TargetID:    s.enemy.ID,
		Kind:        EffectDamage,
		Magnitude:   dealt,
		IsCritical:  res.IsCritical,
		ResultingHP: s.enemy.HP,
		Died:        !s.enemy.IsAlive(),
	}
}

func (s *Session) recordShield(ev *Event, hit combat.ShieldHit) {
	ev.IsWeaknessHit = hit.Weakness
	ev.WeaknessRevealed = hit.NewlyRevealed
	ev.ShieldLost = hit.ShieldLost
	ev.IsShieldBroken = hit.BrokeNow
	ev.Shield = s.shieldView()
}
