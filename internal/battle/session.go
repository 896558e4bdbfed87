// Package battle runs one ATB encounter: the gauge scheduler, the session
// state machine, command resolution and the enemy turn.
//
// A host drives a Session with three calls. Tick advances the simulation
// while the session is Waiting. Submit, SelectTarget and
// CancelTargetSelection answer a member's turn. Resume is the completion
// callback the host fires once it has finished presenting an action; the
// session stays frozen in Executing until then.
package battle

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/bbq/internal/combat"
	"github.com/samdwyer/bbq/internal/entity"
	"github.com/samdwyer/bbq/internal/gamedata"
	"github.com/samdwyer/bbq/internal/progression"
	"github.com/samdwyer/bbq/internal/telemetry"
)

// Outcome is how a battle ended.
type Outcome string

// Outcomes.
const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeEscaped Outcome = "escaped"
)

// EscapeChance is the percent chance an escape succeeds.
const EscapeChance = 50

// PartyStore is the collaborator holding the enduring party records.
type PartyStore interface {
	GetParty() []*entity.Member
	UpdatePartyAfterBattle(members []*entity.Member)
	AwardExperience(amount int) []progression.Result
}

// Options configures a session.
type Options struct {
	Store     PartyStore
	Enemy     *gamedata.EnemyDef
	Abilities *gamedata.AbilityRegistry
	Items     *gamedata.ItemRegistry
	// Rand is the only random source the battle uses. Nil means a
	// time-seeded source.
	Rand    combat.Rand
	Tracer  trace.Tracer
	OnEvent func(*Event)
}

// Result summarizes a finished battle.
type Result struct {
	SessionID  string               `json:"sessionId"`
	EnemyID    string               `json:"enemyId"`
	Outcome    Outcome              `json:"outcome"`
	Turns      int                  `json:"turns"`
	Ticks      int                  `json:"ticks"`
	ExpReward  int                  `json:"expReward"`
	Experience []progression.Result `json:"experience,omitempty"`
	Survivors  int                  `json:"survivors"`
	PartyHP    int                  `json:"partyHp"`
}

// noActor marks that nobody holds the turn.
const noActor = -2

// Session is one battle. It is not safe for concurrent use.
type Session struct {
	id        string
	store     PartyStore
	abilities *gamedata.AbilityRegistry
	items     *gamedata.ItemRegistry
	rng       combat.Rand
	tracer    trace.Tracer
	onEvent   func(*Event)

	party *entity.Party
	enemy *entity.Enemy
	sched *Scheduler

	started bool
	machine *fsm.FSM
	active  int
	pending *action
	outcome Outcome
	result  *Result
}

// NewSession copies the party in from the store and spawns the enemy.
func NewSession(opts Options) (*Session, error) {
	if opts.Enemy == nil {
		return nil, fmt.Errorf("new session: %w", ErrUnknownEnemy)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("new session: no party store: %w", ErrNoParty)
	}
	members := opts.Store.GetParty()
	if len(members) == 0 {
		return nil, fmt.Errorf("new session: %w", ErrNoParty)
	}

	if opts.Abilities == nil {
		opts.Abilities = gamedata.NewAbilityRegistry(nil)
	}
	if opts.Items == nil {
		opts.Items = gamedata.NewItemRegistry(nil)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.NoopTracer()
	}

	party := entity.NewParty(members)
	enemy := entity.NewEnemy(opts.Enemy)
	combatants := make([]combat.Combatant, len(members))
	for i, m := range members {
		combatants[i] = m
	}

	return &Session{
		id:        uuid.NewString(),
		store:     opts.Store,
		abilities: opts.Abilities,
		items:     opts.Items,
		rng:       opts.Rand,
		tracer:    opts.Tracer,
		onEvent:   opts.OnEvent,
		party:     party,
		enemy:     enemy,
		sched:     NewScheduler(combatants, enemy),
		machine:   newPhaseMachine(),
		active:    noActor,
	}, nil
}

// Start seeds the gauges and opens the battle. A party with nobody
// standing loses immediately.
func (s *Session) Start(ctx context.Context) (*Event, error) {
	if s.started {
		return nil, fmt.Errorf("start: %w", ErrWrongPhase)
	}
	s.started = true
	s.sched.Seed(s.rng)

	_, span := s.tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("session_id", s.id),
		attribute.Int("party_size", s.party.AliveMemberCount()),
		attribute.String("enemy", s.enemy.ID),
		attribute.Int("enemy_hp", s.enemy.HP),
		attribute.Int("enemy_shield", s.enemy.Shield.Max()),
	)
	span.End()

	ev := s.newEvent(EventBattleStart)
	ev.Message = fmt.Sprintf("%s appeared!", s.enemy.Name)
	ev.Shield = s.shieldView()
	view := s.enemy.View()
	ev.Enemy = &view
	s.emit(ev)

	if s.party.Wiped() {
		s.outcome = OutcomeDefeat
		if _, err := s.finish(ctx); err != nil {
			return ev, err
		}
	}
	return ev, nil
}

// Tick runs one host step. While Waiting it hands the turn to a ready
// combatant, advancing the gauges first when nobody is ready. In any other
// phase it does nothing. The returned event is nil when no turn began.
func (s *Session) Tick(ctx context.Context) (*Event, error) {
	if s.Done() {
		return nil, ErrBattleOver
	}
	if !s.started {
		return nil, fmt.Errorf("tick before start: %w", ErrWrongPhase)
	}
	if s.Phase() != PhaseWaiting {
		return nil, nil
	}

	slot, ok := s.sched.NextActor()
	if !ok {
		s.sched.Advance()
		if slot, ok = s.sched.NextActor(); !ok {
			return nil, nil
		}
	}

	if slot == EnemySlot {
		return s.enemyTurn(ctx)
	}

	if err := s.transition(ctx, eventTurn); err != nil {
		return nil, err
	}
	m := s.party.Members[slot]
	s.sched.BeginTurn(slot)
	m.SetDefending(false)
	s.active = slot

	ev := s.newEvent(EventTurnStart)
	ev.ActorID = m.ID
	ev.Message = fmt.Sprintf("%s's turn.", m.Name)
	s.emit(ev)
	return ev, nil
}

// Resume is the completion callback for an executing action. It returns
// the session to Waiting, or ends the battle when the action decided it;
// in that case the battle_end event is returned.
func (s *Session) Resume(ctx context.Context) (*Event, error) {
	if err := s.expect(eventResume); err != nil {
		return nil, err
	}
	s.active = noActor
	if s.outcome != OutcomeNone {
		return s.finish(ctx)
	}
	return nil, s.transition(ctx, eventResume)
}

// finish writes the working copies back to the store and, on victory,
// awards experience.
func (s *Session) finish(ctx context.Context) (*Event, error) {
	if err := s.transition(ctx, string(s.outcome)); err != nil {
		return nil, err
	}
	s.store.UpdatePartyAfterBattle(s.party.Members)

	res := &Result{
		SessionID: s.id,
		EnemyID:   s.enemy.ID,
		Outcome:   s.outcome,
		Turns:     s.sched.Turn(),
		Ticks:     s.sched.Tick(),
		Survivors: s.party.AliveMemberCount(),
		PartyHP:   s.party.TotalHP(),
	}
	if s.outcome == OutcomeVictory {
		res.ExpReward = s.enemy.ExpReward
		res.Experience = s.store.AwardExperience(s.enemy.ExpReward)
	}
	s.result = res
	s.active = noActor

	_, span := s.tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("session_id", s.id),
		attribute.String("outcome", string(res.Outcome)),
		attribute.Int("turns", res.Turns),
		attribute.Int("ticks", res.Ticks),
		attribute.Int("survivors", res.Survivors),
		attribute.Int("party_hp", res.PartyHP),
		attribute.Int("exp_reward", res.ExpReward),
	)
	span.End()

	ev := s.newEvent(EventBattleEnd)
	ev.Outcome = res.Outcome
	switch res.Outcome {
	case OutcomeVictory:
		ev.Message = fmt.Sprintf("Defeated %s! Gained %d EXP.", s.enemy.Name, res.ExpReward)
	case OutcomeDefeat:
		ev.Message = "The party was wiped out..."
	case OutcomeEscaped:
		ev.Message = "Got away safely!"
	}
	s.emit(ev)
	return ev, nil
}

// decide records a terminal outcome once the enemy or the whole party is down.
func (s *Session) decide() {
	if s.outcome != OutcomeNone {
		return
	}
	switch {
	case !s.enemy.IsAlive():
		s.outcome = OutcomeVictory
	case s.party.Wiped():
		s.outcome = OutcomeDefeat
	}
}

// endTurn closes the actor's turn, settles deaths and the round counter,
// decides the battle and publishes ev.
func (s *Session) endTurn(ctx context.Context, slot int, ev *Event) {
	closed := s.sched.RemoveDead()
	if s.sched.EndTurn(slot) {
		closed = true
	}
	s.decide()
	s.traceAction(ctx, ev)
	s.emit(ev)
	if closed && s.outcome == OutcomeNone {
		round := s.newEvent(EventRoundEnd)
		round.Message = fmt.Sprintf("Turn %d begins.", s.sched.Turn())
		s.emit(round)
	}
}

func (s *Session) traceAction(ctx context.Context, ev *Event) {
	_, span := s.tracer.Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("session_id", s.id),
		attribute.String("kind", string(ev.Kind)),
		attribute.String("actor", ev.ActorID),
		attribute.String("target", ev.Target()),
		attribute.Int("magnitude", ev.TotalMagnitude()),
		attribute.Bool("critical", ev.anyCritical()),
		attribute.Bool("weakness", ev.IsWeaknessHit),
		attribute.Bool("shield_broken", ev.IsShieldBroken),
		attribute.Int("turn", ev.Turn),
		attribute.Int("tick", ev.Tick),
	)
	span.End()
}

func (s *Session) newEvent(kind EventKind) *Event {
	return newEvent(kind, s.sched.Turn(), s.sched.Tick())
}

func (s *Session) emit(ev *Event) {
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

func (s *Session) shieldView() *combat.ShieldView {
	v := s.enemy.Shield.View()
	return &v
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Turn returns the round counter.
func (s *Session) Turn() int { return s.sched.Turn() }

// Ticks returns the number of simulation steps run.
func (s *Session) Ticks() int { return s.sched.Tick() }

// Done reports whether the battle has ended.
func (s *Session) Done() bool { return s.Phase().IsTerminal() }

// Result returns the summary of a finished battle, or nil.
func (s *Session) Result() *Result { return s.result }

// Active returns the member holding the turn, or nil.
func (s *Session) Active() *entity.Member {
	if s.active < 0 {
		return nil
	}
	return s.party.Members[s.active]
}
