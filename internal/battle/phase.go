package battle

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Phase is the session state.
type Phase int

const (
	// PhaseWaiting - gauges advance on every tick
	PhaseWaiting Phase = iota
	// PhaseCommand - a member is choosing a command
	PhaseCommand
	// PhaseTargetSelection - a member is choosing an ally for a command
	PhaseTargetSelection
	// PhaseExecuting - an action resolved and the host is presenting it
	PhaseExecuting
	// PhaseVictory - the enemy was defeated
	PhaseVictory
	// PhaseDefeat - every party member fell
	PhaseDefeat
	// PhaseEscaped - the party ran away
	PhaseEscaped
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseCommand:
		return "command"
	case PhaseTargetSelection:
		return "target_selection"
	case PhaseExecuting:
		return "executing"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the battle has ended.
func (p Phase) IsTerminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseEscaped
}

// IsResolving reports whether gauges are frozen for a pending decision or action.
func (p Phase) IsResolving() bool {
	return p == PhaseCommand || p == PhaseTargetSelection || p == PhaseExecuting
}

// phaseByName maps machine state names back to phases.
var phaseByName = map[string]Phase{
	PhaseWaiting.String():         PhaseWaiting,
	PhaseCommand.String():         PhaseCommand,
	PhaseTargetSelection.String(): PhaseTargetSelection,
	PhaseExecuting.String():       PhaseExecuting,
	PhaseVictory.String():         PhaseVictory,
	PhaseDefeat.String():          PhaseDefeat,
	PhaseEscaped.String():         PhaseEscaped,
}

// Phase transition events. The terminal events are named after the
// Outcome they record.
const (
	eventTurn       = "turn"
	eventEnemyTurn  = "enemy_turn"
	eventOpenTarget = "open_target"
	eventCancel     = "cancel"
	eventAct        = "act"
	eventConfirm    = "confirm"
	eventResume     = "resume"
)

// newPhaseMachine builds the session state machine. Every legal phase
// change is listed here; anything else is refused by the machine.
func newPhaseMachine() *fsm.FSM {
	var (
		waiting   = PhaseWaiting.String()
		command   = PhaseCommand.String()
		selecting = PhaseTargetSelection.String()
		executing = PhaseExecuting.String()
	)
	return fsm.NewFSM(waiting, fsm.Events{
		{Name: eventTurn, Src: []string{waiting}, Dst: command},
		{Name: eventEnemyTurn, Src: []string{waiting}, Dst: executing},
		{Name: eventOpenTarget, Src: []string{command}, Dst: selecting},
		{Name: eventCancel, Src: []string{selecting}, Dst: command},
		{Name: eventAct, Src: []string{command}, Dst: executing},
		{Name: eventConfirm, Src: []string{selecting}, Dst: executing},
		{Name: eventResume, Src: []string{executing}, Dst: waiting},
		{Name: string(OutcomeVictory), Src: []string{executing}, Dst: PhaseVictory.String()},
		{Name: string(OutcomeDefeat), Src: []string{waiting, executing}, Dst: PhaseDefeat.String()},
		{Name: string(OutcomeEscaped), Src: []string{executing}, Dst: PhaseEscaped.String()},
	}, fsm.Callbacks{})
}

// Phase returns the session state.
func (s *Session) Phase() Phase { return phaseByName[s.machine.Current()] }

// expect checks that event may fire from the current phase.
func (s *Session) expect(event string) error {
	p := s.Phase()
	if p.IsTerminal() {
		return ErrBattleOver
	}
	if !s.machine.Can(event) {
		return fmt.Errorf("%s not allowed in %s: %w", event, p, ErrWrongPhase)
	}
	return nil
}

// transition fires event on the phase machine.
func (s *Session) transition(ctx context.Context, event string) error {
	from := s.Phase()
	if err := s.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("%s from %s: %v: %w", event, from, err, ErrWrongPhase)
	}
	return nil
}
