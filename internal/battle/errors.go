package battle

import "errors"

// Rejections. A rejected command never mutates the battle.
var (
	ErrInsufficientMP     = errors.New("not enough MP")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrUnknownAbility     = errors.New("unknown ability")
	ErrUnknownItem        = errors.New("unknown item")
	ErrAbilityUnavailable = errors.New("ability not available to this member")
	ErrWrongPhase         = errors.New("command not accepted in this phase")
	ErrBattleOver         = errors.New("battle is over")
	ErrUnknownEnemy       = errors.New("unknown enemy")
	ErrNoParty            = errors.New("party is empty")
	ErrUnknownAction      = errors.New("unknown action")
)

// Reason is a user-facing rejection code.
type Reason string

// Reason codes.
const (
	ReasonNone               Reason = ""
	ReasonInsufficientMP     Reason = "InsufficientMP"
	ReasonInvalidTarget      Reason = "InvalidTarget"
	ReasonUnknownAbility     Reason = "UnknownAbility"
	ReasonUnknownItem        Reason = "UnknownItem"
	ReasonAbilityUnavailable Reason = "AbilityUnavailable"
	ReasonWrongPhase         Reason = "WrongPhase"
	ReasonBattleOver         Reason = "BattleOver"
	ReasonUnknownEnemy       Reason = "UnknownEnemy"
	ReasonNoParty            Reason = "NoParty"
	ReasonUnknownAction      Reason = "UnknownAction"
	ReasonInternal           Reason = "Internal"
)

var reasons = []struct {
	err    error
	reason Reason
}{
	{ErrInsufficientMP, ReasonInsufficientMP},
	{ErrInvalidTarget, ReasonInvalidTarget},
	{ErrUnknownAbility, ReasonUnknownAbility},
	{ErrUnknownItem, ReasonUnknownItem},
	{ErrAbilityUnavailable, ReasonAbilityUnavailable},
	{ErrWrongPhase, ReasonWrongPhase},
	{ErrBattleOver, ReasonBattleOver},
	{ErrUnknownEnemy, ReasonUnknownEnemy},
	{ErrNoParty, ReasonNoParty},
	{ErrUnknownAction, ReasonUnknownAction},
}

// RejectReason maps an error, possibly wrapped, to its reason code.
func RejectReason(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternal
}
