package battle

// ActionKind is the command a party member chose.
type ActionKind string

// Commands available from the battle menu.
const (
	ActionAttack ActionKind = "attack"
	ActionSkill  ActionKind = "skill"
	ActionItem   ActionKind = "item"
	ActionDefend ActionKind = "defend"
	ActionEscape ActionKind = "escape"
)

// Intent is one command. AbilityID is set for skills and ItemID for items.
// TargetID optionally names an ally for single-ally effects; when empty
// such commands enter target selection.
type Intent struct {
	Kind      ActionKind `json:"kind"`
	AbilityID string     `json:"abilityId,omitempty"`
	ItemID    string     `json:"itemId,omitempty"`
	TargetID  string     `json:"targetId,omitempty"`
}

// Attack returns a basic attack intent.
func Attack() Intent { return Intent{Kind: ActionAttack} }

// Skill returns an intent to use ability id.
func Skill(id string) Intent { return Intent{Kind: ActionSkill, AbilityID: id} }

// Item returns an intent to use item id.
func Item(id string) Intent { return Intent{Kind: ActionItem, ItemID: id} }

// Defend returns a defend intent.
func Defend() Intent { return Intent{Kind: ActionDefend} }

// Escape returns an escape intent.
func Escape() Intent { return Intent{Kind: ActionEscape} }

// On returns a copy of the intent aimed at targetID.
func (i Intent) On(targetID string) Intent {
	i.TargetID = targetID
	return i
}
