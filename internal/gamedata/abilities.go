package gamedata

// =============================================================================
// ABILITY AND ITEM DATA
// =============================================================================
//
// Abilities and items are static definitions loaded once at startup and never
// mutated while a battle is running. Every playable character owns exactly
// one ability (CharacterDef.AbilityID); items come from a shared catalog.
//
// EffectType - what the action does:
//    - damage:  hits the enemy through the damage formula
//    - special: damage plus a secondary effect (shieldDamage)
//    - heal_hp: restores HP, clamped to max
//    - heal_mp: restores MP, clamped to max
//
// TargetScope - who the action affects:
//    - single_enemy / all_enemies: the encounter enemy (one per battle)
//    - single_ally: one living party member, chosen explicitly
//    - all_allies:  every living party member
//
// JSON Schema:
// ------------
// {
//   "id": "tatakiwaru",
//   "name": "Tatakiwaru",
//   "mpCost": 6,
//   "targetScope": "single_enemy",
//   "effectType": "special",
//   "power": 1.2,          // damage multiplier, or flat heal amount for heal_*
//   "shieldDamage": 2,     // optional
//   "isCritical": false,   // optional, forces a critical hit
//   "damageType": ""       // optional, checked against enemy weaknesses
// }
//
// Damage formula (see combat.Resolve):
//   base   = attack - floor(defense/2)
//   jitter = [0.9, 1.1]
//   x1.3 weakness, x1.5 critical (15%), x2.0 broken, /2 defending, min 1

// EffectType represents what an ability or item does.
type EffectType string

const (
	EffectDamage  EffectType = "damage"
	EffectSpecial EffectType = "special"
	EffectHealHP  EffectType = "heal_hp"
	EffectHealMP  EffectType = "heal_mp"
)

// IsOffensive returns true for effects that go through the damage formula.
func (e EffectType) IsOffensive() bool {
	return e == EffectDamage || e == EffectSpecial
}

// TargetScope represents who an ability or item can target.
type TargetScope string

const (
	TargetSingleEnemy TargetScope = "single_enemy"
	TargetAllEnemies  TargetScope = "all_enemies"
	TargetSingleAlly  TargetScope = "single_ally"
	TargetAllAllies   TargetScope = "all_allies"
)

// NeedsTarget returns true if the scope requires explicit target selection.
// Enemy scopes never do because an encounter has exactly one enemy.
func (s TargetScope) NeedsTarget() bool {
	return s == TargetSingleAlly
}

// IsOffensive returns true if the scope targets the enemy side.
func (s TargetScope) IsOffensive() bool {
	return s == TargetSingleEnemy || s == TargetAllEnemies
}

// DamageType is a weapon or element tag matched against enemy weaknesses.
type DamageType string

const (
	DamageSword     DamageType = "sword"
	DamageSpear     DamageType = "spear"
	DamageDagger    DamageType = "dagger"
	DamageAxe       DamageType = "axe"
	DamageBow       DamageType = "bow"
	DamageStaff     DamageType = "staff"
	DamageFire      DamageType = "fire"
	DamageIce       DamageType = "ice"
	DamageLightning DamageType = "lightning"
	DamageWind      DamageType = "wind"
	DamageLight     DamageType = "light"
	DamageDark      DamageType = "dark"
)

var damageTypeLabels = map[DamageType]struct{ glyph, name string }{
	DamageSword:     {"剣", "Sword"},
	DamageSpear:     {"槍", "Spear"},
	DamageDagger:    {"短", "Dagger"},
	DamageAxe:       {"斧", "Axe"},
	DamageBow:       {"弓", "Bow"},
	DamageStaff:     {"杖", "Staff"},
	DamageFire:      {"火", "Fire"},
	DamageIce:       {"氷", "Ice"},
	DamageLightning: {"雷", "Lightning"},
	DamageWind:      {"風", "Wind"},
	DamageLight:     {"光", "Light"},
	DamageDark:      {"闇", "Dark"},
}

// Glyph returns the single-character icon shown for a revealed weakness.
func (d DamageType) Glyph() string {
	if l, ok := damageTypeLabels[d]; ok {
		return l.glyph
	}
	return "?"
}

// Name returns the display name used in battle logs.
func (d DamageType) Name() string {
	if l, ok := damageTypeLabels[d]; ok {
		return l.name
	}
	return "Unknown"
}

// AbilityDef defines an ability loaded from JSON or YAML.
type AbilityDef struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description" yaml:"description"`
	MPCost       int         `json:"mpCost" yaml:"mpCost"`
	TargetScope  TargetScope `json:"targetScope" yaml:"targetScope"`
	EffectType   EffectType  `json:"effectType" yaml:"effectType"`
	Power        float64     `json:"power" yaml:"power"`
	ShieldDamage int         `json:"shieldDamage,omitempty" yaml:"shieldDamage,omitempty"`
	IsCritical   bool        `json:"isCritical,omitempty" yaml:"isCritical,omitempty"`
	DamageType   DamageType  `json:"damageType,omitempty" yaml:"damageType,omitempty"`
}

// NeedsTarget returns true if the ability requires target selection.
func (a *AbilityDef) NeedsTarget() bool {
	return a.TargetScope.NeedsTarget()
}

// PowerMultiplier returns the damage multiplier, treating zero as 1.0.
func (a *AbilityDef) PowerMultiplier() float64 {
	if a.Power == 0 {
		return 1.0
	}
	return a.Power
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities" yaml:"abilities"`
}

// LoadAbilities loads ability definitions from the embedded abilities.json file.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	return file.Abilities, nil
}

// ItemDef defines a consumable item.
type ItemDef struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Type        string      `json:"type" yaml:"type"`
	TargetScope TargetScope `json:"targetScope" yaml:"targetScope"`
	EffectType  EffectType  `json:"effectType" yaml:"effectType"`
	EffectValue int         `json:"effectValue" yaml:"effectValue"`
	Price       int         `json:"price" yaml:"price"`
}

// NeedsTarget returns true if the item requires target selection.
func (i *ItemDef) NeedsTarget() bool {
	return i.TargetScope.NeedsTarget()
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items" yaml:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
