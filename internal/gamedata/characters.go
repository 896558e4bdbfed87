package gamedata

// Stats is a full stat block. Party records keep one per character and grow
// it on level-up; character definitions use it for the level-1 values.
type Stats struct {
	HP      int `json:"hp" yaml:"hp"`
	MaxHP   int `json:"maxHp" yaml:"maxHp"`
	MP      int `json:"mp" yaml:"mp"`
	MaxMP   int `json:"maxMp" yaml:"maxMp"`
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	Speed   int `json:"speed" yaml:"speed"`
	Level   int `json:"level" yaml:"level"`
	EXP     int `json:"exp" yaml:"exp"`
}

// Growth holds per-level stat deltas applied on level-up.
type Growth struct {
	HP      int `json:"hp" yaml:"hp"`
	MP      int `json:"mp" yaml:"mp"`
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	Speed   int `json:"speed" yaml:"speed"`
}

// Scale returns the growth multiplied by a number of levels.
func (g Growth) Scale(levels int) Growth {
	return Growth{
		HP:      g.HP * levels,
		MP:      g.MP * levels,
		Attack:  g.Attack * levels,
		Defense: g.Defense * levels,
		Speed:   g.Speed * levels,
	}
}

// CharacterDef defines a playable character loaded from JSON.
type CharacterDef struct {
	ID              string     `json:"id" yaml:"id"`                           // Unique identifier (e.g., "torikun")
	Name            string     `json:"name" yaml:"name"`                       // Display name
	SpriteKey       string     `json:"spriteKey" yaml:"spriteKey"`             // Field sprite, opaque to the battle core
	BattleSpriteKey string     `json:"battleSpriteKey" yaml:"battleSpriteKey"` // Battle sprite, opaque to the battle core
	DefaultWeapon   DamageType `json:"defaultWeapon" yaml:"defaultWeapon"`     // Weapon tag used by basic attacks
	AbilityID       string     `json:"abilityId" yaml:"abilityId"`             // The one ability this character can use
	InitialStats    Stats      `json:"initialStats" yaml:"initialStats"`
	GrowthRates     Growth     `json:"growthRates" yaml:"growthRates"`
}

// BaseStats returns a copy of the level-1 stat block.
func (c *CharacterDef) BaseStats() Stats {
	return c.InitialStats
}

// CharactersFile represents the structure of characters.json.
type CharactersFile struct {
	Characters []CharacterDef `json:"characters" yaml:"characters"`
}

// LoadCharacters loads character definitions from the embedded characters.json file.
func LoadCharacters() ([]CharacterDef, error) {
	file, err := Load[CharactersFile]("characters.json")
	if err != nil {
		return nil, err
	}
	return file.Characters, nil
}

// MustLoadCharacters loads character definitions, panicking on error.
func MustLoadCharacters() []CharacterDef {
	characters, err := LoadCharacters()
	if err != nil {
		panic(err)
	}
	return characters
}
