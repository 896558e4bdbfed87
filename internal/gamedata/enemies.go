package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef is an immutable enemy template. Battles instantiate a fresh
// entity.Enemy from it and never write back.
type EnemyDef struct {
	ID          string       `json:"id" yaml:"id"`                   // Unique identifier (e.g., "slime")
	Name        string       `json:"name" yaml:"name"`               // Display name
	SpriteKey   string       `json:"spriteKey" yaml:"spriteKey"`     // Opaque to the battle core
	Color       string       `json:"color" yaml:"color"`             // Hex tint (e.g., "#e94560")
	HP          int          `json:"hp" yaml:"hp"`                   // Base hit points
	Attack      int          `json:"attack" yaml:"attack"`           // Base attack power
	Defense     int          `json:"defense" yaml:"defense"`         // Base defense value
	Speed       int          `json:"speed" yaml:"speed"`             // ATB fill speed
	Shield      int          `json:"shield" yaml:"shield"`           // Shield capacity
	Weaknesses  []DamageType `json:"weaknesses" yaml:"weaknesses"`   // Ordered weakness tags
	ExpReward   int          `json:"expReward" yaml:"expReward"`     // EXP granted to each survivor
	SpawnWeight int          `json:"spawnWeight" yaml:"spawnWeight"` // Relative encounter frequency
}

// TCellColor returns the tint as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies" yaml:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
