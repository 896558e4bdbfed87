package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
)

// EnemyRegistry holds loaded enemy templates and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// SpawnRandom selects a random enemy template using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[0]
}

// GetByID returns the enemy template with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy templates.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// AbilityRegistry
// =============================================================================

// AbilityRegistry holds loaded ability definitions and provides lookup utilities.
type AbilityRegistry struct {
	abilities map[string]*AbilityDef
	all       []AbilityDef
}

// NewAbilityRegistry creates a registry from loaded ability definitions.
func NewAbilityRegistry(abilities []AbilityDef) *AbilityRegistry {
	registry := &AbilityRegistry{
		abilities: make(map[string]*AbilityDef),
		all:       abilities,
	}
	for i := range abilities {
		registry.abilities[abilities[i].ID] = &abilities[i]
	}
	return registry
}

// LoadAbilityRegistry loads and creates a registry from the embedded abilities.json.
func LoadAbilityRegistry() (*AbilityRegistry, error) {
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	if len(abilities) == 0 {
		return nil, errors.New("no abilities loaded from abilities.json")
	}
	return NewAbilityRegistry(abilities), nil
}

// MustLoadAbilityRegistry loads a registry, panicking on error.
func MustLoadAbilityRegistry() *AbilityRegistry {
	registry, err := LoadAbilityRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the ability definition with the given ID, or nil if not found.
func (r *AbilityRegistry) GetByID(id string) *AbilityDef {
	return r.abilities[id]
}

// All returns all ability definitions.
func (r *AbilityRegistry) All() []AbilityDef {
	return r.all
}

// Count returns the number of abilities in the registry.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions keyed by ID.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// MustLoadItemRegistry loads the embedded items.json, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	items, err := LoadItems()
	if err != nil {
		panic(err)
	}
	return NewItemRegistry(items)
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// All returns all item definitions in catalog order.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// CharacterRegistry
// =============================================================================

// CharacterRegistry holds playable character definitions in party order.
type CharacterRegistry struct {
	characters []CharacterDef
}

// NewCharacterRegistry creates a registry from loaded character definitions.
func NewCharacterRegistry(characters []CharacterDef) *CharacterRegistry {
	return &CharacterRegistry{characters: characters}
}

// GetByID returns the character definition with the given ID, or nil if not found.
func (r *CharacterRegistry) GetByID(id string) *CharacterDef {
	for i := range r.characters {
		if r.characters[i].ID == id {
			return &r.characters[i]
		}
	}
	return nil
}

// BaseStats returns the immutable level-1 stats and growth rates for a character.
func (r *CharacterRegistry) BaseStats(id string) (Stats, Growth, bool) {
	def := r.GetByID(id)
	if def == nil {
		return Stats{}, Growth{}, false
	}
	return def.InitialStats, def.GrowthRates, true
}

// All returns all character definitions.
func (r *CharacterRegistry) All() []CharacterDef {
	return r.characters
}

// Count returns the number of characters in the registry.
func (r *CharacterRegistry) Count() int {
	return len(r.characters)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles every static table the battle core reads.
type Catalog struct {
	Characters *CharacterRegistry
	Enemies    *EnemyRegistry
	Abilities  *AbilityRegistry
	Items      *ItemRegistry
}

// LoadCatalog loads all embedded tables and validates cross references.
func LoadCatalog() (*Catalog, error) {
	characters, err := LoadCharacters()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		Characters: NewCharacterRegistry(characters),
		Enemies:    NewEnemyRegistry(enemies),
		Abilities:  NewAbilityRegistry(abilities),
		Items:      NewItemRegistry(items),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalogDir loads the embedded catalog and replaces any table for which
// dir contains a YAML file (characters.yaml, enemies.yaml, abilities.yaml,
// items.yaml). An empty dir returns the embedded catalog unchanged.
func LoadCatalogDir(dir string) (*Catalog, error) {
	c, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}

	var cf CharactersFile
	if ok, err := loadYAML(filepath.Join(dir, "characters.yaml"), &cf); err != nil {
		return nil, err
	} else if ok {
		c.Characters = NewCharacterRegistry(cf.Characters)
	}
	var ef EnemiesFile
	if ok, err := loadYAML(filepath.Join(dir, "enemies.yaml"), &ef); err != nil {
		return nil, err
	} else if ok {
		c.Enemies = NewEnemyRegistry(ef.Enemies)
	}
	var af AbilitiesFile
	if ok, err := loadYAML(filepath.Join(dir, "abilities.yaml"), &af); err != nil {
		return nil, err
	} else if ok {
		c.Abilities = NewAbilityRegistry(af.Abilities)
	}
	var itf ItemsFile
	if ok, err := loadYAML(filepath.Join(dir, "items.yaml"), &itf); err != nil {
		return nil, err
	} else if ok {
		c.Items = NewItemRegistry(itf.Items)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog overrides in %s: %w", dir, err)
	}
	return c, nil
}

// Validate checks that tables are non-empty, IDs are unique and every
// character references a known ability.
func (c *Catalog) Validate() error {
	if c.Characters.Count() == 0 {
		return errors.New("no characters defined")
	}
	if c.Enemies.Count() == 0 {
		return errors.New("no enemies defined")
	}
	seen := make(map[string]struct{})
	for _, ch := range c.Characters.All() {
		if ch.ID == "" {
			return errors.New("character entry missing 'id'")
		}
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("duplicate character id %q", ch.ID)
		}
		seen[ch.ID] = struct{}{}
		if ch.AbilityID != "" && c.Abilities.GetByID(ch.AbilityID) == nil {
			return fmt.Errorf("character %q references unknown ability %q", ch.ID, ch.AbilityID)
		}
	}
	seen = make(map[string]struct{})
	for _, e := range c.Enemies.All() {
		if e.ID == "" {
			return errors.New("enemy entry missing 'id'")
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate enemy id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.HP <= 0 {
			return fmt.Errorf("enemy %q must have positive hp", e.ID)
		}
	}
	return nil
}
