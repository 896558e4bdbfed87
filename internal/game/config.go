package game

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed     = "BBQ_SEED"
	EnvEnemy    = "BBQ_ENEMY"
	EnvDataDir  = "BBQ_DATA_DIR"
	EnvMaxTicks = "BBQ_MAX_TICKS"
)

// DefaultMaxTicks bounds a single battle so a stalled policy cannot spin forever.
const DefaultMaxTicks = 200000

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// EnemyID fixes the encounter. Empty means a weighted random spawn.
	EnemyID string
	// DataDir optionally holds YAML catalog overrides.
	DataDir string
	// MaxTicks aborts a battle that runs longer than this many host ticks.
	MaxTicks int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{MaxTicks: DefaultMaxTicks}
}

// LoadConfig reads configuration from the environment via getenv (usually
// os.Getenv). Unset variables keep their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := getenv(EnvMaxTicks); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxTicks, err)
		}
		if n <= 0 {
			return cfg, fmt.Errorf("%s must be positive, got %d", EnvMaxTicks, n)
		}
		cfg.MaxTicks = n
	}
	cfg.EnemyID = getenv(EnvEnemy)
	cfg.DataDir = getenv(EnvDataDir)
	return cfg, nil
}

// ResolveSeed returns the configured seed, or a time-based one for 0.
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
