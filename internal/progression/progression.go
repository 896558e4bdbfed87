// Package progression implements experience awards and level-ups.
package progression

import "github.com/samdwyer/bbq/internal/gamedata"

// MaxLevel is the level cap.
const MaxLevel = 99

// expCurve scales the quadratic EXP curve.
const expCurve = 16

// RequiredExp returns the cumulative EXP needed to reach level.
func RequiredExp(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return expCurve * n * n
}

// ExpToNextLevel returns how much more EXP stats need for the next level,
// or 0 at the cap.
func ExpToNextLevel(stats gamedata.Stats) int {
	if stats.Level >= MaxLevel {
		return 0
	}
	need := RequiredExp(stats.Level+1) - stats.EXP
	if need < 0 {
		return 0
	}
	return need
}

// StatGains is the per-stat delta applied by a level-up.
type StatGains struct {
	MaxHP   int `json:"maxHp"`
	MaxMP   int `json:"maxMp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// LevelUp describes the levels gained from one award.
type LevelUp struct {
	LevelsGained int       `json:"levelsGained"`
	NewLevel     int       `json:"newLevel"`
	Gains        StatGains `json:"gains"`
}

// Result is the per-member outcome of an experience award.
type Result struct {
	MemberID   string   `json:"memberId"`
	MemberName string   `json:"memberName"`
	ExpGained  int      `json:"expGained"`
	Dead       bool     `json:"dead"`
	LevelUp    *LevelUp `json:"levelUp,omitempty"`
}

// Apply adds exp to stats and levels up as many times as the curve allows.
// Any level gained applies growth once per level and fully restores HP and
// MP. The returned LevelUp is nil when no level was gained.
func Apply(stats *gamedata.Stats, exp int, growth gamedata.Growth) *LevelUp {
	if exp > 0 {
		stats.EXP += exp
	}
	if stats.Level < 1 {
		stats.Level = 1
	}

	start := stats.Level
	for stats.Level < MaxLevel && stats.EXP >= RequiredExp(stats.Level+1) {
		stats.Level++
	}
	levels := stats.Level - start
	if levels == 0 {
		return nil
	}

	g := growth.Scale(levels)
	stats.MaxHP += g.HP
	stats.MaxMP += g.MP
	stats.Attack += g.Attack
	stats.Defense += g.Defense
	stats.Speed += g.Speed
	stats.HP = stats.MaxHP
	stats.MP = stats.MaxMP

	return &LevelUp{
		LevelsGained: levels,
		NewLevel:     stats.Level,
		Gains: StatGains{
			MaxHP:   g.HP,
			MaxMP:   g.MP,
			Attack:  g.Attack,
			Defense: g.Defense,
			Speed:   g.Speed,
		},
	}
}
