// Package party holds the enduring character records a battle copies in at
// start and writes back at the end.
package party

import (
	"sync"

	"github.com/samdwyer/bbq/internal/entity"
	"github.com/samdwyer/bbq/internal/gamedata"
	"github.com/samdwyer/bbq/internal/progression"
)

// Record is one character's persistent state between battles.
type Record struct {
	Def    gamedata.CharacterDef `json:"def"`
	Stats  gamedata.Stats        `json:"stats"`
	Growth gamedata.Growth       `json:"growth"`
	Dead   bool                  `json:"dead"`
}

// MemoryStore is an in-memory party store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore creates a store holding every character of the registry at
// base stats, in registry order.
func NewMemoryStore(characters *gamedata.CharacterRegistry) *MemoryStore {
	defs := characters.All()
	records := make([]Record, 0, len(defs))
	for _, def := range defs {
		records = append(records, Record{
			Def:    def,
			Stats:  def.BaseStats(),
			Growth: def.GrowthRates,
		})
	}
	return &MemoryStore{records: records}
}

// NewMemoryStoreFromRecords creates a store from explicit records.
func NewMemoryStoreFromRecords(records []Record) *MemoryStore {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &MemoryStore{records: rs}
}

// GetParty returns fresh battle working copies of every member.
func (s *MemoryStore) GetParty() []*entity.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]*entity.Member, len(s.records))
	for i := range s.records {
		r := &s.records[i]
		stats := r.Stats
		if r.Dead {
			stats.HP = 0
		}
		members[i] = entity.NewMember(&r.Def, stats)
	}
	return members
}

// UpdatePartyAfterBattle copies HP, MP and death back from the working
// copies. Members are matched by id; unknown ids are ignored.
func (s *MemoryStore) UpdatePartyAfterBattle(members []*entity.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range members {
		r := s.find(m.ID)
		if r == nil {
			continue
		}
		r.Stats.HP = m.HP
		r.Stats.MP = m.MP
		r.Dead = !m.IsAlive()
	}
}

// AwardExperience gives amount EXP to every living member. Dead members get
// nothing and their stats are left untouched.
func (s *MemoryStore) AwardExperience(amount int) []progression.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]progression.Result, 0, len(s.records))
	for i := range s.records {
		r := &s.records[i]
		res := progression.Result{MemberID: r.Def.ID, MemberName: r.Def.Name}
		if r.Dead || r.Stats.HP <= 0 {
			res.Dead = true
			results = append(results, res)
			continue
		}
		res.ExpGained = amount
		res.LevelUp = progression.Apply(&r.Stats, amount, r.Growth)
		results = append(results, res)
	}
	return results
}

// FullHeal revives every member and restores HP and MP to max.
func (s *MemoryStore) FullHeal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		r := &s.records[i]
		r.Dead = false
		r.Stats.HP = r.Stats.MaxHP
		r.Stats.MP = r.Stats.MaxMP
	}
}

// Records returns a snapshot of all records.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemoryStore) find(id string) *Record {
	for i := range s.records {
		if s.records[i].Def.ID == id {
			return &s.records[i]
		}
	}
	return nil
}
