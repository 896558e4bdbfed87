package battle

import (
	"context"
	"testing"

	"github.com/samdwyer/bbq/internal/entity"
	"github.com/samdwyer/bbq/internal/gamedata"
	"github.com/samdwyer/bbq/internal/progression"
)

var testCatalog = gamedata.MustLoadCatalog()

// scriptedRand replays fixed values. Once a script runs out Intn returns 0
// (a 30 gauge seed, the first living target) and Float64 returns 0.5 (a
// jitter of exactly 1.0 and no critical).
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// fakeStore is an in-memory PartyStore that records its calls.
type fakeStore struct {
	members []*entity.Member
	calls   []string
	updated []*entity.Member
	awarded []int
}

func (f *fakeStore) GetParty() []*entity.Member {
	f.calls = append(f.calls, "get")
	out := make([]*entity.Member, len(f.members))
	for i, m := range f.members {
		out[i] = m.Clone()
	}
	return out
}

func (f *fakeStore) UpdatePartyAfterBattle(members []*entity.Member) {
	f.calls = append(f.calls, "update")
	f.updated = members
}

func (f *fakeStore) AwardExperience(amount int) []progression.Result {
	f.calls = append(f.calls, "award")
	f.awarded = append(f.awarded, amount)
	results := make([]progression.Result, 0, len(f.updated))
	for _, m := range f.updated {
		results = append(results, progression.Result{MemberID: m.ID, ExpGained: amount, Dead: !m.IsAlive()})
	}
	return results
}

// member builds a catalog character, applying mod to its base stats.
func member(t *testing.T, id string, mod func(*gamedata.Stats)) *entity.Member {
	t.Helper()
	def := testCatalog.Characters.GetByID(id)
	if def == nil {
		t.Fatalf("no character %q", id)
	}
	stats := def.BaseStats()
	if mod != nil {
		mod(&stats)
	}
	return entity.NewMember(def, stats)
}

func enemyDef(t *testing.T, id string, mod func(*gamedata.EnemyDef)) *gamedata.EnemyDef {
	t.Helper()
	base := testCatalog.Enemies.GetByID(id)
	if base == nil {
		t.Fatalf("no enemy %q", id)
	}
	def := *base
	def.Weaknesses = append([]gamedata.DamageType(nil), base.Weaknesses...)
	if mod != nil {
		mod(&def)
	}
	return &def
}

type testBattle struct {
	s      *Session
	store  *fakeStore
	events []*Event
}

func newTestBattle(t *testing.T, rng *scriptedRand, enemy *gamedata.EnemyDef, members ...*entity.Member) *testBattle {
	t.Helper()
	tb := &testBattle{store: &fakeStore{members: members}}
	s, err := NewSession(Options{
		Store:     tb.store,
		Enemy:     enemy,
		Abilities: testCatalog.Abilities,
		Items:     testCatalog.Items,
		Rand:      rng,
		OnEvent:   func(ev *Event) { tb.events = append(tb.events, ev) },
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if _, err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tb.s = s
	return tb
}

// next ticks until a turn begins or the enemy acts.
func (tb *testBattle) next(t *testing.T) *Event {
	t.Helper()
	for i := 0; i < 10000; i++ {
		ev, err := tb.s.Tick(context.Background())
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if ev != nil {
			return ev
		}
	}
	t.Fatal("no turn within 10000 ticks")
	return nil
}

func (tb *testBattle) submit(t *testing.T, in Intent) *Event {
	t.Helper()
	ev, err := tb.s.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit(%+v) error = %v", in, err)
	}
	return ev
}

func (tb *testBattle) resume(t *testing.T) *Event {
	t.Helper()
	ev, err := tb.s.Resume(context.Background())
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	return ev
}

func (tb *testBattle) count(kind EventKind) int {
	n := 0
	for _, ev := range tb.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
