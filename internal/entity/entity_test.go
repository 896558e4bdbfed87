package entity

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bbq/internal/gamedata"
)

func testCharacter() *gamedata.CharacterDef {
	return &gamedata.CharacterDef{
		ID:            "torikun",
		Name:          "Torikun",
		DefaultWeapon: gamedata.DamageSword,
		AbilityID:     "zenryoku",
	}
}

func TestNewMemberClampsStats(t *testing.T) {
	m := NewMember(testCharacter(), gamedata.Stats{HP: 500, MaxHP: 100, MP: -3, MaxMP: 20, Attack: 15, Level: 1})
	if m.HP != 100 || m.MP != 0 {
		t.Errorf("HP=%d MP=%d, want 100 and 0", m.HP, m.MP)
	}
	if m.WeaponType != gamedata.DamageSword || m.AbilityID != "zenryoku" {
		t.Errorf("weapon=%q ability=%q", m.WeaponType, m.AbilityID)
	}
	if got := m.Stats(); got.MaxHP != 100 || got.Attack != 15 || got.Level != 1 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestMemberMutations(t *testing.T) {
	m := NewMember(testCharacter(), gamedata.Stats{HP: 50, MaxHP: 100, MP: 10, MaxMP: 20})

	tests := []struct {
		name   string
		action func() int
		want   int
		wantHP int
		wantMP int
	}{
		{"damage", func() int { return m.TakeDamage(20) }, 20, 30, 10},
		{"negative damage", func() int { return m.TakeDamage(-5) }, 0, 30, 10},
		{"heal clamps", func() int { return m.Heal(500) }, 70, 100, 10},
		{"restore mp clamps", func() int { return m.RestoreMP(50) }, 10, 100, 20},
		{"overkill", func() int { return m.TakeDamage(999) }, 100, 0, 20},
		{"no heal when dead", func() int { return m.Heal(10) }, 0, 0, 20},
	}
	for _, tt := range tests {
		if got := tt.action(); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
		if m.HP != tt.wantHP || m.MP != tt.wantMP {
			t.Errorf("%s: HP=%d MP=%d, want %d/%d", tt.name, m.HP, m.MP, tt.wantHP, tt.wantMP)
		}
	}
}

func TestMemberSpendMP(t *testing.T) {
	m := NewMember(testCharacter(), gamedata.Stats{HP: 10, MaxHP: 10, MP: 5, MaxMP: 20})
	if m.SpendMP(6) {
		t.Error("SpendMP(6) with 5 MP should fail")
	}
	if m.MP != 5 {
		t.Errorf("failed spend changed MP to %d", m.MP)
	}
	if !m.SpendMP(5) || m.MP != 0 {
		t.Errorf("SpendMP(5) left MP=%d", m.MP)
	}
}

func TestMemberCloneIsIndependent(t *testing.T) {
	m := NewMember(testCharacter(), gamedata.Stats{HP: 10, MaxHP: 10})
	c := m.Clone()
	c.TakeDamage(5)
	if m.HP != 10 {
		t.Errorf("clone mutation leaked: HP=%d", m.HP)
	}
}

func TestDeathClearsDefending(t *testing.T) {
	m := NewMember(testCharacter(), gamedata.Stats{HP: 10, MaxHP: 10})
	m.SetDefending(true)
	m.TakeDamage(10)
	if m.IsDefending() {
		t.Error("dead member still defending")
	}
}

func TestNewEnemyDoesNotShareTemplate(t *testing.T) {
	def := &gamedata.EnemyDef{
		ID: "slime", Name: "Slime", HP: 30, Attack: 8, Defense: 2, Speed: 30,
		Shield: 2, Weaknesses: []gamedata.DamageType{gamedata.DamageSword}, ExpReward: 5, Color: "#4fc3f7",
	}
	a := NewEnemy(def)
	b := NewEnemy(def)

	a.TakeDamage(10)
	a.Shield.RegisterWeaknessHit(gamedata.DamageSword, 1)
	def.Weaknesses[0] = gamedata.DamageFire

	if def.HP != 30 {
		t.Errorf("template HP mutated to %d", def.HP)
	}
	if b.HP != 30 || b.Shield.Current() != 2 {
		t.Errorf("second spawn shares state: HP=%d shield=%d", b.HP, b.Shield.Current())
	}
	if _, ok := b.Shield.Weakness(gamedata.DamageSword); !ok {
		t.Error("spawned shield should keep its own weakness list")
	}
}

func TestEnemyView(t *testing.T) {
	e := NewEnemy(&gamedata.EnemyDef{ID: "bat", Name: "Bat", HP: 20, Shield: 3, Color: "#ff0000"})
	v := e.View()
	if v.Color != "#ff0000" {
		t.Errorf("Color = %q", v.Color)
	}
	if e.Color() != tcell.NewHexColor(0xff0000) {
		t.Errorf("tcell color = %v", e.Color())
	}
	if r, g, b := v.Tint.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("Tint.RGB() = %d,%d,%d", r, g, b)
	}
	if v.Shield.Label != "3" || v.HP != 20 {
		t.Errorf("view = %+v", v)
	}
	if e.GetMP() != 0 || e.SpendMP(1) || e.IsDefending() {
		t.Error("enemy has no MP and never defends")
	}
}

func TestEnemyCombatant(t *testing.T) {
	e := NewEnemy(&gamedata.EnemyDef{ID: "goblin", Name: "Goblin", HP: 80, Attack: 20, Defense: 5, Speed: 35})
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"hp", e.GetHP(), 80},
		{"max hp", e.GetMaxHP(), 80},
		{"max mp", e.GetMaxMP(), 0},
		{"attack", e.GetAttack(), 20},
		{"defense", e.GetDefense(), 5},
		{"speed", e.GetSpeed(), 35},
		{"restore mp", e.RestoreMP(10), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if e.GetID() != "goblin" || e.GetName() != "Goblin" {
		t.Errorf("identity = %s/%s", e.GetID(), e.GetName())
	}

	e.TakeDamage(100)
	if e.IsAlive() || e.Heal(10) != 0 {
		t.Error("dead enemy should not heal")
	}
}

func TestPartyQueries(t *testing.T) {
	a := NewMember(&gamedata.CharacterDef{ID: "a"}, gamedata.Stats{HP: 10, MaxHP: 10})
	b := NewMember(&gamedata.CharacterDef{ID: "b"}, gamedata.Stats{HP: 0, MaxHP: 10})
	c := NewMember(&gamedata.CharacterDef{ID: "c"}, gamedata.Stats{HP: 4, MaxHP: 10})
	p := NewParty([]*Member{a, b, c})

	if p.AliveMemberCount() != 2 || p.Wiped() {
		t.Errorf("alive=%d wiped=%v", p.AliveMemberCount(), p.Wiped())
	}
	if living := p.Living(); len(living) != 2 || living[1].ID != "c" {
		t.Errorf("Living() = %v", living)
	}
	if p.Index("c") != 2 || p.Index("zz") != -1 {
		t.Error("Index lookup wrong")
	}
	if p.TotalHP() != 14 {
		t.Errorf("TotalHP() = %d", p.TotalHP())
	}
	a.TakeDamage(10)
	c.TakeDamage(10)
	if !p.Wiped() {
		t.Error("party should be wiped")
	}
}
