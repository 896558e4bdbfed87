package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/bbq/internal/battle"
	"github.com/samdwyer/bbq/internal/gamedata"
)

var testCatalog = gamedata.MustLoadCatalog()

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{"defaults", nil, Config{MaxTicks: DefaultMaxTicks}, false},
		{"all set", map[string]string{
			EnvSeed: "42", EnvEnemy: "bat", EnvDataDir: "/tmp/data", EnvMaxTicks: "500",
		}, Config{Seed: 42, EnemyID: "bat", DataDir: "/tmp/data", MaxTicks: 500}, false},
		{"bad seed", map[string]string{EnvSeed: "abc"}, Config{}, true},
		{"bad ticks", map[string]string{EnvMaxTicks: "-1"}, Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(func(k string) string { return tt.env[k] })
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("LoadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	if got := (Config{Seed: 7}).ResolveSeed(); got != 7 {
		t.Errorf("ResolveSeed() = %d, want 7", got)
	}
	if got := (Config{}).ResolveSeed(); got == 0 {
		t.Error("zero seed should resolve to a time-based seed")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Seed: 42, EnemyID: "goblin"}
	a, err := New(cfg, testCatalog, KeepEvents()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg, testCatalog, KeepEvents()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if a.Result.Turns != b.Result.Turns || a.Result.Ticks != b.Result.Ticks || a.Result.PartyHP != b.Result.PartyHP {
		t.Errorf("results differ: %+v vs %+v", a.Result, b.Result)
	}
	if len(a.Events) != len(b.Events) {
		t.Fatalf("event counts differ: %d vs %d", len(a.Events), len(b.Events))
	}
	for i := range a.Events {
		if a.Events[i].Kind != b.Events[i].Kind || a.Events[i].TotalMagnitude() != b.Events[i].TotalMagnitude() {
			t.Fatalf("event %d differs: %+v vs %+v", i, a.Events[i], b.Events[i])
		}
	}
}

func TestRunSlimeVictoryPersists(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := New(Config{Seed: seed, EnemyID: "slime"}, testCatalog)
		report, err := g.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if report.Result.Outcome != battle.OutcomeVictory {
			t.Fatalf("seed %d: outcome %s", seed, report.Result.Outcome)
		}
		if report.Rejections != 0 {
			t.Errorf("seed %d: %d rejected commands", seed, report.Rejections)
		}
		for _, rec := range g.Store().Records() {
			if rec.Dead {
				continue
			}
			if rec.Stats.EXP != 15 {
				t.Errorf("seed %d: %s EXP = %d, want 15", seed, rec.Def.ID, rec.Stats.EXP)
			}
		}
	}
}

func TestRunUnknownEnemy(t *testing.T) {
	_, err := New(Config{Seed: 1, EnemyID: "dragon"}, testCatalog).Run(context.Background())
	if !errors.Is(err, battle.ErrUnknownEnemy) {
		t.Errorf("Run() error = %v, want ErrUnknownEnemy", err)
	}
}

func TestRunStalls(t *testing.T) {
	_, err := New(Config{Seed: 1, EnemyID: "goblin", MaxTicks: 10}, testCatalog).Run(context.Background())
	if !errors.Is(err, ErrStalled) {
		t.Errorf("Run() error = %v, want ErrStalled", err)
	}
}

func TestRunHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Seed: 1, EnemyID: "slime"}, testCatalog).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestTextPresenter(t *testing.T) {
	var buf bytes.Buffer
	g := New(Config{Seed: 3, EnemyID: "slime"}, testCatalog, WithPresenter(&TextPresenter{W: &buf}))
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Slime appeared!") || !strings.Contains(out, "Defeated Slime!") {
		t.Errorf("output missing start or end:\n%s", out)
	}
	if strings.Contains(out, "'s turn.") {
		t.Error("turn_start lines should be hidden unless verbose")
	}
}

func TestBatchIndependentOfWorkers(t *testing.T) {
	cfg := Config{Seed: 100}
	one, err := RunBatch(context.Background(), cfg, testCatalog, 24, 1)
	if err != nil {
		t.Fatal(err)
	}
	many, err := RunBatch(context.Background(), cfg, testCatalog, 24, 6)
	if err != nil {
		t.Fatal(err)
	}

	if got := one.Victories + one.Defeats + one.Escapes + one.Stalled; got != 24 {
		t.Errorf("outcomes sum to %d, want 24", got)
	}
	if one.Victories != many.Victories || one.AvgTicks != many.AvgTicks || one.LevelUps != many.LevelUps {
		t.Errorf("summaries differ by worker count: %+v vs %+v", one, many)
	}
	runs := 0
	for _, e := range one.ByEnemy {
		runs += e.Runs
	}
	if runs != 24 {
		t.Errorf("ByEnemy runs = %d, want 24", runs)
	}
}
