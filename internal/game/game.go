// Package game is the headless host that drives battle sessions: it owns
// the host tick loop, answers turns through a Policy, presents events and
// fires the resume callback.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/bbq/internal/battle"
	"github.com/samdwyer/bbq/internal/gamedata"
	"github.com/samdwyer/bbq/internal/logging"
	"github.com/samdwyer/bbq/internal/party"
	"github.com/samdwyer/bbq/internal/telemetry"
)

// ErrStalled is returned when a battle exceeds Config.MaxTicks.
var ErrStalled = errors.New("battle did not finish within the tick limit")

// Presenter receives every battle event before the host resumes.
type Presenter interface {
	Present(ev *battle.Event)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ev *battle.Event)

// Present calls f(ev).
func (f PresenterFunc) Present(ev *battle.Event) { f(ev) }

// Report is the record of one hosted battle.
type Report struct {
	Seed       int64           `json:"seed"`
	EnemyID    string          `json:"enemyId"`
	Result     *battle.Result  `json:"result"`
	Rejections int             `json:"rejections"`
	Events     []*battle.Event `json:"events,omitempty"`
}

// Game holds the host state shared across battles.
type Game struct {
	cfg        Config
	catalog    *gamedata.Catalog
	store      *party.MemoryStore
	policy     Policy
	presenter  Presenter
	tracer     trace.Tracer
	keepEvents bool
}

// Option customizes a Game.
type Option func(*Game)

// WithPolicy replaces the autopilot.
func WithPolicy(p Policy) Option { return func(g *Game) { g.policy = p } }

// WithPresenter sets the event presenter.
func WithPresenter(p Presenter) Option { return func(g *Game) { g.presenter = p } }

// WithTracer sets the tracer for host and battle spans.
func WithTracer(t trace.Tracer) Option { return func(g *Game) { g.tracer = t } }

// WithStore shares a party store across games.
func WithStore(s *party.MemoryStore) Option { return func(g *Game) { g.store = s } }

// KeepEvents records every event in the Report.
func KeepEvents() Option { return func(g *Game) { g.keepEvents = true } }

// New creates a game instance with a fresh party from the catalog.
func New(cfg Config, catalog *gamedata.Catalog, opts ...Option) *Game {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = DefaultMaxTicks
	}
	g := &Game{
		cfg:     cfg,
		catalog: catalog,
		tracer:  telemetry.NoopTracer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = party.NewMemoryStore(catalog.Characters)
	}
	if g.policy == nil {
		g.policy = NewAutopilot(catalog.Abilities)
	}
	return g
}

// Store returns the party store the game plays with.
func (g *Game) Store() *party.MemoryStore { return g.store }

// Run plays one battle with the configured seed.
func (g *Game) Run(ctx context.Context) (*Report, error) {
	return g.RunSeed(ctx, g.cfg.ResolveSeed())
}

// RunSeed plays one battle to its end using seed for every random roll.
func (g *Game) RunSeed(ctx context.Context, seed int64) (*Report, error) {
	rng := rand.New(rand.NewSource(seed))
	def, err := g.pickEnemy(rng)
	if err != nil {
		return nil, err
	}

	ctx, span := g.tracer.Start(ctx, "game.battle")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("seed", seed),
		attribute.String("enemy", def.ID),
	)

	report := &Report{Seed: seed, EnemyID: def.ID}
	s, err := battle.NewSession(battle.Options{
		Store:     g.store,
		Enemy:     def,
		Abilities: g.catalog.Abilities,
		Items:     g.catalog.Items,
		Rand:      rng,
		Tracer:    g.tracer,
		OnEvent: func(ev *battle.Event) {
			if g.keepEvents {
				report.Events = append(report.Events, ev)
			}
			if g.presenter != nil {
				g.presenter.Present(ev)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.Start(ctx); err != nil {
		return nil, err
	}

	for !s.Done() {
		if s.Ticks() > g.cfg.MaxTicks {
			span.SetAttributes(attribute.Bool("stalled", true))
			return report, fmt.Errorf("%w: %d ticks against %s", ErrStalled, s.Ticks(), def.ID)
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ev, err := s.Tick(ctx)
		if err != nil {
			return report, err
		}
		if ev == nil {
			continue
		}
		if ev.Kind == battle.EventTurnStart {
			if err := g.command(ctx, s, report); err != nil {
				return report, err
			}
		}
		if s.Phase() == battle.PhaseExecuting {
			if _, err := s.Resume(ctx); err != nil {
				return report, err
			}
		}
	}

	report.Result = s.Result()
	span.SetAttributes(
		attribute.String("outcome", string(report.Result.Outcome)),
		attribute.Int("turns", report.Result.Turns),
	)
	return report, nil
}

// command answers the active member's turn. A rejected choice is logged
// and replaced by a basic attack.
func (g *Game) command(ctx context.Context, s *battle.Session, report *Report) error {
	v := s.View()
	var m battle.MemberView
	for _, mv := range v.Members {
		if mv.ID == v.ActiveID {
			m = mv
			break
		}
	}

	in := g.policy.Choose(v, m)
	if _, err := s.Submit(ctx, in); err != nil {
		report.Rejections++
		logging.Warn("command rejected", err,
			zap.String("session", s.ID()),
			zap.String("member", m.ID),
			zap.String("kind", string(in.Kind)),
			zap.String("reason", string(battle.RejectReason(err))),
		)
		_, err = s.Submit(ctx, battle.Attack())
		return err
	}

	if s.Phase() == battle.PhaseTargetSelection {
		if _, err := s.SelectTarget(ctx, m.ID); err != nil {
			report.Rejections++
			if cerr := s.CancelTargetSelection(); cerr != nil {
				return cerr
			}
			_, err = s.Submit(ctx, battle.Attack())
			return err
		}
	}
	return nil
}

func (g *Game) pickEnemy(rng *rand.Rand) (*gamedata.EnemyDef, error) {
	if g.cfg.EnemyID != "" {
		def := g.catalog.Enemies.GetByID(g.cfg.EnemyID)
		if def == nil {
			return nil, fmt.Errorf("enemy %q: %w", g.cfg.EnemyID, battle.ErrUnknownEnemy)
		}
		return def, nil
	}
	def := g.catalog.Enemies.SpawnRandom(rng)
	if def == nil {
		return nil, fmt.Errorf("random spawn: %w", battle.ErrUnknownEnemy)
	}
	return def, nil
}
