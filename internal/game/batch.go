package game

import (
	"context"
	"errors"
	"sync"

	"github.com/samdwyer/bbq/internal/battle"
	"github.com/samdwyer/bbq/internal/gamedata"
)

// EnemySummary aggregates runs against one enemy type.
type EnemySummary struct {
	Runs      int `json:"runs"`
	Victories int `json:"victories"`
}

// Summary aggregates a batch of simulated battles.
type Summary struct {
	Runs       int                      `json:"runs"`
	BaseSeed   int64                    `json:"baseSeed"`
	Victories  int                      `json:"victories"`
	Defeats    int                      `json:"defeats"`
	Escapes    int                      `json:"escapes"`
	Stalled    int                      `json:"stalled"`
	WinRate    float64                  `json:"winRate"`
	AvgTurns   float64                  `json:"avgTurns"`
	AvgTicks   float64                  `json:"avgTicks"`
	LevelUps   int                      `json:"levelUps"`
	Rejections int                      `json:"rejections"`
	ByEnemy    map[string]*EnemySummary `json:"byEnemy"`

	sumTurns int
	sumTicks int
}

func (s *Summary) add(r *Report) {
	res := r.Result
	e := s.ByEnemy[r.EnemyID]
	if e == nil {
		e = &EnemySummary{}
		s.ByEnemy[r.EnemyID] = e
	}
	e.Runs++
	s.Rejections += r.Rejections
	switch res.Outcome {
	case battle.OutcomeVictory:
		s.Victories++
		e.Victories++
	case battle.OutcomeDefeat:
		s.Defeats++
	case battle.OutcomeEscaped:
		s.Escapes++
	}
	for _, x := range res.Experience {
		if x.LevelUp != nil {
			s.LevelUps += x.LevelUp.LevelsGained
		}
	}
	s.sumTurns += res.Turns
	s.sumTicks += res.Ticks
}

// RunBatch plays n independent battles on a pool of workers. Run i uses
// seed base+i with a fresh party, so the summary does not depend on the
// number of workers.
func RunBatch(ctx context.Context, cfg Config, catalog *gamedata.Catalog, n, workers int, opts ...Option) (*Summary, error) {
	if workers <= 0 {
		workers = 1
	}
	base := cfg.ResolveSeed()
	st := &Summary{Runs: n, BaseSeed: base, ByEnemy: map[string]*EnemySummary{}}

	var mu sync.Mutex
	var firstErr error
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				g := New(cfg, catalog, opts...)
				report, err := g.RunSeed(ctx, base+int64(i))

				mu.Lock()
				switch {
				case errors.Is(err, ErrStalled):
					st.Stalled++
				case err != nil:
					if firstErr == nil {
						firstErr = err
					}
				default:
					st.add(report)
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return st, firstErr
	}
	if finished := n - st.Stalled; finished > 0 {
		st.WinRate = float64(st.Victories) / float64(n)
		st.AvgTurns = float64(st.sumTurns) / float64(finished)
		st.AvgTicks = float64(st.sumTicks) / float64(finished)
	}
	return st, nil
}
