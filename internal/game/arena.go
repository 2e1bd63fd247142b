package game

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// ArenaConfig describes a batch of matches run against fresh players.
type ArenaConfig struct {
	Matches []MatchSpec
	Workers int // parallel matches, <= 0 means one
	Rounds  int // used for specs with Rounds == 0
}

// ArenaResult is the outcome of one MatchSpec.
type ArenaResult struct {
	Spec   MatchSpec `json:"spec"`
	Player string    `json:"player"`
	Tally  Tally     `json:"tally"`
}

// PlayerFactory builds the two players for a spec. Every call must return
// new instances; players carry per-match state.
type PlayerFactory func(spec MatchSpec) (Player, Player, error)

// RunArena plays every spec on a bounded worker pool and returns results in
// spec order. The first error cancels the remaining matches.
func RunArena(ctx context.Context, cfg ArenaConfig, factory PlayerFactory) ([]ArenaResult, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]ArenaResult, len(cfg.Matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, spec := range cfg.Matches {
		if spec.Rounds == 0 {
			spec.Rounds = cfg.Rounds
		}
		g.Go(func() error {
			p0, p1, err := factory(spec)
			if err != nil {
				return fmt.Errorf("matchup %d (%s): %w", i+1, spec.Opponent, err)
			}
			m := NewMatch(MatchConfig{Rounds: spec.Rounds, Logger: log.NopLogger{}}, p0, p1)
			tally, err := m.Run(ctx)
			if err != nil {
				return fmt.Errorf("matchup %d (%s): %w", i+1, spec.Opponent, err)
			}
			spec.Rounds = m.Rounds()
			results[i] = ArenaResult{Spec: spec, Player: p0.Name(), Tally: tally}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Total sums the tallies of a set of results.
func Total(results []ArenaResult) Tally {
	var t Tally
	for _, r := range results {
		t.Rounds += r.Tally.Rounds
		t.Wins += r.Tally.Wins
		t.Losses += r.Tally.Losses
		t.Draws += r.Tally.Draws
	}
	return t
}
