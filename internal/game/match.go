package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// DefaultRounds is the match length used when MatchConfig.Rounds is zero.
const DefaultRounds = 1000

// Player is the interface implemented by the engine and the reference bots.
// Play receives NoMove on the first call of a match and the opponent's
// previous move on every later call.
type Player interface {
	Name() string
	Play(prev Prev) Move
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Rounds int // 0 = DefaultRounds
	Logger log.EventLogger
}

// Match plays a fixed number of simultaneous rounds between two players.
type Match struct {
	Players [2]Player
	Logger  log.EventLogger
	Tally   Tally // from Players[0]'s view
	rounds  int
}

// NewMatch creates a new match from the given config and players.
func NewMatch(cfg MatchConfig, p0, p1 Player) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rounds := cfg.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &Match{
		Players: [2]Player{p0, p1},
		Logger:  logger,
		rounds:  rounds,
	}
}

// Rounds returns the configured match length.
func (m *Match) Rounds() int {
	return m.rounds
}

// Run plays every round. Both players see NoMove first and each other's
// previous move afterwards. On cancellation the partial tally is returned
// together with the context error.
func (m *Match) Run(ctx context.Context) (Tally, error) {
	p0, p1 := m.Players[0], m.Players[1]
	m.Logger.Log(log.NewMatchStartEvent(p0.Name(), p1.Name(), m.rounds))

	prev0, prev1 := NoMove, NoMove
	for round := 1; round <= m.rounds; round++ {
		if err := ctx.Err(); err != nil {
			m.Logger.Log(log.NewCancelledEvent(round-1, err.Error()))
			return m.Tally, err
		}

		move0 := p0.Play(prev1)
		move1 := p1.Play(prev0)
		if !move0.Valid() || !move1.Valid() {
			return m.Tally, fmt.Errorf("round %d: %w: %s played %s, %s played %s",
				round, ErrInvalidMove, p0.Name(), move0, p1.Name(), move1)
		}

		result := Outcome(move0, move1)
		m.Tally.Add(result)
		m.Logger.Log(log.NewRoundEvent(round, move0.String(), move1.String(), result.String(),
			fmt.Sprintf("%d-%d-%d", m.Tally.Wins, m.Tally.Losses, m.Tally.Draws)))

		prev0, prev1 = Played(move0), Played(move1)
	}

	m.Logger.Log(log.NewMatchEndEvent(m.rounds, fmt.Sprintf("%s vs %s: %s", p0.Name(), p1.Name(), m.Tally)))
	return m.Tally, nil
}
