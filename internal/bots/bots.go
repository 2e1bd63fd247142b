// Package bots provides the fixed reference opponents the engine models,
// plus a seeded random opponent. Every bot resets itself when it receives
// game.NoMove.
package bots

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/peterkuimelis/rpsx/internal/game"
)

// ErrUnknownBot is returned by New for names not in the registry.
var ErrUnknownBot = errors.New("unknown bot")

var registry = map[string]func(seed uint64) game.Player{
	"quincy":  func(uint64) game.Player { return &Quincy{} },
	"kris":    func(uint64) game.Player { return &Kris{} },
	"mrugesh": func(uint64) game.Player { return &Mrugesh{} },
	"abbey":   func(uint64) game.Player { return &Abbey{} },
	"random":  func(seed uint64) game.Player { return NewRandom(seed) },
}

// New returns a fresh bot by name.
func New(name string, seed uint64) (game.Player, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
	return ctor(seed), nil
}

// Names returns the registered bot names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Quincy steps a counter before every play and walks R, R, P, P, S by it,
// which yields R, P, P, S, R, ... from the first round.
type Quincy struct {
	counter int
}

var quincyChoices = [5]game.Move{game.Rock, game.Rock, game.Paper, game.Paper, game.Scissors}

func (q *Quincy) Name() string { return "quincy" }

func (q *Quincy) Play(prev game.Prev) game.Move {
	if !prev.Valid {
		q.counter = 0
	}
	q.counter++
	return quincyChoices[q.counter%len(quincyChoices)]
}

// Kris plays whatever beats the opponent's previous move, assuming Rock
// before the first one.
type Kris struct{}

func (Kris) Name() string { return "kris" }

func (Kris) Play(prev game.Prev) game.Move {
	if !prev.Valid {
		return game.Beats(game.Rock)
	}
	return game.Beats(prev.Move)
}

// Mrugesh beats the opponent's most frequent move over the last ten it has
// seen. The empty first observation counts as a slot of its own.
type Mrugesh struct {
	history []game.Prev
}

func (m *Mrugesh) Name() string { return "mrugesh" }

func (m *Mrugesh) Play(prev game.Prev) game.Move {
	if !prev.Valid {
		m.history = m.history[:0]
	}
	m.history = append(m.history, prev)

	window := m.history
	if len(window) > 10 {
		window = window[len(window)-10:]
	}
	var counts [game.NumMoves]int
	empty := 0
	for _, p := range window {
		if p.Valid {
			counts[p.Move]++
		} else {
			empty++
		}
	}

	mode, best := game.Scissors, empty
	for i := game.NumMoves - 1; i >= 0; i-- {
		if counts[i] >= best {
			mode, best = game.Moves[i], counts[i]
		}
	}
	return game.Beats(mode)
}

// Abbey counts the opponent's move-to-move transitions and beats the most
// likely successor of its last move.
type Abbey struct {
	last   game.Move
	seen   int
	counts [game.NumMoves][game.NumMoves]int
}

func (a *Abbey) Name() string { return "abbey" }

func (a *Abbey) Play(prev game.Prev) game.Move {
	move := game.Rock
	if prev.Valid {
		move = prev.Move
	} else {
		*a = Abbey{}
	}
	if a.seen > 0 {
		a.counts[a.last][move]++
	}
	a.last = move
	a.seen++

	next := game.Rock
	for _, m := range game.Moves[1:] {
		if a.counts[move][m] > a.counts[move][next] {
			next = m
		}
	}
	return game.Beats(next)
}

// Random plays uniformly at random from a seeded source.
type Random struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandom creates a random bot. The sequence restarts from the seed at
// the start of every match.
func NewRandom(seed uint64) *Random {
	r := &Random{seed: seed}
	r.reset()
	return r
}

func (r *Random) reset() {
	r.rng = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

func (r *Random) Name() string { return "random" }

func (r *Random) Play(prev game.Prev) game.Move {
	if !prev.Valid {
		r.reset()
	}
	return game.Moves[r.rng.IntN(game.NumMoves)]
}
