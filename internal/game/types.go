package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned when a move symbol cannot be parsed.
var ErrInvalidMove = errors.New("invalid move")

// --- Enums ---

type Move uint8

const (
	Rock Move = iota
	Paper
	Scissors
	NumMoves = 3
)

// Moves lists every move in tie-break order.
var Moves = [NumMoves]Move{Rock, Paper, Scissors}

func (m Move) Valid() bool {
	return m < NumMoves
}

// String returns the single-letter symbol used on the wire.
func (m Move) String() string {
	switch m {
	case Rock:
		return "R"
	case Paper:
		return "P"
	case Scissors:
		return "S"
	default:
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
}

func (m Move) Name() string {
	switch m {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "Unknown"
	}
}

// Beats returns the move that defeats m.
func Beats(m Move) Move {
	return (m + 1) % NumMoves
}

// Counter2 returns the move that defeats whatever defeats m.
func Counter2(m Move) Move {
	return Beats(Beats(m))
}

// Prev is the opponent's previous move as seen by a player. The zero value
// is NoMove, which marks the first call of a match.
type Prev struct {
	Move  Move
	Valid bool
}

// NoMove signals that no previous move exists yet.
var NoMove = Prev{}

// Played wraps a real move.
func Played(m Move) Prev {
	return Prev{Move: m, Valid: true}
}

func (p Prev) String() string {
	if !p.Valid {
		return ""
	}
	return p.Move.String()
}

// ParseMove parses a move symbol. "R", "P", "S" and the full names are
// accepted case-insensitively; the empty string parses to NoMove.
func ParseMove(s string) (Prev, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return NoMove, nil
	case "r", "rock":
		return Played(Rock), nil
	case "p", "paper":
		return Played(Paper), nil
	case "s", "scissors":
		return Played(Scissors), nil
	default:
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

type Result int

const (
	Draw Result = iota
	Win
	Loss
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// Outcome scores a round from a's point of view.
func Outcome(a, b Move) Result {
	switch {
	case a == b:
		return Draw
	case a == Beats(b):
		return Win
	default:
		return Loss
	}
}

// Tally counts round results from player 0's point of view.
type Tally struct {
	Rounds int `json:"rounds" yaml:"rounds"`
	Wins   int `json:"wins" yaml:"wins"`
	Losses int `json:"losses" yaml:"losses"`
	Draws  int `json:"draws" yaml:"draws"`
}

func (t *Tally) Add(r Result) {
	t.Rounds++
	switch r {
	case Win:
		t.Wins++
	case Loss:
		t.Losses++
	default:
		t.Draws++
	}
}

// WinRate is wins over decisive rounds, 0 when no round was decisive.
func (t Tally) WinRate() float64 {
	decisive := t.Wins + t.Losses
	if decisive == 0 {
		return 0
	}
	return float64(t.Wins) / float64(decisive)
}

func (t Tally) String() string {
	return fmt.Sprintf("%d rounds: %d won, %d lost, %d drawn (win rate %.1f%%)",
		t.Rounds, t.Wins, t.Losses, t.Draws, t.WinRate()*100)
}

// Reverse returns the same tally from the other player's point of view.
func (t Tally) Reverse() Tally {
	return Tally{Rounds: t.Rounds, Wins: t.Losses, Losses: t.Wins, Draws: t.Draws}
}
