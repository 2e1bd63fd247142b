package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// ScriptedPlayer plays a fixed list of moves, repeating the last one once
// the script runs out, and records what it was shown.
type ScriptedPlayer struct {
	name  string
	moves []Move
	pos   int
	seen  []Prev
}

func NewScriptedPlayer(name string, moves ...Move) *ScriptedPlayer {
	return &ScriptedPlayer{name: name, moves: moves}
}

func (sp *ScriptedPlayer) Name() string { return sp.name }

func (sp *ScriptedPlayer) Play(prev Prev) Move {
	if !prev.Valid {
		sp.pos = 0
	}
	sp.seen = append(sp.seen, prev)
	if len(sp.moves) == 0 {
		return Rock
	}
	i := sp.pos
	if i >= len(sp.moves) {
		i = len(sp.moves) - 1
	}
	sp.pos++
	return sp.moves[i]
}

// runMatchToCompletion runs a match and fails the test on error.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 Player) (*log.MemoryLogger, Tally) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	tally, err := NewMatch(cfg, p0, p1).Run(context.Background())
	if err != nil {
		t.Fatalf("match error: %v", err)
	}
	return logger, tally
}
