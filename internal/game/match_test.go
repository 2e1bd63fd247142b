package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// TestMatchFeedsPreviousMoves: each player sees NoMove first, then the
// other's previous move.
func TestMatchFeedsPreviousMoves(t *testing.T) {
	p0 := NewScriptedPlayer("P1", Rock, Paper, Scissors)
	p1 := NewScriptedPlayer("P2", Scissors, Scissors, Rock)

	_, tally := runMatchToCompletion(t, MatchConfig{Rounds: 3}, p0, p1)

	wantSeen0 := []Prev{NoMove, Played(Scissors), Played(Scissors)}
	wantSeen1 := []Prev{NoMove, Played(Rock), Played(Paper)}
	for i := range wantSeen0 {
		if p0.seen[i] != wantSeen0[i] {
			t.Errorf("P1 call %d saw %+v, want %+v", i, p0.seen[i], wantSeen0[i])
		}
		if p1.seen[i] != wantSeen1[i] {
			t.Errorf("P2 call %d saw %+v, want %+v", i, p1.seen[i], wantSeen1[i])
		}
	}

	// R-S win, P-S loss, S-R loss
	if tally.Wins != 1 || tally.Losses != 2 || tally.Draws != 0 {
		t.Errorf("tally = %+v", tally)
	}
}

func TestMatchLogsEveryRound(t *testing.T) {
	p0 := NewScriptedPlayer("P1", Rock)
	p1 := NewScriptedPlayer("P2", Rock)
	logger, tally := runMatchToCompletion(t, MatchConfig{Rounds: 5}, p0, p1)

	if tally.Draws != 5 {
		t.Errorf("draws = %d, want 5", tally.Draws)
	}
	if n := len(logger.EventsOfType(log.EventRound)); n != 5 {
		t.Errorf("round events = %d, want 5", n)
	}
	if n := len(logger.EventsOfType(log.EventMatchStart)); n != 1 {
		t.Errorf("start events = %d, want 1", n)
	}
	last := logger.LastEvent()
	if last.Type != log.EventMatchEnd || last.Round != 5 {
		t.Errorf("last event = %+v", last)
	}
	first := logger.EventsOfType(log.EventRound)[0]
	if first.Moves != [2]string{"R", "R"} || first.Result != "draw" {
		t.Errorf("first round event = %+v", first)
	}
}

func TestMatchDefaultRounds(t *testing.T) {
	m := NewMatch(MatchConfig{}, NewScriptedPlayer("a"), NewScriptedPlayer("b"))
	if m.Rounds() != DefaultRounds {
		t.Errorf("rounds = %d, want %d", m.Rounds(), DefaultRounds)
	}
}

func TestMatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := log.NewMemoryLogger()
	m := NewMatch(MatchConfig{Rounds: 10, Logger: logger}, NewScriptedPlayer("a"), NewScriptedPlayer("b"))
	tally, err := m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if tally.Rounds != 0 {
		t.Errorf("rounds played = %d, want 0", tally.Rounds)
	}
	if logger.LastEvent().Type != log.EventCancelled {
		t.Errorf("last event = %s, want Cancelled", logger.LastEvent().Type)
	}
}

func TestMatchRejectsInvalidMoves(t *testing.T) {
	m := NewMatch(MatchConfig{Rounds: 3}, NewScriptedPlayer("a", Move(5)), NewScriptedPlayer("b"))
	if _, err := m.Run(context.Background()); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("err = %v, want ErrInvalidMove", err)
	}
}
