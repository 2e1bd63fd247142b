package game

import (
	"context"
	"errors"
	"testing"
)

func TestRunArena(t *testing.T) {
	cfg := ArenaConfig{
		Matches: []MatchSpec{
			{Opponent: "rock"},
			{Opponent: "paper", Rounds: 7},
			{Opponent: "scissors"},
		},
		Workers: 2,
		Rounds:  20,
	}
	factory := func(spec MatchSpec) (Player, Player, error) {
		opp, err := ParseMove(spec.Opponent[:1])
		if err != nil {
			return nil, nil, err
		}
		return NewScriptedPlayer("paper", Paper), NewScriptedPlayer(spec.Opponent, opp.Move), nil
	}

	results, err := RunArena(context.Background(), cfg, factory)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	want := []Tally{
		{Rounds: 20, Wins: 20},
		{Rounds: 7, Draws: 7},
		{Rounds: 20, Losses: 20},
	}
	for i, w := range want {
		if results[i].Tally != w {
			t.Errorf("result %d (%s) = %+v, want %+v", i, results[i].Spec.Opponent, results[i].Tally, w)
		}
		if results[i].Player != "paper" {
			t.Errorf("result %d player = %q", i, results[i].Player)
		}
	}
	if results[0].Spec.Rounds != 20 {
		t.Errorf("spec rounds not filled in: %+v", results[0].Spec)
	}

	total := Total(results)
	if total.Rounds != 47 || total.Wins != 20 || total.Losses != 20 || total.Draws != 7 {
		t.Errorf("total = %+v", total)
	}
}

func TestRunArenaFactoryError(t *testing.T) {
	boom := errors.New("boom")
	cfg := ArenaConfig{Matches: []MatchSpec{{Opponent: "x"}}, Rounds: 5}
	_, err := RunArena(context.Background(), cfg, func(MatchSpec) (Player, Player, error) {
		return nil, nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
