package engine

import (
	"testing"

	"github.com/peterkuimelis/rpsx/internal/game"
)

const (
	R = game.Rock
	P = game.Paper
	S = game.Scissors
)

func TestPredictQuincyCycle(t *testing.T) {
	want := []game.Move{R, P, P, S, R, R, P, P, S, R}
	for round, w := range want {
		if got := predictQuincy(round); got != w {
			t.Errorf("predictQuincy(%d) = %s, want %s", round, got, w)
		}
	}
}

func TestPredictKris(t *testing.T) {
	if got := predictKris(nil); got != P {
		t.Errorf("empty history: got %s, want P (beats the assumed opening Rock)", got)
	}
	if got := predictKris([]game.Move{R, S}); got != R {
		t.Errorf("last move S: got %s, want R", got)
	}
}

func TestFrequentOwnMove(t *testing.T) {
	tests := []struct {
		name string
		self []game.Move
		want game.Move
	}{
		// window is [empty]; empty mode reads as Scissors
		{"empty history", nil, S},
		// window [empty, R, P]: three-way tie, Rock has priority
		{"rock beats paper on tie", []game.Move{R, P}, R},
		{"paper beats scissors on tie", []game.Move{S, P}, P},
		// window [empty, S]: S outranks the empty slot
		{"scissors beats empty slot", []game.Move{S}, S},
		{"plain majority", []game.Move{S, P, P}, P},
		// ten moves push the empty slot out of the window
		{"window drops oldest", []game.Move{R, R, R, R, R, R, P, P, P, P, P, S}, P},
		{"exactly ten", []game.Move{R, R, R, R, R, P, P, P, P, P}, R},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frequentOwnMove(tt.self); got != tt.want {
				t.Errorf("frequentOwnMove(%v) = %s, want %s", tt.self, got, tt.want)
			}
		})
	}
}

func TestPredictMrugeshTieBreak(t *testing.T) {
	if got := predictMrugesh([]game.Move{R, P}); got != P {
		t.Errorf("got %s, want P (beats the Rock mode)", got)
	}
}

func TestOwnTransitions(t *testing.T) {
	// Prefixed sequence is [R, R, R, P]: RR twice, RP once.
	counts, last := ownTransitions([]game.Move{R, R, P})
	if last != P {
		t.Fatalf("last = %s, want P", last)
	}
	if counts[R][R] != 2 || counts[R][P] != 1 {
		t.Errorf("RR=%d RP=%d, want 2 and 1", counts[R][R], counts[R][P])
	}
	for _, m := range game.Moves {
		if counts[P][m] != 0 {
			t.Errorf("P%s = %d, want 0", m, counts[P][m])
		}
	}
}

func TestPredictAbbey(t *testing.T) {
	tests := []struct {
		name    string
		self    []game.Move
		wantOwn game.Move
	}{
		// all P* counts are zero: Rock wins the tie
		{"zero counts tie to rock", []game.Move{R, R, P}, R},
		{"empty history", nil, R},
		// [R, S, S, P, S]: SP=1 and SS=1, Paper comes first
		{"paper before scissors", []game.Move{S, S, P, S}, P},
		// [R, R, S, R, S]: RS=2 beats RR=1
		{"highest count wins", []game.Move{R, S, R, S, R}, S},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp, own := predictAbbey(tt.self)
			if own != tt.wantOwn {
				t.Errorf("own = %s, want %s", own, tt.wantOwn)
			}
			if opp != game.Beats(tt.wantOwn) {
				t.Errorf("opponent = %s, want %s", opp, game.Beats(tt.wantOwn))
			}
		})
	}
}

func TestLeaderPriority(t *testing.T) {
	var scores [NumHypotheses]Score
	if h, acc := leader(scores); h != Kris || acc != 0 {
		t.Errorf("all zero: got %s %.2f, want kris 0", h, acc)
	}

	scores[Quincy] = Score{Hits: 1, Trials: 2}
	scores[Abbey] = Score{Hits: 2, Trials: 4}
	if h, _ := leader(scores); h != Quincy {
		t.Errorf("tie between quincy and abbey: got %s, want quincy", h)
	}

	scores[Mrugesh] = Score{Hits: 3, Trials: 4}
	if h, acc := leader(scores); h != Mrugesh || acc != 0.75 {
		t.Errorf("got %s %.2f, want mrugesh 0.75", h, acc)
	}
}
