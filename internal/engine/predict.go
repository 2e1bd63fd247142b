package engine

import "github.com/peterkuimelis/rpsx/internal/game"

// quincyCycle is the period-5 sequence a counter-driven opponent walks.
var quincyCycle = [5]game.Move{game.Rock, game.Paper, game.Paper, game.Scissors, game.Rock}

// mrugeshWindow is how many of our own moves a frequency opponent looks at.
const mrugeshWindow = 10

// predictQuincy indexes the cycle by the number of opponent moves seen.
func predictQuincy(round int) game.Move {
	return quincyCycle[round%len(quincyCycle)]
}

// predictKris expects the opponent to beat our last move. Before we have
// recorded one, the opening Rock is assumed.
func predictKris(self []game.Move) game.Move {
	if len(self) == 0 {
		return game.Beats(game.Rock)
	}
	return game.Beats(self[len(self)-1])
}

// frequentOwnMove is the mode of the last ten entries of our history
// prefixed with one empty slot. Ties resolve Rock > Paper > Scissors > empty,
// and an empty mode reads as Scissors.
func frequentOwnMove(self []game.Move) game.Move {
	// counts[game.NumMoves] is the empty slot.
	var counts [game.NumMoves + 1]int
	window := self
	if len(self) >= mrugeshWindow {
		window = self[len(self)-mrugeshWindow:]
	} else {
		counts[game.NumMoves] = 1
	}
	for _, m := range window {
		counts[m]++
	}

	mode, best := game.Scissors, counts[game.NumMoves]
	for i := game.NumMoves - 1; i >= 0; i-- {
		if counts[i] >= best {
			mode, best = game.Moves[i], counts[i]
		}
	}
	return mode
}

// predictMrugesh expects the opponent to beat our most frequent recent move.
func predictMrugesh(self []game.Move) game.Move {
	return game.Beats(frequentOwnMove(self))
}

// ownTransitions counts every adjacent pair in our history prefixed with an
// assumed opening Rock. It also returns the last move of that sequence.
func ownTransitions(self []game.Move) (counts [game.NumMoves][game.NumMoves]int, last game.Move) {
	last = game.Rock
	for _, m := range self {
		counts[last][m]++
		last = m
	}
	return counts, last
}

// predictOwnMove guesses our own next move the way a transition-counting
// opponent does: the most frequent successor of our last move, ties going
// Rock > Paper > Scissors.
func predictOwnMove(self []game.Move) game.Move {
	counts, last := ownTransitions(self)
	next := game.Rock
	for _, m := range game.Moves[1:] {
		if counts[last][m] > counts[last][next] {
			next = m
		}
	}
	return next
}

// predictAbbey expects the opponent to beat the move it thinks we play next.
// The guessed own move is returned too; move selection reuses it.
func predictAbbey(self []game.Move) (opponent, own game.Move) {
	own = predictOwnMove(self)
	return game.Beats(own), own
}
