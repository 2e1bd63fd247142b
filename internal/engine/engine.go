// Package engine implements the opponent-modelling player. It keeps four
// fixed opponent hypotheses, scores each against the moves actually
// observed and counters the most accurate one once it is trusted.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/game"
)

const (
	// Opening is the move returned on the first call of a match.
	Opening = game.Rock

	// WarmupRounds is how many rounds are played on the fallback before any
	// hypothesis can be exploited.
	WarmupRounds = 6

	// ConfidenceThreshold is the accuracy a leading hypothesis needs before
	// it is exploited.
	ConfidenceThreshold = 0.65
)

// Engine holds the state of one match. It is not safe for concurrent use;
// run one Engine per match.
type Engine struct {
	round    int
	opponent []game.Move
	self     []game.Move

	predictions     [NumHypotheses]game.Move
	havePredictions bool
	predictedOwn    game.Move
	scores          [NumHypotheses]Score

	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-round debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine ready for the first call of a match.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string {
	return "engine"
}

// Play implements game.Player.
func (e *Engine) Play(prev game.Prev) game.Move {
	return e.Decide(prev)
}

// Reset clears all match state and returns the opening move. The opening
// move is not recorded in the own-move history; the predictors assume it
// where they need it.
func (e *Engine) Reset() game.Move {
	e.round = 0
	e.opponent = e.opponent[:0]
	e.self = e.self[:0]
	e.predictions = [NumHypotheses]game.Move{}
	e.havePredictions = false
	e.predictedOwn = game.Rock
	e.scores = [NumHypotheses]Score{}
	return Opening
}

// Decide returns the next move given the opponent's previous one. NoMove
// starts a new match. A move outside Rock/Paper/Scissors panics.
func (e *Engine) Decide(prev game.Prev) game.Move {
	if !prev.Valid {
		return e.Reset()
	}
	if !prev.Move.Valid() {
		panic(fmt.Sprintf("engine: invalid opponent move %d", uint8(prev.Move)))
	}

	e.observe(prev.Move)
	e.predict()
	move := e.choose()
	e.self = append(e.self, move)
	return move
}

// observe records the opponent's move and scores last round's predictions.
func (e *Engine) observe(m game.Move) {
	e.opponent = append(e.opponent, m)
	e.round++

	if !e.havePredictions {
		return
	}
	for _, h := range Hypotheses {
		e.scores[h].record(e.predictions[h] == m)
	}
}

// predict fills in each hypothesis's guess for the opponent's next move.
func (e *Engine) predict() {
	e.predictions[Quincy] = predictQuincy(e.round)
	e.predictions[Kris] = predictKris(e.self)
	e.predictions[Mrugesh] = predictMrugesh(e.self)
	e.predictions[Abbey], e.predictedOwn = predictAbbey(e.self)
	e.havePredictions = true
}

// choose counters the leading hypothesis once it is trusted, otherwise it
// plays the second-order counter to our own predicted move.
func (e *Engine) choose() game.Move {
	fallback := game.Counter2(e.predictedOwn)

	best, acc := leader(e.scores)
	move := fallback
	if e.round >= WarmupRounds && acc >= ConfidenceThreshold {
		switch best {
		case Quincy, Kris, Mrugesh:
			move = game.Beats(e.predictions[best])
		case Abbey:
			move = fallback
		}
	}

	e.logger.Debug().
		Int("round", e.round).
		Str("leader", best.String()).
		Float64("accuracy", acc).
		Str("move", move.String()).
		Msg("Engine decided")
	return move
}

// Accuracy returns the current accuracy of hypothesis h.
func (e *Engine) Accuracy(h Hypothesis) float64 {
	return e.scores[h].Accuracy()
}

// State is a read-only copy of the engine's match state.
type State struct {
	Round           int                         `json:"round"`
	OpponentHistory []game.Move                 `json:"-"`
	SelfHistory     []game.Move                 `json:"-"`
	Predictions     map[string]string           `json:"predictions"`
	Scores          map[string]Score            `json:"scores"`
	Leader          string                      `json:"leader"`
	LeaderAccuracy  float64                     `json:"leader_accuracy"`
	PredictedOwn    string                      `json:"predicted_own,omitempty"`
	byHypothesis    [NumHypotheses]Score
	predicted       [NumHypotheses]game.Move
	havePredicted   bool
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() State {
	s := State{
		Round:           e.round,
		OpponentHistory: append([]game.Move(nil), e.opponent...),
		SelfHistory:     append([]game.Move(nil), e.self...),
		Predictions:     make(map[string]string, NumHypotheses),
		Scores:          make(map[string]Score, NumHypotheses),
		byHypothesis:    e.scores,
		predicted:       e.predictions,
		havePredicted:   e.havePredictions,
	}
	for _, h := range Hypotheses {
		s.Scores[h.String()] = e.scores[h]
		if e.havePredictions {
			s.Predictions[h.String()] = e.predictions[h].String()
		}
	}
	best, acc := leader(e.scores)
	s.Leader = best.String()
	s.LeaderAccuracy = acc
	if e.havePredictions {
		s.PredictedOwn = e.predictedOwn.String()
	}
	return s
}

// Score returns the counters for one hypothesis.
func (s State) Score(h Hypothesis) Score {
	return s.byHypothesis[h]
}

// Prediction returns a hypothesis's guess for the opponent's next move;
// ok is false before the first real round.
func (s State) Prediction(h Hypothesis) (game.Move, bool) {
	return s.predicted[h], s.havePredicted
}
