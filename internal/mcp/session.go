package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/engine"
	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
)

var (
	errNoSession = errors.New("no match is running, use start_match first")
	errMatchOver = errors.New("match is over, use end_match or start_match")
	errNeedMove  = errors.New("move is required")
)

// RoundView is one played round as reported to the MCP client. Outcome is
// from the client's side.
type RoundView struct {
	Round      int    `json:"round"`
	YourMove   string `json:"your_move"`
	EngineMove string `json:"engine_move"`
	Outcome    string `json:"outcome"`
}

// StateView summarizes the engine's opponent model.
type StateView struct {
	Round          int                `json:"round"`
	Leader         string             `json:"leader"`
	LeaderAccuracy float64            `json:"leader_accuracy"`
	PredictedOwn   string             `json:"predicted_own,omitempty"`
	Predictions    map[string]string  `json:"predictions,omitempty"`
	Accuracy       map[string]float64 `json:"accuracy"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID  string      `json:"session_id,omitempty"`
	Rounds     int         `json:"rounds,omitempty"`
	EngineMove string      `json:"engine_move,omitempty"`
	Last       *RoundView  `json:"last,omitempty"`
	Tally      *game.Tally `json:"tally,omitempty"`
	State      *StateView  `json:"state,omitempty"`
	GameOver   bool        `json:"game_over"`
	Result     string      `json:"result,omitempty"`
}

// MatchSession is a match between the engine and the MCP client. The
// engine's move for the next round is committed before the client's move
// arrives.
type MatchSession struct {
	ID     string
	Rounds int

	engine  *engine.Engine
	pending game.Move
	round   int
	tally   game.Tally // client's view
	events  *log.MemoryLogger
	logger  zerolog.Logger
}

// NewMatchSession starts a match of the given length (game.DefaultRounds
// when rounds <= 0).
func NewMatchSession(rounds int, logger zerolog.Logger) *MatchSession {
	if rounds <= 0 {
		rounds = game.DefaultRounds
	}
	id := uuid.NewString()
	logger = logger.With().Str("session", id).Logger()
	s := &MatchSession{
		ID:     id,
		Rounds: rounds,
		engine: engine.New(engine.WithLogger(logger)),
		events: log.NewMemoryLogger(),
		logger: logger,
	}
	s.pending = s.engine.Decide(game.NoMove)
	s.events.Log(log.NewMatchStartEvent("mcp", s.engine.Name(), rounds))
	return s
}

// Over reports whether all rounds have been played.
func (s *MatchSession) Over() bool {
	return s.round >= s.Rounds
}

// Play resolves one round with the client's move against the engine's
// committed move.
func (s *MatchSession) Play(theirs game.Move) (RoundView, error) {
	if s.Over() {
		return RoundView{}, errMatchOver
	}
	mine := s.pending
	s.round++
	result := game.Outcome(theirs, mine)
	s.tally.Add(result)
	s.events.Log(log.NewRoundEvent(s.round, theirs.String(), mine.String(), result.String(),
		fmt.Sprintf("%d-%d-%d", s.tally.Wins, s.tally.Losses, s.tally.Draws)))

	s.pending = s.engine.Decide(game.Played(theirs))
	if s.Over() {
		s.events.Log(log.NewMatchEndEvent(s.round, s.tally.String()))
		s.logger.Info().Int("rounds", s.round).Str("tally", s.tally.String()).Msg("Match finished")
	}
	return RoundView{
		Round:      s.round,
		YourMove:   theirs.String(),
		EngineMove: mine.String(),
		Outcome:    result.String(),
	}, nil
}

// Response builds the tool response for the current session state.
func (s *MatchSession) Response() *ToolResponse {
	tally := s.tally
	resp := &ToolResponse{
		SessionID: s.ID,
		Rounds:    s.Rounds,
		Tally:     &tally,
		State:     buildStateView(s.engine.Snapshot()),
		GameOver:  s.Over(),
	}
	if resp.GameOver {
		resp.Result = fmt.Sprintf("You: %s", tally)
	}
	return resp
}

// Events returns the session's match log.
func (s *MatchSession) Events() []log.MatchEvent {
	return s.events.Events()
}

func buildStateView(st engine.State) *StateView {
	v := &StateView{
		Round:          st.Round,
		Leader:         st.Leader,
		LeaderAccuracy: st.LeaderAccuracy,
		PredictedOwn:   st.PredictedOwn,
		Predictions:    st.Predictions,
		Accuracy:       make(map[string]float64, engine.NumHypotheses),
	}
	for _, h := range engine.Hypotheses {
		v.Accuracy[h.String()] = st.Score(h).Accuracy()
	}
	return v
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
