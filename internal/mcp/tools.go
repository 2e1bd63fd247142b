package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

// Tools holds the state behind the MCP tools. One stdio process serves one
// client, so there is at most one match at a time.
type Tools struct {
	Rounds int // default match length for start_match
	Logger zerolog.Logger

	mu      sync.Mutex
	session *MatchSession
	decider *DecideController
}

// NewTools creates the tool state.
func NewTools(rounds int, logger zerolog.Logger) *Tools {
	return &Tools{Rounds: rounds, Logger: logger}
}

// RegisterTools adds all engine tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startMatchTool(), t.handleStartMatch)
	s.AddTool(playMoveTool(), t.handlePlayMove)
	s.AddTool(decideTool(), t.handleDecide)
	s.AddTool(getStateTool(), t.handleGetState)
	s.AddTool(endMatchTool(), t.handleEndMatch)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a rock-paper-scissors match against the opponent-modelling engine. "+
			"The engine commits to its move before each of yours. Replaces any running match."),
		mcp.WithNumber("rounds", mcp.Description("Number of rounds (default 1000, at most 100000)")),
	)
}

func playMoveTool() mcp.Tool {
	return mcp.NewTool("play_move",
		mcp.WithDescription("Play your move for the current round. Returns the engine's move, the outcome and the running tally."),
		mcp.WithString("move", mcp.Required(), mcp.Description("R, P or S (rock, paper, scissors also accepted)")),
	)
}

func decideTool() mcp.Tool {
	return mcp.NewTool("decide",
		mcp.WithDescription("Call the engine directly, outside any match. Pass the opponent's previous move, "+
			"or an empty string to start a new match, and get the engine's next move and model state."),
		mcp.WithString("prev_move", mcp.Description("Opponent's previous move (R, P or S), empty to reset")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the running match's tally and the engine's hypothesis scores. Read-only."),
		mcp.WithBoolean("events", mcp.Description("Include the match event log as text")),
	)
}

func endMatchTool() mcp.Tool {
	return mcp.NewTool("end_match",
		mcp.WithDescription("End the running match and return the final tally."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rounds := request.GetInt("rounds", t.Rounds)
	if rounds < 0 || rounds > rpsxnet.MaxRounds {
		return mcp.NewToolResultErrorf("rounds must be between 0 and %d", rpsxnet.MaxRounds), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil && !t.session.Over() {
		t.Logger.Info().Str("session", t.session.ID).Msg("Abandoning running match")
	}
	t.session = NewMatchSession(rounds, t.Logger)
	t.Logger.Info().Str("session", t.session.ID).Int("rounds", t.session.Rounds).Msg("Match started")

	return mcp.NewToolResultText(respondJSON(t.session.Response())), nil
}

func (t *Tools) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prev, err := game.ParseMove(request.GetString("move", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid move: %v", err), nil
	}
	if !prev.Valid {
		return mcp.NewToolResultError(errNeedMove.Error()), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return mcp.NewToolResultError(errNoSession.Error()), nil
	}
	round, err := t.session.Play(prev.Move)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := t.session.Response()
	resp.Last = &round
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleDecide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prev, err := game.ParseMove(request.GetString("prev_move", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid prev_move: %v", err), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.decider == nil {
		t.decider = NewDecideController(t.Logger)
	}
	move := t.decider.Decide(prev)
	return mcp.NewToolResultText(respondJSON(t.decider.Response(move))), nil
}

func (t *Tools) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return mcp.NewToolResultError(errNoSession.Error()), nil
	}
	if request.GetBool("events", false) {
		return mcp.NewToolResultText(respondJSON(t.session.Response()) + "\n" + log.FormatAll(t.session.Events())), nil
	}
	return mcp.NewToolResultText(respondJSON(t.session.Response())), nil
}

func (t *Tools) handleEndMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return mcp.NewToolResultError(errNoSession.Error()), nil
	}
	resp := t.session.Response()
	resp.GameOver = true
	resp.Result = "You: " + resp.Tally.String()
	t.Logger.Info().Str("session", t.session.ID).Str("tally", resp.Tally.String()).Msg("Match ended")
	t.session = nil

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
