package mcp

import (
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/engine"
	"github.com/peterkuimelis/rpsx/internal/game"
)

// DecideController exposes the engine's raw decide contract: the caller
// reports the opponent's previous move (NoMove to start over) and gets the
// engine's next move. It is independent of any MatchSession.
type DecideController struct {
	engine *engine.Engine
}

// NewDecideController creates a controller with a fresh engine.
func NewDecideController(logger zerolog.Logger) *DecideController {
	return &DecideController{engine: engine.New(engine.WithLogger(logger))}
}

// Decide forwards prev to the engine.
func (c *DecideController) Decide(prev game.Prev) game.Move {
	return c.engine.Decide(prev)
}

// Response reports the engine move together with the model state.
func (c *DecideController) Response(move game.Move) *ToolResponse {
	return &ToolResponse{
		EngineMove: move.String(),
		State:      buildStateView(c.engine.Snapshot()),
	}
}
