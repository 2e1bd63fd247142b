package net

import "github.com/peterkuimelis/rpsx/internal/game"

// Message types for the JSON protocol over TCP. The same envelopes are used
// over WebSocket by the web server.

const (
	TypeJoin        = "join"
	TypeMove        = "move"
	TypeQuit        = "quit"
	TypeWelcome     = "welcome"
	TypeRoundResult = "round_result"
	TypeError       = "error"
	TypeGameOver    = "game_over"
)

// MaxRounds caps the match length a client may ask for.
const MaxRounds = 100000

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	SessionID string `json:"session_id,omitempty"`
	Rounds    int    `json:"rounds,omitempty"`

	// For "round_result"
	Round      int    `json:"round,omitempty"`
	YourMove   string `json:"your_move,omitempty"`
	EngineMove string `json:"engine_move,omitempty"`
	Outcome    string `json:"outcome,omitempty"` // from the client's view

	// For "round_result" and "game_over", from the client's view
	Tally *game.Tally `json:"tally,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Result string `json:"result,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake); 0 means the server default
	Rounds int `json:"rounds,omitempty"`

	// For "move"
	Move string `json:"move,omitempty"`
}
