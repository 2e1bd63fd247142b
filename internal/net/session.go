package net

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/engine"
	"github.com/peterkuimelis/rpsx/internal/game"
)

// Conn is a message stream to one remote opponent. The TCP server wraps a
// net.Conn with JSON encoding; the web server wraps a WebSocket.
type Conn interface {
	Send(ctx context.Context, msg ServerMessage) error
	Recv(ctx context.Context) (ClientMessage, error)
}

// errQuit ends a session early at the client's request.
var errQuit = errors.New("client quit")

// Session plays one match between a fresh engine and a remote opponent.
type Session struct {
	ID     string
	Rounds int
	Tally  game.Tally // from the engine's view

	conn   Conn
	engine *engine.Engine
	logger zerolog.Logger
}

// NewSession creates a session. rounds <= 0 uses game.DefaultRounds.
func NewSession(conn Conn, rounds int, logger zerolog.Logger) *Session {
	if rounds <= 0 {
		rounds = game.DefaultRounds
	}
	id := uuid.NewString()
	logger = logger.With().Str("session", id).Logger()
	return &Session{
		ID:     id,
		Rounds: rounds,
		conn:   conn,
		engine: engine.New(engine.WithLogger(logger)),
		logger: logger,
	}
}

// Handshake reads the join message and returns the requested match length,
// falling back to def.
func Handshake(ctx context.Context, conn Conn, def int) (int, error) {
	msg, err := conn.Recv(ctx)
	if err != nil {
		return 0, fmt.Errorf("read join message: %w", err)
	}
	if msg.Type != TypeJoin {
		return 0, fmt.Errorf("expected %q message, got %q", TypeJoin, msg.Type)
	}
	rounds := msg.Rounds
	if rounds <= 0 {
		rounds = def
	}
	if rounds > MaxRounds {
		rounds = MaxRounds
	}
	return rounds, nil
}

// Run plays the match. The engine commits to its move for a round before the
// opponent's move for that round is read.
func (s *Session) Run(ctx context.Context) error {
	if err := s.conn.Send(ctx, ServerMessage{Type: TypeWelcome, SessionID: s.ID, Rounds: s.Rounds}); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}
	s.logger.Info().Int("rounds", s.Rounds).Msg("Match started")

	mine := s.engine.Decide(game.NoMove)
	for round := 1; round <= s.Rounds; round++ {
		theirs, err := s.readMove(ctx)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}

		result := game.Outcome(mine, theirs)
		s.Tally.Add(result)
		clientTally := s.Tally.Reverse()
		err = s.conn.Send(ctx, ServerMessage{
			Type:       TypeRoundResult,
			Round:      round,
			YourMove:   theirs.String(),
			EngineMove: mine.String(),
			Outcome:    game.Outcome(theirs, mine).String(),
			Tally:      &clientTally,
		})
		if err != nil {
			return fmt.Errorf("send round_result: %w", err)
		}

		mine = s.engine.Decide(game.Played(theirs))
	}

	clientTally := s.Tally.Reverse()
	s.logger.Info().
		Int("wins", s.Tally.Wins).
		Int("losses", s.Tally.Losses).
		Int("draws", s.Tally.Draws).
		Msg("Match finished")
	return s.conn.Send(ctx, ServerMessage{
		Type:   TypeGameOver,
		Tally:  &clientTally,
		Result: fmt.Sprintf("You: %s", clientTally),
	})
}

// readMove waits for a valid move, answering anything else with an error
// message.
func (s *Session) readMove(ctx context.Context) (game.Move, error) {
	for {
		msg, err := s.conn.Recv(ctx)
		if err != nil {
			return 0, fmt.Errorf("recv move: %w", err)
		}
		switch msg.Type {
		case TypeQuit:
			return 0, errQuit
		case TypeMove:
			prev, err := game.ParseMove(msg.Move)
			if err == nil && prev.Valid {
				return prev.Move, nil
			}
			s.logger.Debug().Str("move", msg.Move).Msg("Rejected move")
			if err := s.sendError(ctx, fmt.Sprintf("invalid move %q: use R, P or S", msg.Move)); err != nil {
				return 0, err
			}
		default:
			if err := s.sendError(ctx, fmt.Sprintf("unexpected message type %q", msg.Type)); err != nil {
				return 0, err
			}
		}
	}
}

func (s *Session) sendError(ctx context.Context, text string) error {
	if err := s.conn.Send(ctx, ServerMessage{Type: TypeError, Error: text}); err != nil {
		return fmt.Errorf("send error: %w", err)
	}
	return nil
}
