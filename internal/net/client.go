package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/peterkuimelis/rpsx/internal/game"
)

// Client connects to a host and plays against its engine, either from a
// terminal REPL or with a bot choosing the moves.
type Client struct {
	conn net.Conn
	in   *bufio.Reader // REPL input, unused when bot is set
	out  io.Writer
	bot  game.Player
}

// NewClient wraps an established connection. If bot is nil moves are read
// from in.
func NewClient(conn net.Conn, in io.Reader, out io.Writer, bot game.Player) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out, bot: bot}
}

// Connect dials a server, sends the join message and plays the match.
func Connect(ctx context.Context, addr string, rounds int, in io.Reader, out io.Writer, bot game.Player) (*game.Tally, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	tally, err := NewClient(conn, in, out, bot).Play(ctx, rounds)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return tally, err
}

// Play sends the join message and runs the match to game_over, returning the
// final tally from this client's view.
func (c *Client) Play(ctx context.Context, rounds int) (*game.Tally, error) {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	if err := enc.Encode(ClientMessage{Type: TypeJoin, Rounds: rounds}); err != nil {
		return nil, fmt.Errorf("send join: %w", err)
	}

	// opponent is the engine's previous move, fed to the bot.
	opponent := game.NoMove
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case TypeWelcome:
			total = msg.Rounds
			fmt.Fprintf(c.out, "Connected (session %s). %d rounds against the engine.\n", msg.SessionID, msg.Rounds)
			if err := c.sendMove(enc, opponent); err != nil {
				return nil, err
			}

		case TypeRoundResult:
			c.renderRound(msg)
			engineMove, err := game.ParseMove(msg.EngineMove)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", msg.Round, err)
			}
			opponent = engineMove
			// game_over follows the last round without further input
			if msg.Round >= total {
				continue
			}
			if err := c.sendMove(enc, opponent); err != nil {
				return nil, err
			}

		case TypeError:
			fmt.Fprintf(c.out, "Server: %s\n", msg.Error)
			if c.bot != nil {
				return nil, fmt.Errorf("server rejected move: %s", msg.Error)
			}
			if err := c.sendMove(enc, opponent); err != nil {
				return nil, err
			}

		case TypeGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return msg.Tally, nil
		}
	}
}

func (c *Client) sendMove(enc *json.Encoder, opponent game.Prev) error {
	var move string
	if c.bot != nil {
		move = c.bot.Play(opponent).String()
	} else {
		var err error
		if move, err = c.readMove(); err != nil {
			return err
		}
	}
	if move == "" {
		return enc.Encode(ClientMessage{Type: TypeQuit})
	}
	if err := enc.Encode(ClientMessage{Type: TypeMove, Move: move}); err != nil {
		return fmt.Errorf("send move: %w", err)
	}
	return nil
}

// readMove prompts until the user enters a move. "q" or end of input quits,
// reported as an empty move.
func (c *Client) readMove() (string, error) {
	for {
		fmt.Fprint(c.out, "Your move [r/p/s, q to quit]: ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			if err == io.EOF {
				return "", nil
			}
			return "", fmt.Errorf("read input: %w", err)
		}
		if strings.EqualFold(line, "q") || strings.EqualFold(line, "quit") {
			return "", nil
		}
		if prev, perr := game.ParseMove(line); perr == nil && prev.Valid {
			return prev.Move.String(), nil
		}
		fmt.Fprintln(c.out, "Please enter r, p or s.")
	}
}

func (c *Client) renderRound(msg ServerMessage) {
	score := ""
	if msg.Tally != nil {
		score = fmt.Sprintf("%d-%d-%d", msg.Tally.Wins, msg.Tally.Losses, msg.Tally.Draws)
	}
	fmt.Fprintf(c.out, "R%-4d | you %s  engine %s  %-4s | %s\n", msg.Round, msg.YourMove, msg.EngineMove, msg.Outcome, score)
}
