package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/bots"
	"github.com/peterkuimelis/rpsx/internal/engine"
	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

//go:embed static
var staticFiles embed.FS

// ArenaResult is the JSON body of /api/arena.
type ArenaResult struct {
	Opponent string     `json:"opponent"`
	Seed     uint64     `json:"seed"`
	Tally    game.Tally `json:"tally"` // from the engine's view
	WinRate  float64    `json:"win_rate"`
	Summary  string     `json:"summary"`
}

// Server is the rpsx web server: a browser page, a small JSON API and a
// WebSocket endpoint where each connection plays a match against the engine.
type Server struct {
	rounds int
	logger zerolog.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server. rounds is the default match length.
func NewServer(rounds int, logger zerolog.Logger) *Server {
	if rounds <= 0 {
		rounds = game.DefaultRounds
	}
	s := &Server{
		rounds: rounds,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/bots", s.handleBots)
	s.mux.HandleFunc("GET /api/arena", s.handleArena)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleBots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bots.Names())
}

func (s *Server) handleArena(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("opponent")
	if name == "" {
		writeError(w, http.StatusBadRequest, "opponent is required")
		return
	}

	rounds := s.rounds
	if v := q.Get("rounds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > rpsxnet.MaxRounds {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("rounds must be between 1 and %d", rpsxnet.MaxRounds))
			return
		}
		rounds = n
	}

	var seed uint64
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		seed = n
	}

	opp, err := bots.New(name, seed)
	if errors.Is(err, bots.ErrUnknownBot) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	match := game.NewMatch(game.MatchConfig{Rounds: rounds, Logger: log.NopLogger{}}, engine.New(), opp)
	tally, err := match.Run(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Str("opponent", name).Msg("Arena match interrupted")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ArenaResult{
		Opponent: name,
		Seed:     seed,
		Tally:    tally,
		WinRate:  tally.WinRate(),
		Summary:  tally.String(),
	})
}

// wsConn carries the net protocol messages over a WebSocket, one JSON text
// message each.
type wsConn struct {
	c *websocket.Conn
}

func (w wsConn) Send(ctx context.Context, msg rpsxnet.ServerMessage) error {
	return wsjson.Write(ctx, w.c, msg)
}

func (w wsConn) Recv(ctx context.Context) (rpsxnet.ClientMessage, error) {
	var msg rpsxnet.ClientMessage
	err := wsjson.Read(ctx, w.c, &msg)
	return msg, err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket accept error")
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	conn := wsConn{c: c}
	logger := s.logger.With().Str("remote", r.RemoteAddr).Logger()

	rounds, err := rpsxnet.Handshake(ctx, conn, s.rounds)
	if err != nil {
		_ = conn.Send(ctx, rpsxnet.ServerMessage{Type: rpsxnet.TypeError, Error: err.Error()})
		c.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}

	if err := rpsxnet.NewSession(conn, rounds, logger).Run(ctx); err != nil {
		logger.Warn().Err(err).Msg("WebSocket session ended with error")
		return
	}
	c.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe serves HTTP on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
