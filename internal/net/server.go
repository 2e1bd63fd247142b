package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Server hosts matches between the engine and TCP clients. Every
// connection gets its own session and engine.
type Server struct {
	Addr   string
	Rounds int // default match length
	Logger zerolog.Logger

	mu sync.Mutex
	ln net.Listener
}

// Run listens on Addr and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("Waiting for opponents")

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				s.Logger.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("Session ended with error")
			}
		}()
	}
}

// ListenAddr returns the bound listener address once Serve has started.
func (s *Server) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ServeConn runs a single match over conn and closes it.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	jc := NewJSONConn(conn)
	defer jc.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger := s.Logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Info().Msg("Opponent connected")

	rounds, err := Handshake(ctx, jc, s.Rounds)
	if err != nil {
		_ = jc.Send(ctx, ServerMessage{Type: TypeError, Error: err.Error()})
		return err
	}

	return NewSession(jc, rounds, logger).Run(ctx)
}
