package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

// isolate keeps the environment and any .env file out of config loading.
func isolate(t *testing.T) {
	for _, k := range []string{"RPSX_ADDR", "RPSX_HTTP_ADDR", "RPSX_ROSTER", "RPSX_ROUNDS", "RPSX_WORKERS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpsx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMatchRoundsFromConfig(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "rounds: 12\n")

	var out bytes.Buffer
	require.NoError(t, runMatch(context.Background(), []string{"--config", cfg, "--opponent", "kris"}, &out))
	assert.Contains(t, out.String(), "engine vs kris: 12 rounds")

	out.Reset()
	require.NoError(t, runMatch(context.Background(), []string{"--config", cfg, "--opponent", "kris", "--rounds", "7"}, &out))
	assert.Contains(t, out.String(), "engine vs kris: 7 rounds")
}

func TestMatchRequiresOpponent(t *testing.T) {
	isolate(t)
	assert.Error(t, runMatch(context.Background(), nil, &bytes.Buffer{}))
}

func TestJoinAddrFromConfig(t *testing.T) {
	isolate(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &rpsxnet.Server{Rounds: 15, Logger: zerolog.Nop()}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	cfg := writeConfig(t, fmt.Sprintf("addr: %s\n", ln.Addr()))

	var out bytes.Buffer
	require.NoError(t, runJoin(ctx, []string{"--config", cfg, "--bot", "quincy"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "15 rounds against the engine")
	assert.Contains(t, out.String(), "GAME OVER")

	cancel()
	assert.NoError(t, <-done)
}

func TestDialAddr(t *testing.T) {
	assert.Equal(t, "localhost:9000", dialAddr(":9000"))
	assert.Equal(t, "10.0.0.2:9000", dialAddr("10.0.0.2:9000"))
}
