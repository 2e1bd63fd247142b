package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/rpsx/internal/game"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(50, zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<title>rpsx</title>")

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestBotsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var names []string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/bots", &names))
	assert.Equal(t, []string{"abbey", "kris", "mrugesh", "quincy", "random"}, names)
}

func TestArenaEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var res ArenaResult
	status := getJSON(t, ts.URL+"/api/arena?opponent=quincy&rounds=1000", &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "quincy", res.Opponent)
	assert.Equal(t, 1000, res.Tally.Rounds)
	assert.Greater(t, res.WinRate, 0.95)

	// default rounds come from the server
	status = getJSON(t, ts.URL+"/api/arena?opponent=random&seed=7", &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 50, res.Tally.Rounds)
	assert.Equal(t, uint64(7), res.Seed)
}

func TestArenaEndpointErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query  string
		status int
	}{
		{"", http.StatusBadRequest},
		{"opponent=nobody", http.StatusNotFound},
		{"opponent=kris&rounds=0", http.StatusBadRequest},
		{"opponent=kris&rounds=abc", http.StatusBadRequest},
		{"opponent=kris&seed=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, tt.status, getJSON(t, ts.URL+"/api/arena?"+tt.query, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func dialWS(t *testing.T, ts *httptest.Server) (context.Context, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.CloseNow() })
	return ctx, c
}

func TestWebSocketMatch(t *testing.T) {
	ts := newTestServer(t)
	ctx, c := dialWS(t, ts)

	require.NoError(t, wsjson.Write(ctx, c, rpsxnet.ClientMessage{Type: rpsxnet.TypeJoin, Rounds: 6}))

	var msg rpsxnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, c, &msg))
	assert.Equal(t, rpsxnet.TypeWelcome, msg.Type)
	assert.Equal(t, 6, msg.Rounds)

	theirs := []string{"R", "S", "R", "P", "R", "S"}
	wantEngine := []string{"R", "S", "S", "P", "S", "R"}
	for i, m := range theirs {
		require.NoError(t, wsjson.Write(ctx, c, rpsxnet.ClientMessage{Type: rpsxnet.TypeMove, Move: m}))
		require.NoError(t, wsjson.Read(ctx, c, &msg))
		require.Equal(t, rpsxnet.TypeRoundResult, msg.Type)
		assert.Equal(t, i+1, msg.Round)
		assert.Equal(t, wantEngine[i], msg.EngineMove, "round %d", i+1)
	}

	msg = rpsxnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, c, &msg))
	assert.Equal(t, rpsxnet.TypeGameOver, msg.Type)
	require.NotNil(t, msg.Tally)
	assert.Equal(t, game.Tally{Rounds: 6, Wins: 2, Losses: 1, Draws: 3}, *msg.Tally)
}

func TestWebSocketRequiresJoin(t *testing.T) {
	ts := newTestServer(t)
	ctx, c := dialWS(t, ts)

	require.NoError(t, wsjson.Write(ctx, c, rpsxnet.ClientMessage{Type: rpsxnet.TypeMove, Move: "R"}))

	var msg rpsxnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, c, &msg))
	assert.Equal(t, rpsxnet.TypeError, msg.Type)

	_, _, err := c.Read(ctx)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}
