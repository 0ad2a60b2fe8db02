package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, ts *httptest.Server, path string, query url.Values, v any) int {
	resp, err := http.Get(ts.URL + path + "?" + query.Encode())
	require.True(t, IsNil(err), err)
	defer resp.Body.Close()

	err = json.NewDecoder(resp.Body).Decode(v)
	require.True(t, IsNil(err), err)
	return resp.StatusCode
}

func TestMovesEndpoint(t *testing.T) {
	ts := httptest.NewServer(newServer(SilentLogger).router())
	defer ts.Close()

	var result MovesResponse
	status := get(t, ts, "/moves", url.Values{}, &result)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "white", result.Player)
	assert.False(t, result.InCheck)
	assert.Equal(t, 20, len(result.Moves))
	assert.Equal(t, "a2a3", result.Moves[0])

	status = get(t, ts, "/moves", url.Values{"fen": {"4k3/8/8/8/8/8/8/r3K3 w - - 0 1"}}, &result)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.InCheck)
	assert.Equal(t, []string{"e1d2", "e1e2", "e1f2"}, result.Moves)

	var failure map[string]string
	status = get(t, ts, "/moves", url.Values{"fen": {"not a fen"}}, &failure)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, failure["error"])
}

func TestPerftEndpoint(t *testing.T) {
	ts := httptest.NewServer(newServer(SilentLogger).router())
	defer ts.Close()

	var result PerftResponse
	status := get(t, ts, "/perft", url.Values{"depth": {"3"}}, &result)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(8902), result.Nodes)
	assert.Equal(t, 20, len(result.Moves))
	assert.Equal(t, uint64(600), result.Moves["e2e4"])

	var failure map[string]string
	for _, depth := range []string{"", "0", "x", "9"} {
		status = get(t, ts, "/perft", url.Values{"depth": {depth}}, &failure)
		assert.Equal(t, http.StatusBadRequest, status, depth)
	}
}

func TestWebsocket(t *testing.T) {
	ts := httptest.NewServer(newServer(SilentLogger).router())
	defer ts.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.True(t, IsNil(err), err)
	defer c.Close()

	send := func(message string) UpdateToWeb {
		err := c.WriteMessage(websocket.TextMessage, []byte(message))
		require.True(t, IsNil(err), err)

		var update UpdateToWeb
		err = c.ReadJSON(&update)
		require.True(t, IsNil(err), err)
		return update
	}

	update := send(`{"selection": "g1"}`)
	assert.Equal(t, "g1", update.Selection)
	assert.Equal(t, []string{"g1f3", "g1h3"}, update.PossibleMoves)
	assert.Equal(t, "white", update.Player)

	update = send(`{"move": "e2e4"}`)
	assert.Equal(t, "e2e4", update.LastMove)
	assert.Equal(t, "black", update.Player)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", update.FenString)

	update = send(`{"move": "e2e4"}`)
	assert.NotEmpty(t, update.Error)
	assert.Equal(t, "e2e4", update.LastMove)

	update = send(`{"fen": "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"}`)
	assert.Empty(t, update.Error)
	assert.Empty(t, update.LastMove)

	update = send(`{"selection": "e2"}`)
	assert.Equal(t, []string{"e2e3", "e2e4"}, update.PossibleMoves)

	update = send(`{"selection": "z9"}`)
	assert.NotEmpty(t, update.Error)
}
