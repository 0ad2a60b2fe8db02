package uci

import (
	"strings"
	"testing"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, h *Handler, lines ...string) []string {
	result := []string{}
	for _, line := range lines {
		output, err := h.HandleInput(line)
		assert.True(t, IsNil(err), "%v: %v", line, err.Error())
		result = append(result, output...)
	}
	return result
}

func TestHandshake(t *testing.T) {
	h := NewHandler()
	assert.Equal(t, []string{
		"readyok",
		"id name movegen 1",
		"id author Kenrick Rilee",
		"uciok",
	}, run(t, h, "isready", "uci", "ucinewgame", ""))
	assert.False(t, h.Done())

	run(t, h, "quit")
	assert.True(t, h.Done())
}

func TestPerft(t *testing.T) {
	h := NewHandler()
	output := run(t, h, "position startpos", "go perft 2")

	assert.Len(t, output, 22)
	assert.Equal(t, "a2a3: 20", output[0])
	assert.Equal(t, "", output[20])
	assert.Equal(t, "Nodes searched: 400", output[21])
}

func TestPositionWithMoves(t *testing.T) {
	h := NewHandler()
	s := "rn1qk2r/ppp3pp/3b1n2/3ppb2/8/2NPBNP1/PPP2PBP/R2QK2R b KQkq - 15 8"
	run(t, h,
		"position fen "+s,
		"position fen "+s+" moves e8g8",
		"position fen "+s+" moves e8g8 d3d4",
	)

	pos := h.Position()
	assert.Equal(t, "rn1q1rk1/ppp3pp/3b1n2/3ppb2/3P4/2N1BNP1/PPP2PBP/R2QK2R b KQ - 0 9", fen.FenStringForPosition(&pos))

	run(t, h, "position startpos moves e2e4 e7e5")
	pos = h.Position()
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", fen.FenStringForPosition(&pos))
}

func TestMovesAndDisplay(t *testing.T) {
	h := NewHandler()
	output := run(t, h, "position fen 4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", "moves")
	assert.Equal(t, []string{"e1d1 e1f1 e1e2"}, output)

	output = run(t, h, "d")
	assert.Equal(t, "Fen: 4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", output[len(output)-2])
	assert.Equal(t, "Checkers: e2", output[len(output)-1])
	assert.True(t, strings.HasPrefix(output[0], "  a b c d e f g h"))
}

func TestErrors(t *testing.T) {
	h := NewHandler()
	for _, line := range []string{
		"position",
		"position fen not-a-fen",
		"position startpos moves e2e5",
		"go perft",
		"go perft x",
		"go perft 0",
		"go depth 3",
		"banana",
	} {
		_, err := h.HandleInput(line)
		assert.False(t, IsNil(err), line)
	}

	// a failed position command leaves the previous one in place
	pos := h.Position()
	assert.Equal(t, fen.StartFen, fen.FenStringForPosition(&pos))
}
