package stockfish

import (
	"testing"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
	"github.com/cricklet/movegen/internal/perft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingBinary(t *testing.T) {
	r := NewStockfishRunner(WithBinary("definitely-not-stockfish"))
	assert.False(t, r.Available())

	_, err := r.Perft(fen.StartFen, nil, 1)
	assert.False(t, IsNil(err))
}

func TestPerftMatchesStockfish(t *testing.T) {
	r := NewStockfishRunner()
	if !r.Available() {
		t.Skip("stockfish not installed")
	}
	defer r.Close()

	runner := perft.NewRunner()
	for _, s := range []string{
		fen.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkb1r/1ppppppp/5n2/p7/6PP/8/PPPPPP2/RNBQKBNR w KQkq a6 2 2",
		"rnbqkbnr/pp1p1ppp/2p5/4pP2/8/2P5/PP1PP1PP/RNBQKBNR b KQkq - 5 3",
	} {
		expected, err := r.Perft(s, nil, 3)
		require.True(t, IsNil(err), err.Error())

		actual, err := runner.Divide(fen.MustPositionFromFenString(s), 3)
		require.True(t, IsNil(err))

		assert.Empty(t, perft.Compare(actual, expected), s)
		assert.Equal(t, expected.Total, actual.Total, s)
	}

	expected, err := r.Perft(fen.StartFen, []string{"e2e4", "d7d5"}, 2)
	require.True(t, IsNil(err), err.Error())
	assert.Len(t, expected.Moves, 31)

	pos := fen.MustPositionFromFenString(fen.StartFen)
	g := movegen.New()
	for _, uci := range []string{"e2e4", "d7d5"} {
		move := g.FindMove(&pos, uci)
		require.True(t, move.HasValue())
		pos.Make(move.Value())
	}
	actual, err := runner.Divide(pos, 2)
	require.True(t, IsNil(err))
	assert.Equal(t, expected, actual)
}
