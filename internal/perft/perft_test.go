package perft

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
	"github.com/cricklet/movegen/internal/zobrist"
	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type perftCase struct {
	fen    string
	counts []uint64
}

var perftCases = []perftCase{
	{fen.StartFen, []uint64{1, 20, 400, 8902, 197281}},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", []uint64{1, 48, 2039, 97862}},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", []uint64{1, 14, 191, 2812, 43238}},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{1, 6, 264, 9467, 422333}},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{1, 44, 1486, 62379}},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{1, 46, 2079, 89890}},
	{"rnbqkbnr/1ppppppp/8/p7/8/7P/PPPPPPP1/RNBQKBNR w KQkq - 0 2", []uint64{1, 19, 399}},
}

func TestCount(t *testing.T) {
	g := movegen.New()
	for _, c := range perftCases {
		pos, err := fen.PositionFromFenString(c.fen)
		require.True(t, IsNil(err), err.Error())

		before := pos
		for depth, expected := range c.counts {
			assert.Equal(t, expected, Count(g, &pos, depth), "%v depth %v", c.fen, depth)
		}
		assert.Equal(t, before, pos)
	}
}

func TestCountInPlaceEvasion(t *testing.T) {
	g := movegen.New(movegen.WithInPlaceEvasion())
	for _, c := range perftCases[:3] {
		pos := fen.MustPositionFromFenString(c.fen)
		assert.Equal(t, c.counts[3], Count(g, &pos, 3), c.fen)
	}
}

func TestDetailed(t *testing.T) {
	g := movegen.New()

	pos := fen.MustPositionFromFenString(fen.StartFen)
	assert.Equal(t, Result{Nodes: 8902, Captures: 34, Checks: 12}, Detailed(g, &pos, 3))

	pos = fen.MustPositionFromFenString(perftCases[1].fen)
	assert.Equal(t, Result{Nodes: 48, Captures: 8, Castles: 2}, Detailed(g, &pos, 1))
	assert.Equal(t, Result{Nodes: 2039, Captures: 351, EnPassants: 1, Castles: 91, Checks: 3}, Detailed(g, &pos, 2))

	pos = fen.MustPositionFromFenString(perftCases[2].fen)
	assert.Equal(t, Result{Nodes: 191, Captures: 14, Checks: 10}, Detailed(g, &pos, 2))
}

type memoryStore struct {
	lock   sync.Mutex
	counts map[string]uint64
	gets   int
}

func (s *memoryStore) key(hash uint64, depth int) string {
	return fmt.Sprint(hash, "/", depth)
}

func (s *memoryStore) Get(hash uint64, depth int) (Optional[uint64], Error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.gets++
	if v, ok := s.counts[s.key(hash, depth)]; ok {
		return Some(v), NilError
	}
	return Empty[uint64](), NilError
}

func (s *memoryStore) Put(hash uint64, depth int, nodes uint64) Error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.counts[s.key(hash, depth)] = nodes
	return NilError
}

func TestRunnerDivide(t *testing.T) {
	pos := fen.MustPositionFromFenString(perftCases[1].fen)

	serial := NewDivide()
	g := movegen.New()
	for _, move := range g.AppendMoves(nil, &pos) {
		pos.Make(move)
		serial.Moves[move.String()] = Count(g, &pos, 2)
		serial.Total += serial.Moves[move.String()]
		pos.Unmake(move)
	}
	assert.Equal(t, uint64(97862), serial.Total)

	lines := []string{}
	logger := FuncLogger(func(s string) { lines = append(lines, s) })
	store := &memoryStore{counts: map[string]uint64{}}

	runner := NewRunner(
		WithWorkers(4),
		WithCache(zobrist.NewTranspositionTable(1<<16)),
		WithStore(store),
		WithLogger(logger),
	)

	divide, err := runner.Divide(pos, 3)
	assert.True(t, IsNil(err))
	assert.Equal(t, serial, divide)
	assert.Empty(t, Compare(divide, serial))
	assert.Len(t, store.counts, 48)
	assert.NotEmpty(t, lines)

	// a second run is answered from the store
	count, err := runner.Count(pos, 3)
	assert.True(t, IsNil(err))
	assert.Equal(t, uint64(97862), count)
	assert.Equal(t, 96, store.gets)
}

func TestRunnerEdgeCases(t *testing.T) {
	runner := NewRunner(WithWorkers(0))

	pos := fen.MustPositionFromFenString(fen.StartFen)
	count, err := runner.Count(pos, 0)
	assert.True(t, IsNil(err))
	assert.Equal(t, uint64(1), count)

	mate := fen.MustPositionFromFenString("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	divide, err := runner.Divide(mate, 3)
	assert.True(t, IsNil(err))
	assert.Empty(t, divide.Moves)
	assert.Equal(t, uint64(0), divide.Total)
}

const stockfishOutput = `Stockfish 16 by the Stockfish developers (see AUTHORS file)
info string NNUE evaluation using nn-5af11540bbfe.nnue enabled
a2a3: 1
b2b3: 1
e7e8q: 1
e7e8n: 1

Nodes searched: 4
`

func TestParseDivide(t *testing.T) {
	divide, err := ParseDivide(stockfishOutput)
	assert.True(t, IsNil(err))
	assert.Equal(t, uint64(4), divide.Total)
	assert.Equal(t, map[string]uint64{"a2a3": 1, "b2b3": 1, "e7e8q": 1, "e7e8n": 1}, divide.Moves)
	assert.Equal(t, "a2a3: 1\nb2b3: 1\ne7e8n: 1\ne7e8q: 1\n\nNodes searched: 4", divide.String())

	_, err = ParseDivide("a2a3: 1\n")
	assert.False(t, IsNil(err))
}

func TestCompare(t *testing.T) {
	expected := Divide{Moves: map[string]uint64{"a2a3": 5, "b2b3": 6, "c2c3": 7}, Total: 18}
	actual := Divide{Moves: map[string]uint64{"a2a3": 5, "b2b3": 8, "c2c3": 1, "d2d3": 2}, Total: 16}

	issues := Compare(actual, expected)
	assert.Equal(t, []Issue{
		{CountTooHigh, "b2b3", 6, 8},
		{CountTooLow, "c2c3", 7, 1},
		{MoveIsIllegal, "d2d3", 0, 2},
	}, issues)

	delete(actual.Moves, "a2a3")
	issues = Compare(actual, expected)
	assert.Equal(t, Issue{MoveIsMissing, "a2a3", 5, 0}, issues[len(issues)-1])
	assert.True(t, strings.HasPrefix(issues[len(issues)-1].String(), "a2a3 missing-specific-move"))
}

func referenceDivide(board *dragontoothmg.Board, depth int) map[string]uint64 {
	result := map[string]uint64{}
	for _, move := range board.GenerateLegalMoves() {
		unapply := board.Apply(move)
		result[move.String()] = referenceCount(board, depth-1)
		unapply()
	}
	return result
}

func referenceCount(board *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := board.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	result := uint64(0)
	for _, move := range moves {
		unapply := board.Apply(move)
		result += referenceCount(board, depth-1)
		unapply()
	}
	return result
}

// Random walks from the standard positions, comparing a depth-2 divide with
// an independent generator at every step.
func TestMatchesReferencePerft(t *testing.T) {
	runner := NewRunner(WithWorkers(2))
	g := movegen.New()

	for i, c := range perftCases {
		r := rand.New(rand.NewSource(int64(i)))
		pos := fen.MustPositionFromFenString(c.fen)

		for step := 0; step < 20; step++ {
			s := fen.FenStringForPosition(&pos)
			board := dragontoothmg.ParseFen(s)
			expected := Divide{Moves: referenceDivide(&board, 2)}
			for _, count := range expected.Moves {
				expected.Total += count
			}

			actual, err := runner.Divide(pos, 2)
			require.True(t, IsNil(err))
			if !assert.Empty(t, Compare(actual, expected), s) {
				return
			}

			moves := g.GenerateMoves(&pos)
			if len(moves) == 0 {
				break
			}
			pos.Make(moves[r.Intn(len(moves))])
		}
	}
}
