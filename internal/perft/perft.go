package perft

import (
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
)

// GenerateMoves copies out of the generator's buffer, so every ply of a
// recursive walk needs its own slice.
var GetMovesBuffer, ReleaseMovesBuffer, StatsMovesBuffer = CreatePool(
	func() []Move { return make([]Move, 0, 256) },
	func(t *[]Move) { *t = (*t)[:0] },
)

// Count returns the number of leaf positions depth plies below pos.
func Count(g *movegen.Generator, pos *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	if depth == 1 {
		return uint64(len(g.GenerateMoves(pos)))
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	*moves = g.AppendMoves(*moves, pos)

	result := uint64(0)
	for _, move := range *moves {
		pos.Make(move)
		result += Count(g, pos, depth-1)
		pos.Unmake(move)
	}
	return result
}

type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
	r.Checkmates += o.Checkmates
}

// Detailed counts leaves like Count and also classifies the moves that lead
// to them.
func Detailed(g *movegen.Generator, pos *Position, depth int) Result {
	if depth <= 0 {
		return Result{Nodes: 1}
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	*moves = g.AppendMoves(*moves, pos)

	result := Result{}
	for _, move := range *moves {
		func() {
			pos.Make(move)
			defer pos.Unmake(move)

			if depth > 1 {
				result.add(Detailed(g, pos, depth-1))
				return
			}

			leaf := Result{Nodes: 1}
			if move.IsCapture() {
				leaf.Captures++
			}
			if move.IsEnPassant() {
				leaf.EnPassants++
			}
			if move.IsCastle() {
				leaf.Castles++
			}
			if move.Promotion.HasValue() {
				leaf.Promotions++
			}
			if g.InCheck(pos) {
				leaf.Checks++
				if len(g.GenerateMoves(pos)) == 0 {
					leaf.Checkmates++
				}
			}
			result.add(leaf)
		}()
	}
	return result
}
