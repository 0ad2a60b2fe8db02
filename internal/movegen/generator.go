package movegen

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

// Generator enumerates legal moves. It owns a reusable move buffer, so one
// Generator must not be shared between goroutines.
type Generator struct {
	tables *AttackTables
	moves  MoveList

	inPlaceEvasion bool
}

type Option func(*Generator)

// WithInPlaceEvasion validates candidate moves by making and unmaking them on
// the caller's position instead of on a copy.
func WithInPlaceEvasion() Option {
	return func(g *Generator) {
		g.inPlaceEvasion = true
	}
}

// WithTables uses the given tables instead of the shared ones.
func WithTables(tables *AttackTables) Option {
	return func(g *Generator) {
		g.tables = tables
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		tables: Tables(),
		moves:  NewMoveList(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMoves returns every legal move for the side to move, ordered by
// source square, then destination square, then promotion piece (Q, R, B, N).
// The result aliases the generator's buffer and is only valid until the next
// call. pos is unchanged when GenerateMoves returns.
func (g *Generator) GenerateMoves(pos *Position) []Move {
	g.moves.Clear()

	inCheck := inCheck(g.tables, pos)
	player := pos.Player

	pieces := pos.OccupiedBy(player)
	for next, rest := pieces.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		square := SingleBitboard(next.Value())

		pieceType := pos.PieceTypeAt(player, square)
		if pieceType.IsEmpty() {
			continue
		}

		switch pieceType.Value() {
		case Pawn:
			g.generatePawnMoves(pos, square, inCheck)
		case Knight:
			g.generateKnightMoves(pos, square, inCheck)
		case Bishop:
			g.generateSlidingMoves(pos, square, Bishop, BishopDirs, inCheck)
		case Rook:
			g.generateSlidingMoves(pos, square, Rook, RookDirs, inCheck)
		case Queen:
			g.generateSlidingMoves(pos, square, Queen, QueenDirs, inCheck)
		case King:
			g.generateKingMoves(pos, square)
		}
	}

	return g.moves.Moves()
}

// AppendMoves appends a copy of the legal moves to dst.
func (g *Generator) AppendMoves(dst []Move, pos *Position) []Move {
	return append(dst, g.GenerateMoves(pos)...)
}

// FindMove looks up a legal move by its UCI string.
func (g *Generator) FindMove(pos *Position, uci string) Optional[Move] {
	return FindInSlice(g.GenerateMoves(pos), func(m Move) bool {
		return m.String() == uci
	})
}

func (g *Generator) InCheck(pos *Position) bool {
	return inCheck(g.tables, pos)
}

func (g *Generator) IsAttacked(square Bitboard, pos *Position) bool {
	return isAttacked(g.tables, square, pos)
}

func (g *Generator) IsPinned(piece Bitboard, pos *Position, axis Axis) bool {
	return isPinned(g.tables, piece, pos, axis)
}

// push adds m, first checking king safety on the resulting position when
// evade is set.
func (g *Generator) push(pos *Position, m Move, evade bool) {
	if evade && !g.leavesKingSafe(pos, m) {
		return
	}
	g.moves.Push(m)
}

// emit pushes one move per destination, lowest square first.
func (g *Generator) emit(pos *Position, from Bitboard, piece PieceType, destinations Bitboard, evade bool) {
	enemy := pos.Player.Other()

	for next, rest := destinations.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		to := SingleBitboard(next.Value())

		m := NewMove(pos, from, to, piece)
		if captured := pos.PieceTypeAt(enemy, to); captured.HasValue() {
			m = m.WithCapture(captured.Value())
		}
		g.push(pos, m, evade)
	}
}
