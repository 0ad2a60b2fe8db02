package game

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/helpers"
)

// Move is an immutable record of a move together with the parts of the
// position it overwrites, so Unmake can restore them.
type Move struct {
	From   Bitboard
	To     Bitboard
	Piece  PieceType
	Player Player

	HalfMoveClock   int
	CastlingRights  [2][2]bool
	EnPassantTarget Bitboard

	Captured  Optional[PieceType]
	Promotion Optional[PieceType]
}

// NewMove snapshots the reversible state of pos. from and to must be single
// squares.
func NewMove(pos *Position, from Bitboard, to Bitboard, piece PieceType) Move {
	return Move{
		From:            from,
		To:              to,
		Piece:           piece,
		Player:          pos.Player,
		HalfMoveClock:   pos.HalfMoveClock,
		CastlingRights:  pos.CastlingRights,
		EnPassantTarget: pos.EnPassantTarget,
		Captured:        Empty[PieceType](),
		Promotion:       Empty[PieceType](),
	}
}

// NullMove passes the turn without moving a piece.
func NullMove(pos *Position) Move {
	return NewMove(pos, AllZeros, AllZeros, King)
}

func (m Move) WithCapture(captured PieceType) Move {
	m.Captured = Some(captured)
	return m
}

func (m Move) WithPromotion(promotion PieceType) Move {
	m.Promotion = Some(promotion)
	return m
}

func (m Move) IsNull() bool {
	return m.From == 0 && m.To == 0
}

func (m Move) IsCapture() bool {
	return m.Captured.HasValue()
}

func (m Move) IsEnPassant() bool {
	return m.Piece == Pawn && m.EnPassantTarget != 0 && m.To == m.EnPassantTarget && m.Captured.HasValue()
}

func (m Move) IsCastle() bool {
	if m.Piece != King {
		return false
	}
	return E.Step(E.Step(m.From)) == m.To || W.Step(W.Step(m.From)) == m.To
}

func (m Move) IsDoublePush() bool {
	if m.Piece != Pawn {
		return false
	}
	return N.Step(N.Step(m.From)) == m.To || S.Step(S.Step(m.From)) == m.To
}

// String is long algebraic (UCI) notation, e.g. e2e4 or e7e8q.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.SquareString() + m.To.SquareString()
	if m.Promotion.HasValue() {
		s += m.Promotion.Value().String()
	}
	return s
}

func (m Move) DebugString() string {
	s := m.Piece.Letter(m.Player) + m.From.SquareString()
	if m.Captured.HasValue() {
		s += "x"
	}
	s += m.To.SquareString()
	if m.Promotion.HasValue() {
		s += "=" + m.Promotion.Value().Letter(m.Player)
	}
	if m.IsEnPassant() {
		s += " e.p."
	}
	return s
}
