package game

import (
	"strings"

	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/helpers"
)

// Position holds only arrays and scalars, so assigning it copies the whole
// board. Make and Unmake are exact inverses when applied in nested pairs.
type Position struct {
	Pieces    [2][NumPieceTypes]Bitboard
	Occupancy [2]Bitboard

	Player          Player
	CastlingRights  [2][2]bool
	EnPassantTarget Bitboard
	HalfMoveClock   int
	FullMoveNumber  int
}

func (p *Position) Occupied() Bitboard {
	return p.Occupancy[White] | p.Occupancy[Black]
}

func (p *Position) OccupiedBy(player Player) Bitboard {
	return p.Occupancy[player]
}

func (p *Position) PiecesOf(player Player, pieceType PieceType) Bitboard {
	return p.Pieces[player][pieceType]
}

func (p *Position) King(player Player) Bitboard {
	return p.Pieces[player][King]
}

func (p *Position) SideToMove() Player {
	return p.Player
}

func (p *Position) CanCastle(player Player, side CastlingSide) bool {
	return p.CastlingRights[player][side]
}

func (p *Position) EnPassant() Bitboard {
	return p.EnPassantTarget
}

// PieceTypeAt looks for a piece of player on square.
func (p *Position) PieceTypeAt(player Player, square Bitboard) Optional[PieceType] {
	if p.Occupancy[player]&square == 0 {
		return Empty[PieceType]()
	}
	for _, pieceType := range AllPieceTypes {
		if p.Pieces[player][pieceType]&square != 0 {
			return Some(pieceType)
		}
	}
	return Empty[PieceType]()
}

// OwnerOf reports which player has a piece on square.
func (p *Position) OwnerOf(square Bitboard) Optional[Player] {
	if p.Occupancy[White]&square != 0 {
		return Some(White)
	}
	if p.Occupancy[Black]&square != 0 {
		return Some(Black)
	}
	return Empty[Player]()
}

// PieceAt finds whichever piece occupies square.
func (p *Position) PieceAt(square Bitboard) (Player, PieceType, bool) {
	owner := p.OwnerOf(square)
	if owner.IsEmpty() {
		return White, NumPieceTypes, false
	}
	return owner.Value(), p.PieceTypeAt(owner.Value(), square).Value(), true
}

func (p *Position) SetPiece(player Player, pieceType PieceType, square Bitboard) {
	p.Pieces[player][pieceType] |= square
	p.Occupancy[player] |= square
}

func (p *Position) ClearPiece(player Player, pieceType PieceType, square Bitboard) {
	p.Pieces[player][pieceType] &^= square
	p.Occupancy[player] &^= square
}

func (p *Position) Make(m Move) {
	player := m.Player
	enemy := player.Other()

	if m.IsNull() {
		p.EnPassantTarget = AllZeros
		p.Player = enemy
		return
	}

	if m.Captured.HasValue() {
		captureSquare := m.To
		if m.IsEnPassant() {
			captureSquare = behindPawnTarget(player, m.To)
		}
		p.ClearPiece(enemy, m.Captured.Value(), captureSquare)
	}

	p.ClearPiece(player, m.Piece, m.From)
	p.SetPiece(player, m.Promotion.ValueOr(m.Piece), m.To)

	if m.IsCastle() {
		if side := castlingSideForKingTarget(player, m.To); side.HasValue() {
			requirements := AllCastlingRequirements[player][side.Value()]
			p.ClearPiece(player, Rook, requirements.Rook)
			p.SetPiece(player, Rook, requirements.RookTo)
		}
	}

	touched := m.From | m.To
	for _, pl := range [2]Player{White, Black} {
		for _, side := range AllCastlingSides {
			requirements := &AllCastlingRequirements[pl][side]
			if touched&(requirements.King|requirements.Rook) != 0 {
				p.CastlingRights[pl][side] = false
			}
		}
	}

	p.EnPassantTarget = AllZeros
	if m.IsDoublePush() {
		p.EnPassantTarget = behindPawnTarget(player, m.To)
	}

	if m.Piece == Pawn || m.Captured.HasValue() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if player == Black {
		p.FullMoveNumber++
	}

	p.Player = enemy
}

func (p *Position) Unmake(m Move) {
	player := m.Player
	enemy := player.Other()

	p.Player = player
	p.HalfMoveClock = m.HalfMoveClock
	p.CastlingRights = m.CastlingRights
	p.EnPassantTarget = m.EnPassantTarget

	if m.IsNull() {
		return
	}

	if player == Black {
		p.FullMoveNumber--
	}

	if m.IsCastle() {
		if side := castlingSideForKingTarget(player, m.To); side.HasValue() {
			requirements := AllCastlingRequirements[player][side.Value()]
			p.ClearPiece(player, Rook, requirements.RookTo)
			p.SetPiece(player, Rook, requirements.Rook)
		}
	}

	p.ClearPiece(player, m.Promotion.ValueOr(m.Piece), m.To)
	p.SetPiece(player, m.Piece, m.From)

	if m.Captured.HasValue() {
		captureSquare := m.To
		if m.IsEnPassant() {
			captureSquare = behindPawnTarget(player, m.To)
		}
		p.SetPiece(enemy, m.Captured.Value(), captureSquare)
	}
}

func (p *Position) MakeNull() Move {
	m := NullMove(p)
	p.Make(m)
	return m
}

func (p *Position) UnmakeNull(m Move) {
	p.Unmake(m)
}

// String draws the board with rank 8 on top, using FEN letters and '.' for
// empty squares.
func (p *Position) String() string {
	rows := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		row := ""
		for file := 0; file < 8; file++ {
			square := SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)}))
			owner := p.OwnerOf(square)
			if owner.IsEmpty() {
				row += "."
				continue
			}
			row += p.PieceTypeAt(owner.Value(), square).Value().Letter(owner.Value())
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// Unicode draws the board with coordinates and chess glyphs.
func (p *Position) Unicode() string {
	result := "  a b c d e f g h\n"
	for rank := 7; rank >= 0; rank-- {
		result += Rank(rank).String() + " "
		for file := 0; file < 8; file++ {
			square := SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)}))
			owner := p.OwnerOf(square)
			if owner.IsEmpty() {
				result += ". "
				continue
			}
			result += p.PieceTypeAt(owner.Value(), square).Value().Unicode(owner.Value()) + " "
		}
		result += Rank(rank).String() + "\n"
	}
	return result + "  a b c d e f g h"
}
