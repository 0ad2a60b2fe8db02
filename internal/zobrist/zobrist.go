package zobrist

import (
	"math/rand"

	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

var ZobristPieceAtSquare [2][NumPieceTypes][64]uint64
var ZobristSideToMove uint64
var ZobristCastlingRights [2][2]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			ZobristCastlingRights[player][side] = r.Uint64()
		}
	}
	for i := 0; i < 8; i++ {
		ZobristEnPassant[i] = r.Uint64()
	}
	for player := 0; player < 2; player++ {
		for _, pieceType := range AllPieceTypes {
			for boardIndex := 0; boardIndex < 64; boardIndex++ {
				ZobristPieceAtSquare[player][pieceType][boardIndex] = r.Uint64()
			}
		}
	}
}

func hashForPieces(hash uint64, player Player, pieceType PieceType, squares Bitboard) uint64 {
	for next, rest := squares.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		hash ^= ZobristPieceAtSquare[player][pieceType][next.Value()]
	}
	return hash
}

func hashForEnPassant(hash uint64, target Bitboard) uint64 {
	if target.IsSingle() {
		hash ^= ZobristEnPassant[FileRankFromIndex(target.LowestIndex().Value()).File]
	}
	return hash
}

// Hash covers the pieces, side to move, castling rights and en passant file.
// The clocks are not part of it.
func Hash(pos *Position) uint64 {
	hash := uint64(0)
	for _, player := range [2]Player{White, Black} {
		for _, pieceType := range AllPieceTypes {
			hash = hashForPieces(hash, player, pieceType, pos.Pieces[player][pieceType])
		}
	}
	if pos.Player == Black {
		hash ^= ZobristSideToMove
	}
	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			if pos.CastlingRights[player][side] {
				hash ^= ZobristCastlingRights[player][side]
			}
		}
	}
	return hashForEnPassant(hash, pos.EnPassantTarget)
}

// UpdateHash returns the hash of after, given the hash of the position m was
// made from.
func UpdateHash(hash uint64, m Move, after *Position) uint64 {
	hash ^= ZobristSideToMove

	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			if m.CastlingRights[player][side] != after.CastlingRights[player][side] {
				hash ^= ZobristCastlingRights[player][side]
			}
		}
	}

	hash = hashForEnPassant(hash, m.EnPassantTarget)
	hash = hashForEnPassant(hash, after.EnPassantTarget)

	if m.IsNull() {
		return hash
	}

	player := m.Player
	hash = hashForPieces(hash, player, m.Piece, m.From)
	hash = hashForPieces(hash, player, m.Promotion.ValueOr(m.Piece), m.To)

	if m.Captured.HasValue() {
		captureSquare := m.To
		if m.IsEnPassant() {
			captureSquare = PawnPushDir[player.Other()].Step(m.To)
		}
		hash = hashForPieces(hash, player.Other(), m.Captured.Value(), captureSquare)
	}

	if m.IsCastle() {
		for _, side := range AllCastlingSides {
			requirements := &AllCastlingRequirements[player][side]
			if requirements.KingTo == m.To {
				hash = hashForPieces(hash, player, Rook, requirements.Rook|requirements.RookTo)
			}
		}
	}

	return hash
}
