package game

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/helpers"
)

type CastlingRequirements struct {
	// Empty must hold no pieces: every square strictly between king and rook.
	Empty Bitboard
	// Safe must not be attacked: king start, transit and destination squares.
	Safe Bitboard

	King   Bitboard
	KingTo Bitboard
	Rook   Bitboard
	RookTo Bitboard
}

var AllCastlingRequirements = func() [2][2]CastlingRequirements {
	result := [2][2]CastlingRequirements{}
	result[White][Kingside] = CastlingRequirements{
		Empty:  BitboardWithAllLocationsSet([]string{"f1", "g1"}),
		Safe:   BitboardWithAllLocationsSet([]string{"e1", "f1", "g1"}),
		King:   SquareFromString("e1"),
		KingTo: SquareFromString("g1"),
		Rook:   SquareFromString("h1"),
		RookTo: SquareFromString("f1"),
	}
	result[White][Queenside] = CastlingRequirements{
		Empty:  BitboardWithAllLocationsSet([]string{"b1", "c1", "d1"}),
		Safe:   BitboardWithAllLocationsSet([]string{"e1", "d1", "c1"}),
		King:   SquareFromString("e1"),
		KingTo: SquareFromString("c1"),
		Rook:   SquareFromString("a1"),
		RookTo: SquareFromString("d1"),
	}
	result[Black][Kingside] = CastlingRequirements{
		Empty:  BitboardWithAllLocationsSet([]string{"f8", "g8"}),
		Safe:   BitboardWithAllLocationsSet([]string{"e8", "f8", "g8"}),
		King:   SquareFromString("e8"),
		KingTo: SquareFromString("g8"),
		Rook:   SquareFromString("h8"),
		RookTo: SquareFromString("f8"),
	}
	result[Black][Queenside] = CastlingRequirements{
		Empty:  BitboardWithAllLocationsSet([]string{"b8", "c8", "d8"}),
		Safe:   BitboardWithAllLocationsSet([]string{"e8", "d8", "c8"}),
		King:   SquareFromString("e8"),
		KingTo: SquareFromString("c8"),
		Rook:   SquareFromString("a8"),
		RookTo: SquareFromString("d8"),
	}
	return result
}()

func castlingSideForKingTarget(player Player, kingTo Bitboard) Optional[CastlingSide] {
	for _, side := range AllCastlingSides {
		if AllCastlingRequirements[player][side].KingTo == kingTo {
			return Some(side)
		}
	}
	return Empty[CastlingSide]()
}

// Pawn geometry, indexed by the pawn's owner.
var (
	PawnPushDir     = [2]Dir{N, S}
	PawnCaptureDirs = [2][2]Dir{{NW, NE}, {SW, SE}}
	PawnStartRank   = [2]Bitboard{Rank2, Rank7}
	PromotionRank   = [2]Bitboard{Rank8, Rank1}
)

// behindPawnTarget is the square a pawn of player passed over to reach
// target: the en passant capture square, or the skipped square of a double
// push.
func behindPawnTarget(player Player, target Bitboard) Bitboard {
	return PawnPushDir[player.Other()].Step(target)
}
