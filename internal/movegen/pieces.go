package movegen

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

func (g *Generator) generateKnightMoves(pos *Position, square Bitboard, inCheck bool) {
	// no knight move stays on a line, so any pin freezes it
	if pinnedAxes(g.tables, square, pos).pinned() {
		return
	}
	index := square.LowestIndex().Value()
	destinations := g.tables.Knight[index] &^ pos.OccupiedBy(pos.Player)
	g.emit(pos, square, Knight, destinations, inCheck)
}

func (g *Generator) slidingDestinations(pos *Position, index int, d Dir) Bitboard {
	ray := g.tables.Rays[d][index]
	blocker := d.Nearest(ray & pos.Occupied())
	if blocker.IsEmpty() {
		return ray
	}

	blockerIndex := blocker.Value()
	ray &^= g.tables.Rays[d][blockerIndex]
	return ray &^ pos.OccupiedBy(pos.Player)
}

func (g *Generator) generateSlidingMoves(pos *Position, square Bitboard, piece PieceType, dirs []Dir, inCheck bool) {
	pins := pinnedAxes(g.tables, square, pos)
	index := square.LowestIndex().Value()

	destinations := AllZeros
	for _, d := range dirs {
		if pins.allows(d.Axis()) {
			destinations |= g.slidingDestinations(pos, index, d)
		}
	}
	g.emit(pos, square, piece, destinations, inCheck)
}

func (g *Generator) canCastle(pos *Position, king Bitboard, side CastlingSide) bool {
	player := pos.Player
	if !pos.CanCastle(player, side) {
		return false
	}

	requirements := &AllCastlingRequirements[player][side]
	if requirements.King != king || pos.PiecesOf(player, Rook)&requirements.Rook == 0 {
		return false
	}
	if pos.Occupied()&requirements.Empty != 0 {
		return false
	}

	for next, rest := requirements.Safe.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		if isAttacked(g.tables, SingleBitboard(next.Value()), pos) {
			return false
		}
	}
	return true
}

// King destinations pass the oracle and are then always simulated: the
// oracle still sees the king on its origin square, which hides attacks along
// the line the king is retreating on.
func (g *Generator) generateKingMoves(pos *Position, square Bitboard) {
	index := square.LowestIndex().Value()

	destinations := AllZeros
	candidates := g.tables.King[index] &^ pos.OccupiedBy(pos.Player)
	for next, rest := candidates.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		to := SingleBitboard(next.Value())
		if !isAttacked(g.tables, to, pos) {
			destinations |= to
		}
	}

	for _, side := range AllCastlingSides {
		if g.canCastle(pos, square, side) {
			destinations |= AllCastlingRequirements[pos.Player][side].KingTo
		}
	}

	g.emit(pos, square, King, destinations, true)
}

func (g *Generator) generatePawnMoves(pos *Position, square Bitboard, inCheck bool) {
	player := pos.Player
	enemy := player.Other()
	pins := pinnedAxes(g.tables, square, pos)
	occupied := pos.Occupied()

	destinations := AllZeros
	if pins.allows(FileAxis) {
		push := PawnPushDir[player]
		single := push.Step(square) &^ occupied
		destinations |= single
		if square&PawnStartRank[player] != 0 {
			destinations |= push.Step(single) &^ occupied
		}
	}

	enPassant := AllZeros
	for _, d := range PawnCaptureDirs[player] {
		if !pins.allows(d.Axis()) {
			continue
		}
		target := d.Step(square)
		destinations |= target & pos.OccupiedBy(enemy)
		enPassant |= target & pos.EnPassant() &^ occupied
	}
	destinations |= enPassant

	for next, rest := destinations.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		to := SingleBitboard(next.Value())

		m := NewMove(pos, square, to, Pawn)
		evade := inCheck
		if captured := pos.PieceTypeAt(enemy, to); captured.HasValue() {
			m = m.WithCapture(captured.Value())
		} else if to&enPassant != 0 {
			// the captured pawn leaves a square the pin test never looked at
			m = m.WithCapture(Pawn)
			evade = true
		}

		if to&PromotionRank[player] != 0 {
			for _, promotion := range PromotionPieceTypes {
				g.push(pos, m.WithPromotion(promotion), evade)
			}
		} else {
			g.push(pos, m, evade)
		}
	}
}
