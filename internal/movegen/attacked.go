package movegen

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

// IsAttacked reports whether the side not to move could capture on square.
// Whose turn it is only decides which side counts as the attacker.
func IsAttacked(square Bitboard, pos *Position) bool {
	return isAttacked(Tables(), square, pos)
}

// InCheck reports whether the side to move's king is attacked.
func InCheck(pos *Position) bool {
	return IsAttacked(pos.King(pos.Player), pos)
}

func isAttacked(tables *AttackTables, square Bitboard, pos *Position) bool {
	if !square.IsSingle() {
		return false
	}
	index := square.LowestIndex().Value()

	attacker := pos.Player.Other()
	enemy := &pos.Pieces[attacker]

	if tables.Knight[index]&enemy[Knight] != 0 {
		return true
	}

	occupied := pos.Occupied()
	orthogonal := enemy[Rook] | enemy[Queen]
	diagonal := enemy[Bishop] | enemy[Queen]

	for _, d := range AllDirs {
		sliders := diagonal
		if d.Axis().Orthogonal() {
			sliders = orthogonal
		}
		if sliders&tables.Rays[d][index] == 0 {
			continue
		}

		nearest := d.Nearest(tables.Rays[d][index] & occupied)
		if nearest.HasValue() && SingleBitboard(nearest.Value())&sliders != 0 {
			return true
		}
	}

	for _, d := range PawnCaptureDirs[attacker] {
		if d.Opposite().Step(square)&enemy[Pawn] != 0 {
			return true
		}
	}

	return tables.King[index]&enemy[King] != 0
}

func inCheck(tables *AttackTables, pos *Position) bool {
	return isAttacked(tables, pos.King(pos.Player), pos)
}

// Attackers lists the squares of every piece of the side not to move that
// attacks square. It is slower than IsAttacked and meant for display.
func Attackers(square Bitboard, pos *Position) Bitboard {
	if !square.IsSingle() {
		return AllZeros
	}
	tables := Tables()
	index := square.LowestIndex().Value()
	attacker := pos.Player.Other()
	enemy := &pos.Pieces[attacker]
	occupied := pos.Occupied()

	result := tables.Knight[index]&enemy[Knight] | tables.King[index]&enemy[King]
	for _, d := range AllDirs {
		sliders := enemy[Bishop] | enemy[Queen]
		if d.Axis().Orthogonal() {
			sliders = enemy[Rook] | enemy[Queen]
		}
		nearest := d.Nearest(tables.Rays[d][index] & occupied)
		if nearest.HasValue() {
			result |= SingleBitboard(nearest.Value()) & sliders
		}
	}
	for _, d := range PawnCaptureDirs[attacker] {
		result |= d.Opposite().Step(square) & enemy[Pawn]
	}
	return result
}
