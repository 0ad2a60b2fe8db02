package movegen

import (
	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

// IsPinned reports whether piece cannot leave axis without exposing its own
// king to an enemy slider on that axis. The piece's color comes from the
// occupancy; an empty square is never pinned.
func IsPinned(piece Bitboard, pos *Position, axis Axis) bool {
	return isPinned(Tables(), piece, pos, axis)
}

func isPinned(tables *AttackTables, piece Bitboard, pos *Position, axis Axis) bool {
	if !piece.IsSingle() {
		return false
	}
	owner := pos.OwnerOf(piece)
	if owner.IsEmpty() {
		return false
	}
	player := owner.Value()
	king := pos.King(player)
	if !king.IsSingle() || king == piece {
		return false
	}

	pieceIndex := piece.LowestIndex().Value()
	line := tables.Line(axis, pieceIndex)
	if line&king == 0 {
		return false
	}

	enemy := &pos.Pieces[player.Other()]
	sliders := enemy[Queen] | enemy[Bishop]
	if axis.Orthogonal() {
		sliders = enemy[Queen] | enemy[Rook]
	}
	if line&sliders == 0 {
		return false
	}

	occupied := pos.Occupied()
	kingIndex := king.LowestIndex().Value()
	d := axis.Toward(kingIndex, pieceIndex)

	between := tables.Rays[d][kingIndex] & tables.Rays[d.Opposite()][pieceIndex]
	if between&occupied != 0 {
		return false
	}

	pinner := d.Nearest(tables.Rays[d][pieceIndex] & occupied)
	if pinner.IsEmpty() {
		return false
	}
	return SingleBitboard(pinner.Value())&sliders != 0
}

// axisSet has one bit per Axis the piece is pinned on.
type axisSet uint8

func pinnedAxes(tables *AttackTables, piece Bitboard, pos *Position) axisSet {
	result := axisSet(0)
	for _, axis := range AllAxes {
		if isPinned(tables, piece, pos, axis) {
			result |= 1 << axis
		}
	}
	return result
}

func (s axisSet) pinned() bool {
	return s != 0
}

// allows reports whether moving along axis keeps every pin intact: the piece
// must not be pinned on any other axis.
func (s axisSet) allows(axis Axis) bool {
	return s&^(1<<axis) == 0
}
