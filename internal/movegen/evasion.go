package movegen

import (
	. "github.com/cricklet/movegen/internal/game"
)

// leavesKingSafe plays m, then passes the turn back so the mover is the side
// to move again, and asks whether the mover's king is attacked.
func (g *Generator) leavesKingSafe(pos *Position, m Move) bool {
	if g.inPlaceEvasion {
		return g.leavesKingSafeInPlace(pos, m)
	}

	next := *pos
	next.Make(m)
	next.MakeNull()
	return !inCheck(g.tables, &next)
}

// leavesKingSafeInPlace mutates pos and restores it before returning.
func (g *Generator) leavesKingSafeInPlace(pos *Position, m Move) bool {
	pos.Make(m)
	defer pos.Unmake(m)

	null := pos.MakeNull()
	defer pos.UnmakeNull(null)

	return !inCheck(g.tables, pos)
}
