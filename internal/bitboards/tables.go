package bitboards

import "sync"

// AttackTables holds occupancy-independent geometry for every origin square.
// Build it once and share it read-only.
type AttackTables struct {
	File         [64]Bitboard
	Rank         [64]Bitboard
	Diagonal     [64]Bitboard
	AntiDiagonal [64]Bitboard

	Knight [64]Bitboard
	King   [64]Bitboard

	// Rays[d][i] holds the squares strictly beyond i in direction d, up to
	// the board edge.
	Rays [NumDirs][64]Bitboard
}

var _knightPaths = [8][3]Dir{
	{N, N, E},
	{N, N, W},
	{S, S, E},
	{S, S, W},
	{E, E, N},
	{E, E, S},
	{W, W, N},
	{W, W, S},
}

func walk(origin Bitboard, d Dir) Bitboard {
	result := AllZeros
	for current := d.Step(origin); current != 0; current = d.Step(current) {
		result |= current
	}
	return result
}

func NewAttackTables() *AttackTables {
	t := &AttackTables{}

	for i := 0; i < 64; i++ {
		origin := SingleBitboard(i)

		for _, d := range AllDirs {
			t.Rays[d][i] = walk(origin, d)
			t.King[i] |= d.Step(origin)
		}

		for _, path := range _knightPaths {
			jump := origin
			for _, d := range path {
				jump = d.Step(jump)
			}
			t.Knight[i] |= jump
		}

		t.File[i] = origin | t.Rays[N][i] | t.Rays[S][i]
		t.Rank[i] = origin | t.Rays[E][i] | t.Rays[W][i]
		t.Diagonal[i] = origin | t.Rays[NE][i] | t.Rays[SW][i]
		t.AntiDiagonal[i] = origin | t.Rays[NW][i] | t.Rays[SE][i]
	}

	return t
}

// Line is the full mask of axis a through square i, i included.
func (t *AttackTables) Line(a Axis, i int) Bitboard {
	switch a {
	case FileAxis:
		return t.File[i]
	case RankAxis:
		return t.Rank[i]
	case DiagonalAxis:
		return t.Diagonal[i]
	case AntiDiagonalAxis:
		return t.AntiDiagonal[i]
	}
	return AllZeros
}

var _sharedTables *AttackTables
var _sharedTablesOnce sync.Once

// Tables returns a process-wide instance built on first use. Callers must not
// modify it.
func Tables() *AttackTables {
	_sharedTablesOnce.Do(func() {
		_sharedTables = NewAttackTables()
	})
	return _sharedTables
}
