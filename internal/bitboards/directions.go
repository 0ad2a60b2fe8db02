package bitboards

import (
	. "github.com/cricklet/movegen/internal/helpers"
)

// Dir is one of the eight compass directions. Each direction knows its
// single-step shift, the edge guard that stops a step from wrapping around
// the board, and which end of a ray is nearest to the origin.
type Dir int

const (
	N Dir = iota
	NE
	E
	SE
	S
	SW
	W
	NW

	NumDirs
)

var AllDirs = [NumDirs]Dir{N, NE, E, SE, S, SW, W, NW}

var RookDirs = []Dir{N, E, S, W}
var BishopDirs = []Dir{NE, SE, SW, NW}
var QueenDirs = AllDirs[:]

type _dirInfo struct {
	name  string
	shift int
	guard Bitboard
	axis  Axis
}

var _dirs = [NumDirs]_dirInfo{
	N:  {"n", 8, ^Rank8, FileAxis},
	NE: {"ne", 9, ^Rank8 & ^FileH, DiagonalAxis},
	E:  {"e", 1, ^FileH, RankAxis},
	SE: {"se", -7, ^Rank1 & ^FileH, AntiDiagonalAxis},
	S:  {"s", -8, ^Rank1, FileAxis},
	SW: {"sw", -9, ^Rank1 & ^FileA, DiagonalAxis},
	W:  {"w", -1, ^FileA, RankAxis},
	NW: {"nw", 7, ^Rank8 & ^FileA, AntiDiagonalAxis},
}

func (d Dir) String() string {
	return _dirs[d].name
}

// Guard is the set of squares that can take one step in d without leaving
// the board.
func (d Dir) Guard() Bitboard {
	return _dirs[d].guard
}

func (d Dir) Axis() Axis {
	return _dirs[d].axis
}

// Increasing reports whether square indices grow when walking in d.
func (d Dir) Increasing() bool {
	return _dirs[d].shift > 0
}

func (d Dir) Opposite() Dir {
	return (d + 4) % NumDirs
}

// Step moves every square one step in d; squares on the guarded edge vanish.
func (d Dir) Step(b Bitboard) Bitboard {
	info := &_dirs[d]
	b &= info.guard
	if info.shift > 0 {
		return b << info.shift
	}
	return b >> -info.shift
}

// Nearest picks the square of b closest to an origin whose ray in d
// contains b: the lowest index for increasing directions, the highest
// otherwise.
func (d Dir) Nearest(b Bitboard) Optional[int] {
	if d.Increasing() {
		return b.LowestIndex()
	}
	return b.HighestIndex()
}

// Axis is a line through a square: its file, rank, or one of two diagonals.
type Axis int

const (
	FileAxis Axis = iota
	RankAxis
	// DiagonalAxis runs a1-h8 (south-west to north-east).
	DiagonalAxis
	// AntiDiagonalAxis runs a8-h1 (north-west to south-east).
	AntiDiagonalAxis

	NumAxes
)

var AllAxes = [NumAxes]Axis{FileAxis, RankAxis, DiagonalAxis, AntiDiagonalAxis}

var _axisDirs = [NumAxes][2]Dir{
	FileAxis:         {N, S},
	RankAxis:         {E, W},
	DiagonalAxis:     {NE, SW},
	AntiDiagonalAxis: {NW, SE},
}

// Dirs returns the increasing direction first.
func (a Axis) Dirs() [2]Dir {
	return _axisDirs[a]
}

// Orthogonal axes are the ones rooks slide along.
func (a Axis) Orthogonal() bool {
	return a == FileAxis || a == RankAxis
}

// Toward returns the direction along a that walks from index `from` toward
// index `to`.
func (a Axis) Toward(from int, to int) Dir {
	if from < to {
		return _axisDirs[a][0]
	}
	return _axisDirs[a][1]
}

func (a Axis) String() string {
	return [NumAxes]string{"file", "rank", "diagonal", "anti-diagonal"}[a]
}
