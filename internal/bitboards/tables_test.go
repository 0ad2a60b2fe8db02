package bitboards

import (
	"testing"

	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestLineMasks(t *testing.T) {
	tables := NewAttackTables()
	c3 := BoardIndexFromString("c3")

	assert.Equal(t, FileA<<2, tables.File[c3])
	assert.Equal(t, Rank1<<16, tables.Rank[c3])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{
		"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8",
	}), tables.Diagonal[c3])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{
		"a5", "b4", "c3", "d2", "e1",
	}), tables.AntiDiagonal[c3])

	for i := 0; i < 64; i++ {
		for _, axis := range AllAxes {
			line := tables.Line(axis, i)
			assert.NotZero(t, line&SingleBitboard(i))
			dirs := axis.Dirs()
			assert.Equal(t, line, SingleBitboard(i)|tables.Rays[dirs[0]][i]|tables.Rays[dirs[1]][i])
		}
	}
}

func TestKnightAndKingAttacks(t *testing.T) {
	tables := NewAttackTables()

	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b3", "c2"}), tables.Knight[BoardIndexFromString("a1")])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"f7", "g6"}), tables.Knight[BoardIndexFromString("h8")])
	assert.Equal(t, 8, tables.Knight[BoardIndexFromString("d4")].OnesCount())
	assert.Equal(t, 4, tables.Knight[BoardIndexFromString("h4")].OnesCount())

	assert.Equal(t, BitboardWithAllLocationsSet([]string{"a2", "b1", "b2"}), tables.King[BoardIndexFromString("a1")])
	assert.Equal(t, 8, tables.King[BoardIndexFromString("e4")].OnesCount())
	assert.Equal(t, 5, tables.King[BoardIndexFromString("h4")].OnesCount())

	// no wraparound from the h-file onto the a-file
	assert.Zero(t, tables.King[BoardIndexFromString("h4")]&FileA)
	assert.Zero(t, tables.Knight[BoardIndexFromString("g4")]&(FileA|FileB))
}

func TestRays(t *testing.T) {
	tables := NewAttackTables()
	e4 := BoardIndexFromString("e4")

	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e5", "e6", "e7", "e8"}), tables.Rays[N][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"f4", "g4", "h4"}), tables.Rays[E][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d3", "c2", "b1"}), tables.Rays[SW][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"f3", "g2", "h1"}), tables.Rays[SE][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d5", "c6", "b7", "a8"}), tables.Rays[NW][e4])

	assert.Zero(t, tables.Rays[E][BoardIndexFromString("h5")])
	assert.Zero(t, tables.Rays[NE][BoardIndexFromString("c8")])

	for _, d := range AllDirs {
		for i := 0; i < 64; i++ {
			// rays never contain their origin and are symmetric with their opposite
			assert.Zero(t, tables.Rays[d][i]&SingleBitboard(i))
			tables.Rays[d][i].EachIndexOfOne(func(j int) {
				assert.NotZero(t, tables.Rays[d.Opposite()][j]&SingleBitboard(i))
			})
		}
	}
}

func TestSharedTablesAreBuiltOnce(t *testing.T) {
	assert.Same(t, Tables(), Tables())
	assert.Equal(t, *NewAttackTables(), *Tables())
}
