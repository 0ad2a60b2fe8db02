package bitboards

import (
	"testing"

	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestBitboardStrings(t *testing.T) {
	b := BitboardWithAllLocationsSet([]string{"a1", "h8", "e4"})
	assert.Equal(t, b, BitboardFromStrings([8]string{
		"00000001",
		"00000000",
		"00000000",
		"00000000",
		"00001000",
		"00000000",
		"00000000",
		"10000000",
	}))
	assert.Equal(t, "00000001\n00000000\n00000000\n00000000\n00001000\n00000000\n00000000\n10000000", b.String())
	assert.Equal(t, 3, b.OnesCount())
	assert.Equal(t, []int{0, 28, 63}, b.Indices())
}

func TestBitScans(t *testing.T) {
	assert.True(t, AllZeros.LowestIndex().IsEmpty())
	assert.True(t, AllZeros.HighestIndex().IsEmpty())

	b := BitboardWithAllLocationsSet([]string{"c2", "f7"})
	assert.Equal(t, Some(BoardIndexFromString("c2")), b.LowestIndex())
	assert.Equal(t, Some(BoardIndexFromString("f7")), b.HighestIndex())

	assert.True(t, SquareFromString("d4").IsSingle())
	assert.False(t, b.IsSingle())
	assert.False(t, AllZeros.IsSingle())

	assert.Equal(t, "d4", SquareFromString("d4").SquareString())
	assert.Equal(t, "-", b.SquareString())

	next, rest := b.NextIndexOfOne()
	assert.Equal(t, Some(BoardIndexFromString("c2")), next)
	assert.Equal(t, SquareFromString("f7"), rest)

	next, rest = rest.NextIndexOfOne()
	assert.Equal(t, Some(BoardIndexFromString("f7")), next)
	assert.Equal(t, AllZeros, rest)

	next, rest = rest.NextIndexOfOne()
	assert.True(t, next.IsEmpty())
	assert.Equal(t, AllZeros, rest)
}

func TestStepsStopAtEdges(t *testing.T) {
	assert.Equal(t, AllZeros, N.Step(SquareFromString("e8")))
	assert.Equal(t, AllZeros, E.Step(SquareFromString("h3")))
	assert.Equal(t, AllZeros, W.Step(SquareFromString("a3")))
	assert.Equal(t, AllZeros, SW.Step(SquareFromString("a5")))
	assert.Equal(t, AllZeros, SE.Step(SquareFromString("d1")))
	assert.Equal(t, SquareFromString("b4"), NW.Step(SquareFromString("c3")))
	assert.Equal(t, SquareFromString("d2"), SE.Step(SquareFromString("c3")))

	for _, d := range AllDirs {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.Equal(t, d.Axis(), d.Opposite().Axis())
		assert.NotEqual(t, d.Increasing(), d.Opposite().Increasing())
	}
}

func TestNearestFollowsScanConvention(t *testing.T) {
	tables := Tables()
	e4 := BoardIndexFromString("e4")
	blockers := BitboardWithAllLocationsSet([]string{"e6", "e8", "e2", "e1", "c2", "g6", "h7"})

	nearest := func(d Dir) string {
		found := d.Nearest(tables.Rays[d][e4] & blockers)
		if found.IsEmpty() {
			return "-"
		}
		return StringFromBoardIndex(found.Value())
	}

	assert.Equal(t, "e6", nearest(N))
	assert.Equal(t, "e2", nearest(S))
	assert.Equal(t, "g6", nearest(NE))
	assert.Equal(t, "c2", nearest(SW))
	assert.Equal(t, "-", nearest(E))
	assert.Equal(t, "-", nearest(NW))
}
