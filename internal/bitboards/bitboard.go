package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/movegen/internal/helpers"
)

// Bitboard has one bit per square; bit 0 is a1, bit 7 is h1, bit 63 is h8.
type Bitboard uint64

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = Rank1 << (8 * 1)
	Rank7 Bitboard = Rank1 << (8 * 6)
	Rank8 Bitboard = Rank1 << (8 * 7)
)

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func SquareFromString(s string) Bitboard {
	return SingleBitboard(BoardIndexFromString(s))
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, BoardIndexFromString),
		AllZeros,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

// BitboardFromStrings reads eight rows, rank 8 first, '1' for set squares.
func BitboardFromStrings(rows [8]string) Bitboard {
	b := AllZeros
	for inverseRank, line := range rows {
		for file, c := range line {
			if c == '1' {
				index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)})
				b |= SingleBitboard(index)
			}
		}
	}
	return b
}

func (b Bitboard) OnesCount() int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) IsSingle() bool {
	return b != 0 && b&(b-1) == 0
}

// LowestIndex is empty for an empty board.
func (b Bitboard) LowestIndex() Optional[int] {
	if b == 0 {
		return Empty[int]()
	}
	return Some(bits.TrailingZeros64(uint64(b)))
}

// HighestIndex is empty for an empty board.
func (b Bitboard) HighestIndex() Optional[int] {
	if b == 0 {
		return Empty[int]()
	}
	return Some(63 - bits.LeadingZeros64(uint64(b)))
}

// NextIndexOfOne pops the lowest set bit. It is empty once b is empty:
//
//	for next, rest := b.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
func (b Bitboard) NextIndexOfOne() (Optional[int], Bitboard) {
	return b.LowestIndex(), b & (b - 1)
}

func (b Bitboard) EachIndexOfOne(callback func(int)) {
	for next, rest := b.NextIndexOfOne(); next.HasValue(); next, rest = rest.NextIndexOfOne() {
		callback(next.Value())
	}
}

// Indices lists set squares from lowest to highest.
func (b Bitboard) Indices() []int {
	result := make([]int, 0, b.OnesCount())
	b.EachIndexOfOne(func(index int) {
		result = append(result, index)
	})
	return result
}

// SquareString names a single-square board, "-" otherwise.
func (b Bitboard) SquareString() string {
	if !b.IsSingle() {
		return "-"
	}
	return StringFromBoardIndex(b.LowestIndex().Value())
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		row := uint8(b >> (8 * rank))

		// mirror the bits so we're printing in a natural order
		// (10000000 for the a-file instead of 00000001)
		ranks[7-rank] = fmt.Sprintf("%08b", bits.Reverse8(row))
	}

	return strings.Join(ranks[0:], "\n")
}
