package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardIndices(t *testing.T) {
	assert.Equal(t, 0, BoardIndexFromString("a1"))
	assert.Equal(t, 7, BoardIndexFromString("h1"))
	assert.Equal(t, 56, BoardIndexFromString("a8"))
	assert.Equal(t, 63, BoardIndexFromString("h8"))
	assert.Equal(t, "e4", StringFromBoardIndex(BoardIndexFromString("e4")))

	_, err := FileRankFromString("i9")
	assert.False(t, IsNil(err))
	_, err = FileRankFromString("e")
	assert.False(t, IsNil(err))
}

func TestPieceLetters(t *testing.T) {
	for _, pieceType := range AllPieceTypes {
		player, parsed, err := PieceFromRune(rune(pieceType.Letter(White)[0]))
		assert.True(t, IsNil(err))
		assert.Equal(t, White, player)
		assert.Equal(t, pieceType, parsed)

		player, parsed, err = PieceFromRune(rune(pieceType.Letter(Black)[0]))
		assert.True(t, IsNil(err))
		assert.Equal(t, Black, player)
		assert.Equal(t, pieceType, parsed)
	}

	_, _, err := PieceFromRune('x')
	assert.False(t, IsNil(err))
	assert.Equal(t, "?", NumPieceTypes.String())
}

func TestPlayers(t *testing.T) {
	assert.Equal(t, Black, White.Other())
	assert.Equal(t, White, Black.Other())
	assert.Equal(t, "w", White.FenString())
	assert.Equal(t, "b", Black.FenString())

	p, err := PlayerFromString("b")
	assert.True(t, IsNil(err))
	assert.Equal(t, Black, p)

	_, err = PlayerFromString("x")
	assert.False(t, IsNil(err))
}
