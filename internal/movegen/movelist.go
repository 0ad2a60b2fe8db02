package movegen

import (
	. "github.com/cricklet/movegen/internal/game"
)

// MoveList is the generator's reusable output buffer.
type MoveList struct {
	moves []Move
}

func NewMoveList() MoveList {
	return MoveList{make([]Move, 0, 256)}
}

func (l *MoveList) Clear() {
	l.moves = l.moves[:0]
}

func (l *MoveList) Push(m Move) {
	l.moves = append(l.moves, m)
}

// Moves aliases the buffer. It is overwritten by the next Clear/Push cycle.
func (l *MoveList) Moves() []Move {
	return l.moves
}

func (l *MoveList) Len() int {
	return len(l.moves)
}
