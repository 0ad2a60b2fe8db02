package fen

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/movegen/internal/bitboards"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
)

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenStringForCastling = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}

func fenStringForCastlingAllowed(castlingRights [2][2]bool) string {
	s := ""
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if castlingRights[i][j] {
				s += fenStringForCastling[i][j]
			}
		}
	}
	if len(s) == 0 {
		s += "-"
	}
	return s
}

func fenStringForBoard(pos *Position) string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			square := SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)}))
			owner := pos.OwnerOf(square)
			if owner.IsEmpty() {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += pos.PieceTypeAt(owner.Value(), square).Value().Letter(owner.Value())
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}
	return s
}

func FenStringForPosition(pos *Position) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		fenStringForBoard(pos),
		pos.Player.FenString(),
		fenStringForCastlingAllowed(pos.CastlingRights),
		pos.EnPassantTarget.SquareString(),
		pos.HalfMoveClock,
		pos.FullMoveNumber)
}

// validateEnPassantTarget requires the target to sit directly behind an enemy
// pawn that just made a double push: right rank, target and origin empty.
func validateEnPassantTarget(pos *Position, location FileRank) Error {
	target := pos.EnPassantTarget
	var expectedRank Rank
	var origin, pawn Bitboard
	if pos.Player == White {
		expectedRank, origin, pawn = Rank(5), target<<8, target>>8
	} else {
		expectedRank, origin, pawn = Rank(2), target>>8, target<<8
	}

	if location.Rank != expectedRank {
		return Errorf("en-passant target %v not on rank %v", location, expectedRank)
	}
	if pos.Occupied()&(target|origin) != 0 {
		return Errorf("en-passant target %v or its origin is occupied", location)
	}
	if pos.PiecesOf(pos.Player.Other(), Pawn)&pawn == 0 {
		return Errorf("no %v pawn in front of en-passant target %v", pos.Player.Other(), location)
	}
	return NilError
}

// PositionFromFenString accepts 4 or 6 fields; the clocks default to "0 1".
func PositionFromFenString(s string) (Position, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 {
		return Position{}, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	pos := Position{}

	boardStr, playerString, castlingRightsString, enPassantTargetString := ss[0], ss[1], ss[2], ss[3]

	rankIndex := 7
	fileIndex := 0
	for _, c := range boardStr {
		if c == '/' {
			if fileIndex != 8 {
				return Position{}, Errorf("not enough squares in rank, '%v'", s)
			}
			rankIndex--
			fileIndex = 0
			if rankIndex < 0 {
				return Position{}, Errorf("too many ranks in '%v'", s)
			}
		} else if c >= '1' && c <= '8' {
			fileIndex += int(c - '0')
		} else if player, pieceType, err := PieceFromRune(c); IsNil(err) {
			if fileIndex >= 8 {
				return Position{}, Errorf("too many squares in rank, '%v'", s)
			}
			pos.SetPiece(player, pieceType, SingleBitboard(IndexFromFileRank(FileRank{File: File(fileIndex), Rank: Rank(rankIndex)})))
			fileIndex++
		} else {
			return Position{}, Errorf("unknown character '%c' in '%v'", c, s)
		}
		if fileIndex > 8 {
			return Position{}, Errorf("too many squares in rank, '%v'", s)
		}
	}
	if rankIndex != 0 || fileIndex != 8 {
		return Position{}, Errorf("incomplete board in '%v'", s)
	}

	for _, player := range [2]Player{White, Black} {
		if kings := pos.King(player).OnesCount(); kings != 1 {
			return Position{}, Errorf("%v has %v kings in '%v'", player, kings, s)
		}
	}

	if player, err := PlayerFromString(playerString); IsNil(err) {
		pos.Player = player
	} else {
		return Position{}, Errorf("invalid player '%v' in '%v'", playerString, s)
	}

	for _, c := range castlingRightsString {
		switch c {
		case '-':
			continue
		case 'K':
			pos.CastlingRights[White][Kingside] = true
		case 'Q':
			pos.CastlingRights[White][Queenside] = true
		case 'k':
			pos.CastlingRights[Black][Kingside] = true
		case 'q':
			pos.CastlingRights[Black][Queenside] = true
		default:
			return Position{}, Errorf("invalid castling rights '%v' in '%v'", castlingRightsString, s)
		}
	}

	if enPassantTargetString != "-" {
		location, err := FileRankFromString(enPassantTargetString)
		if !IsNil(err) {
			return Position{}, Errorf("invalid en-passant target '%v' in '%v'", enPassantTargetString, s)
		}
		pos.EnPassantTarget = SingleBitboard(IndexFromFileRank(location))

		err = validateEnPassantTarget(&pos, location)
		if !IsNil(err) {
			return Position{}, Errorf("%v in '%v'", err, s)
		}
	}

	halfMoveClockString, fullMoveNumberString := "0", "1"
	if len(ss) == 6 {
		halfMoveClockString, fullMoveNumberString = ss[4], ss[5]
	}

	if v, err := strconv.Atoi(halfMoveClockString); IsNil(err) {
		pos.HalfMoveClock = v
	} else {
		return Position{}, Errorf("invalid half move clock '%v' in '%v'", halfMoveClockString, s)
	}

	if v, err := strconv.Atoi(fullMoveNumberString); IsNil(err) {
		pos.FullMoveNumber = v
	} else {
		return Position{}, Errorf("invalid full move number '%v' in '%v'", fullMoveNumberString, s)
	}

	return pos, NilError
}

// MustPositionFromFenString is for constant positions and tests.
func MustPositionFromFenString(s string) Position {
	pos, err := PositionFromFenString(s)
	if !IsNil(err) {
		panic(err)
	}
	return pos
}
