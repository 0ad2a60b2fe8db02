package helpers

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

type PieceType uint

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

var AllPieceTypes = [NumPieceTypes]PieceType{
	Pawn, Knight, Bishop, Rook, Queen, King,
}

// Promotions are always listed queen first.
var PromotionPieceTypes = [4]PieceType{
	Queen, Rook, Bishop, Knight,
}

func (p PieceType) String() string {
	return [NumPieceTypes + 1]string{
		"p", "n", "b", "r", "q", "k", "?",
	}[MinInt(int(p), int(NumPieceTypes))]
}

func (p PieceType) IsValid() bool {
	return p < NumPieceTypes
}

// Letter is the FEN letter for the piece, upper case for white.
func (p PieceType) Letter(player Player) string {
	s := p.String()
	if player == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

func (p PieceType) Unicode(player Player) string {
	if !p.IsValid() {
		return " "
	}
	return [2][NumPieceTypes]string{
		{"♙", "♘", "♗", "♖", "♕", "♔"},
		{"♟", "♞", "♝", "♜", "♛", "♚"},
	}[player][p]
}

func PieceTypeFromString(s string) (PieceType, Error) {
	switch s {
	case "p":
		return Pawn, NilError
	case "n":
		return Knight, NilError
	case "b":
		return Bishop, NilError
	case "r":
		return Rook, NilError
	case "q":
		return Queen, NilError
	case "k":
		return King, NilError
	}
	return NumPieceTypes, Errorf("invalid piece type %v", s)
}

// PieceFromRune parses a FEN piece letter.
func PieceFromRune(c rune) (Player, PieceType, Error) {
	player := Black
	if c >= 'A' && c <= 'Z' {
		player = White
		c = c - 'A' + 'a'
	}
	pieceType, err := PieceTypeFromString(string(c))
	if !IsNil(err) {
		return player, pieceType, Errorf("invalid piece %q", c)
	}
	return player, pieceType, NilError
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

// BoardIndexFromString panics on malformed input; it is meant for constant
// tables and tests.
func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

func (p Player) FenString() string {
	if p == White {
		return "w"
	}
	return "b"
}
