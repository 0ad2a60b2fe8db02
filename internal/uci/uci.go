package uci

import (
	"strconv"
	"strings"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
	"github.com/cricklet/movegen/internal/perft"
)

// Handler answers the subset of UCI that makes sense for a move generator:
// position setup, perft, and a few stockfish-style debugging commands.
type Handler struct {
	generator *movegen.Generator
	runner    *perft.Runner
	logger    Logger

	position Position
	done     bool
}

type HandlerOption func(*Handler)

func WithLogger(logger Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithGenerator(generator *movegen.Generator) HandlerOption {
	return func(h *Handler) {
		h.generator = generator
	}
}

func WithRunner(runner *perft.Runner) HandlerOption {
	return func(h *Handler) {
		h.runner = runner
	}
}

func NewHandler(options ...HandlerOption) *Handler {
	h := &Handler{
		logger:   SilentLogger,
		position: fen.MustPositionFromFenString(fen.StartFen),
	}
	for _, o := range options {
		o(h)
	}
	if h.generator == nil {
		h.generator = movegen.New()
	}
	if h.runner == nil {
		h.runner = perft.NewRunner(perft.WithLogger(h.logger))
	}
	return h
}

// Done is set once "quit" has been handled.
func (h *Handler) Done() bool {
	return h.done
}

func (h *Handler) Position() Position {
	return h.position
}

func parseFen(input string) (string, Error) {
	s := strings.TrimSpace(strings.TrimPrefix(input, "position"))

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return fen.StartFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", input)
}

func parseMoves(input string) []string {
	result := []string{}
	if parts := strings.SplitN(input, " moves", 2); len(parts) == 2 {
		result = append(result, strings.Fields(parts[1])...)
	}
	return result
}

func (h *Handler) setupPosition(input string) Error {
	fenString, err := parseFen(input)
	if !IsNil(err) {
		return err
	}

	position, err := fen.PositionFromFenString(fenString)
	if !IsNil(err) {
		return err
	}

	for _, uci := range parseMoves(input) {
		move := h.generator.FindMove(&position, uci)
		if move.IsEmpty() {
			return Errorf("illegal move %v in %v", uci, fen.FenStringForPosition(&position))
		}
		position.Make(move.Value())
	}

	h.position = position
	return NilError
}

func (h *Handler) perft(input string) ([]string, Error) {
	fields := strings.Fields(input)
	if len(fields) != 3 {
		return nil, Errorf("expected 'go perft <depth>', got '%v'", input)
	}
	depth, err := WrapReturn(strconv.Atoi(fields[2]))
	if !IsNil(err) {
		return nil, err
	}
	if depth < 1 {
		return nil, Errorf("perft depth must be positive, got %v", depth)
	}

	divide, err := h.runner.Divide(h.position, depth)
	if !IsNil(err) {
		return nil, err
	}
	return divide.Lines(), NilError
}

func (h *Handler) display() []string {
	result := strings.Split(h.position.Unicode(), "\n")
	result = append(result, "", "Fen: "+fen.FenStringForPosition(&h.position))

	checkers := movegen.Attackers(h.position.King(h.position.Player), &h.position)
	result = append(result, "Checkers: "+strings.Join(MapSlice(checkers.Indices(), StringFromBoardIndex), " "))
	return result
}

func (h *Handler) legalMoves() []string {
	moves := h.generator.GenerateMoves(&h.position)
	return []string{strings.Join(MapSlice(moves, func(m Move) string { return m.String() }), " ")}
}

func (h *Handler) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	h.logger.Println("uci <", input)

	result := []string{}
	var err Error

	switch {
	case input == "":
	case input == "uci":
		result = append(result, "id name movegen 1")
		result = append(result, "id author Kenrick Rilee")
		result = append(result, "uciok")
	case input == "isready":
		result = append(result, "readyok")
	case input == "ucinewgame":
		h.position = fen.MustPositionFromFenString(fen.StartFen)
	case strings.HasPrefix(input, "position"):
		err = h.setupPosition(input)
	case strings.HasPrefix(input, "go perft"):
		result, err = h.perft(input)
	case strings.HasPrefix(input, "go"):
		err = Errorf("only 'go perft <depth>' is supported")
	case input == "moves":
		result = h.legalMoves()
	case input == "d":
		result = h.display()
	case input == "quit":
		h.done = true
	default:
		err = Errorf("unknown command '%v'", input)
	}

	for _, line := range result {
		h.logger.Println("uci >", line)
	}
	return result, err
}
