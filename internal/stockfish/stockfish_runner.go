package stockfish

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cricklet/movegen/internal/binary"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/perft"
)

// StockfishRunner asks a stockfish binary for reference perft divides.
type StockfishRunner struct {
	logger  Logger
	path    string
	timeout time.Duration

	binary *binary.BinaryRunner
}

type StockfishRunnerOption func(*StockfishRunner)

func WithBinary(path string) StockfishRunnerOption {
	return func(r *StockfishRunner) {
		r.path = path
	}
}

func WithLogger(logger Logger) StockfishRunnerOption {
	return func(r *StockfishRunner) {
		r.logger = logger
	}
}

// WithTimeout bounds each command, perft included.
func WithTimeout(timeout time.Duration) StockfishRunnerOption {
	return func(r *StockfishRunner) {
		r.timeout = timeout
	}
}

func NewStockfishRunner(options ...StockfishRunnerOption) *StockfishRunner {
	r := &StockfishRunner{
		logger:  SilentLogger,
		path:    "stockfish",
		timeout: 5 * time.Minute,
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Available reports whether the binary can be found.
func (r *StockfishRunner) Available() bool {
	_, err := exec.LookPath(r.path)
	return IsNil(err)
}

func (r *StockfishRunner) setup() Error {
	if r.binary != nil {
		return NilError
	}

	var err Error
	r.binary, err = binary.SetupBinaryRunner(r.path, []string{}, binary.WithLogger(r.logger))
	if !IsNil(err) {
		r.binary = nil
		return err
	}

	output, err := r.binary.Run("uci", "uciok", 10*time.Second)
	if !IsNil(err) {
		return err
	}
	if !Contains(output, "uciok") {
		return Errorf("needs uciok")
	}

	output, err = r.binary.Run("isready", "readyok", 10*time.Second)
	if !IsNil(err) {
		return err
	}
	if !Contains(output, "readyok") {
		return Errorf("needs readyok")
	}

	return NilError
}

// Perft runs `go perft depth` from fen after the given moves.
func (r *StockfishRunner) Perft(fen string, moves []string, depth int) (perft.Divide, Error) {
	if depth < 1 {
		return perft.Divide{}, Errorf("stockfish can't perft depth %v", depth)
	}

	err := r.setup()
	if !IsNil(err) {
		return perft.Divide{}, err
	}

	position := "position fen " + fen
	if len(moves) > 0 {
		position += " moves " + strings.Join(moves, " ")
	}
	err = r.binary.RunAsync(position)
	if !IsNil(err) {
		return perft.Divide{}, err
	}

	output, err := r.binary.Run(fmt.Sprint("go perft ", depth), "Nodes searched", r.timeout)
	if !IsNil(err) {
		return perft.Divide{}, err
	}

	return perft.ParseDivide(strings.Join(output, "\n"))
}

func (r *StockfishRunner) Close() {
	if r.binary != nil {
		r.binary.Close()
		r.binary = nil
	}
}
