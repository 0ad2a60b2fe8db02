package perft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/cricklet/movegen/internal/helpers"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Divide is a perft count split by root move, in UCI notation.
type Divide struct {
	Moves map[string]uint64
	Total uint64
}

func NewDivide() Divide {
	return Divide{Moves: make(map[string]uint64)}
}

func (d Divide) SortedMoves() []string {
	moves := maps.Keys(d.Moves)
	slices.Sort(moves)
	return moves
}

// Lines matches stockfish's `go perft` output.
func (d Divide) Lines() []string {
	lines := MapSlice(d.SortedMoves(), func(move string) string {
		return fmt.Sprintf("%v: %v", move, d.Moves[move])
	})
	return append(lines, "", fmt.Sprintf("Nodes searched: %v", d.Total))
}

func (d Divide) String() string {
	return strings.Join(d.Lines(), "\n")
}

var _divideLine = regexp.MustCompile(`^([a-h][1-8][a-h][1-8][qrbn]?): (\d+)$`)
var _nodesLine = regexp.MustCompile(`^Nodes searched: (\d+)$`)

// ParseDivide reads `go perft` output. Lines that are neither move counts nor
// the node total are skipped, so engine banners can be passed through.
func ParseDivide(s string) (Divide, Error) {
	result := NewDivide()
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if match := _divideLine.FindStringSubmatch(line); match != nil {
			count, err := strconv.ParseUint(match[2], 10, 64)
			if !IsNil(err) {
				return result, Errorf("couldn't parse count from move: %v, %v", line, err)
			}
			result.Moves[match[1]] = count
		} else if match := _nodesLine.FindStringSubmatch(line); match != nil {
			total, err := strconv.ParseUint(match[1], 10, 64)
			if !IsNil(err) {
				return result, Errorf("couldn't parse searched nodes: %v, %v", line, err)
			}
			result.Total = total
			return result, NilError
		}
	}
	return result, Errorf("could not find node total in: %v", s)
}

type Comparison int

const (
	MoveIsIllegal Comparison = iota
	MoveIsMissing
	CountTooHigh
	CountTooLow
)

func (c Comparison) String() string {
	switch c {
	case MoveIsIllegal:
		return "move-is-illegal"
	case MoveIsMissing:
		return "missing-specific-move"
	case CountTooHigh:
		return "reference-found-fewer"
	case CountTooLow:
		return "reference-found-more"
	}
	panic("unknown comparison")
}

type Issue struct {
	Comparison Comparison
	Move       string
	Expected   uint64
	Actual     uint64
}

func (i Issue) String() string {
	return fmt.Sprintf("%v %v (expected %v, actual %v)", i.Move, i.Comparison, i.Expected, i.Actual)
}

// Compare lists every root move where actual disagrees with expected. Moves
// missing from actual come last.
func Compare(actual Divide, expected Divide) []Issue {
	result := []Issue{}
	for _, move := range actual.SortedMoves() {
		actualCount := actual.Moves[move]
		expectedCount, ok := expected.Moves[move]
		if !ok {
			result = append(result, Issue{MoveIsIllegal, move, 0, actualCount})
		} else if actualCount > expectedCount {
			result = append(result, Issue{CountTooHigh, move, expectedCount, actualCount})
		} else if actualCount < expectedCount {
			result = append(result, Issue{CountTooLow, move, expectedCount, actualCount})
		}
	}
	for _, move := range expected.SortedMoves() {
		if _, ok := actual.Moves[move]; !ok {
			result = append(result, Issue{MoveIsMissing, move, expected.Moves[move], 0})
		}
	}
	return result
}
