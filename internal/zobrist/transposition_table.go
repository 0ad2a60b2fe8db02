package zobrist

import (
	"fmt"
	"math"
	"sync"

	. "github.com/cricklet/movegen/internal/helpers"
)

type CachedCount struct {
	Depth       int
	Nodes       uint64
	ZobristHash uint64
}

// TranspositionTable caches perft node counts by position hash. Entries only
// match at exactly the same depth. It is safe for concurrent use.
type TranspositionTable struct {
	Size        int
	Cache       []CachedCount
	Hits        int
	Collisions  int
	DepthTooLow int
	Misses      int

	lock sync.Mutex
}

var DefaultTranspositionTableSize = int(math.Pow(2, 20))

func NewTranspositionTable(size int) *TranspositionTable {
	return &TranspositionTable{
		Size:  size,
		Cache: make([]CachedCount, size),
	}
}

func (t *TranspositionTable) Stats() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return fmt.Sprintf("hits: %v, collisions: %v, depth mismatch: %v, misses: %v", t.Hits, t.Collisions, t.DepthTooLow, t.Misses)
}

func (t *TranspositionTable) Get(hash uint64, depth int) Optional[uint64] {
	t.lock.Lock()
	defer t.lock.Unlock()

	i := hash % uint64(t.Size)
	v := t.Cache[i]
	if v.ZobristHash == hash && v.Depth != 0 {
		if v.Depth == depth {
			t.Hits++
			return Some(v.Nodes)
		} else {
			t.DepthTooLow++
		}
	} else if v.Depth != 0 {
		t.Collisions++
	} else {
		t.Misses++
	}
	return Empty[uint64]()
}

func (t *TranspositionTable) Put(hash uint64, depth int, nodes uint64) {
	t.lock.Lock()
	defer t.lock.Unlock()

	i := hash % uint64(t.Size)
	t.Cache[i] = CachedCount{
		Depth:       depth,
		Nodes:       nodes,
		ZobristHash: hash,
	}
}
