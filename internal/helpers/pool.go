package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	Creates int
	Resets  int
	Hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.Creates, ", resets: ", s.Resets, ", hits: ", s.Hits)
}

const _poolCapacity = 256

// CreatePool returns get, release and stats functions over a bounded free
// list. Released values beyond capacity are dropped.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	availableBuffer := [_poolCapacity]*T{}
	available := 0

	lock := sync.Mutex{}
	stats := PoolStats{}

	var get = func() *T {
		lock.Lock()
		if available > 0 {
			available--
			result := availableBuffer[available]
			availableBuffer[available] = nil
			stats.Hits++
			lock.Unlock()
			return result
		}
		stats.Creates++
		lock.Unlock()

		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		defer lock.Unlock()

		stats.Resets++
		if available < _poolCapacity {
			availableBuffer[available] = t
			available++
		}
	}

	var getStats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return stats
	}

	return get, release, getStats
}
