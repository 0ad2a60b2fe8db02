package helpers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolReuses(t *testing.T) {
	get, release, stats := CreatePool(
		func() []int { return make([]int, 0, 8) },
		func(x *[]int) { *x = (*x)[:0] },
	)

	a := get()
	*a = append(*a, 1, 2, 3)
	release(a)

	b := get()
	assert.Same(t, a, b)
	assert.Empty(t, *b)
	assert.Equal(t, PoolStats{Creates: 1, Resets: 1, Hits: 1}, stats())
}

func TestPoolConcurrent(t *testing.T) {
	get, release, stats := CreatePool(
		func() int { return 0 },
		func(x *int) { *x = 0 },
	)

	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				x := get()
				*x++
				release(x)
			}
		}()
	}
	wg.Wait()

	s := stats()
	assert.Equal(t, 1600, s.Resets)
	assert.Equal(t, 1600, s.Creates+s.Hits)
}
