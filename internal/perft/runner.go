package perft

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
	"github.com/cricklet/movegen/internal/zobrist"
	"github.com/dustin/go-humanize"
)

// Store persists node counts between runs.
type Store interface {
	Get(hash uint64, depth int) (Optional[uint64], Error)
	Put(hash uint64, depth int, nodes uint64) Error
}

// Runner splits a perft across root moves. Each worker takes its own
// Generator from a pool.
type Runner struct {
	workers  int
	progress ProgressBarFactory
	cache    *zobrist.TranspositionTable
	store    Store
	logger   Logger

	getGenerator     func() **movegen.Generator
	releaseGenerator func(**movegen.Generator)
	generatorStats   func() PoolStats
}

type Option func(*Runner)

func WithWorkers(workers int) Option {
	return func(r *Runner) {
		r.workers = MaxInt(1, workers)
	}
}

func WithProgress(progress ProgressBarFactory) Option {
	return func(r *Runner) {
		r.progress = progress
	}
}

// WithCache shares node counts between subtrees that reach the same position.
func WithCache(cache *zobrist.TranspositionTable) Option {
	return func(r *Runner) {
		r.cache = cache
	}
}

// WithStore looks up and records the count below every root move.
func WithStore(store Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

func WithLogger(logger Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers:  runtime.NumCPU(),
		progress: NoProgressBar,
		logger:   SilentLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.getGenerator, r.releaseGenerator, r.generatorStats = CreatePool(
		func() *movegen.Generator { return movegen.New() },
		func(**movegen.Generator) {},
	)
	return r
}

func (r *Runner) GeneratorStats() PoolStats {
	return r.generatorStats()
}

func (r *Runner) count(g *movegen.Generator, pos *Position, hash uint64, depth int) uint64 {
	if r.cache == nil || depth < 2 {
		return Count(g, pos, depth)
	}

	if cached := r.cache.Get(hash, depth); cached.HasValue() {
		return cached.Value()
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	*moves = g.AppendMoves(*moves, pos)

	result := uint64(0)
	for _, move := range *moves {
		pos.Make(move)
		result += r.count(g, pos, zobrist.UpdateHash(hash, move, pos), depth-1)
		pos.Unmake(move)
	}

	r.cache.Put(hash, depth, result)
	return result
}

type _rootResult struct {
	move  string
	nodes uint64
	err   Error
}

func (r *Runner) countRootMove(pos Position, move Move, depth int) _rootResult {
	result := _rootResult{move: move.String()}

	hash := zobrist.Hash(&pos)
	pos.Make(move)
	hash = zobrist.UpdateHash(hash, move, &pos)

	if r.store != nil {
		stored, err := r.store.Get(hash, depth-1)
		if !IsNil(err) {
			result.err = err
		} else if stored.HasValue() {
			result.nodes = stored.Value()
			return result
		}
	}

	generator := r.getGenerator()
	defer r.releaseGenerator(generator)

	result.nodes = r.count(*generator, &pos, hash, depth-1)

	if r.store != nil {
		result.err = Join(result.err, r.store.Put(hash, depth-1, result.nodes))
	}
	return result
}

// Divide counts the leaves below each root move of pos.
func (r *Runner) Divide(pos Position, depth int) (Divide, Error) {
	result := NewDivide()
	if depth < 1 {
		result.Total = 1
		return result, NilError
	}

	rootMoves := movegen.New().AppendMoves(nil, &pos)

	start := time.Now()
	progress := r.progress(len(rootMoves), fmt.Sprint("depth ", depth))
	defer progress.Close()

	jobs := make(chan Move)
	results := make(chan _rootResult)

	wg := sync.WaitGroup{}
	for i := 0; i < MinInt(r.workers, MaxInt(1, len(rootMoves))); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for move := range jobs {
				results <- r.countRootMove(pos, move, depth)
			}
		}()
	}

	go func() {
		for _, move := range rootMoves {
			jobs <- move
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	errs := []Error{}
	for rootResult := range results {
		result.Moves[rootResult.move] = rootResult.nodes
		result.Total += rootResult.nodes
		if !IsNil(rootResult.err) {
			errs = append(errs, rootResult.err)
		}
		progress.Add(1)
	}

	elapsed := time.Since(start)
	r.logger.Printf("perft %v depth %v: %v nodes in %v (%v nps)",
		fen.FenStringForPosition(&pos), depth, humanize.Comma(int64(result.Total)), elapsed.Round(time.Millisecond), humanize.Comma(nodesPerSecond(result.Total, elapsed)))
	if r.cache != nil {
		r.logger.Printf("cache %v", r.cache.Stats())
	}

	return result, Join(errs...)
}

func (r *Runner) Count(pos Position, depth int) (uint64, Error) {
	divide, err := r.Divide(pos, depth)
	return divide.Total, err
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	return int64(float64(nodes) / elapsed.Seconds())
}
