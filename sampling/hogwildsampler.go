package sampling

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/hogwild/ising"
)

// A HogwildSampler is a Sampler that resamples vertex partitions with
// multiple unsynchronized goroutines. Within a sweep, workers read neighbor
// spins while other workers may be writing them. The resulting races are the
// tolerated noise of the asynchronous Gibbs scheme, not a bug to fix.
type HogwildSampler struct {
	HookableBase

	model *ising.Model

	numWorkers int
	ranges     [][2]int
	rngs       []*rand.Rand

	sweepLock sync.RWMutex
	sweep     uint64
	numSweeps uint64

	sweepFlips uint64

	pauseLock     sync.Mutex
	singleRunLock sync.Mutex
	waitGroup     sync.WaitGroup

	runEndHandlers []RunEndHandler
}

// NewHogwildSampler creates a HogwildSampler with one goroutine per worker.
// A non-positive numWorkers selects runtime.GOMAXPROCS(0). Each worker owns a
// contiguous vertex range and an independent random source derived from the
// seed.
func NewHogwildSampler(
	model *ising.Model,
	numSweeps uint64,
	seed int64,
	numWorkers int,
) *HogwildSampler {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	if numWorkers > model.NumVertices() {
		numWorkers = model.NumVertices()
	}

	s := &HogwildSampler{
		model:      model,
		numSweeps:  numSweeps,
		numWorkers: numWorkers,
	}

	s.partitionVertices()

	s.rngs = make([]*rand.Rand, numWorkers)
	for i := range s.rngs {
		s.rngs[i] = rand.New(rand.NewSource(seed + int64(i)))
	}

	return s
}

// partitionVertices splits the vertex set into contiguous, near-equal ranges,
// one per worker.
func (s *HogwildSampler) partitionVertices() {
	numVertices := s.model.NumVertices()
	chunk := numVertices / s.numWorkers
	remainder := numVertices % s.numWorkers

	s.ranges = make([][2]int, s.numWorkers)
	start := 0
	for i := 0; i < s.numWorkers; i++ {
		end := start + chunk
		if i < remainder {
			end++
		}

		s.ranges[i] = [2]int{start, end}
		start = end
	}
}

// NumWorkers returns the number of worker goroutines used per sweep.
func (s *HogwildSampler) NumWorkers() int {
	return s.numWorkers
}

func (s *HogwildSampler) readSweep() uint64 {
	s.sweepLock.RLock()
	sweep := s.sweep
	s.sweepLock.RUnlock()
	return sweep
}

func (s *HogwildSampler) writeSweep(sweep uint64) {
	s.sweepLock.Lock()
	s.sweep = sweep
	s.sweepLock.Unlock()
}

// Run performs all the remaining sweeps of the sampling run.
func (s *HogwildSampler) Run() error {
	s.singleRunLock.Lock()
	defer s.singleRunLock.Unlock()

	for s.readSweep() < s.numSweeps {
		s.pauseLock.Lock()

		sweep := s.readSweep()

		hookCtx := HookCtx{
			Domain: s,
			Pos:    HookPosBeforeSweep,
			Sweep:  sweep,
		}
		s.InvokeHook(hookCtx)

		s.runSweep()
		s.writeSweep(sweep + 1)

		hookCtx.Pos = HookPosAfterSweep
		hookCtx.Sweep = sweep + 1
		hookCtx.Item = SweepResult{
			Flips: atomic.LoadUint64(&s.sweepFlips),
		}
		s.InvokeHook(hookCtx)

		s.pauseLock.Unlock()
	}

	return nil
}

// runSweep launches one goroutine per worker and waits for all of them. The
// barrier is between sweeps only; inside a sweep the workers never
// coordinate.
func (s *HogwildSampler) runSweep() {
	atomic.StoreUint64(&s.sweepFlips, 0)

	for i := 0; i < s.numWorkers; i++ {
		s.waitGroup.Add(1)
		go s.workerRun(i)
	}

	s.waitGroup.Wait()
}

func (s *HogwildSampler) workerRun(workerID int) {
	defer s.waitGroup.Done()

	rng := s.rngs[workerID]
	vertexRange := s.ranges[workerID]

	flips := uint64(0)
	for v := vertexRange[0]; v < vertexRange[1]; v++ {
		if resampleVertex(s.model, rng, v) {
			flips++
		}
	}

	atomic.AddUint64(&s.sweepFlips, flips)
}

// Pause will prevent the sampler from starting the next sweep. Workers of the
// current sweep still run to completion.
func (s *HogwildSampler) Pause() {
	s.pauseLock.Lock()
}

// Continue allows the sampler to continue to make progress.
func (s *HogwildSampler) Continue() {
	s.pauseLock.Unlock()
}

// CurrentSweep returns the number of completed sweeps.
func (s *HogwildSampler) CurrentSweep() uint64 {
	return s.readSweep()
}

// NumSweeps returns the total number of sweeps the run performs.
func (s *HogwildSampler) NumSweeps() uint64 {
	return s.numSweeps
}

// RegisterRunEndHandler registers a handler to be called after the run ends.
func (s *HogwildSampler) RegisterRunEndHandler(handler RunEndHandler) {
	s.runEndHandlers = append(s.runEndHandlers, handler)
}

// Finished should be called after the run completes. It calls all the
// registered RunEndHandlers.
func (s *HogwildSampler) Finished() {
	sweep := s.readSweep()
	for _, h := range s.runEndHandlers {
		h.Handle(sweep)
	}
}
