package sampling

import (
	"math/rand"
	"sync"

	"github.com/sarchlab/hogwild/ising"
)

// A SerialSampler is a Sampler that resamples vertices strictly one after
// another, in vertex order.
type SerialSampler struct {
	HookableBase

	model *ising.Model
	rng   *rand.Rand

	sweepLock sync.RWMutex
	sweep     uint64
	numSweeps uint64

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	runEndHandlers []RunEndHandler
}

// NewSerialSampler creates a SerialSampler that performs numSweeps sweeps
// over the model, drawing randomness from the given seed.
func NewSerialSampler(
	model *ising.Model,
	numSweeps uint64,
	seed int64,
) *SerialSampler {
	s := &SerialSampler{
		model:     model,
		numSweeps: numSweeps,
		rng:       rand.New(rand.NewSource(seed)),
	}

	return s
}

func (s *SerialSampler) readSweep() uint64 {
	s.sweepLock.RLock()
	sweep := s.sweep
	s.sweepLock.RUnlock()
	return sweep
}

func (s *SerialSampler) writeSweep(sweep uint64) {
	s.sweepLock.Lock()
	s.sweep = sweep
	s.sweepLock.Unlock()
}

// Run performs all the remaining sweeps of the sampling run.
func (s *SerialSampler) Run() error {
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

		flips := s.runSweep()
		s.writeSweep(sweep + 1)

		hookCtx.Pos = HookPosAfterSweep
		hookCtx.Sweep = sweep + 1
		hookCtx.Item = SweepResult{Flips: flips}
		s.InvokeHook(hookCtx)

		s.pauseLock.Unlock()
	}

	return nil
}

func (s *SerialSampler) runSweep() uint64 {
	flips := uint64(0)

	for v := 0; v < s.model.NumVertices(); v++ {
		if resampleVertex(s.model, s.rng, v) {
			flips++
		}
	}

	return flips
}

// resampleVertex draws a fresh spin for vertex v from its conditional
// distribution. It reports whether the spin changed.
func resampleVertex(m *ising.Model, rng *rand.Rand, v int) bool {
	next := ising.Spin(-1)
	if rng.Float64() < m.UpProbability(v) {
		next = 1
	}

	if next == m.Spin(v) {
		return false
	}

	m.SetSpin(v, next)

	return true
}

// Pause prevents the SerialSampler from starting more sweeps.
func (s *SerialSampler) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue allows the SerialSampler to perform more sweeps.
func (s *SerialSampler) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// CurrentSweep returns the number of completed sweeps.
func (s *SerialSampler) CurrentSweep() uint64 {
	return s.readSweep()
}

// NumSweeps returns the total number of sweeps the run performs.
func (s *SerialSampler) NumSweeps() uint64 {
	return s.numSweeps
}

// RegisterRunEndHandler registers a handler that performs some actions after
// the run is finished.
func (s *SerialSampler) RegisterRunEndHandler(handler RunEndHandler) {
	s.runEndHandlers = append(s.runEndHandlers, handler)
}

// Finished should be called after the run ends. This function calls all the
// registered RunEndHandlers.
func (s *SerialSampler) Finished() {
	sweep := s.readSweep()
	for _, h := range s.runEndHandlers {
		h.Handle(sweep)
	}
}
