// Package sampling provides Gibbs samplers for Ising models. The
// SerialSampler resamples vertices one at a time. The HogwildSampler runs a
// parallel-for over vertex partitions with no synchronization on the spin
// state, following the asynchronous scheme of arXiv:1602.07415.
package sampling

// SweepTeller can be used to get the number of completed sweeps.
type SweepTeller interface {
	CurrentSweep() uint64
}

// A RunEndHandler is a handler that is called after a sampling run ends.
type RunEndHandler interface {
	Handle(sweep uint64)
}

// SweepResult carries per-sweep information to AfterSweep hooks.
type SweepResult struct {
	// Flips is the number of vertices whose spin changed during the sweep.
	Flips uint64
}

// A Sampler is a unit that keeps resampling the spin state of a model, one
// full sweep over the vertices at a time.
type Sampler interface {
	Hookable
	SweepTeller

	// Run performs all the remaining sweeps of the sampling run.
	Run() error

	// Pause will pause the run until Continue is called.
	Pause()

	// Continue will continue the paused run.
	Continue()

	// NumSweeps returns the total number of sweeps the run performs.
	NumSweeps() uint64

	// RegisterRunEndHandler registers a handler that performs some actions
	// after the run is finished.
	RegisterRunEndHandler(handler RunEndHandler)

	// Finished invokes all the registered RunEndHandlers.
	Finished()
}
