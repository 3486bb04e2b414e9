// Package analysis observes the spin state while a sampler runs and records
// the observables of each measured sweep.
package analysis

import (
	"github.com/sarchlab/hogwild/datarecording"
	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/sampling"
)

// A StateEntry is a single measured sweep in the recording database.
type StateEntry struct {
	Sweep         int64
	Magnetization float64
	Energy        float64
	Flips         int64
}

// A StateAnalyzer is a sampling hook that measures the model after every
// period sweeps and records the result.
type StateAnalyzer struct {
	model     *ising.Model
	recorder  datarecording.DataRecorder
	period    uint64
	tableName string
}

// Func measures the model at AfterSweep positions that fall on the period.
func (a *StateAnalyzer) Func(ctx sampling.HookCtx) {
	if ctx.Pos != sampling.HookPosAfterSweep {
		return
	}

	if ctx.Sweep%a.period != 0 {
		return
	}

	entry := StateEntry{
		Sweep:         int64(ctx.Sweep),
		Magnetization: a.model.Magnetization(),
		Energy:        a.model.InteractionEnergy(),
	}

	if result, ok := ctx.Item.(sampling.SweepResult); ok {
		entry.Flips = int64(result.Flips)
	}

	a.recorder.InsertData(a.tableName, entry)
}

// StateAnalyzerBuilder can build StateAnalyzers.
type StateAnalyzerBuilder struct {
	model     *ising.Model
	recorder  datarecording.DataRecorder
	period    uint64
	tableName string
}

// MakeStateAnalyzerBuilder creates a builder with default parameters.
func MakeStateAnalyzerBuilder() StateAnalyzerBuilder {
	return StateAnalyzerBuilder{
		period:    1,
		tableName: "sweep_stats",
	}
}

// WithModel sets the model to measure.
func (b StateAnalyzerBuilder) WithModel(
	m *ising.Model,
) StateAnalyzerBuilder {
	b.model = m
	return b
}

// WithDataRecorder sets the recorder that stores the measurements.
func (b StateAnalyzerBuilder) WithDataRecorder(
	r datarecording.DataRecorder,
) StateAnalyzerBuilder {
	b.recorder = r
	return b
}

// WithPeriod sets the number of sweeps between measurements.
func (b StateAnalyzerBuilder) WithPeriod(period uint64) StateAnalyzerBuilder {
	b.period = period
	return b
}

// WithTableName sets the name of the recording table.
func (b StateAnalyzerBuilder) WithTableName(
	name string,
) StateAnalyzerBuilder {
	b.tableName = name
	return b
}

// Build builds a StateAnalyzer and creates its recording table.
func (b StateAnalyzerBuilder) Build() *StateAnalyzer {
	b.parametersMustBeValid()

	a := &StateAnalyzer{
		model:     b.model,
		recorder:  b.recorder,
		period:    b.period,
		tableName: b.tableName,
	}

	a.recorder.CreateTable(a.tableName, StateEntry{})

	return a
}

func (b StateAnalyzerBuilder) parametersMustBeValid() {
	if b.model == nil {
		panic("state analyzer requires a model")
	}

	if b.recorder == nil {
		panic("state analyzer requires a data recorder")
	}

	if b.period == 0 {
		panic("measurement period must be positive")
	}
}
