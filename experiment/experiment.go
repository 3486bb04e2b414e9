package experiment

import (
	"github.com/sarchlab/hogwild/analysis"
	"github.com/sarchlab/hogwild/datarecording"
	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/monitoring"
	"github.com/sarchlab/hogwild/sampling"
)

// An Experiment is one sampling run over one model, together with its
// recording and monitoring services.
type Experiment struct {
	id string

	model        *ising.Model
	sampler      sampling.Sampler
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	analyzer     *analysis.StateAnalyzer
}

// ID returns the unique ID of the experiment.
func (e *Experiment) ID() string {
	return e.id
}

// GetModel returns the model being sampled.
func (e *Experiment) GetModel() *ising.Model {
	return e.model
}

// GetSampler returns the sampler used in the experiment.
func (e *Experiment) GetSampler() sampling.Sampler {
	return e.sampler
}

// GetDataRecorder returns the data recorder used in the experiment.
func (e *Experiment) GetDataRecorder() datarecording.DataRecorder {
	return e.dataRecorder
}

// GetMonitor returns the monitor used in the experiment. It is nil when
// monitoring is disabled.
func (e *Experiment) GetMonitor() *monitoring.Monitor {
	return e.monitor
}

// Run performs the sampling run to completion.
func (e *Experiment) Run() error {
	err := e.sampler.Run()
	if err != nil {
		return err
	}

	e.sampler.Finished()

	return nil
}

// Terminate terminates the experiment.
func (e *Experiment) Terminate() {
	e.dataRecorder.Close()
}
