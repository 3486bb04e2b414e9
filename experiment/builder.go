// Package experiment assembles models, samplers, recording, and monitoring
// into runnable sampling experiments.
package experiment

import (
	"math/rand"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/hogwild/analysis"
	"github.com/sarchlab/hogwild/datarecording"
	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/monitoring"
	"github.com/sarchlab/hogwild/sampling"
)

type topology int

const (
	topologyRandom topology = iota
	topologyLattice
)

// Builder can be used to build an experiment.
type Builder struct {
	topology    topology
	numVertices int
	maxDegree   int
	width       int
	height      int
	wrap        bool

	beta  float64
	prior float64

	numSweeps    uint64
	seed         int64
	reportPeriod uint64

	useHogwild bool
	numWorkers int

	monitorOn   bool
	monitorPort int
	openBrowser bool

	outputFileName string
}

// MakeBuilder creates a new builder with the traditional defaults: a
// 1000-vertex random graph with maximum degree 3 at inverse temperature 0.2.
func MakeBuilder() Builder {
	return Builder{
		topology:     topologyRandom,
		numVertices:  1000,
		maxDegree:    3,
		beta:         0.2,
		numSweeps:    1000,
		reportPeriod: 100,
		monitorOn:    true,
	}
}

// WithRandomGraph sets the experiment to run on a random bounded-degree
// graph.
func (b Builder) WithRandomGraph(numVertices, maxDegree int) Builder {
	b.topology = topologyRandom
	b.numVertices = numVertices
	b.maxDegree = maxDegree
	return b
}

// WithLattice sets the experiment to run on a 2D lattice.
func (b Builder) WithLattice(width, height int) Builder {
	b.topology = topologyLattice
	b.width = width
	b.height = height
	return b
}

// WithWrap connects the opposite borders of the lattice.
func (b Builder) WithWrap() Builder {
	b.wrap = true
	return b
}

// WithBeta sets the inverse temperature.
func (b Builder) WithBeta(beta float64) Builder {
	b.beta = beta
	return b
}

// WithPrior sets the external field weight.
func (b Builder) WithPrior(prior float64) Builder {
	b.prior = prior
	return b
}

// WithSweeps sets the number of sweeps the run performs.
func (b Builder) WithSweeps(numSweeps uint64) Builder {
	b.numSweeps = numSweeps
	return b
}

// WithSeed fixes the random seed so that runs are reproducible. A zero seed
// derives the seed from the wall clock.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithReportPeriod sets the number of sweeps between measurements.
func (b Builder) WithReportPeriod(period uint64) Builder {
	b.reportPeriod = period
	return b
}

// WithHogwildSampler sets the experiment to sample with unsynchronized
// parallel workers.
func (b Builder) WithHogwildSampler() Builder {
	b.useHogwild = true
	return b
}

// WithNumWorkers sets the number of Hogwild workers. A non-positive count
// selects GOMAXPROCS.
func (b Builder) WithNumWorkers(numWorkers int) Builder {
	b.numWorkers = numWorkers
	return b
}

// WithoutMonitoring sets the experiment to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserOpen makes the monitor open its URL in the default browser.
func (b Builder) WithBrowserOpen() Builder {
	b.openBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}

	if !b.useHogwild && b.numWorkers != 0 {
		panic("worker count can only be set for the Hogwild sampler")
	}

	if b.numSweeps == 0 {
		panic("experiment requires at least one sweep")
	}
}

// Build builds the experiment.
func (b Builder) Build() *Experiment {
	b.parametersMustBeValid()

	e := &Experiment{
		id: xid.New().String(),
	}

	seed := b.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))

	e.model = ising.NewModel(b.buildAdjacency(rng), b.beta, b.prior)
	e.model.RandomizeSpins(rng)

	b.buildSampler(e, seed)
	b.buildRecording(e)
	b.buildMonitor(e)

	return e
}

func (b Builder) buildAdjacency(rng *rand.Rand) [][]int32 {
	switch b.topology {
	case topologyLattice:
		return ising.LatticeConfig{
			Width:  b.width,
			Height: b.height,
			Wrap:   b.wrap,
		}.Generate()
	default:
		return ising.RandomGraphConfig{
			NumVertices: b.numVertices,
			MaxDegree:   b.maxDegree,
		}.Generate(rng)
	}
}

func (b Builder) buildSampler(e *Experiment, seed int64) {
	if b.useHogwild {
		e.sampler = sampling.NewHogwildSampler(
			e.model, b.numSweeps, seed, b.numWorkers)
		return
	}

	e.sampler = sampling.NewSerialSampler(e.model, b.numSweeps, seed)
}

func (b Builder) buildRecording(e *Experiment) {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "hogwild_run_" + e.id
	}

	e.dataRecorder = datarecording.NewDataRecorder(outputPath)

	e.analyzer = analysis.MakeStateAnalyzerBuilder().
		WithModel(e.model).
		WithDataRecorder(e.dataRecorder).
		WithPeriod(b.reportPeriod).
		Build()
	e.sampler.AcceptHook(e.analyzer)
}

func (b Builder) buildMonitor(e *Experiment) {
	if !b.monitorOn {
		return
	}

	e.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		e.monitor.WithPortNumber(b.monitorPort)
	}
	if b.openBrowser {
		e.monitor.WithBrowserOpen()
	}

	e.monitor.RegisterSampler(e.sampler)
	e.monitor.RegisterModel(e.model)

	bar := e.monitor.CreateProgressBar("Sweeps", b.numSweeps)
	e.sampler.AcceptHook(progressHook{bar: bar})

	e.monitor.StartServer()
}

// progressHook advances a progress bar as sweeps complete.
type progressHook struct {
	bar *monitoring.ProgressBar
}

func (h progressHook) Func(ctx sampling.HookCtx) {
	if ctx.Pos != sampling.HookPosAfterSweep {
		return
	}

	h.bar.IncrementFinished(1)
}
