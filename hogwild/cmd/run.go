package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/hogwild/analysis"
	"github.com/sarchlab/hogwild/experiment"
	"github.com/sarchlab/hogwild/ising"
)

var runFlags = struct {
	topology  string
	vertices  int
	maxDegree int
	width     int
	height    int
	wrap      bool

	beta  float64
	prior float64

	sweeps       uint64
	seed         int64
	reportPeriod uint64

	parallel bool
	workers  int

	noMonitor   bool
	monitorPort int
	openBrowser bool

	output     string
	printGraph bool
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one sampling experiment",
	Long: `Run generates a synthetic Ising model graph, initializes a ` +
		`random spin state, and performs the configured number of Gibbs ` +
		`sweeps, printing graph statistics and periodic state summaries ` +
		`to the console.`,
	RunE: runExperiment,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.topology, "topology", "random",
		"graph topology, random or lattice")
	runCmd.Flags().IntVar(&runFlags.vertices, "vertices", 1000,
		"number of vertices of the random graph")
	runCmd.Flags().IntVar(&runFlags.maxDegree, "max-degree", 3,
		"maximum vertex degree of the random graph")
	runCmd.Flags().IntVar(&runFlags.width, "width", 32,
		"width of the lattice")
	runCmd.Flags().IntVar(&runFlags.height, "height", 32,
		"height of the lattice")
	runCmd.Flags().BoolVar(&runFlags.wrap, "wrap", false,
		"connect the opposite borders of the lattice")

	runCmd.Flags().Float64Var(&runFlags.beta, "beta", 0.2,
		"inverse temperature")
	runCmd.Flags().Float64Var(&runFlags.prior, "prior", 0,
		"external field weight")

	runCmd.Flags().Uint64Var(&runFlags.sweeps, "sweeps", 1000,
		"number of sweeps to perform")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0,
		"random seed, 0 derives the seed from the wall clock")
	runCmd.Flags().Uint64Var(&runFlags.reportPeriod, "report-period", 100,
		"number of sweeps between state reports")

	runCmd.Flags().BoolVar(&runFlags.parallel, "parallel", false,
		"sample with unsynchronized Hogwild workers")
	runCmd.Flags().IntVar(&runFlags.workers, "workers", 0,
		"number of Hogwild workers, 0 selects GOMAXPROCS")

	runCmd.Flags().BoolVar(&runFlags.noMonitor, "no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().IntVar(&runFlags.monitorPort, "monitor-port", 0,
		"port of the monitoring server, 0 selects a random port")
	runCmd.Flags().BoolVar(&runFlags.openBrowser, "open-browser", false,
		"open the monitor URL in the default browser")

	runCmd.Flags().StringVar(&runFlags.output, "output", "",
		"output file name of the recording database")
	runCmd.Flags().BoolVar(&runFlags.printGraph, "print-graph", false,
		"dump the adjacency structure of the generated graph")
}

func runExperiment(cmd *cobra.Command, _ []string) error {
	loadEnvDefaults(cmd)

	b, err := configureBuilder(cmd)
	if err != nil {
		return err
	}

	e := b.Build()

	model := e.GetModel()
	stats := ising.ComputeDegreeStats(model.Adjacency())
	stats.Fprint(os.Stdout)

	if runFlags.printGraph {
		ising.FprintAdjacency(os.Stdout, model.Adjacency())
	}

	sampler := e.GetSampler()
	sampler.AcceptHook(
		analysis.NewReporter(model, runFlags.reportPeriod, os.Stdout))

	err = e.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Final state after %d sweeps:\n", sampler.CurrentSweep())
	fmt.Printf("Magnetization: %f\n", model.Magnetization())
	fmt.Printf("Energy: %f\n", model.InteractionEnergy())

	e.Terminate()

	return nil
}

// loadEnvDefaults lets a local .env file override flag defaults that the
// user did not set on the command line.
func loadEnvDefaults(cmd *cobra.Command) {
	_ = godotenv.Load()

	if !cmd.Flags().Changed("monitor-port") {
		if port, err := strconv.Atoi(
			os.Getenv("HOGWILD_MONITOR_PORT")); err == nil {
			runFlags.monitorPort = port
		}
	}

	if !cmd.Flags().Changed("output") {
		if output := os.Getenv("HOGWILD_OUTPUT"); output != "" {
			runFlags.output = output
		}
	}
}

func configureBuilder(cmd *cobra.Command) (experiment.Builder, error) {
	b := experiment.MakeBuilder().
		WithBeta(runFlags.beta).
		WithPrior(runFlags.prior).
		WithSweeps(runFlags.sweeps).
		WithSeed(runFlags.seed).
		WithReportPeriod(runFlags.reportPeriod).
		WithOutputFileName(runFlags.output)

	switch runFlags.topology {
	case "random":
		b = b.WithRandomGraph(runFlags.vertices, runFlags.maxDegree)
	case "lattice":
		b = b.WithLattice(runFlags.width, runFlags.height)
		if runFlags.wrap {
			b = b.WithWrap()
		}
	default:
		return b, fmt.Errorf("unknown topology %s", runFlags.topology)
	}

	if runFlags.parallel {
		b = b.WithHogwildSampler()
		if runFlags.workers > 0 {
			b = b.WithNumWorkers(runFlags.workers)
		}
	}

	if runFlags.noMonitor {
		b = b.WithoutMonitoring()
	} else {
		if runFlags.monitorPort > 0 {
			b = b.WithMonitorPort(runFlags.monitorPort)
		}
		if runFlags.openBrowser {
			b = b.WithBrowserOpen()
		}
	}

	return b, nil
}
