package analysis_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hogwild/analysis"
	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/sampling"
)

type captureRecorder struct {
	tables map[string][]any
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{tables: make(map[string][]any)}
}

func (r *captureRecorder) CreateTable(tableName string, _ any) {
	r.tables[tableName] = []any{}
}

func (r *captureRecorder) InsertData(tableName string, entry any) {
	r.tables[tableName] = append(r.tables[tableName], entry)
}

func (r *captureRecorder) ListTables() []string {
	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}
	return tables
}

func (r *captureRecorder) Flush() {}
func (r *captureRecorder) Close() {}

var _ = Describe("StateAnalyzer", func() {
	var (
		model    *ising.Model
		recorder *captureRecorder
		analyzer *analysis.StateAnalyzer
	)

	BeforeEach(func() {
		adjacency := ising.LatticeConfig{Width: 3, Height: 3}.Generate()
		model = ising.NewModel(adjacency, 0.2, 0)
		recorder = newCaptureRecorder()

		analyzer = analysis.MakeStateAnalyzerBuilder().
			WithModel(model).
			WithDataRecorder(recorder).
			WithPeriod(10).
			Build()
	})

	It("should create its table on build", func() {
		Expect(recorder.ListTables()).To(ContainElement("sweep_stats"))
	})

	It("should record sweeps on the period", func() {
		analyzer.Func(sampling.HookCtx{
			Pos:   sampling.HookPosAfterSweep,
			Sweep: 10,
			Item:  sampling.SweepResult{Flips: 4},
		})

		Expect(recorder.tables["sweep_stats"]).To(HaveLen(1))

		entry := recorder.tables["sweep_stats"][0].(analysis.StateEntry)
		Expect(entry.Sweep).To(Equal(int64(10)))
		Expect(entry.Magnetization).To(Equal(1.0))
		Expect(entry.Flips).To(Equal(int64(4)))
	})

	It("should skip sweeps off the period", func() {
		analyzer.Func(sampling.HookCtx{
			Pos:   sampling.HookPosAfterSweep,
			Sweep: 7,
		})

		Expect(recorder.tables["sweep_stats"]).To(BeEmpty())
	})

	It("should ignore BeforeSweep positions", func() {
		analyzer.Func(sampling.HookCtx{
			Pos:   sampling.HookPosBeforeSweep,
			Sweep: 10,
		})

		Expect(recorder.tables["sweep_stats"]).To(BeEmpty())
	})

	It("should panic without a model", func() {
		Expect(func() {
			analysis.MakeStateAnalyzerBuilder().
				WithDataRecorder(recorder).
				Build()
		}).To(Panic())
	})

	It("should panic without a recorder", func() {
		Expect(func() {
			analysis.MakeStateAnalyzerBuilder().
				WithModel(model).
				Build()
		}).To(Panic())
	})
})

var _ = Describe("Reporter", func() {
	var (
		model *ising.Model
		buf   *bytes.Buffer
	)

	BeforeEach(func() {
		adjacency := ising.LatticeConfig{Width: 3, Height: 3}.Generate()
		model = ising.NewModel(adjacency, 0.2, 0)
		buf = &bytes.Buffer{}
	})

	It("should print a summary on the period", func() {
		reporter := analysis.NewReporter(model, 5, buf)

		reporter.Func(sampling.HookCtx{
			Pos:   sampling.HookPosAfterSweep,
			Sweep: 5,
			Item:  sampling.SweepResult{Flips: 2},
		})

		Expect(buf.String()).To(ContainSubstring("Sweep 5"))
		Expect(buf.String()).To(ContainSubstring("Flips 2"))
	})

	It("should stay silent off the period", func() {
		reporter := analysis.NewReporter(model, 5, buf)

		reporter.Func(sampling.HookCtx{
			Pos:   sampling.HookPosAfterSweep,
			Sweep: 7,
		})

		Expect(buf.String()).To(BeEmpty())
	})

	It("should reject a zero period", func() {
		Expect(func() {
			analysis.NewReporter(model, 0, buf)
		}).To(Panic())
	})
})
