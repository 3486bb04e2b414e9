package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/sampling"
)

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		model   *ising.Model
		sampler *sampling.SerialSampler
	)

	BeforeEach(func() {
		adjacency := ising.LatticeConfig{Width: 3, Height: 3}.Generate()
		model = ising.NewModel(adjacency, 0.2, 0)
		sampler = sampling.NewSerialSampler(model, 5, 1)

		m = NewMonitor()
		m.RegisterSampler(sampler)
		m.RegisterModel(model)
	})

	It("should report the current sweep", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/sweep", nil)

		m.sweep(w, r)

		rsp := struct {
			Sweep uint64 `json:"sweep"`
			Total uint64 `json:"total"`
		}{}
		err := json.Unmarshal(w.Body.Bytes(), &rsp)

		Expect(err).To(BeNil())
		Expect(rsp.Sweep).To(Equal(uint64(0)))
		Expect(rsp.Total).To(Equal(uint64(5)))
	})

	It("should report the magnetization", func() {
		model.SetUniformSpins(1)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/magnetization", nil)

		m.magnetization(w, r)

		rsp := struct {
			Magnetization float64 `json:"magnetization"`
		}{}
		err := json.Unmarshal(w.Body.Bytes(), &rsp)

		Expect(err).To(BeNil())
		Expect(rsp.Magnetization).To(Equal(1.0))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("sweeps", 100)
		bar.IncrementFinished(40)

		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Finished).To(Equal(uint64(40)))

		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(BeEmpty())
	})

	It("should serialize progress bars as JSON", func() {
		m.CreateProgressBar("sweeps", 100)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/progress", nil)

		m.listProgressBars(w, r)

		bars := []map[string]any{}
		err := json.Unmarshal(w.Body.Bytes(), &bars)

		Expect(err).To(BeNil())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("sweeps"))
	})

	It("should pause and continue the sampler", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/pause", nil)

		m.pauseSampler(w, r)

		done := make(chan struct{})
		go func() {
			_ = sampler.Run()
			close(done)
		}()

		Consistently(sampler.CurrentSweep).Should(Equal(uint64(0)))

		w = httptest.NewRecorder()
		r = httptest.NewRequest("GET", "/api/continue", nil)
		m.continueSampler(w, r)

		Eventually(done).Should(BeClosed())
	})
})
