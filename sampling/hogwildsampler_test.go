package sampling

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/hogwild/ising"
)

var _ = Describe("HogwildSampler", func() {
	var (
		mockCtrl *gomock.Controller
		model    *ising.Model
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		adjacency := ising.LatticeConfig{Width: 8, Height: 8, Wrap: true}.
			Generate()
		model = ising.NewModel(adjacency, 0.2, 0)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should partition all vertices exactly once", func() {
		sampler := NewHogwildSampler(model, 1, 1, 3)

		covered := 0
		prevEnd := 0
		for _, r := range sampler.ranges {
			Expect(r[0]).To(Equal(prevEnd))
			covered += r[1] - r[0]
			prevEnd = r[1]
		}

		Expect(covered).To(Equal(model.NumVertices()))
		Expect(prevEnd).To(Equal(model.NumVertices()))
	})

	It("should not use more workers than vertices", func() {
		adjacency := ising.LatticeConfig{Width: 3, Height: 1}.Generate()
		small := ising.NewModel(adjacency, 0.2, 0)

		sampler := NewHogwildSampler(small, 1, 1, 64)

		Expect(sampler.NumWorkers()).To(Equal(3))
	})

	It("should default the worker count", func() {
		sampler := NewHogwildSampler(model, 1, 1, 0)

		Expect(sampler.NumWorkers()).To(BeNumerically(">", 0))
	})

	It("should complete all sweeps", func() {
		sampler := NewHogwildSampler(model, 10, 1, 4)

		err := sampler.Run()

		Expect(err).To(BeNil())
		Expect(sampler.CurrentSweep()).To(Equal(uint64(10)))
	})

	It("should keep spins valid under concurrent updates", func() {
		sampler := NewHogwildSampler(model, 50, 2, 8)

		_ = sampler.Run()

		for v := 0; v < model.NumVertices(); v++ {
			Expect(model.Spin(v)).To(Or(
				Equal(ising.Spin(1)),
				Equal(ising.Spin(-1)),
			))
		}
	})

	It("should invoke hooks around every sweep", func() {
		sampler := NewHogwildSampler(model, 4, 3, 4)

		hook := NewMockHook(mockCtrl)
		hook.EXPECT().Func(gomock.Any()).Times(8)
		sampler.AcceptHook(hook)

		_ = sampler.Run()
	})

	It("should hold an aligned state at strong coupling", func() {
		model.Beta = 10
		model.SetUniformSpins(-1)
		sampler := NewHogwildSampler(model, 30, 4, 4)

		_ = sampler.Run()

		Expect(model.Magnetization()).To(Equal(-1.0))
	})

	It("should call run end handlers", func() {
		sampler := NewHogwildSampler(model, 2, 5, 2)
		handler := NewMockRunEndHandler(mockCtrl)
		handler.EXPECT().Handle(uint64(2))
		sampler.RegisterRunEndHandler(handler)

		_ = sampler.Run()
		sampler.Finished()
	})

	It("should pause and continue", func() {
		sampler := NewHogwildSampler(model, 10, 6, 2)

		sampler.Pause()

		done := make(chan struct{})
		go func() {
			_ = sampler.Run()
			close(done)
		}()

		Consistently(sampler.CurrentSweep).Should(Equal(uint64(0)))

		sampler.Continue()

		Eventually(done).Should(BeClosed())
		Expect(sampler.CurrentSweep()).To(Equal(uint64(10)))
	})
})
