package sampling

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/hogwild/ising"
)

var _ = Describe("SerialSampler", func() {
	var (
		mockCtrl *gomock.Controller
		model    *ising.Model
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		adjacency := ising.LatticeConfig{Width: 4, Height: 4, Wrap: true}.
			Generate()
		model = ising.NewModel(adjacency, 0.2, 0)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should complete all sweeps", func() {
		sampler := NewSerialSampler(model, 10, 1)

		err := sampler.Run()

		Expect(err).To(BeNil())
		Expect(sampler.CurrentSweep()).To(Equal(uint64(10)))
		Expect(sampler.NumSweeps()).To(Equal(uint64(10)))
	})

	It("should keep spins valid", func() {
		sampler := NewSerialSampler(model, 20, 2)

		_ = sampler.Run()

		for v := 0; v < model.NumVertices(); v++ {
			Expect(model.Spin(v)).To(Or(
				Equal(ising.Spin(1)),
				Equal(ising.Spin(-1)),
			))
		}
	})

	It("should invoke hooks around every sweep", func() {
		sampler := NewSerialSampler(model, 5, 3)

		hook := NewMockHook(mockCtrl)
		before := 0
		after := 0
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			switch ctx.Pos {
			case HookPosBeforeSweep:
				before++
			case HookPosAfterSweep:
				after++
				_, ok := ctx.Item.(SweepResult)
				Expect(ok).To(BeTrue())
			}
		}).Times(10)
		sampler.AcceptHook(hook)

		_ = sampler.Run()

		Expect(before).To(Equal(5))
		Expect(after).To(Equal(5))
	})

	It("should hold an aligned state at strong coupling", func() {
		model.Beta = 10
		model.SetUniformSpins(1)
		sampler := NewSerialSampler(model, 50, 4)

		_ = sampler.Run()

		Expect(model.Magnetization()).To(Equal(1.0))
	})

	It("should stay disordered at zero coupling", func() {
		adjacency := ising.LatticeConfig{Width: 20, Height: 20, Wrap: true}.
			Generate()
		model = ising.NewModel(adjacency, 0, 0)
		sampler := NewSerialSampler(model, 20, 5)

		_ = sampler.Run()

		Expect(model.Magnetization()).To(BeNumerically("~", 0.0, 0.25))
	})

	It("should call run end handlers", func() {
		sampler := NewSerialSampler(model, 3, 6)
		handler := NewMockRunEndHandler(mockCtrl)
		handler.EXPECT().Handle(uint64(3))
		sampler.RegisterRunEndHandler(handler)

		_ = sampler.Run()
		sampler.Finished()
	})

	It("should pause and continue", func() {
		sampler := NewSerialSampler(model, 10, 7)

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
