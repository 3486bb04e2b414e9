package analysis

import (
	"fmt"
	"io"

	"github.com/sarchlab/hogwild/ising"
	"github.com/sarchlab/hogwild/sampling"
)

// A Reporter is a sampling hook that prints a one-line summary of the model
// state every period sweeps.
type Reporter struct {
	model  *ising.Model
	period uint64
	writer io.Writer
}

// NewReporter creates a Reporter that writes to w.
func NewReporter(
	model *ising.Model,
	period uint64,
	w io.Writer,
) *Reporter {
	if period == 0 {
		panic("report period must be positive")
	}

	return &Reporter{
		model:  model,
		period: period,
		writer: w,
	}
}

// Func prints the summary at AfterSweep positions that fall on the period.
func (r *Reporter) Func(ctx sampling.HookCtx) {
	if ctx.Pos != sampling.HookPosAfterSweep {
		return
	}

	if ctx.Sweep%r.period != 0 {
		return
	}

	flips := uint64(0)
	if result, ok := ctx.Item.(sampling.SweepResult); ok {
		flips = result.Flips
	}

	fmt.Fprintf(r.writer,
		"Sweep %d: Magnetization %.4f, Energy %.1f, Flips %d\n",
		ctx.Sweep, r.model.Magnetization(), r.model.InteractionEnergy(),
		flips)
}
