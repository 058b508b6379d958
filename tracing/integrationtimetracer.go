package tracing

import (
	"sync"

	"github.com/sarchlab/stepsim/sim"
)

// IntegrationTimeTracer accumulates the simulated time covered by integrate
// steps.
type IntegrationTimeTracer struct {
	lock    sync.Mutex
	total   sim.VTime
	longest sim.VTime
}

// NewIntegrationTimeTracer creates a new IntegrationTimeTracer.
func NewIntegrationTimeTracer() *IntegrationTimeTracer {
	return &IntegrationTimeTracer{}
}

// Func records the period of every completed integrate step.
func (t *IntegrationTimeTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterStep {
		return
	}

	step, ok := ctx.Item.(sim.Step)
	if !ok || step.Kind != sim.StepIntegrate {
		return
	}

	d := step.Period.Duration()

	t.lock.Lock()
	t.total += d
	if d > t.longest {
		t.longest = d
	}
	t.lock.Unlock()
}

// Total returns the total integrated time.
func (t *IntegrationTimeTracer) Total() sim.VTime {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.total
}

// TotalSeconds returns the total integrated time in seconds.
func (t *IntegrationTimeTracer) TotalSeconds() float64 {
	return t.Total().Seconds()
}

// Longest returns the longest single integrate step.
func (t *IntegrationTimeTracer) Longest() sim.VTime {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.longest
}
