// Package tracing provides hooks that collect information about the steps a
// Simulator executes.
package tracing

import (
	"reflect"
	"sync"

	"github.com/sarchlab/stepsim/sim"
)

// StepCountTracer counts the steps that a Simulator executes.
type StepCountTracer struct {
	lock           sync.Mutex
	integrateSteps uint64
	eventSteps     uint64
	simulateCalls  uint64
	eventTypeNames []string
	eventCount     map[string]uint64
}

// NewStepCountTracer creates a new StepCountTracer.
func NewStepCountTracer() *StepCountTracer {
	return &StepCountTracer{
		eventCount: make(map[string]uint64),
	}
}

// Func counts completed steps.
func (t *StepCountTracer) Func(ctx sim.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if ctx.Pos == sim.HookPosSimulateStart {
		t.simulateCalls++
		return
	}

	if ctx.Pos != sim.HookPosAfterStep {
		return
	}

	step, ok := ctx.Item.(sim.Step)
	if !ok {
		return
	}

	switch step.Kind {
	case sim.StepIntegrate:
		t.integrateSteps++
	case sim.StepEvent:
		t.eventSteps++
		t.countEvent(step.Event)
	}
}

func (t *StepCountTracer) countEvent(e sim.WorldEvent) {
	name := reflect.TypeOf(e).String()

	_, ok := t.eventCount[name]
	if !ok {
		t.eventTypeNames = append(t.eventTypeNames, name)
	}

	t.eventCount[name]++
}

// IntegrateSteps returns the number of integrate steps executed.
func (t *StepCountTracer) IntegrateSteps() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.integrateSteps
}

// EventSteps returns the number of events fired.
func (t *StepCountTracer) EventSteps() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.eventSteps
}

// SimulateCalls returns the number of non-empty Simulate calls observed.
func (t *StepCountTracer) SimulateCalls() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.simulateCalls
}

// EventTypeNames returns the type names of the fired events, in the order
// that each type first fired.
func (t *StepCountTracer) EventTypeNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.eventTypeNames...)
}

// EventCount returns the number of fired events with the given type name.
func (t *StepCountTracer) EventCount(typeName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.eventCount[typeName]
}
