package sim

import (
	"fmt"
	"log"
)

// A Simulator advances a World from its current time to a target time. It
// integrates the predictables between events and fires every event in the
// interval at its exact time.
type Simulator struct {
	HookableBase

	targetTime VTime
	targetSet  bool
}

// NewSimulator creates a Simulator without a target time.
func NewSimulator() *Simulator {
	return new(Simulator)
}

// SetTargetTime sets the time that the next Simulate call advances the world
// to.
func (s *Simulator) SetTargetTime(t VTime) {
	s.targetTime = t
	s.targetSet = true
}

// TargetTime returns the target time. The boolean is false if the target time
// has never been set.
func (s *Simulator) TargetTime() (VTime, bool) {
	return s.targetTime, s.targetSet
}

// Simulate advances the world to the target time. If an event fails, the
// steps executed before it stay applied and the error is returned.
func (s *Simulator) Simulate(world World) error {
	currentTime, ok := world.CurrentTime()
	if !ok {
		return ErrCurrentTimeUnset
	}

	if !s.targetSet {
		return ErrTargetTimeUnset
	}

	fullPeriod, err := NewPeriod(currentTime, s.targetTime)
	if err != nil {
		return fmt.Errorf("cannot simulate from %d to %d: %w",
			currentTime, s.targetTime, err)
	}

	if fullPeriod.IsEmpty() {
		return nil
	}

	chain := BuildStepChain(fullPeriod, world.Events())

	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosSimulateStart,
		Item:   fullPeriod,
	}
	s.InvokeHook(hookCtx)

	for _, step := range chain {
		err := s.execute(world, step)
		if err != nil {
			return err
		}
	}

	hookCtx.Pos = HookPosSimulateEnd
	s.InvokeHook(hookCtx)

	return nil
}

func (s *Simulator) execute(world World, step Step) error {
	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosBeforeStep,
		Item:   step,
	}
	s.InvokeHook(hookCtx)

	switch step.Kind {
	case StepIntegrate:
		s.integrate(world, step.Period)
	case StepEvent:
		err := step.Event.Happen(world.EventEnvironment())
		if err != nil {
			return fmt.Errorf("event %s @ %d: %w",
				step.Event.ID(), step.Event.Time(), err)
		}
	default:
		log.Panicf("unknown step kind %s", step.Kind)
	}

	hookCtx.Pos = HookPosAfterStep
	s.InvokeHook(hookCtx)

	return nil
}

func (s *Simulator) integrate(world World, p Period) {
	delta := p.ElapsedSeconds()

	for _, predictable := range world.Predictables() {
		predictable.Predict(delta)
	}

	world.SetCurrentTime(p.End())
}
