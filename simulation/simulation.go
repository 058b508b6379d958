// Package simulation assembles a Simulator, a World, and the tracers that
// observe them.
package simulation

import (
	"github.com/sarchlab/stepsim/datarecording"
	"github.com/sarchlab/stepsim/sim"
	"github.com/sarchlab/stepsim/tracing"
	"github.com/sarchlab/stepsim/world"
)

// A Simulation owns a world and the simulator that advances it.
type Simulation struct {
	id string

	world     *world.World
	simulator *sim.Simulator

	dataRecorder     datarecording.DataRecorder
	dbTracer         *tracing.DBTracer
	stepCounter      *tracing.StepCountTracer
	integrationTimer *tracing.IntegrationTimeTracer
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// World returns the world being simulated.
func (s *Simulation) World() *world.World {
	return s.world
}

// Simulator returns the simulator that advances the world.
func (s *Simulation) Simulator() *sim.Simulator {
	return s.simulator
}

// DataRecorder returns the data recorder, or nil if recording is disabled.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// StepCounts returns the tracer that counts the executed steps.
func (s *Simulation) StepCounts() *tracing.StepCountTracer {
	return s.stepCounter
}

// IntegratedTime returns the tracer that accumulates the integrated time.
func (s *Simulation) IntegratedTime() *tracing.IntegrationTimeTracer {
	return s.integrationTimer
}

// Now returns the current time of the world.
func (s *Simulation) Now() (sim.VTime, bool) {
	return s.world.CurrentTime()
}

// RunTo advances the world to the target time.
func (s *Simulation) RunTo(target sim.VTime) error {
	s.simulator.SetTargetTime(target)
	return s.simulator.Simulate(s.world)
}

// RunFor advances the world by d from its current time.
func (s *Simulation) RunFor(d sim.VTime) error {
	now, ok := s.world.CurrentTime()
	if !ok {
		return sim.ErrCurrentTimeUnset
	}

	return s.RunTo(now + d)
}

// Terminate flushes the recorded data and closes the recorder.
func (s *Simulation) Terminate() error {
	if s.dataRecorder == nil {
		return nil
	}

	s.dbTracer.Terminate()
	return s.dataRecorder.Close()
}
