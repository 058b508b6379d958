package simulation

import (
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/stepsim/datarecording"
	"github.com/sarchlab/stepsim/sim"
	"github.com/sarchlab/stepsim/tracing"
	"github.com/sarchlab/stepsim/world"
)

// Builder can be used to build a simulation.
type Builder struct {
	world          *world.World
	recordingOn    bool
	outputFileName string
	logger         *log.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		recordingOn: true,
	}
}

// WithWorld sets the world to simulate. By default, an empty world is
// created.
func (b Builder) WithWorld(w *world.World) Builder {
	b.world = w
	return b
}

// WithoutRecording sets the simulation to not record steps into a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithLogger makes the simulation print every step into the logger.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:        xid.New().String(),
		world:     b.world,
		simulator: sim.NewSimulator(),
	}

	if s.world == nil {
		s.world = world.New()
	}

	s.stepCounter = tracing.NewStepCountTracer()
	s.simulator.AcceptHook(s.stepCounter)

	s.integrationTimer = tracing.NewIntegrationTimeTracer()
	s.simulator.AcceptHook(s.integrationTimer)

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "stepsim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.dbTracer = tracing.NewDBTracer(s.dataRecorder)
		s.simulator.AcceptHook(s.dbTracer)
	}

	if b.logger != nil {
		s.simulator.AcceptHook(sim.NewStepLogger(b.logger))
	}

	return s
}
