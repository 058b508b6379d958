package tracing

import (
	"reflect"
	"sync"

	"github.com/sarchlab/stepsim/datarecording"
	"github.com/sarchlab/stepsim/sim"
	"github.com/tebeka/atexit"
)

// StepTableName is the table that the DBTracer writes steps into.
const StepTableName = "step"

// SimulateTableName is the table that the DBTracer writes Simulate calls
// into.
const SimulateTableName = "simulate"

// StepRecord is one executed step.
type StepRecord struct {
	Seq       int64
	Call      int64
	Kind      string
	StartTime int64
	EndTime   int64
	Delta     float64
	EventID   string
	EventType string
}

// SimulateRecord is one non-empty Simulate call.
type SimulateRecord struct {
	Call      int64
	StartTime int64
	EndTime   int64
	NumSteps  int64
	Completed bool
}

// DBTracer is a hook that stores every executed step into a DataRecorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder

	seq      int64
	call     int64
	numSteps int64
	current  SimulateRecord
	inCall   bool
}

// NewDBTracer creates a new DBTracer and the tables it writes into.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(StepTableName, StepRecord{})
	dataRecorder.CreateTable(SimulateTableName, SimulateRecord{})

	t := &DBTracer{
		backend: dataRecorder,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// Func records steps and Simulate calls.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ctx.Pos {
	case sim.HookPosSimulateStart:
		t.startCall(ctx.Item.(sim.Period))
	case sim.HookPosAfterStep:
		t.recordStep(ctx.Item.(sim.Step))
	case sim.HookPosSimulateEnd:
		t.endCall(true)
	}
}

func (t *DBTracer) startCall(p sim.Period) {
	if t.inCall {
		t.endCall(false)
	}

	t.call++
	t.numSteps = 0
	t.inCall = true
	t.current = SimulateRecord{
		Call:      t.call,
		StartTime: int64(p.Start()),
		EndTime:   int64(p.End()),
	}
}

func (t *DBTracer) endCall(completed bool) {
	t.current.NumSteps = t.numSteps
	t.current.Completed = completed
	t.backend.InsertData(SimulateTableName, t.current)
	t.inCall = false
}

func (t *DBTracer) recordStep(step sim.Step) {
	t.seq++
	t.numSteps++

	r := StepRecord{
		Seq:  t.seq,
		Call: t.call,
		Kind: step.Kind.String(),
	}

	switch step.Kind {
	case sim.StepIntegrate:
		r.StartTime = int64(step.Period.Start())
		r.EndTime = int64(step.Period.End())
		r.Delta = step.Period.ElapsedSeconds()
	case sim.StepEvent:
		r.StartTime = int64(step.Event.Time())
		r.EndTime = r.StartTime
		r.EventID = step.Event.ID()
		r.EventType = reflect.TypeOf(step.Event).String()
	}

	t.backend.InsertData(StepTableName, r)
}

// Terminate records an unfinished Simulate call, if any, and flushes the
// recorder. A call is unfinished if one of its events failed.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inCall {
		t.endCall(false)
	}

	t.backend.Flush()
}
