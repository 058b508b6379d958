package sim

import "fmt"

// StepKind tells what a Step does.
type StepKind int

// The two kinds of steps that a step chain is made of.
const (
	// StepIntegrate advances all the predictables over a period.
	StepIntegrate StepKind = iota

	// StepEvent fires one event.
	StepEvent
)

func (k StepKind) String() string {
	switch k {
	case StepIntegrate:
		return "integrate"
	case StepEvent:
		return "event"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// A Step is one element of a step chain. Period is only meaningful for
// StepIntegrate and Event only for StepEvent.
type Step struct {
	Kind   StepKind
	Period Period
	Event  WorldEvent
}

// IntegrateStep creates a step that integrates the predictables over p.
func IntegrateStep(p Period) Step {
	return Step{Kind: StepIntegrate, Period: p}
}

// EventStep creates a step that fires e.
func EventStep(e WorldEvent) Step {
	return Step{Kind: StepEvent, Event: e}
}

func (s Step) String() string {
	switch s.Kind {
	case StepIntegrate:
		return "integrate " + s.Period.String()
	case StepEvent:
		return fmt.Sprintf("event %s @ %d", s.Event.ID(), s.Event.Time())
	default:
		return s.Kind.String()
	}
}
