package sim

import (
	"log"
	"reflect"
)

// StepLogger is a hook that prints every executed step.
type StepLogger struct {
	LogHookBase
}

// NewStepLogger returns a new StepLogger which will write into the logger.
func NewStepLogger(logger *log.Logger) *StepLogger {
	h := new(StepLogger)
	h.Logger = logger
	return h
}

// Func writes the step information into the logger.
func (h *StepLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeStep {
		return
	}

	step, ok := ctx.Item.(Step)
	if !ok {
		return
	}

	switch step.Kind {
	case StepIntegrate:
		h.Logger.Printf("integrate %s, delta %.3fs",
			step.Period, step.Period.ElapsedSeconds())
	case StepEvent:
		h.Logger.Printf("%d, %s %s",
			step.Event.Time(), reflect.TypeOf(step.Event), step.Event.ID())
	}
}
