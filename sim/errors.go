package sim

import "errors"

var (
	// ErrCurrentTimeUnset is returned when the world has not been given a
	// current time before simulating.
	ErrCurrentTimeUnset = errors.New("current time has not been set")

	// ErrTargetTimeUnset is returned when simulating without a target time.
	ErrTargetTimeUnset = errors.New("target time has not been set")

	// ErrInvalidPeriod is returned when a period would end before it starts.
	ErrInvalidPeriod = errors.New("period ends before it starts")

	// ErrEntityNotFound is returned when an event looks up an entity that is
	// not in the world.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityTypeMismatch is returned when an event looks up an entity that
	// exists but does not have the requested type.
	ErrEntityTypeMismatch = errors.New("entity type mismatch")
)
