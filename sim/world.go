package sim

// A World is the state that a Simulator advances.
type World interface {
	// CurrentTime returns the current time of the world. The boolean is false
	// if the time has never been set.
	CurrentTime() (VTime, bool)

	// SetCurrentTime moves the world to a new time.
	SetCurrentTime(t VTime)

	// EventEnvironment returns the environment that events act through.
	EventEnvironment() EventEnvironment

	// Predictables returns the entities that evolve with time. The returned
	// slice is iterated by the simulator and must not change while being
	// iterated, even if entities are added or removed.
	Predictables() []Predictable

	// Events returns all the registered events. Duplicated IDs are not
	// allowed.
	Events() []WorldEvent
}
