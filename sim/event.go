package sim

// A WorldEvent is a discrete change that happens at an exact time.
type WorldEvent interface {
	// Time returns the time that the event happens.
	Time() VTime

	// ID returns the unique ID of the event. Events that happen at the same
	// time are fired in the lexicographic order of their IDs, so that the
	// order never depends on the order that the events are registered in.
	ID() string

	// Happen applies the event to the world through the environment. An error
	// aborts the rest of the simulation call.
	Happen(env EventEnvironment) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	id   string
	time VTime
}

// NewEventBase creates a new EventBase with an ID issued by the ID generator.
func NewEventBase(t VTime) *EventBase {
	return NewEventBaseWithID(GetIDGenerator().Generate(), t)
}

// NewEventBaseWithID creates a new EventBase with a given ID.
func NewEventBaseWithID(id string, t VTime) *EventBase {
	e := new(EventBase)
	e.id = id
	e.time = t
	return e
}

// Time returns the time that the event is going to happen.
func (e EventBase) Time() VTime {
	return e.time
}

// ID returns the unique ID of the event.
func (e EventBase) ID() string {
	return e.id
}
