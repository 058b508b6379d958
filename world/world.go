// Package world provides an in-memory World that can be advanced by a
// sim.Simulator.
package world

import (
	"log"

	"github.com/sarchlab/stepsim/sim"
)

// World keeps the current time, the entities, and the registered events of a
// simulated world.
type World struct {
	currentTime sim.VTime
	timeSet     bool

	entityIDs []string
	entities  map[string]sim.Predictable

	events   []sim.WorldEvent
	eventIDs map[string]bool

	env *Environment
}

// New creates an empty World whose current time is not set.
func New() *World {
	w := &World{
		entities: make(map[string]sim.Predictable),
		eventIDs: make(map[string]bool),
	}
	w.env = &Environment{world: w}

	return w
}

// CurrentTime returns the current time and whether it has been set.
func (w *World) CurrentTime() (sim.VTime, bool) {
	return w.currentTime, w.timeSet
}

// SetCurrentTime sets the current time.
func (w *World) SetCurrentTime(t sim.VTime) {
	w.currentTime = t
	w.timeSet = true
}

// EventEnvironment returns the environment that events act through.
func (w *World) EventEnvironment() sim.EventEnvironment {
	return w.env
}

// Predictables returns a snapshot of the entities in the order they were
// added.
func (w *World) Predictables() []sim.Predictable {
	result := make([]sim.Predictable, 0, len(w.entityIDs))
	for _, id := range w.entityIDs {
		result = append(result, w.entities[id])
	}

	return result
}

// Events returns the registered events in registration order.
func (w *World) Events() []sim.WorldEvent {
	return w.events
}

// RegisterEvent adds an event to the world. Registering two events with the
// same ID panics.
func (w *World) RegisterEvent(e sim.WorldEvent) {
	if w.eventIDs[e.ID()] {
		log.Panicf("event %s already registered", e.ID())
	}

	w.eventIDs[e.ID()] = true
	w.events = append(w.events, e)
}

// DiscardPastEvents drops the events that happen before the current time.
// Those events can never fire again. It returns the number of events dropped.
func (w *World) DiscardPastEvents() int {
	if !w.timeSet {
		return 0
	}

	kept := w.events[:0]
	for _, e := range w.events {
		if e.Time() >= w.currentTime {
			kept = append(kept, e)
			continue
		}

		delete(w.eventIDs, e.ID())
	}

	dropped := len(w.events) - len(kept)
	for i := len(kept); i < len(w.events); i++ {
		w.events[i] = nil
	}
	w.events = kept

	return dropped
}

// AddEntity registers an entity under id. An existing entity with the same id
// is replaced and keeps its position in the iteration order.
func (w *World) AddEntity(id string, p sim.Predictable) {
	if _, ok := w.entities[id]; !ok {
		w.entityIDs = append(w.entityIDs, id)
	}

	w.entities[id] = p
}

// RemoveEntity removes the entity registered under id, if any.
func (w *World) RemoveEntity(id string) {
	if _, ok := w.entities[id]; !ok {
		return
	}

	delete(w.entities, id)

	for i, existing := range w.entityIDs {
		if existing == id {
			w.entityIDs = append(w.entityIDs[:i], w.entityIDs[i+1:]...)
			return
		}
	}
}

// Entity returns the entity registered under id.
func (w *World) Entity(id string) (sim.Predictable, bool) {
	p, ok := w.entities[id]
	return p, ok
}

// EntityIDs returns the IDs of all the entities in iteration order.
func (w *World) EntityIDs() []string {
	return append([]string(nil), w.entityIDs...)
}

// NumEntities returns the number of entities.
func (w *World) NumEntities() int {
	return len(w.entityIDs)
}

var _ sim.World = (*World)(nil)
var _ sim.EventEnvironment = (*Environment)(nil)
