package world

import "github.com/sarchlab/stepsim/sim"

// Environment is the sim.EventEnvironment of a World.
type Environment struct {
	world *World
}

// Entity returns the entity registered under id.
func (e *Environment) Entity(id string) (sim.Predictable, bool) {
	return e.world.Entity(id)
}

// RemoveEntity removes the entity registered under id. Removing an absent
// entity does nothing.
func (e *Environment) RemoveEntity(id string) {
	e.world.RemoveEntity(id)
}

// AddEntity registers an entity under id.
func (e *Environment) AddEntity(id string, p sim.Predictable) {
	e.world.AddEntity(id, p)
}
