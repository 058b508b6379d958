package sim

// A Predictable is an entity whose state evolves continuously with time.
type Predictable interface {
	// Predict advances the entity by delta seconds. A zero delta must leave
	// the entity unchanged.
	Predict(delta float64)
}
