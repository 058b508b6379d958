package sim

// VTime is a point on the simulated time axis, counted in milliseconds.
type VTime int64

// Seconds converts the time to seconds.
func (t VTime) Seconds() float64 {
	return float64(t) / 1000.0
}
