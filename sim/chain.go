package sim

import "sort"

// EventBefore determines the order between two events. Earlier events come
// first. Events at the same time are ordered by ID.
func EventBefore(a, b WorldEvent) bool {
	if a.Time() != b.Time() {
		return a.Time() < b.Time()
	}

	return a.ID() < b.ID()
}

// SortEvents sorts the events in the order that they fire.
func SortEvents(events []WorldEvent) {
	sort.Slice(events, func(i, j int) bool {
		return EventBefore(events[i], events[j])
	})
}

// EventsWithinPeriod returns the events that happen within the period. Events
// at the end of the period are not included. The input slice is not
// modified.
func EventsWithinPeriod(events []WorldEvent, p Period) []WorldEvent {
	var result []WorldEvent

	for _, e := range events {
		if p.Contains(e.Time()) {
			result = append(result, e)
		}
	}

	return result
}

// BuildStepChain decomposes fullPeriod into integration steps separated by
// the events that happen in it. Integrating every step in order, together
// with the event time points, covers fullPeriod exactly once.
func BuildStepChain(fullPeriod Period, events []WorldEvent) []Step {
	if fullPeriod.IsEmpty() {
		return nil
	}

	eventsInPeriod := EventsWithinPeriod(events, fullPeriod)
	SortEvents(eventsInPeriod)

	steps := make([]Step, 0, 2*len(eventsInPeriod)+1)
	remaining := fullPeriod

	for _, e := range eventsInPeriod {
		before, after := remaining.SplitAt(e.Time())
		if !before.IsEmpty() {
			steps = append(steps, IntegrateStep(before))
		}

		steps = append(steps, EventStep(e))
		remaining = after
	}

	steps = append(steps, IntegrateStep(remaining))

	return steps
}
