package sim

import (
	"fmt"
	"log"
)

// A Period is a half-open interval [Start, End) on the simulated time axis.
type Period struct {
	start VTime
	end   VTime
}

// NewPeriod creates a period. It returns ErrInvalidPeriod if end is before
// start.
func NewPeriod(start, end VTime) (Period, error) {
	if end < start {
		return Period{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidPeriod, start, end)
	}

	return Period{start: start, end: end}, nil
}

func mustNewPeriod(start, end VTime) Period {
	p, err := NewPeriod(start, end)
	if err != nil {
		log.Panic(err)
	}

	return p
}

// Start returns the first time covered by the period.
func (p Period) Start() VTime {
	return p.start
}

// End returns the first time after the period.
func (p Period) End() VTime {
	return p.end
}

// Contains tells if t falls in [Start, End).
func (p Period) Contains(t VTime) bool {
	return t >= p.start && t < p.end
}

// IsEmpty tells if the period covers no time at all.
func (p Period) IsEmpty() bool {
	return p.start == p.end
}

// Duration returns End - Start.
func (p Period) Duration() VTime {
	return p.end - p.start
}

// ElapsedSeconds returns the length of the period in seconds.
func (p Period) ElapsedSeconds() float64 {
	return float64(p.end-p.start) / 1000.0
}

// SplitAt cuts the period into [Start, cutPoint) and [cutPoint, End). The cut
// point must be within [Start, End]. Cutting outside of the period is a
// programming error and panics.
func (p Period) SplitAt(cutPoint VTime) (Period, Period) {
	return mustNewPeriod(p.start, cutPoint), mustNewPeriod(cutPoint, p.end)
}

func (p Period) String() string {
	return fmt.Sprintf("[%d, %d)", p.start, p.end)
}
