// Package clock abstracts "now" so streaks, activity windows and urgency
// math stay deterministic under test.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// At builds a fixed clock pinned to t.
func At(t time.Time) Fixed {
	return Fixed{Instant: t}
}
