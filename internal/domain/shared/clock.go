package shared

import "time"

// Clock abstracts the system time source so that time-dependent rules
// (signing window, apposition dates) are deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Test use only.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Instant
}
