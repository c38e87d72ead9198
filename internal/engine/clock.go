package engine

import "time"

// Clock abstracts time.Now() so "today" and the current year can be pinned
// in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// CurrentYear reads the year from c, falling back to the real clock when c
// is nil.
func CurrentYear(c Clock) int {
	if c == nil {
		return time.Now().Year()
	}
	return c.Now().Year()
}
