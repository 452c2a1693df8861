//go:generate mockgen -source=clock.go -destination=clock_mock.go -package=clock

// Package clock abstracts wall-clock access so output naming can be
// verified in tests.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}
