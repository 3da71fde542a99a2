// Package clock abstracts wall-clock time so the appointment-date window
// checks and status timestamps can be pinned in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock reports a fixed instant that tests move explicitly.
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

// Add advances the reported time, e.g. past a rate-limit window.
func (c *MockClock) Add(d time.Duration) {
	c.current = c.current.Add(d)
}
