// Package clock abstracts the wall clock so hold expiry and TTL decisions
// can be tested at a pinned instant.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock stands still until a test moves it. Single-goroutine use only.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	return c.now
}

// Set jumps the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.now = t
}

// Add advances the clock by d; a negative d winds it back.
func (c *MockClock) Add(d time.Duration) {
	c.now = c.now.Add(d)
}
