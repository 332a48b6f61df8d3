package shared

import "time"

// Clock supplies timestamps for template versions and saved plans
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to the second so timestamps
// survive a JSON round trip unchanged
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FixedClock returns a settable instant; tests advance it explicitly
type FixedClock struct {
	CurrentTime time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// NewFixedClock creates a FixedClock at start
func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{CurrentTime: start}
}
