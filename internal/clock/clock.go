// Package clock abstracts the current time so that lifecycle stamps and
// report timestamps are deterministic in tests. All times are UTC.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the system time.
func System() Clock { return systemClock{} }

// FixedClock always returns the same instant until advanced.
type FixedClock struct {
	t time.Time
}

// Fixed returns a FixedClock pinned to t (converted to UTC).
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{t: t.UTC()}
}

func (c *FixedClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
