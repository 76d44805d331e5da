// services/clock/counter.go
package clock

import "sync/atomic"

// Time is kept as one monotonic counter of hundredths of a second since
// midnight, wrapping once per day. Sub-units are derived, never stored.
const (
	TicksPerDay    = 8_640_000
	TicksPerHour   = 360_000
	TicksPerMinute = 6_000
	TicksPerSecond = 100
)

// Counter is the sub-day tick counter. Tick runs in the timer interrupt;
// Load runs in the main loop. A single 32-bit atomic makes the snapshot
// torn-read safe on narrow-word targets without masking interrupts.
type Counter struct {
	v atomic.Uint32
}

// Tick advances by one hundredth, wrapping at midnight. Single writer:
// the timer interrupt. Kept minimal so the handler never delays the next
// 10 ms period.
func (c *Counter) Tick() {
	t := c.v.Load() + 1
	if t == TicksPerDay {
		t = 0
	}
	c.v.Store(t)
}

// Load returns a consistent snapshot of the counter.
func (c *Counter) Load() uint32 { return c.v.Load() }

// Set jumps the counter, for setting the time of day. t is taken modulo
// one day.
func (c *Counter) Set(t uint32) { c.v.Store(t % TicksPerDay) }
