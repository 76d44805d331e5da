// services/device/ticker.go
package device

import (
	"context"
	"sync/atomic"
	"time"

	"nixieclock-go/services/clock"
)

// Ticker stands in for the 100 Hz hardware timer interrupt. Per period
// it does the minimum an interrupt handler may: advance the counter and
// raise the tick-pending flag. Everything else belongs to the main loop.
type Ticker struct {
	counter *clock.Counter
	period  time.Duration

	pending atomic.Bool
	dropped atomic.Uint32
}

func NewTicker(counter *clock.Counter, period time.Duration) *Ticker {
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	return &Ticker{counter: counter, period: period}
}

func (t *Ticker) Start(ctx context.Context) {
	go func() {
		tk := time.NewTicker(t.period)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				t.Fire()
			}
		}
	}()
}

// Fire is the handler body: one counter tick, one flag set. A flag that
// is still set means the main loop has fallen behind and this tick's
// processing is dropped (the counter still advanced, so time stays
// correct).
func (t *Ticker) Fire() {
	t.counter.Tick()
	if !t.pending.CompareAndSwap(false, true) {
		t.dropped.Add(1)
	}
}

// TakePending consumes the flag. Main-loop side.
func (t *Ticker) TakePending() bool { return t.pending.Swap(false) }

// Dropped counts ticks whose processing was skipped.
func (t *Ticker) Dropped() uint32 { return t.dropped.Load() }

func (t *Ticker) Period() time.Duration { return t.period }
