// hal/pulse.go
package hal

import "time"

// Pulser emits fixed-width pulses on one shared output line. The wait is
// a busy-style delay far shorter than the tick period; it is injectable
// so tests run without real sleeps.
type Pulser struct {
	pin   GPIOPin
	width time.Duration
	wait  func(time.Duration)
}

// NewPulser configures pin as an output held low between pulses.
// A nil wait uses time.Sleep.
func NewPulser(pin GPIOPin, width time.Duration, wait func(time.Duration)) (*Pulser, error) {
	if width <= 0 {
		width = time.Microsecond
	}
	if wait == nil {
		wait = time.Sleep
	}
	if err := pin.ConfigureOutput(false); err != nil {
		return nil, err
	}
	return &Pulser{pin: pin, width: width, wait: wait}, nil
}

// Pulse drives the line high for the configured width, then low for the
// same width (50% duty), so back-to-back pulses stay distinguishable to
// the counters.
func (p *Pulser) Pulse() {
	p.pin.Set(true)
	p.wait(p.width)
	p.pin.Set(false)
	p.wait(p.width)
}

// PulseN emits n pulses back to back.
func (p *Pulser) PulseN(n int) {
	for i := 0; i < n; i++ {
		p.Pulse()
	}
}

func (p *Pulser) Pin() GPIOPin { return p.pin }
