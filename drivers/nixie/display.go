// Package nixie drives a bank of decade-counter digit positions through
// a shared reset line, a shared clock line and a 3-bit address bus.
//
// The counters have no readback. The only way to put a known digit on a
// position is to clear its counter and pulse it up, so the driver keeps a
// shadow of the value it last wrote and always reaches a target digit via
// the same clear-then-pulse sequence.
package nixie

import (
	"nixieclock-go/errcode"
	"nixieclock-go/hal"
)

// Positions is the number of digit positions on the board.
const Positions = 8

type Display struct {
	addr   hal.AddressBus
	reset  *hal.Pulser
	clock  *hal.Pulser
	shadow [Positions]uint8
}

// New checks the bus is wide enough for all positions. The reset and
// clock pulsers share their lines across every position; the address bus
// routes each pulse to exactly one counter.
func New(addr hal.AddressBus, reset, clock *hal.Pulser) (*Display, error) {
	if addr == nil || reset == nil || clock == nil {
		return nil, errcode.InvalidParams
	}
	if 1<<addr.Width() < Positions {
		return nil, errcode.BusTooNarrow
	}
	return &Display{addr: addr, reset: reset, clock: clock}, nil
}

// SetDigit puts val on position pos: select the address and hold it,
// one reset pulse to zero the counter, then val clock pulses. The
// address must not change mid-sequence — both pulse lines are shared, so
// a re-address would steer the remaining pulses to another counter.
func (d *Display) SetDigit(pos, val uint8) error {
	if pos >= Positions || val > 9 {
		return errcode.InvalidParams
	}
	if err := d.addr.Select(pos); err != nil {
		return err
	}
	d.reset.Pulse()
	d.clock.PulseN(int(val))
	d.shadow[pos] = val
	return nil
}

// SetPair writes a two-digit value onto a low/high position pair.
func (d *Display) SetPair(lowPos, value uint8) error {
	if lowPos+1 >= Positions || value > 99 {
		return errcode.InvalidParams
	}
	if err := d.SetDigit(lowPos, value%10); err != nil {
		return err
	}
	return d.SetDigit(lowPos+1, value/10)
}

// SetAll redraws every position.
func (d *Display) SetAll(digits [Positions]uint8) error {
	for pos := uint8(0); pos < Positions; pos++ {
		if err := d.SetDigit(pos, digits[pos]); err != nil {
			return err
		}
	}
	return nil
}

// Clear zeroes every position; called once at startup so the shadow and
// the hardware agree before the first tick.
func (d *Display) Clear() error {
	return d.SetAll([Positions]uint8{})
}

// Digit reports the logical value last written to pos.
func (d *Display) Digit(pos uint8) uint8 {
	if pos >= Positions {
		return 0
	}
	return d.shadow[pos]
}
