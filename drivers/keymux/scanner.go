// Package keymux samples a 16-way button multiplexer: a 4-bit address
// bus routes one button at a time onto a shared, pulled-up common line.
package keymux

import (
	"nixieclock-go/errcode"
	"nixieclock-go/hal"
)

// Positions is the number of multiplexer addresses.
const Positions = 16

type Scanner struct {
	bus        hal.AddressBus
	common     hal.GPIOPin
	activeHigh bool
	next       uint8
}

// New configures the common line as a pulled-up input. activeHigh flips
// the press sense; the reference board grounds the line when pressed.
func New(bus hal.AddressBus, common hal.GPIOPin, activeHigh bool) (*Scanner, error) {
	if bus == nil || common == nil {
		return nil, errcode.InvalidParams
	}
	if 1<<bus.Width() < Positions {
		return nil, errcode.BusTooNarrow
	}
	if err := common.ConfigureInput(hal.PullUp); err != nil {
		return nil, err
	}
	return &Scanner{bus: bus, common: common, activeHigh: activeHigh}, nil
}

// Step samples the next address in round-robin order: one address per
// call, so each button is revisited once per 16 calls. At the 100 Hz
// tick rate that bounds per-button latency at 160 ms.
func (s *Scanner) Step() (addr uint8, pressed bool, err error) {
	addr = s.next
	if err = s.bus.Select(addr); err != nil {
		return addr, false, err
	}
	pressed = s.common.Get() == s.activeHigh
	s.next = (addr + 1) % Positions
	return addr, pressed, nil
}

// Rewind restarts the scan cycle at address 0.
func (s *Scanner) Rewind() { s.next = 0 }
