package keymux

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"nixieclock-go/errcode"
	"nixieclock-go/hal"
)

type fakeBus struct {
	width    int
	selected []uint8
	cur      uint8
}

func (b *fakeBus) Select(addr uint8) error {
	b.cur = addr
	b.selected = append(b.selected, addr)
	return nil
}
func (b *fakeBus) Width() int     { return b.width }
func (b *fakeBus) Current() uint8 { return b.cur }

// matrixPin fakes the pulled-up common line of a button matrix: it reads
// low when the button at the selected address is held.
type matrixPin struct {
	bus     *fakeBus
	pressed [Positions]bool
}

func (p *matrixPin) ConfigureInput(hal.Pull) error { return nil }
func (p *matrixPin) ConfigureOutput(bool) error    { return errcode.Unsupported }
func (p *matrixPin) Set(bool)                      {}
func (p *matrixPin) Toggle()                       {}
func (p *matrixPin) Number() int                   { return 0 }
func (p *matrixPin) Get() bool                     { return !p.pressed[p.bus.cur] }

func TestStepRoundRobin(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{width: 4}
	s, err := New(bus, &matrixPin{bus: bus}, false)
	c.Assert(err, qt.IsNil)

	// Two full cycles: every address visited in order, wrapping at 16.
	var got []uint8
	for i := 0; i < 2*Positions; i++ {
		addr, _, err := s.Step()
		c.Assert(err, qt.IsNil)
		got = append(got, addr)
	}
	want := make([]uint8, 0, 2*Positions)
	for i := 0; i < 2*Positions; i++ {
		want = append(want, uint8(i%Positions))
	}
	c.Assert(got, qt.DeepEquals, want)
	c.Assert(bus.selected, qt.DeepEquals, want)
}

func TestStepDetectsActiveLowPress(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{width: 4}
	pin := &matrixPin{bus: bus}
	pin.pressed[5] = true
	s, err := New(bus, pin, false)
	c.Assert(err, qt.IsNil)

	for i := 0; i < Positions; i++ {
		addr, pressed, err := s.Step()
		c.Assert(err, qt.IsNil)
		c.Assert(pressed, qt.Equals, addr == 5)
	}
}

func TestRewind(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{width: 4}
	s, err := New(bus, &matrixPin{bus: bus}, false)
	c.Assert(err, qt.IsNil)

	for i := 0; i < 3; i++ {
		_, _, _ = s.Step()
	}
	s.Rewind()
	addr, _, err := s.Step()
	c.Assert(err, qt.IsNil)
	c.Assert(addr, qt.Equals, uint8(0))
}

func TestNewRejectsNarrowBus(t *testing.T) {
	c := qt.New(t)
	bus := &fakeBus{width: 3}
	_, err := New(bus, &matrixPin{bus: bus}, false)
	c.Assert(err, qt.ErrorIs, errcode.BusTooNarrow)
}
