// hal/pinbus.go
package hal

import "nixieclock-go/errcode"

// PinBus is an AddressBus over discrete GPIO output lines, LSB first.
type PinBus struct {
	lines []GPIOPin
	cur   uint8
}

// NewPinBus configures every line as an output (initially low) and
// returns the bus. Between 1 and 8 lines are supported.
func NewPinBus(lines ...GPIOPin) (*PinBus, error) {
	if len(lines) == 0 || len(lines) > 8 {
		return nil, errcode.InvalidParams
	}
	for _, p := range lines {
		if err := p.ConfigureOutput(false); err != nil {
			return nil, err
		}
	}
	return &PinBus{lines: lines}, nil
}

func (b *PinBus) Select(addr uint8) error {
	if int(addr) >= 1<<len(b.lines) {
		return errcode.InvalidParams
	}
	for i, p := range b.lines {
		p.Set(addr&(1<<i) != 0)
	}
	b.cur = addr
	return nil
}

func (b *PinBus) Width() int     { return len(b.lines) }
func (b *PinBus) Current() uint8 { return b.cur }
