// Package expander adapts a PCF8574 I²C I/O expander to the hal
// abstractions, for board revisions that route the multiplexer address
// lines (and optionally the button common line) through the expander
// instead of spending MCU pins on them.
//
// The chip is registerless: writing one byte sets the whole port (a high
// bit enables the weak pullup, a low bit sinks current), reading one
// byte returns the actual pin levels. An input is a pin left high and
// sensed for something pulling it low.
package expander

import (
	"tinygo.org/x/drivers"

	"nixieclock-go/errcode"
	"nixieclock-go/hal"
)

const DefaultAddress = 0x20

type Config struct {
	Address uint8
	// Lines are the expander bit numbers carrying the address, LSB first.
	Lines []uint8
}

// Bus is a hal.AddressBus over expander outputs. The port byte is
// shadowed so each Select is a single write that leaves the pins outside
// Lines alone.
type Bus struct {
	i2c   drivers.I2C
	addr  uint16
	lines []uint8
	port  uint8
	cur   uint8
}

// NewBus wires an AddressBus onto a preconfigured I²C bus. All address
// lines are driven low initially.
func NewBus(i2c drivers.I2C, cfg Config) (*Bus, error) {
	if len(cfg.Lines) == 0 || len(cfg.Lines) > 8 {
		return nil, errcode.InvalidParams
	}
	if cfg.Address == 0 {
		cfg.Address = DefaultAddress
	}
	// The port powers up all-high.
	b := &Bus{i2c: i2c, addr: uint16(cfg.Address), lines: cfg.Lines, port: 0xFF}
	if err := b.Select(0); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bus) Select(addr uint8) error {
	if int(addr) >= 1<<len(b.lines) {
		return errcode.InvalidParams
	}
	port := b.port
	for i, line := range b.lines {
		if addr&(1<<i) != 0 {
			port |= 1 << line
		} else {
			port &^= 1 << line
		}
	}
	if err := b.send(port); err != nil {
		return &errcode.E{C: errcode.Error, Op: "expander.Select", Err: err}
	}
	b.cur = addr
	return nil
}

func (b *Bus) send(port uint8) error {
	buf := [1]byte{port}
	if err := b.i2c.Tx(b.addr, buf[:], nil); err != nil {
		return err
	}
	b.port = port
	return nil
}

func (b *Bus) Width() int     { return len(b.lines) }
func (b *Bus) Current() uint8 { return b.cur }

// InputPin exposes one expander bit as a hal.GPIOPin input. The PCF8574
// reads a pin by holding its weak pullup and sensing whether something
// pulls it low, which is exactly the button-common contract.
type InputPin struct {
	bus *Bus
	bit uint8
}

func (b *Bus) InputPin(bit uint8) *InputPin {
	return &InputPin{bus: b, bit: bit}
}

func (p *InputPin) ConfigureInput(hal.Pull) error {
	// Release the pin to its weak pullup so external hardware can sink it.
	return p.bus.send(p.bus.port | 1<<p.bit)
}

func (p *InputPin) ConfigureOutput(bool) error { return errcode.Unsupported }
func (p *InputPin) Set(bool)                   {}
func (p *InputPin) Toggle()                    {}
func (p *InputPin) Number() int                { return int(p.bit) }

func (p *InputPin) Get() bool {
	var buf [1]byte
	if err := p.bus.i2c.Tx(p.bus.addr, nil, buf[:]); err != nil {
		// Read failure looks like a released (pulled-up) line.
		return true
	}
	return buf[0]&(1<<p.bit) != 0
}
