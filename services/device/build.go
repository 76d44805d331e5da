// services/device/build.go
package device

import (
	"time"

	"nixieclock-go/bus"
	"nixieclock-go/drivers/keymux"
	"nixieclock-go/drivers/nixie"
	"nixieclock-go/hal"
	"nixieclock-go/services/calc"
	"nixieclock-go/services/clock"
	"nixieclock-go/services/panel"
	"nixieclock-go/types"
	"nixieclock-go/x/timex"
)

// PinFactory resolves a pin number from the configuration to a concrete
// pin: machine pins on a target build, HostPins on a host build.
type PinFactory func(n int) hal.GPIOPin

// Build assembles the whole device from its configuration. hub may be
// nil when nothing observes the state topics.
func Build(cfg types.Config, pins PinFactory, hub *bus.Bus) (*Loop, error) {
	cfg.Normalize()

	var nixieLines []hal.GPIOPin
	for _, n := range cfg.Pins.NixieAddress {
		nixieLines = append(nixieLines, pins(n))
	}
	nixieBus, err := hal.NewPinBus(nixieLines...)
	if err != nil {
		return nil, err
	}

	width := time.Duration(cfg.Timer.PulseWidthUs) * time.Microsecond
	reset, err := hal.NewPulser(pins(cfg.Pins.ResetCommon), width, nil)
	if err != nil {
		return nil, err
	}
	clockLine, err := hal.NewPulser(pins(cfg.Pins.ClockCommon), width, nil)
	if err != nil {
		return nil, err
	}
	display, err := nixie.New(nixieBus, reset, clockLine)
	if err != nil {
		return nil, err
	}

	var buttonLines []hal.GPIOPin
	for _, n := range cfg.Pins.ButtonAddress {
		buttonLines = append(buttonLines, pins(n))
	}
	buttonBus, err := hal.NewPinBus(buttonLines...)
	if err != nil {
		return nil, err
	}
	scanner, err := keymux.New(buttonBus, pins(cfg.Pins.ButtonCommon), cfg.Input.ActiveHigh)
	if err != nil {
		return nil, err
	}

	counter := &clock.Counter{}
	engine := calc.New(cfg.Calc.DigitCapacity)
	pnl := panel.New(cfg.Buttons, cfg.Input.HoldSamples, engine)
	tick := NewTicker(counter, timex.PeriodFromHz(cfg.Timer.TickHz))

	return NewLoop(counter, tick, display, scanner, pnl, hub), nil
}

// Ticker exposes the loop's tick source so entry points can start it.
func (l *Loop) Ticker() *Ticker { return l.tick }

// Counter exposes the time counter for time-setting hosts.
func (l *Loop) Counter() *clock.Counter { return l.counter }
