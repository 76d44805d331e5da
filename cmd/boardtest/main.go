// cmd/boardtest/main.go
//
// Bring-up test for a freshly soldered board: walks every digit value
// across every tube position, then echoes button presses until killed.
// Swap hostPins for the machine pin factory when flashing to a target.
package main

import (
	"fmt"
	"time"

	"nixieclock-go/drivers/keymux"
	"nixieclock-go/drivers/nixie"
	"nixieclock-go/hal"
	"nixieclock-go/types"
)

// ---------- Configuration ----------

const (
	digitDwell = 300 * time.Millisecond
	scanPeriod = 10 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 1
)

func main() {
	cfg := types.Default()
	pins := hostPins()

	display, scanner, err := build(cfg, pins)
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	if err := display.Clear(); err != nil {
		fmt.Println("clear:", err)
		return
	}

	for cycle := 0; cyclesToRun == 0 || cycle < cyclesToRun; cycle++ {
		for v := uint8(0); v <= 9; v++ {
			for pos := uint8(0); pos < nixie.Positions; pos++ {
				if err := display.SetDigit(pos, v); err != nil {
					fmt.Println("set:", err)
					return
				}
			}
			fmt.Println("all positions showing", v)
			time.Sleep(digitDwell)
		}
	}

	fmt.Println("button echo; press board buttons (Ctrl-C to quit)")
	var prev [keymux.Positions]bool
	tick := time.NewTicker(scanPeriod)
	defer tick.Stop()
	for range tick.C {
		addr, pressed, err := scanner.Step()
		if err != nil {
			fmt.Println("scan:", err)
			return
		}
		if pressed && !prev[addr] {
			fmt.Printf("pressed addr=%d key=%q\n", addr, cfg.Buttons[addr])
		}
		prev[addr] = pressed
	}
}

func build(cfg types.Config, pins func(int) hal.GPIOPin) (*nixie.Display, *keymux.Scanner, error) {
	var nixieLines []hal.GPIOPin
	for _, n := range cfg.Pins.NixieAddress {
		nixieLines = append(nixieLines, pins(n))
	}
	nixieBus, err := hal.NewPinBus(nixieLines...)
	if err != nil {
		return nil, nil, err
	}
	width := time.Duration(cfg.Timer.PulseWidthUs) * time.Microsecond
	reset, err := hal.NewPulser(pins(cfg.Pins.ResetCommon), width, nil)
	if err != nil {
		return nil, nil, err
	}
	clockLine, err := hal.NewPulser(pins(cfg.Pins.ClockCommon), width, nil)
	if err != nil {
		return nil, nil, err
	}
	display, err := nixie.New(nixieBus, reset, clockLine)
	if err != nil {
		return nil, nil, err
	}

	var buttonLines []hal.GPIOPin
	for _, n := range cfg.Pins.ButtonAddress {
		buttonLines = append(buttonLines, pins(n))
	}
	buttonBus, err := hal.NewPinBus(buttonLines...)
	if err != nil {
		return nil, nil, err
	}
	scanner, err := keymux.New(buttonBus, pins(cfg.Pins.ButtonCommon), cfg.Input.ActiveHigh)
	if err != nil {
		return nil, nil, err
	}
	return display, scanner, nil
}

func hostPins() func(int) hal.GPIOPin {
	pins := map[int]*hal.HostPin{}
	return func(n int) hal.GPIOPin {
		if p, ok := pins[n]; ok {
			return p
		}
		p := &hal.HostPin{N: n}
		pins[n] = p
		return p
	}
}
