package main

import (
	"context"
	"time"

	"nixieclock-go/hal"
	"nixieclock-go/services/device"
	"nixieclock-go/types"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	loop, err := device.Build(types.Default(), hostPins(), nil)
	if err != nil {
		println("Error:", err.Error())
		return
	}

	ctx := context.Background()
	loop.Ticker().Start(ctx)
	if err := loop.Run(ctx); err != nil {
		println("Error:", err.Error())
	}
}

// hostPins hands out one HostPin per pin number. A target build swaps
// this factory for the machine package's pins.
func hostPins() device.PinFactory {
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
