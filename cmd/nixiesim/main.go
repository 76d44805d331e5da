// cmd/nixiesim/main.go
//
// Host simulator for the clock. Runs the real control loop against
// simulated pins, echoes the retained state topics, and lets you press
// the buttons from stdin:
//
//	0–9        digit keys
//	+ - * /    operators
//	=          equals
//	c          clear (short press)
//	m          clear held past the mode-cycle threshold
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"nixieclock-go/bus"
	"nixieclock-go/drivers/keymux"
	"nixieclock-go/errcode"
	"nixieclock-go/hal"
	"nixieclock-go/services/device"
	"nixieclock-go/types"
	"nixieclock-go/x/timex"
)

const shortPress = 200 * time.Millisecond

func main() {
	cfgPath := flag.String("config", "", "YAML device profile (defaults to the reference board)")
	flag.Parse()

	cfg := types.Default()
	if *cfgPath != "" {
		raw, err := os.ReadFile(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg.Normalize()
	}

	hub := bus.New(16)
	board := newSimBoard(cfg)
	loop, err := device.Build(cfg, board.factory, hub)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go printState(hub)
	go readKeys(board, cfg)

	loop.Ticker().Start(ctx)
	if err := loop.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "loop:", err)
		os.Exit(1)
	}
}

// ---- state echo ----

func printState(hub *bus.Bus) {
	tSub := hub.Subscribe(device.TopicTime)
	dSub := hub.Subscribe(device.TopicDate)
	mSub := hub.Subscribe(device.TopicMode)
	cSub := hub.Subscribe(device.TopicCalc)
	for {
		select {
		case m := <-tSub.Channel():
			s := m.Payload.(types.TimeState)
			fmt.Printf("time  %02d:%02d:%02d.%02d\n", s.Hours, s.Minutes, s.Seconds, s.Hundredths)
		case m := <-dSub.Channel():
			s := m.Payload.(types.DateState)
			fmt.Printf("date  %02d-%02d-%04d\n", s.Day, s.Month, s.Year)
		case m := <-mSub.Channel():
			fmt.Println("mode ", m.Payload.(types.ModeState).Mode)
		case m := <-cSub.Channel():
			s := m.Payload.(types.CalcState)
			fmt.Printf("calc  working=%d pending=%q entering=%v err=%q\n", s.Working, s.Pending, s.Entering, s.Error)
		}
	}
}

// ---- key injection ----

func readKeys(board *simBoard, cfg types.Config) {
	tick := timex.PeriodFromHz(cfg.Timer.TickHz)
	// A held clear must survive HoldSamples visits of its address; the
	// scanner revisits an address every 16 ticks.
	hold := time.Duration(cfg.Input.HoldSamples+1) * 16 * tick

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		if line == "" {
			continue
		}
		key, dur := decodeKey(line[0])
		if key == types.KeyNone {
			fmt.Println("?", line)
			continue
		}
		if key == types.KeyClear && line[0] == 'm' {
			dur = hold
		}
		addr, ok := findKey(cfg.Buttons, key)
		if !ok {
			fmt.Println("unbound key:", key)
			continue
		}
		board.press(addr, dur)
	}
}

func decodeKey(c byte) (types.Key, time.Duration) {
	switch {
	case c >= '0' && c <= '9':
		return types.Key(string(c)), shortPress
	case c == '+':
		return types.KeyAdd, shortPress
	case c == '-':
		return types.KeySub, shortPress
	case c == '*':
		return types.KeyMul, shortPress
	case c == '/':
		return types.KeyDiv, shortPress
	case c == '=':
		return types.KeyEquals, shortPress
	case c == 'c', c == 'm':
		return types.KeyClear, shortPress
	default:
		return types.KeyNone, 0
	}
}

func findKey(layout types.ButtonLayout, key types.Key) (uint8, bool) {
	for addr, k := range layout {
		if k == key {
			return uint8(addr), true
		}
	}
	return 0, false
}

// ---- simulated board ----

// simBoard owns the HostPins and fakes the button matrix: the common
// line reads low when the button at the currently addressed position is
// held down.
type simBoard struct {
	cfg  types.Config
	pins map[int]*hal.HostPin

	mu      sync.Mutex
	pressed [keymux.Positions]bool
}

func newSimBoard(cfg types.Config) *simBoard {
	return &simBoard{cfg: cfg, pins: map[int]*hal.HostPin{}}
}

func (b *simBoard) factory(n int) hal.GPIOPin {
	if n == b.cfg.Pins.ButtonCommon {
		return &commonPin{board: b, n: n}
	}
	if p, ok := b.pins[n]; ok {
		return p
	}
	p := &hal.HostPin{N: n}
	b.pins[n] = p
	return p
}

func (b *simBoard) press(addr uint8, dur time.Duration) {
	b.mu.Lock()
	b.pressed[addr] = true
	b.mu.Unlock()
	time.AfterFunc(dur, func() {
		b.mu.Lock()
		b.pressed[addr] = false
		b.mu.Unlock()
	})
}

// buttonAddr decodes the address currently driven on the button bus.
func (b *simBoard) buttonAddr() uint8 {
	var addr uint8
	for i, n := range b.cfg.Pins.ButtonAddress {
		if p, ok := b.pins[n]; ok && p.Level {
			addr |= 1 << i
		}
	}
	return addr
}

// commonPin is the shared button line: pulled high, grounded by a
// pressed button at the selected address.
type commonPin struct {
	board *simBoard
	n     int
}

func (p *commonPin) ConfigureInput(hal.Pull) error { return nil }
func (p *commonPin) ConfigureOutput(bool) error    { return errcode.Unsupported }
func (p *commonPin) Set(bool)                      {}
func (p *commonPin) Toggle()                       {}
func (p *commonPin) Number() int                   { return p.n }

func (p *commonPin) Get() bool {
	addr := p.board.buttonAddr()
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	return !p.board.pressed[addr]
}
