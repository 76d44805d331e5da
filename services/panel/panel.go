// services/panel/panel.go
package panel

import (
	"nixieclock-go/drivers/keymux"
	"nixieclock-go/services/calc"
	"nixieclock-go/types"
)

// Panel turns raw scanner samples into mode changes and calculator input,
// and owns which mode the digit bank is rendering.
//
// The scanner hands over one (address, pressed) sample per tick. Keys act
// on the press edge only — a button held across several visits of its
// address must not repeat. The clear key is special: held across
// holdSamples consecutive visits it cycles the mode; released before the
// threshold it resets the calculator.
type Panel struct {
	layout      types.ButtonLayout
	holdSamples int
	calc        *calc.Engine

	mode        Mode
	modeChanged bool // one-shot, consumed by the next Render

	holdCount    int
	gestureFired bool
	pressedPrev  [keymux.Positions]bool

	dirty bool // calculator view needs redraw
}

func New(layout types.ButtonLayout, holdSamples int, engine *calc.Engine) *Panel {
	if holdSamples <= 0 {
		holdSamples = 5
	}
	return &Panel{layout: layout, holdSamples: holdSamples, calc: engine}
}

func (p *Panel) Mode() Mode         { return p.mode }
func (p *Panel) Calc() *calc.Engine { return p.calc }

// HandleSample feeds one scanner sample.
func (p *Panel) HandleSample(addr uint8, pressed bool) {
	if int(addr) >= len(p.layout) {
		return
	}
	key := p.layout[addr]
	edge := pressed && !p.pressedPrev[addr]
	released := !pressed && p.pressedPrev[addr]
	p.pressedPrev[addr] = pressed

	if key == types.KeyClear {
		p.handleClear(pressed, released)
		return
	}
	if !edge {
		return
	}
	// Digits and operators only mean anything on the calculator.
	if p.mode == ModeCalculator {
		p.handleCalcKey(key)
	}
}

// handleClear counts consecutive pressed samples of the clear address.
// Reaching the threshold fires the mode-cycle gesture once per physical
// press; letting go early is a short press, which resets the calculator.
func (p *Panel) handleClear(pressed, released bool) {
	if pressed {
		p.holdCount++
		if !p.gestureFired && p.holdCount >= p.holdSamples {
			p.mode = p.mode.Next()
			p.modeChanged = true
			p.gestureFired = true
		}
		return
	}
	if released && !p.gestureFired {
		p.calc.Clear()
		p.dirty = true
	}
	p.holdCount = 0
	p.gestureFired = false
}

func (p *Panel) handleCalcKey(key types.Key) {
	if d, ok := key.Digit(); ok {
		p.calc.Digit(d)
		p.dirty = true
		return
	}
	switch key {
	case types.KeyAdd:
		_ = p.calc.Operator(calc.OpAdd)
	case types.KeySub:
		_ = p.calc.Operator(calc.OpSub)
	case types.KeyMul:
		_ = p.calc.Operator(calc.OpMul)
	case types.KeyDiv:
		_ = p.calc.Operator(calc.OpDiv)
	case types.KeyEquals:
		_ = p.calc.Equals()
	default:
		return // unbound address
	}
	// Operator errors (division by zero) are latched in the engine and
	// surfaced by the renderer; there is no other error channel.
	p.dirty = true
}
