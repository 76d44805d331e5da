// services/device/loop.go
package device

import (
	"context"
	"time"

	"nixieclock-go/bus"
	"nixieclock-go/drivers/keymux"
	"nixieclock-go/drivers/nixie"
	"nixieclock-go/services/clock"
	"nixieclock-go/services/panel"
	"nixieclock-go/types"
)

// Retained state topics.
var (
	TopicTime = bus.T("state", "time")
	TopicDate = bus.T("state", "date")
	TopicMode = bus.T("state", "mode")
	TopicCalc = bus.T("state", "calc")
)

// Loop is the single-threaded cooperative control loop. Per pending tick
// it runs one full pass — time snapshot, rollover cascade, calendar,
// display, one scanner step, input routing — to completion before
// polling again. The only concurrent party is the Ticker.
type Loop struct {
	counter *clock.Counter
	tick    *Ticker
	display *nixie.Display
	scanner *keymux.Scanner
	panel   *panel.Panel
	hub     *bus.Bus // optional

	prev clock.Snapshot
	date clock.Date

	lastMode panel.Mode
	lastCalc types.CalcState
	calcSeen bool
}

func NewLoop(counter *clock.Counter, tick *Ticker, display *nixie.Display, scanner *keymux.Scanner, pnl *panel.Panel, hub *bus.Bus) *Loop {
	return &Loop{
		counter: counter,
		tick:    tick,
		display: display,
		scanner: scanner,
		panel:   pnl,
		hub:     hub,
		date:    clock.NewDate(),
	}
}

// SetDate overrides the power-on epoch before Run.
func (l *Loop) SetDate(d clock.Date) { l.date = d }

func (l *Loop) Date() clock.Date { return l.date }

// Run clears the digit bank, then polls the tick-pending flag until the
// context ends. The idle sleep keeps the host build from spinning a core;
// on a bare-metal target this poll would be the processor's idle loop.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.display.Clear(); err != nil {
		return err
	}
	l.prev = clock.Split(l.counter.Load())
	l.publishTime(l.prev)
	l.publishDate()
	l.publishMode()
	l.publishCalc()

	idle := l.tick.Period() / 20
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if !l.tick.TakePending() {
			time.Sleep(idle)
			continue
		}
		if err := l.Tick(); err != nil {
			return err
		}
	}
}

// Tick processes one full tick. Exported so hosts and tests can drive
// the loop without the real-time Ticker.
func (l *Loop) Tick() error {
	cur := clock.Split(l.counter.Load())
	flags := clock.Detect(cur, l.prev)

	// Midnight crossing advances the date before the display repaints,
	// so calendar mode never shows the stale day.
	if flags.Hour {
		l.date.Advance()
		l.publishDate()
	}

	addr, pressed, err := l.scanner.Step()
	if err != nil {
		return err
	}
	l.panel.HandleSample(addr, pressed)

	if err := l.panel.Render(l.display, cur, flags, l.date); err != nil {
		return err
	}

	// The previous snapshot is overwritten exactly once per tick, after
	// the display and calendar have consumed the flags.
	l.prev = cur

	// The time topic carries whole seconds, so it changes on the
	// hundredths rollover.
	if flags.Hundredth {
		l.publishTime(cur)
	}
	if m := l.panel.Mode(); m != l.lastMode {
		l.lastMode = m
		l.publishMode()
	}
	l.publishCalc()
	return nil
}

// ---- state publishing ----

func (l *Loop) publish(topic bus.Topic, payload any) {
	if l.hub == nil {
		return
	}
	l.hub.Publish(&bus.Message{Topic: topic, Payload: payload, Retained: true})
}

func (l *Loop) publishTime(s clock.Snapshot) {
	l.publish(TopicTime, types.TimeState{
		Hours: s.Hours, Minutes: s.Minutes, Seconds: s.Seconds, Hundredths: s.Hundredths,
	})
}

func (l *Loop) publishDate() {
	l.publish(TopicDate, types.DateState{Day: l.date.Day, Month: l.date.Month, Year: l.date.Year})
}

func (l *Loop) publishMode() {
	l.publish(TopicMode, types.ModeState{Mode: l.panel.Mode().String()})
}

func (l *Loop) publishCalc() {
	e := l.panel.Calc()
	st := types.CalcState{
		Working:  e.Working(),
		Pending:  e.Pending().String(),
		Entering: e.Entering(),
		Error:    string(e.Err()),
	}
	if l.calcSeen && st == l.lastCalc {
		return
	}
	l.calcSeen = true
	l.lastCalc = st
	l.publish(TopicCalc, st)
}
