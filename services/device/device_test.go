package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nixieclock-go/bus"
	"nixieclock-go/drivers/keymux"
	"nixieclock-go/errcode"
	"nixieclock-go/hal"
	"nixieclock-go/services/clock"
	"nixieclock-go/types"
)

// testBoard fakes the whole board: HostPins everywhere, plus a button
// matrix whose common line follows the address currently driven on the
// button bus.
type testBoard struct {
	cfg     types.Config
	pins    map[int]*hal.HostPin
	pressed [keymux.Positions]bool
}

func newTestBoard(cfg types.Config) *testBoard {
	return &testBoard{cfg: cfg, pins: map[int]*hal.HostPin{}}
}

func (b *testBoard) factory(n int) hal.GPIOPin {
	if n == b.cfg.Pins.ButtonCommon {
		return &matrixPin{board: b, n: n}
	}
	if p, ok := b.pins[n]; ok {
		return p
	}
	p := &hal.HostPin{N: n}
	b.pins[n] = p
	return p
}

func (b *testBoard) buttonAddr() uint8 {
	var addr uint8
	for i, n := range b.cfg.Pins.ButtonAddress {
		if p, ok := b.pins[n]; ok && p.Level {
			addr |= 1 << i
		}
	}
	return addr
}

type matrixPin struct {
	board *testBoard
	n     int
}

func (p *matrixPin) ConfigureInput(hal.Pull) error { return nil }
func (p *matrixPin) ConfigureOutput(bool) error    { return errcode.Unsupported }
func (p *matrixPin) Set(bool)                      {}
func (p *matrixPin) Toggle()                       {}
func (p *matrixPin) Number() int                   { return p.n }
func (p *matrixPin) Get() bool                     { return !p.board.pressed[p.board.buttonAddr()] }

func newTestDevice(t *testing.T) (*Loop, *testBoard, *bus.Bus) {
	t.Helper()
	cfg := types.Default()
	board := newTestBoard(cfg)
	hub := bus.New(16)
	loop, err := Build(cfg, board.factory, hub)
	require.NoError(t, err)
	require.NoError(t, loop.display.Clear())
	loop.prev = clock.Split(loop.counter.Load())
	return loop, board, hub
}

// runTicks fires the timer and processes n ticks synchronously.
func runTicks(t *testing.T, l *Loop, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		l.counter.Tick()
		require.NoError(t, l.Tick())
	}
}

// pressKey holds a button through one full scan cycle, then releases it
// for another, so the scanner sees exactly one press and one release.
func pressKey(t *testing.T, l *Loop, board *testBoard, addr uint8) {
	t.Helper()
	board.pressed[addr] = true
	runTicks(t, l, keymux.Positions)
	board.pressed[addr] = false
	runTicks(t, l, keymux.Positions)
}

// holdClear keeps the clear button down long enough for the mode-cycle
// gesture, then releases it.
func holdClear(t *testing.T, l *Loop, board *testBoard, cfg types.Config) {
	t.Helper()
	clearAddr, ok := findClear(cfg.Buttons)
	require.True(t, ok)
	board.pressed[clearAddr] = true
	runTicks(t, l, cfg.Input.HoldSamples*keymux.Positions)
	board.pressed[clearAddr] = false
	runTicks(t, l, keymux.Positions)
}

func findClear(layout types.ButtonLayout) (uint8, bool) {
	for addr, k := range layout {
		if k == types.KeyClear {
			return uint8(addr), true
		}
	}
	return 0, false
}

func retained[T any](t *testing.T, hub *bus.Bus, topic bus.Topic) T {
	t.Helper()
	sub := hub.Subscribe(topic)
	defer sub.Unsubscribe()
	select {
	case m := <-sub.Channel():
		return m.Payload.(T)
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("no retained message on %q", topic)
		panic("unreachable")
	}
}

func TestTickAdvancesHundredthsDigit(t *testing.T) {
	assert := assert.New(t)
	loop, _, _ := newTestDevice(t)

	runTicks(t, loop, 1)
	assert.Equal(uint8(1), loop.display.Digit(0))

	runTicks(t, loop, 8)
	assert.Equal(uint8(9), loop.display.Digit(0))

	// 9 -> 0 with the tens digit catching up on the next repaint.
	runTicks(t, loop, 1)
	assert.Equal(uint8(0), loop.display.Digit(0))
	assert.Equal(uint8(1), loop.display.Digit(1))
}

func TestClockDisplayTracksElapsedTime(t *testing.T) {
	assert := assert.New(t)
	loop, _, hub := newTestDevice(t)

	// One full second from power-on. The seconds tubes move when the
	// hundredths wrap, not only when the seconds themselves wrap a
	// minute later.
	runTicks(t, loop, 100)
	assert.Equal(uint8(0), loop.display.Digit(0))
	assert.Equal(uint8(1), loop.display.Digit(2))

	st := retained[types.TimeState](t, hub, TopicTime)
	assert.Equal(uint8(1), st.Seconds)

	// Into the second minute: the minutes pair catches up on the
	// seconds wrap and the time topic keeps following whole seconds.
	runTicks(t, loop, 61*100)
	assert.Equal(uint8(2), loop.display.Digit(2))
	assert.Equal(uint8(0), loop.display.Digit(3))
	assert.Equal(uint8(1), loop.display.Digit(4))

	st = retained[types.TimeState](t, hub, TopicTime)
	assert.Equal(uint8(1), st.Minutes)
	assert.Equal(uint8(2), st.Seconds)
}

func TestMidnightAdvancesDate(t *testing.T) {
	assert := assert.New(t)
	loop, _, hub := newTestDevice(t)

	loop.counter.Set(clock.TicksPerDay - 1)
	loop.prev = clock.Split(loop.counter.Load())
	runTicks(t, loop, 1)

	assert.Equal(clock.Date{Day: 2, Month: 1, Year: 1970}, loop.Date())
	st := retained[types.DateState](t, hub, TopicDate)
	assert.Equal(uint8(2), st.Day)
}

func TestModeGesturePublishesMode(t *testing.T) {
	assert := assert.New(t)
	loop, board, hub := newTestDevice(t)
	cfg := types.Default()

	holdClear(t, loop, board, cfg)
	assert.Equal("calendar", retained[types.ModeState](t, hub, TopicMode).Mode)

	holdClear(t, loop, board, cfg)
	assert.Equal("calculator", retained[types.ModeState](t, hub, TopicMode).Mode)

	holdClear(t, loop, board, cfg)
	assert.Equal("clock", retained[types.ModeState](t, hub, TopicMode).Mode)
}

func TestCalculatorEndToEnd(t *testing.T) {
	assert := assert.New(t)
	loop, board, hub := newTestDevice(t)
	cfg := types.Default()

	// Clock -> Calendar -> Calculator.
	holdClear(t, loop, board, cfg)
	holdClear(t, loop, board, cfg)

	// 2 + 3 = ; default layout: digits on 0-9, add on 10, equals on 14.
	pressKey(t, loop, board, 2)
	pressKey(t, loop, board, 10)
	pressKey(t, loop, board, 3)
	pressKey(t, loop, board, 14)

	st := retained[types.CalcState](t, hub, TopicCalc)
	assert.Equal(int64(5), st.Working)
	assert.Equal("", st.Pending)

	// The result is on the tubes.
	assert.Equal(uint8(5), loop.display.Digit(0))

	// Short clear press resets without changing mode.
	clearAddr, _ := findClear(cfg.Buttons)
	pressKey(t, loop, board, clearAddr)
	st = retained[types.CalcState](t, hub, TopicCalc)
	assert.Equal(int64(0), st.Working)
	assert.Equal("calculator", retained[types.ModeState](t, hub, TopicMode).Mode)
}

func TestTickerPendingAndDrops(t *testing.T) {
	assert := assert.New(t)

	var c clock.Counter
	tk := NewTicker(&c, time.Millisecond)

	assert.False(tk.TakePending())
	tk.Fire()
	tk.Fire() // second fire before the loop ran: processing dropped
	assert.True(tk.TakePending())
	assert.False(tk.TakePending())
	assert.Equal(uint32(1), tk.Dropped())
	assert.Equal(uint32(2), c.Load()) // time itself never drops
}
