// services/panel/mode.go
package panel

// Mode is the display's top-level function. Exactly one is active; the
// held clear button cycles forward, wrapping Calculator back to Clock.
type Mode uint8

const (
	ModeClock Mode = iota
	ModeCalendar
	ModeCalculator

	modeCount = 3
)

func (m Mode) Next() Mode { return (m + 1) % modeCount }

func (m Mode) String() string {
	switch m {
	case ModeClock:
		return "clock"
	case ModeCalendar:
		return "calendar"
	case ModeCalculator:
		return "calculator"
	default:
		return "unknown"
	}
}
