package types

// Device configuration. The hardware binding — pin roles, multiplexer
// widths, button layout, timer period — is data supplied here, not
// literals scattered through the drivers. cmd/nixiesim loads this from a
// YAML profile; firmware entries use Default().

// ---- Keys ----

// Key is the logical meaning of one button-multiplexer position.
type Key string

const (
	KeyNone Key = ""

	Key0 Key = "0"
	Key1 Key = "1"
	Key2 Key = "2"
	Key3 Key = "3"
	Key4 Key = "4"
	Key5 Key = "5"
	Key6 Key = "6"
	Key7 Key = "7"
	Key8 Key = "8"
	Key9 Key = "9"

	KeyAdd    Key = "add"
	KeySub    Key = "sub"
	KeyMul    Key = "mul"
	KeyDiv    Key = "div"
	KeyEquals Key = "equals"
	KeyClear  Key = "clear" // doubles as the mode-cycle button when held
)

// Digit returns the numeric value of a digit key.
func (k Key) Digit() (uint8, bool) {
	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		return uint8(k[0] - '0'), true
	}
	return 0, false
}

// ButtonLayout binds the 16 multiplexer addresses to keys.
type ButtonLayout [16]Key

// DefaultLayout: digits on 0–9, operators on 10–13, equals 14, clear 15.
func DefaultLayout() ButtonLayout {
	return ButtonLayout{
		Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9,
		KeyAdd, KeySub, KeyMul, KeyDiv, KeyEquals, KeyClear,
	}
}

// ---- Pin roles ----

type PinMap struct {
	ResetCommon   int    `yaml:"reset_common"`   // pulses to zero the addressed decade counter
	ClockCommon   int    `yaml:"clock_common"`   // pulses to advance the addressed decade counter
	NixieAddress  [3]int `yaml:"nixie_address"`  // selects digit position 0–7, LSB first
	ButtonCommon  int    `yaml:"button_common"`  // input, pulled high; LOW = pressed
	ButtonAddress [4]int `yaml:"button_address"` // selects button position 0–15, LSB first
}

// ---- Timing ----

type TimerConfig struct {
	TickHz       uint32 `yaml:"tick_hz"`        // main tick rate; 100 => 10 ms period
	PulseWidthUs uint32 `yaml:"pulse_width_us"` // active width of reset/clock pulses
}

// ---- Input ----

type InputConfig struct {
	// HoldSamples is the number of consecutive samples of the clear
	// button's address that counts as the mode-cycle hold. The scanner
	// visits each address once per 16 ticks, so at 100 Hz one sample is
	// 160 ms of physical hold.
	HoldSamples int `yaml:"hold_samples"`
	// ActiveHigh inverts the common-line sense. The reference board
	// pulls the line high and grounds it through the pressed button.
	ActiveHigh bool `yaml:"active_high"`
}

// ---- Calculator ----

type CalcConfig struct {
	DigitCapacity int `yaml:"digit_capacity"` // register width in decimal digits
}

// ---- Aggregate ----

type Config struct {
	Pins    PinMap       `yaml:"pins"`
	Timer   TimerConfig  `yaml:"timer"`
	Input   InputConfig  `yaml:"input"`
	Calc    CalcConfig   `yaml:"calc"`
	Buttons ButtonLayout `yaml:"buttons"`
}

// Normalize fills zero fields with board defaults, in place.
func (c *Config) Normalize() {
	if c.Timer.TickHz == 0 {
		c.Timer.TickHz = 100
	}
	if c.Timer.PulseWidthUs == 0 {
		c.Timer.PulseWidthUs = 1
	}
	if c.Input.HoldSamples == 0 {
		c.Input.HoldSamples = 5
	}
	if c.Calc.DigitCapacity == 0 {
		c.Calc.DigitCapacity = 8
	}
	empty := true
	for _, k := range c.Buttons {
		if k != KeyNone {
			empty = false
			break
		}
	}
	if empty {
		c.Buttons = DefaultLayout()
	}
}

// Default returns the reference board binding.
func Default() Config {
	c := Config{
		Pins: PinMap{
			ResetCommon:   2,
			ClockCommon:   3,
			NixieAddress:  [3]int{4, 5, 6},
			ButtonCommon:  10,
			ButtonAddress: [4]int{11, 12, 13, 14},
		},
	}
	c.Normalize()
	return c
}
