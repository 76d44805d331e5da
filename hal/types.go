// hal/types.go
package hal

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// AddressBus drives the select lines of a multiplexer. One abstraction
// covers both the 3-bit nixie position bus and the 4-bit button bus;
// the encoding width is a property of the implementation, not the caller.
type AddressBus interface {
	// Select drives the lines to the binary encoding of addr and holds
	// them until the next Select. addr must fit in Width() bits.
	Select(addr uint8) error
	// Width is the number of address lines.
	Width() int
	// Current is the address most recently selected.
	Current() uint8
}
