// hal/hostpin.go
package hal

// HostPin is an in-memory GPIOPin for host builds, simulators and tests.
// OnSet, when non-nil, observes every output transition.
type HostPin struct {
	N     int
	OnSet func(level bool)
	// Level is the current line state. For inputs the simulator writes
	// it directly; the pull is applied when the pin is configured.
	Level bool

	pull   Pull
	output bool
}

func (p *HostPin) ConfigureInput(pull Pull) error {
	p.pull = pull
	p.output = false
	p.Level = pull != PullDown // pulled-up and floating lines read high
	return nil
}

func (p *HostPin) ConfigureOutput(initial bool) error {
	p.output = true
	p.set(initial)
	return nil
}

func (p *HostPin) Set(level bool) { p.set(level) }
func (p *HostPin) Get() bool      { return p.Level }
func (p *HostPin) Toggle()        { p.set(!p.Level) }
func (p *HostPin) Number() int    { return p.N }

func (p *HostPin) set(level bool) {
	p.Level = level
	if p.OnSet != nil {
		p.OnSet(level)
	}
}
