// services/clock/snapshot.go
package clock

// Pure derivations of the display sub-units from a counter value.
// For any t in [0, TicksPerDay):
//
//	Hours(t)*360000 + Minutes(t)*6000 + Seconds(t)*100 + Hundredths(t) == t

func Hours(t uint32) uint8      { return uint8(t / TicksPerHour) }
func Minutes(t uint32) uint8    { return uint8(t / TicksPerMinute % 60) }
func Seconds(t uint32) uint8    { return uint8(t / TicksPerSecond % 60) }
func Hundredths(t uint32) uint8 { return uint8(t % TicksPerSecond) }

// Snapshot is one tick's worth of derived sub-units. The previous tick's
// snapshot is the sole input to rollover detection.
type Snapshot struct {
	Hours      uint8
	Minutes    uint8
	Seconds    uint8
	Hundredths uint8
}

func Split(t uint32) Snapshot {
	return Snapshot{
		Hours:      Hours(t),
		Minutes:    Minutes(t),
		Seconds:    Seconds(t),
		Hundredths: Hundredths(t),
	}
}
